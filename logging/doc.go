// Package logging builds the slog logger used across instdata.
// JSON output suits the HTTP service and log collectors; text output suits
// interactive CLI use.
package logging
