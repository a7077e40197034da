package middleware

import (
	"log/slog"
	"net/http"
)

// DefaultMaxBodyBytes is the request body limit used when none is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// MaxBodySize returns a middleware limiting request bodies with
// http.MaxBytesReader. Handlers reading past the limit get an
// *http.MaxBytesError and should respond with 413.
//
// If limit is zero or negative, DefaultMaxBodyBytes is used and a warning is logged.
func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		slog.Warn("middleware: body limit must be positive, using default",
			"provided", limit, "default", DefaultMaxBodyBytes)

		limit = DefaultMaxBodyBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}

			next.ServeHTTP(w, r)
		})
	}
}
