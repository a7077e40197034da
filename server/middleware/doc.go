// Package middleware provides the HTTP middleware used by the instdata
// document service: request IDs, access logging, panic recovery and request
// body limits.
package middleware
