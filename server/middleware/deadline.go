package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds a request when no timeout is configured.
const DefaultRequestTimeout = 30 * time.Second

// Deadline returns a middleware answering 503 Service Unavailable when next
// does not finish within timeout. Output written by next before the deadline
// is discarded.
//
// If timeout is zero or negative, DefaultRequestTimeout is used and a warning is logged.
func Deadline(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		slog.Warn("middleware: request timeout must be positive, using default",
			"provided", timeout, "default", DefaultRequestTimeout)

		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "request timed out")
	}
}
