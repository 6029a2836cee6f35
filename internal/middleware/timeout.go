package middleware

import (
	"net/http"
	"time"
)

// Timeout cancels the request context after d and answers 503.
// A zero or negative d disables the limit.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.TimeoutHandler(next, d, "Request timeout")
	}
}
