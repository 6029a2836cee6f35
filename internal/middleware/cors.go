package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSHandler allows browser clients from allowedOrigins. Auth is a bearer
// header, never a cookie, so credentials stay disabled and "*" is allowed.
func CORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         600,
	})
}
