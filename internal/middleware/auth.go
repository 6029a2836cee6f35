package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ua-volunteer/volunteer-api/internal/pkg/jwt"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/response"
)

type contextKey string

const (
	PromoterIDKey contextKey = "promoter_id"
	RoleKey       contextKey = "role"
)

// Auth returns middleware that validates JWT
func Auth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), PromoterIDKey, claims.PromoterID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPromoterID extracts the authenticated promoter ID from context, 0 when absent
func GetPromoterID(ctx context.Context) int64 {
	if id, ok := ctx.Value(PromoterIDKey).(int64); ok {
		return id
	}
	return 0
}

// GetRole extracts role from context
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}

// WithPromoter attaches a promoter identity to ctx, as Auth does after validating a token.
func WithPromoter(ctx context.Context, promoterID int64) context.Context {
	ctx = context.WithValue(ctx, PromoterIDKey, promoterID)
	return context.WithValue(ctx, RoleKey, jwt.RolePromoter)
}

// RequireRole returns middleware that checks user role
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole := GetRole(r.Context())

			for _, role := range roles {
				if userRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		})
	}
}

// RequirePromoter returns middleware that requires promoter role
func RequirePromoter() func(http.Handler) http.Handler {
	return RequireRole(jwt.RolePromoter)
}
