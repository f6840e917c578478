package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"hospohub/internal/auth"
)

// contextKey is a private type for context values to avoid key collisions.
type contextKey string

// UserIDKey is the context key holding the authenticated actor's user id.
const UserIDKey contextKey = "userID"

// UsernameKey is the context key holding the authenticated actor's username.
const UsernameKey contextKey = "username"

// ClaimsKey is the context key holding the full validated claims (for logout,
// which needs the JTI and expiry).
const ClaimsKey contextKey = "claims"

// AuthMiddleware validates the bearer token and stores the actor identity in
// the request context. Everything behind it can trust the user id it finds
// there; nothing downstream authenticates again.
func AuthMiddleware(jwtSecretKey string, blacklist auth.TokenBlacklist) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization token", http.StatusUnauthorized)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ValidateToken(r.Context(), headerParts[1], jwtSecretKey, blacklist)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext returns the authenticated actor's user id.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// GetUsernameFromContext returns the authenticated actor's username.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// GetClaimsFromContext returns the full validated claims.
func GetClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok
}

// WithUserID injects an actor id into a context. Test helper for handlers
// that sit behind AuthMiddleware in production.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}
