// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"listpad/internal/service"
)

type ctxKey string

const userKey ctxKey = "user"

// BearerAuth enforces bearer-token authentication.
//
// It expects an "Authorization: Bearer <token>" header carrying a session
// token signed with secret. On success the authenticated user id is stored in
// the request context for downstream handlers. Requests without a valid token
// are rejected with 401.
func BearerAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := service.ParseToken(secret, token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user id from the request
// context. Returns 0 if not found.
func GetUserIDFromContext(ctx context.Context) int64 {
	val := ctx.Value(userKey)
	if id, ok := val.(int64); ok {
		return id
	}
	return 0
}
