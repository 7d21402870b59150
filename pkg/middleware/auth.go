package middleware

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/micromarket/pkg/auth"
	"github.com/shashiranjanraj/micromarket/pkg/response"
)

// Auth validates the bearer token and stores the authenticated user's id in
// the request context. Every owned-resource route hangs off this middleware;
// the id it injects is the sole tenancy key downstream.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		if token == "" || token == r.Header.Get("Authorization") {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := auth.WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
