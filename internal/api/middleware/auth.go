package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/showquiz/tvtrivia/internal/api/apierr"
	"github.com/showquiz/tvtrivia/internal/services/auth"
)

type contextKey string

const tokenContextKey contextKey = "token"

// Auth creates authentication middleware requiring a valid host token
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r)
			if raw == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			token, err := authService.ValidateToken(raw)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), tokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	cookie, err := r.Cookie("token")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetToken returns the authenticated token from the request context
func GetToken(ctx context.Context) *auth.Token {
	token, _ := ctx.Value(tokenContextKey).(*auth.Token)
	return token
}

// MustGetToken returns the authenticated token or panics
func MustGetToken(ctx context.Context) *auth.Token {
	token := GetToken(ctx)
	if token == nil {
		panic("no token in context - auth middleware not applied?")
	}
	return token
}
