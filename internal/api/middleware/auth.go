package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/stakemesh/wagerd/internal/api/apierr"
	"github.com/stakemesh/wagerd/internal/model"
	"github.com/stakemesh/wagerd/internal/services/auth"
)

type contextKey string

const accountContextKey contextKey = "account"

// Auth creates authentication middleware resolving the bearer token to the
// caller's account
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			account, err := authService.ValidateToken(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, account)
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
	return ""
}

// GetAccount returns the authenticated account from the request context
func GetAccount(ctx context.Context) (model.AccountID, bool) {
	account, ok := ctx.Value(accountContextKey).(model.AccountID)
	return account, ok
}

// MustGetAccount returns the authenticated account or panics
func MustGetAccount(ctx context.Context) model.AccountID {
	account, ok := GetAccount(ctx)
	if !ok {
		panic("no account in context - auth middleware not applied?")
	}
	return account
}
