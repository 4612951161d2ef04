package middleware

import (
	"context"
	"net/http"

	"github.com/tickergate/tickergate/internal/api/apierr"
	"github.com/tickergate/tickergate/internal/services/gate"
)

type contextKey string

const (
	emailContextKey contextKey = "email"
)

// Auth creates authentication middleware: requests are rejected with 401
// unless the session gate is open
func Auth(sessionGate *gate.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessionGate.State() != gate.StateAuthenticated {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), emailContextKey, sessionGate.Email())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetEmail returns the authenticated email from the request context.
// Returns "" when the auth middleware was not applied.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(emailContextKey).(string)
	return email
}
