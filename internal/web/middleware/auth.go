package middleware

import (
	"context"
	"net/http"

	"github.com/tickergate/tickergate/internal/services/gate"
)

type contextKey string

const (
	emailContextKey contextKey = "email"
)

// GetEmail retrieves the authenticated email from the request context.
// Returns "" if nobody is signed in.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(emailContextKey).(string)
	return email
}

// Auth returns middleware that requires an open session gate.
// Redirects to the home page (which shows the auth card) when signed out.
func Auth(sessionGate *gate.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessionGate.State() != gate.StateAuthenticated {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), emailContextKey, sessionGate.Email())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that injects the signed-in email when the
// gate is open, without requiring it
func OptionalAuth(sessionGate *gate.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := ""
			if sessionGate.State() == gate.StateAuthenticated {
				email = sessionGate.Email()
			}
			ctx := context.WithValue(r.Context(), emailContextKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
