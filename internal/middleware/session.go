package middleware

import (
	"context"
	"net/http"

	"github.com/icecube7035-art/ADAI/internal/gallery"
)

const SessionCookie = "adai_session"

const sessionKey contextKey = "session"

// Session resolves the caller's session from the cookie, creating a fresh
// one when absent or expired, and injects it into the request context.
func Session(manager *gallery.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				id = cookie.Value
			}
			session := manager.Resolve(id)
			if session.ID != id {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    session.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session injected by the Session middleware.
func SessionFromContext(ctx context.Context) *gallery.Session {
	if s, ok := ctx.Value(sessionKey).(*gallery.Session); ok {
		return s
	}
	return nil
}
