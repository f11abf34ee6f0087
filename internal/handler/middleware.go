package handler

import (
	"context"
	"net/http"

	"github.com/msomdec/petition/internal/domain"
	"github.com/msomdec/petition/internal/service"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext extracts the decoded session from the request context.
// The zero session means the visitor is anonymous.
func SessionFromContext(ctx context.Context) domain.Session {
	session, _ := ctx.Value(sessionContextKey).(domain.Session)
	return session
}

// WithSession decodes the session cookie and injects the resulting session
// into the request context. Requests without a valid cookie proceed as
// anonymous rather than being rejected; each handler decides what its
// session state requires.
func WithSession(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := domain.Session{}
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if decoded, err := auth.DecodeSession(cookie.Value); err == nil {
				session = decoded
			}
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SecurityHeaders sets the response headers applied to every route.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}
