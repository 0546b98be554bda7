package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/campsite/internal/auth"
	"github.com/dmitrymomot/campsite/internal/authz"
)

type contextKey string

const principalKey contextKey = "principal"

// principalResolver resolves the session cookie to a principal once per
// request and stores it in the request context. Requests without a
// valid session proceed with a nil principal; the lifecycle managers
// decide whether that is acceptable.
func principalResolver(svc *auth.Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(sessionCookie); err == nil {
				token = cookie.Value
			}

			p, err := svc.CurrentPrincipal(r.Context(), token)
			if err != nil {
				log.ErrorContext(r.Context(), "principal resolution failed",
					slog.String("error", err.Error()))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalFrom returns the resolved principal, or nil when the request
// is anonymous.
func principalFrom(r *http.Request) *authz.Principal {
	p, _ := r.Context().Value(principalKey).(*authz.Principal)
	return p
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
