package middleware

import (
	"net/http"

	"github.com/reviewqr/reviewqr/internal/auth"
)

// The page gates only check cookie presence, not validity. A stale
// cookie still routes to the dashboard, whose API calls then fail with
// 401 and bounce the user back through the client. Real authorization
// happens in SessionAuth on the JSON API.

// RedirectIfSession sends requests carrying a session cookie to the
// given location. Applied to the landing page.
func RedirectIfSession(location string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := r.Cookie(auth.CookieName); err == nil {
				http.Redirect(w, r, location, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSessionCookie sends requests without a session cookie to the
// given location. Applied to the dashboard.
func RequireSessionCookie(location string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := r.Cookie(auth.CookieName); err != nil {
				http.Redirect(w, r, location, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
