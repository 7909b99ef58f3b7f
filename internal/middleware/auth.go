package middleware

import (
	"log/slog"
	"net/http"

	"github.com/reviewqr/reviewqr/internal/auth"
)

// SessionAuthConfig holds configuration for the session auth middleware.
type SessionAuthConfig struct {
	Logger *slog.Logger
	Tokens *auth.Tokens
}

// SessionAuth returns a middleware that authenticates API requests from
// the session cookie. It verifies the JWT and injects the session into
// the request context. All failures produce the same 401 so a caller
// cannot distinguish a missing cookie from a forged one.
func SessionAuth(cfg SessionAuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_cookie"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			session, err := cfg.Tokens.Verify(cookie.Value)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "token_rejected"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			ctx := auth.ContextWithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes a uniform 401 response.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Authentication required","code":"UNAUTHORIZED"}`))
}
