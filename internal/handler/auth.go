package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/reviewqr/reviewqr/internal/auth"
	"github.com/reviewqr/reviewqr/internal/handler/dto"
	"github.com/reviewqr/reviewqr/internal/service"
)

const dashboardPath = "/dashboard"

// AuthHandler handles account signup, login and logout.
type AuthHandler struct {
	accounts      *service.AccountService
	tokens        *auth.Tokens
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. secureCookies should be
// true in production so the session cookie is only sent over TLS.
func NewAuthHandler(accounts *service.AccountService, tokens *auth.Tokens, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:      accounts,
		tokens:        tokens,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.accounts.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if !h.setSessionCookie(w, user.ID, user.Email) {
		return
	}

	h.logger.Info("user_signed_up", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		UserID:      user.ID,
		RedirectURL: dashboardPath,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if !h.setSessionCookie(w, user.ID, user.Email) {
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		UserID:      user.ID,
		RedirectURL: dashboardPath,
	})
}

// Logout handles POST /auth/logout. Clearing the cookie is the whole
// session teardown; tokens are not tracked server-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// setSessionCookie issues a session token and attaches it as the auth
// cookie. Returns false after writing a 500 if token signing fails.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, userID, email string) bool {
	token, err := h.tokens.Issue(userID, email)
	if err != nil {
		h.logger.Error("token_issue_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}

// handleServiceError maps account service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, "MISSING_CREDENTIALS", "Email and password are required")
	case errors.Is(err, service.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "PASSWORD_TOO_SHORT", "Password must be at least 6 characters")
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusBadRequest, "EMAIL_EXISTS", "An account with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
