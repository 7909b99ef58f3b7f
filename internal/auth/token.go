package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionDuration is the absolute lifetime of a session token.
// There is no refresh or rotation; after 7 days the owner signs in again.
const SessionDuration = 7 * 24 * time.Hour

// CookieName is the session cookie carrying the signed token.
const CookieName = "auth_token"

// ErrInvalidToken covers every verification failure: bad signature,
// expired, malformed, wrong algorithm. Callers treat all of them as
// "no session".
var ErrInvalidToken = errors.New("invalid session token")

// Session is the payload embedded in a session token.
type Session struct {
	UserID string
	Email  string
}

// Tokens issues and verifies signed session tokens.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

// NewTokens creates a token service signing with the given secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue produces a signed HS256 token embedding the user identity,
// expiring SessionDuration from now.
func (t *Tokens) Issue(userID, email string) (string, error) {
	now := t.now()

	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(SessionDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the embedded session.
// Any failure returns ErrInvalidToken; nothing panics or propagates.
func (t *Tokens) Verify(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if userID == "" || email == "" {
		return nil, ErrInvalidToken
	}

	return &Session{UserID: userID, Email: email}, nil
}
