package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokens_IssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("test-secret")

	signed, err := tokens.Issue("01HXYZUSER01", "owner@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	session, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if session.UserID != "01HXYZUSER01" {
		t.Errorf("UserID = %q, want %q", session.UserID, "01HXYZUSER01")
	}
	if session.Email != "owner@example.com" {
		t.Errorf("Email = %q, want %q", session.Email, "owner@example.com")
	}
}

func TestTokens_WrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := NewTokens("secret-a").Issue("user", "a@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := NewTokens("secret-b").Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokens_Tampered(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("test-secret")

	signed, err := tokens.Issue("user", "a@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tampered := signed[:len(signed)-2] + "xx"
	if _, err := tokens.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}

	if _, err := tokens.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestTokens_Expiry(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tokens := NewTokens("test-secret")
	tokens.now = func() time.Time { return issued }

	signed, err := tokens.Issue("user", "a@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Still valid just before the 7-day mark.
	tokens.now = func() time.Time { return issued.Add(SessionDuration - time.Minute) }
	if _, err := tokens.Verify(signed); err != nil {
		t.Errorf("token should still verify before expiry: %v", err)
	}

	// Invalid after 7 days.
	tokens.now = func() time.Time { return issued.Add(SessionDuration + time.Minute) }
	if _, err := tokens.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken after expiry, got %v", err)
	}
}
