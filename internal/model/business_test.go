package model

import (
	"testing"
	"time"
)

func TestBusinessCacheRoundTrip(t *testing.T) {
	// Sub-second precision must survive the round trip; Postgres
	// timestamps carry microseconds.
	created := time.Date(2025, 3, 14, 9, 26, 53, 731042000, time.UTC)

	business := &Business{
		ID:              "01HXYZABCDEF",
		UserID:          "01HXYZUSER01",
		BusinessName:    "Corner Bakery",
		GoogleReviewURL: "https://g.page/r/corner-bakery/review",
		QRCodeID:        "0123456789abcdefghjkmnpqrs",
		CreatedAt:       created,
	}

	cached := business.ToCachedBusiness()
	restored := cached.ToBusiness(business.QRCodeID)

	if restored.ID != business.ID {
		t.Errorf("ID = %q, want %q", restored.ID, business.ID)
	}
	if restored.UserID != business.UserID {
		t.Errorf("UserID = %q, want %q", restored.UserID, business.UserID)
	}
	if restored.BusinessName != business.BusinessName {
		t.Errorf("BusinessName = %q, want %q", restored.BusinessName, business.BusinessName)
	}
	if restored.GoogleReviewURL != business.GoogleReviewURL {
		t.Errorf("GoogleReviewURL = %q, want %q", restored.GoogleReviewURL, business.GoogleReviewURL)
	}
	if restored.QRCodeID != business.QRCodeID {
		t.Errorf("QRCodeID = %q, want %q", restored.QRCodeID, business.QRCodeID)
	}
	if !restored.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", restored.CreatedAt, created)
	}
}

func TestCachedBusinessEmptyCreatedAt(t *testing.T) {
	cached := &CachedBusiness{ID: "01HXYZABCDEF"}
	restored := cached.ToBusiness("qr")

	if !restored.CreatedAt.IsZero() {
		t.Errorf("CreatedAt should be zero for empty timestamp, got %v", restored.CreatedAt)
	}
}
