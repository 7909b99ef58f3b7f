package model

import (
	"strconv"
	"time"
)

// Business represents a registered business owned by a user.
// QRCodeID is the only identifier ever exposed to end users scanning
// a code; the internal ID stays between the owner and the API.
type Business struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	BusinessName    string    `json:"business_name"`
	GoogleReviewURL string    `json:"google_review_url"`
	QRCodeID        string    `json:"qr_code_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// CachedBusiness represents business data stored in Redis.
// Uses string types for Redis hash compatibility.
type CachedBusiness struct {
	ID              string `redis:"id"`
	UserID          string `redis:"user_id"`
	BusinessName    string `redis:"business_name"`
	GoogleReviewURL string `redis:"google_review_url"`
	CreatedAt       string `redis:"created_at"` // Unix nanoseconds
}

// ToBusiness converts CachedBusiness to the Business domain model.
func (c *CachedBusiness) ToBusiness(qrCodeID string) *Business {
	b := &Business{
		ID:              c.ID,
		UserID:          c.UserID,
		BusinessName:    c.BusinessName,
		GoogleReviewURL: c.GoogleReviewURL,
		QRCodeID:        qrCodeID,
	}

	if c.CreatedAt != "" {
		if ns, err := strconv.ParseInt(c.CreatedAt, 10, 64); err == nil {
			b.CreatedAt = time.Unix(0, ns).UTC()
		}
	}

	return b
}

// ToCachedBusiness converts a Business to its Redis hash form.
func (b *Business) ToCachedBusiness() *CachedBusiness {
	return &CachedBusiness{
		ID:              b.ID,
		UserID:          b.UserID,
		BusinessName:    b.BusinessName,
		GoogleReviewURL: b.GoogleReviewURL,
		CreatedAt:       strconv.FormatInt(b.CreatedAt.UnixNano(), 10),
	}
}
