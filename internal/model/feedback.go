package model

import "time"

// Rating bounds for feedback submissions.
const (
	MinRating = 1
	MaxRating = 5
)

// ReviewRedirectThreshold is the lowest rating that sends the customer
// on to the business's external review page instead of the private
// feedback form.
const ReviewRedirectThreshold = 4

// Feedback represents a rating submitted by an anonymous customer.
// FeedbackText is nil when the customer left no comment.
type Feedback struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"business_id"`
	Rating       int       `json:"rating"`
	FeedbackText *string   `json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsValidRating reports whether r is a valid star rating.
func IsValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// ShouldRedirect reports whether a rating routes the customer to the
// external review site.
func ShouldRedirect(rating int) bool {
	return rating >= ReviewRedirectThreshold
}
