// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/reviewqr/reviewqr/internal/model"
)

// SignupRequest represents the request body for creating an account.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after a successful signup or login.
type AuthResponse struct {
	UserID      string `json:"userId"`
	RedirectURL string `json:"redirectUrl"`
}

// CreateBusinessRequest represents the request body for registering a business.
type CreateBusinessRequest struct {
	BusinessName    string `json:"businessName"`
	GoogleReviewURL string `json:"googleReviewUrl"`
}

// BusinessResponse represents a business in owner-facing API responses.
type BusinessResponse struct {
	ID              string    `json:"id"`
	BusinessName    string    `json:"businessName"`
	GoogleReviewURL string    `json:"googleReviewUrl"`
	QRCodeID        string    `json:"qrCodeId"`
	FeedbackURL     string    `json:"feedbackUrl"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BusinessListResponse wraps an owner's businesses.
type BusinessListResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
}

// PublicBusinessResponse is the anonymous view served to the rating
// page. It omits ownership details.
type PublicBusinessResponse struct {
	ID              string `json:"id"`
	BusinessName    string `json:"businessName"`
	GoogleReviewURL string `json:"googleReviewUrl"`
	QRCodeID        string `json:"qrCodeId"`
}

// SubmitFeedbackRequest represents an anonymous feedback submission.
type SubmitFeedbackRequest struct {
	BusinessID   string `json:"businessId"`
	Rating       int    `json:"rating"`
	FeedbackText string `json:"feedbackText,omitempty"`
}

// FeedbackResponse represents a feedback entry in API responses.
type FeedbackResponse struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"businessId"`
	Rating       int       `json:"rating"`
	FeedbackText *string   `json:"feedbackText"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FeedbackListResponse wraps a business's feedback entries.
type FeedbackListResponse struct {
	Feedback []FeedbackResponse `json:"feedback"`
}

// QRCodeResponse carries a rendered QR code as a PNG data URI.
type QRCodeResponse struct {
	QRCode string `json:"qrCode"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToBusinessResponse converts a Business model to its owner-facing DTO.
// feedbackURL is the public page a printed code opens.
func ToBusinessResponse(business *model.Business, feedbackURL string) *BusinessResponse {
	return &BusinessResponse{
		ID:              business.ID,
		BusinessName:    business.BusinessName,
		GoogleReviewURL: business.GoogleReviewURL,
		QRCodeID:        business.QRCodeID,
		FeedbackURL:     feedbackURL,
		CreatedAt:       business.CreatedAt,
	}
}

// ToPublicBusinessResponse converts a Business model to its anonymous DTO.
func ToPublicBusinessResponse(business *model.Business) *PublicBusinessResponse {
	return &PublicBusinessResponse{
		ID:              business.ID,
		BusinessName:    business.BusinessName,
		GoogleReviewURL: business.GoogleReviewURL,
		QRCodeID:        business.QRCodeID,
	}
}

// ToFeedbackResponse converts a Feedback model to its DTO.
func ToFeedbackResponse(feedback *model.Feedback) *FeedbackResponse {
	return &FeedbackResponse{
		ID:           feedback.ID,
		BusinessID:   feedback.BusinessID,
		Rating:       feedback.Rating,
		FeedbackText: feedback.FeedbackText,
		CreatedAt:    feedback.CreatedAt,
	}
}

// ToFeedbackListResponse converts a slice of Feedback models.
func ToFeedbackListResponse(entries []*model.Feedback) *FeedbackListResponse {
	responses := make([]FeedbackResponse, len(entries))
	for i, entry := range entries {
		responses[i] = *ToFeedbackResponse(entry)
	}
	return &FeedbackListResponse{Feedback: responses}
}
