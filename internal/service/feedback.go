package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/reviewqr/reviewqr/internal/metrics"
	"github.com/reviewqr/reviewqr/internal/model"
	"github.com/reviewqr/reviewqr/internal/repository"
)

// Feedback service errors.
var (
	ErrMissingBusinessID = errors.New("business id is required")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// FeedbackStore is the persistence capability FeedbackService needs.
type FeedbackStore interface {
	CreateFeedback(ctx context.Context, feedback *model.Feedback) error
	ListFeedbackByBusiness(ctx context.Context, businessID string, ratings []int) ([]*model.Feedback, error)
}

// FeedbackService records anonymous visitor feedback and serves it
// back to business owners.
type FeedbackService struct {
	store      FeedbackStore
	businesses BusinessStore
	metrics    metrics.Recorder
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(store FeedbackStore, businesses BusinessStore, recorder metrics.Recorder) *FeedbackService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &FeedbackService{
		store:      store,
		businesses: businesses,
		metrics:    recorder,
	}
}

// Submit records a feedback entry for a business. Text is optional and
// stored as NULL when blank. No session is required; submissions come
// from anonymous visitors.
func (s *FeedbackService) Submit(ctx context.Context, businessID string, rating int, text string) (*model.Feedback, error) {
	if businessID == "" {
		return nil, ErrMissingBusinessID
	}
	if !model.IsValidRating(rating) {
		return nil, ErrInvalidRating
	}

	var feedbackText *string
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		feedbackText = &trimmed
	}

	feedback := &model.Feedback{
		ID:           ulid.Make().String(),
		BusinessID:   businessID,
		Rating:       rating,
		FeedbackText: feedbackText,
		CreatedAt:    time.Now().UTC(),
	}

	// Business existence is not verified here. Referential integrity is
	// the store's job; a rejected insert surfaces as a server error.
	if err := s.store.CreateFeedback(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	s.metrics.IncFeedbackSubmitted(rating)
	return feedback, nil
}

// List returns a business's feedback, newest first, optionally filtered
// to the given ratings. The business must belong to ownerID.
func (s *FeedbackService) List(ctx context.Context, ownerID, businessID string, ratings []int) ([]*model.Feedback, error) {
	if businessID == "" {
		return nil, ErrMissingBusinessID
	}
	for _, rating := range ratings {
		if !model.IsValidRating(rating) {
			return nil, ErrInvalidRating
		}
	}

	business, err := s.businesses.GetBusinessByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	if business.UserID != ownerID {
		return nil, ErrBusinessNotFound
	}

	entries, err := s.store.ListFeedbackByBusiness(ctx, businessID, ratings)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return entries, nil
}
