package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/reviewqr/reviewqr/internal/auth"
	"github.com/reviewqr/reviewqr/internal/cache"
	"github.com/reviewqr/reviewqr/internal/metrics"
	"github.com/reviewqr/reviewqr/internal/model"
	"github.com/reviewqr/reviewqr/internal/repository"
)

// Business service errors.
var (
	ErrMissingBusinessFields = errors.New("business name and review URL are required")
	ErrInvalidReviewURL      = errors.New("invalid review URL")
	ErrBusinessNotFound      = errors.New("business not found")
)

const maxQRCodeIDRetries = 3

// BusinessStore is the persistence capability BusinessService needs.
type BusinessStore interface {
	CreateBusiness(ctx context.Context, business *model.Business) error
	GetBusinessByID(ctx context.Context, id string) (*model.Business, error)
	GetBusinessByQRCodeID(ctx context.Context, qrCodeID string) (*model.Business, error)
	ListBusinessesByOwner(ctx context.Context, ownerID string) ([]*model.Business, error)
}

// BusinessCache is the cache capability for the public lookup hot path.
type BusinessCache interface {
	GetBusiness(ctx context.Context, qrCodeID string) (*model.CachedBusiness, error)
	SetBusiness(ctx context.Context, qrCodeID string, business *model.Business) error
	IsNegativelyCached(ctx context.Context, qrCodeID string) (bool, error)
	SetNegativeCache(ctx context.Context, qrCodeID string) error
}

// BusinessService handles the business registry.
type BusinessService struct {
	store   BusinessStore
	cache   BusinessCache
	metrics metrics.Recorder
}

// NewBusinessService creates a new BusinessService.
func NewBusinessService(store BusinessStore, cache BusinessCache, recorder metrics.Recorder) *BusinessService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &BusinessService{
		store:   store,
		cache:   cache,
		metrics: recorder,
	}
}

// Create registers a new business for the owner and returns it with a
// freshly generated public QR identifier.
func (s *BusinessService) Create(ctx context.Context, ownerID, name, reviewURL string) (*model.Business, error) {
	if name == "" || reviewURL == "" {
		return nil, ErrMissingBusinessFields
	}
	if err := validateReviewURL(reviewURL); err != nil {
		return nil, err
	}

	// A collision on 128 random bits is not expected; the retry loop
	// exists so the unique index stays the last word, not the caller.
	var business *model.Business
	for attempt := 0; attempt < maxQRCodeIDRetries; attempt++ {
		qrCodeID, err := auth.GenerateQRCodeID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate qr code id: %w", err)
		}

		business = &model.Business{
			ID:              ulid.Make().String(),
			UserID:          ownerID,
			BusinessName:    name,
			GoogleReviewURL: reviewURL,
			QRCodeID:        qrCodeID,
			CreatedAt:       time.Now().UTC(),
		}

		err = s.store.CreateBusiness(ctx, business)
		if err == nil {
			s.metrics.IncBusinessCreated()
			return business, nil
		}
		if !errors.Is(err, repository.ErrQRCodeIDExists) {
			return nil, fmt.Errorf("failed to create business: %w", err)
		}
	}

	return nil, fmt.Errorf("failed to create business: qr code id collisions exhausted retries")
}

// ListForOwner returns the owner's businesses, newest first.
func (s *BusinessService) ListForOwner(ctx context.Context, ownerID string) ([]*model.Business, error) {
	businesses, err := s.store.ListBusinessesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

// GetByQRCodeID resolves a public QR identifier to its business.
// This is the hot path for scanned codes - cache-first with negative
// caching, backfilling the cache on a database hit.
func (s *BusinessService) GetByQRCodeID(ctx context.Context, qrCodeID string) (*model.Business, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveLookupDuration(time.Since(start))
	}()

	// Malformed ids can never exist; skip the round-trips. The caller
	// still just sees not-found.
	if !auth.ValidQRCodeIDFormat(qrCodeID) {
		return nil, ErrBusinessNotFound
	}

	cached, err := s.cache.GetBusiness(ctx, qrCodeID)
	if err == nil {
		s.metrics.IncLookupCacheHit()
		return cached.ToBusiness(qrCodeID), nil
	}

	if errors.Is(err, cache.ErrCacheMiss) {
		s.metrics.IncLookupCacheMiss()
		isNegative, _ := s.cache.IsNegativelyCached(ctx, qrCodeID)
		if isNegative {
			return nil, ErrBusinessNotFound
		}
	}
	// On a Redis error, fall through to the database.

	business, err := s.store.GetBusinessByQRCodeID(ctx, qrCodeID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			_ = s.cache.SetNegativeCache(ctx, qrCodeID)
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to resolve qr code id: %w", err)
	}

	// Best effort backfill. On failure the next lookup hits the
	// database again.
	_ = s.cache.SetBusiness(ctx, qrCodeID, business)

	return business, nil
}

// GetOwned returns the business only if it belongs to ownerID.
// A business owned by someone else is reported as not found so the
// caller cannot probe for existence.
func (s *BusinessService) GetOwned(ctx context.Context, ownerID, businessID string) (*model.Business, error) {
	business, err := s.store.GetBusinessByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	if business.UserID != ownerID {
		return nil, ErrBusinessNotFound
	}

	return business, nil
}

// GetOwnedByQRCodeID resolves a QR identifier and verifies ownership.
// Used by the dashboard QR rendering endpoint.
func (s *BusinessService) GetOwnedByQRCodeID(ctx context.Context, ownerID, qrCodeID string) (*model.Business, error) {
	business, err := s.GetByQRCodeID(ctx, qrCodeID)
	if err != nil {
		return nil, err
	}

	if business.UserID != ownerID {
		return nil, ErrBusinessNotFound
	}

	return business, nil
}

// validateReviewURL accepts only absolute http(s) URLs.
func validateReviewURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidReviewURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidReviewURL
	}
	if parsed.Host == "" {
		return ErrInvalidReviewURL
	}
	return nil
}
