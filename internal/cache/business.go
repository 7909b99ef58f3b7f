package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reviewqr/reviewqr/internal/model"
)

// Cache key prefixes and TTLs.
const (
	businessKeyPrefix = "business:"
	negCacheKeySuffix = ":neg"

	// DefaultBusinessTTL is the TTL for cached business data.
	// Businesses are immutable after creation, so a long TTL is safe.
	DefaultBusinessTTL = time.Hour

	// NegativeCacheTTL is the TTL for negative cache entries.
	NegativeCacheTTL = 5 * time.Minute
)

// ErrCacheMiss indicates the key was not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// GetBusiness retrieves a business from cache by QR code id.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetBusiness(ctx context.Context, qrCodeID string) (*model.CachedBusiness, error) {
	key := businessKeyPrefix + qrCodeID

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	cached := &model.CachedBusiness{
		ID:              result["id"],
		UserID:          result["user_id"],
		BusinessName:    result["business_name"],
		GoogleReviewURL: result["google_review_url"],
		CreatedAt:       result["created_at"],
	}

	return cached, nil
}

// SetBusiness stores a business in cache under its QR code id.
func (c *Cache) SetBusiness(ctx context.Context, qrCodeID string, business *model.Business) error {
	key := businessKeyPrefix + qrCodeID
	cached := business.ToCachedBusiness()

	fields := map[string]any{
		"id":                cached.ID,
		"user_id":           cached.UserID,
		"business_name":     cached.BusinessName,
		"google_review_url": cached.GoogleReviewURL,
		"created_at":        cached.CreatedAt,
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, DefaultBusinessTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache business: %w", err)
	}

	// Remove negative cache if exists
	c.client.Del(ctx, key+negCacheKeySuffix)

	return nil
}

// IsNegativelyCached checks if a QR code id is in negative cache.
func (c *Cache) IsNegativelyCached(ctx context.Context, qrCodeID string) (bool, error) {
	key := businessKeyPrefix + qrCodeID + negCacheKeySuffix

	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check negative cache: %w", err)
	}

	return exists > 0, nil
}

// SetNegativeCache marks a QR code id as not found.
func (c *Cache) SetNegativeCache(ctx context.Context, qrCodeID string) error {
	key := businessKeyPrefix + qrCodeID + negCacheKeySuffix

	err := c.client.SetEx(ctx, key, "", NegativeCacheTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to set negative cache: %w", err)
	}

	return nil
}
