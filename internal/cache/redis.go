// Package cache provides the Redis layer: the business lookup cache,
// negative caching for unknown QR code ids, and IP rate limiting.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a single Redis client shared by the lookup cache and the
// rate limiter.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// QR scan traffic is bursty: each scan costs a rate-limit script
	// call plus a hash read. On a checkout timeout the limiter fails
	// open and the lookup falls through to Postgres, so a short
	// PoolTimeout is safe.
	opt.PoolSize = 16
	opt.MinIdleConns = 4
	opt.PoolTimeout = 2 * time.Second
	opt.ConnMaxIdleTime = 10 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping checks Redis connectivity, used by the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the underlying Redis client for test fixtures.
// Production code goes through the typed Cache methods.
func (c *Cache) Client() *redis.Client {
	return c.client
}
