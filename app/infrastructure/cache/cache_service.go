package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheService is the ephemeral tier: a short-TTL de-duplication layer in
// front of the durable store and in front of data kinds that are never
// durably cached (live scoreboards, market odds).
type CacheService interface {
	// Set stores a string value with an expiration time.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Get retrieves a string value. Absent or expired keys return ErrCacheMiss.
	Get(ctx context.Context, key string) (string, error)

	// GetWithFallback retrieves a value, or executes fallback and caches its
	// result if the key is not found.
	GetWithFallback(ctx context.Context, key string, fallback func() (string, error), expiration time.Duration) (string, error)

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists and is not expired.
	Exists(ctx context.Context, key string) (bool, error)

	// Close closes the cache backend.
	Close() error

	// HealthCheck verifies cache availability.
	HealthCheck(ctx context.Context) error
}
