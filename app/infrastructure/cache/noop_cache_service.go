package cache

import (
	"context"
	"time"
)

// NoopCacheService disables the ephemeral tier. Every read is a miss and
// every write is dropped.
type NoopCacheService struct{}

func NewNoopCacheService() CacheService {
	return &NoopCacheService{}
}

func (n *NoopCacheService) Set(context.Context, string, string, time.Duration) error {
	return nil
}

func (n *NoopCacheService) Get(context.Context, string) (string, error) {
	return "", ErrCacheMiss
}

func (n *NoopCacheService) GetWithFallback(_ context.Context, _ string, fallback func() (string, error), _ time.Duration) (string, error) {
	return fallback()
}

func (n *NoopCacheService) Delete(context.Context, string) error {
	return nil
}

func (n *NoopCacheService) Exists(context.Context, string) (bool, error) {
	return false, nil
}

func (n *NoopCacheService) Close() error {
	return nil
}

func (n *NoopCacheService) HealthCheck(context.Context) error {
	return nil
}
