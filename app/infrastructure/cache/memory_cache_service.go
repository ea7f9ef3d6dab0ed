package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value     string
	storedAt  time.Time
	expiresAt time.Time
}

// MemoryCacheService is the default in-process ephemeral cache: a
// mutex-guarded map with read-time expiry. There is no background eviction;
// expired entries are skipped on read and left in place until overwritten.
type MemoryCacheService struct {
	mu    sync.RWMutex
	items map[string]memoryItem

	now func() time.Time
}

func NewMemoryCacheService() *MemoryCacheService {
	return &MemoryCacheService{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (m *MemoryCacheService) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = EphemeralTTL
	}
	now := m.now()
	m.mu.Lock()
	m.items[key] = memoryItem{value: value, storedAt: now, expiresAt: now.Add(expiration)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheService) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok || !m.now().Before(item.expiresAt) {
		return "", ErrCacheMiss
	}
	return item.value, nil
}

func (m *MemoryCacheService) GetWithFallback(ctx context.Context, key string, fallback func() (string, error), expiration time.Duration) (string, error) {
	if value, err := m.Get(ctx, key); err == nil {
		return value, nil
	}
	value, err := fallback()
	if err != nil {
		return "", err
	}
	_ = m.Set(ctx, key, value, expiration)
	return value, nil
}

func (m *MemoryCacheService) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if err == ErrCacheMiss {
		return false, nil
	}
	return err == nil, err
}

func (m *MemoryCacheService) Close() error {
	return nil
}

func (m *MemoryCacheService) HealthCheck(context.Context) error {
	return nil
}
