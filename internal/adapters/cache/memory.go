package cache

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

type memoryEntry struct {
	rate      domain.ExchangeRate
	expiresAt time.Time // zero means no expiry
}

// MemoryCache is a process-local RateCache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*domain.ExchangeRate, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	now := c.now()
	if entry.expired(now) {
		c.evictExpired(key, now)
		return nil, nil
	}
	rate := entry.rate
	return &rate, nil
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// evictExpired deletes key only if the entry stored under it is still expired,
// so a Set racing between the read and the delete is kept.
func (c *MemoryCache) evictExpired(key string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok && entry.expired(now) {
		delete(c.entries, key)
	}
}

func (c *MemoryCache) Set(_ context.Context, key string, rate *domain.ExchangeRate, ttl time.Duration) error {
	if rate == nil {
		return nil
	}
	entry := memoryEntry{rate: *rate}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
