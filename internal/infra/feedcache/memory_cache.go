package feedcache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/yanqian/braindump/internal/domain/feed"
)

type cacheRecord struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache for backend reads.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheRecord
	now     func() time.Time
}

// NewMemoryCache constructs a cache backed by process memory.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheRecord),
		now:     time.Now,
	}
}

// Get implements feed.Cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	record, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if c.expired(record.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	out := make([]byte, len(record.payload))
	copy(out, record.payload)
	return out, true, nil
}

// Set caches value; a non-positive ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	payload := make([]byte, len(value))
	copy(payload, value)

	c.mu.Lock()
	c.entries[key] = cacheRecord{payload: payload, expiresAt: exp}
	c.mu.Unlock()
	return nil
}

// DeletePrefix drops every key starting with prefix.
func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *MemoryCache) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(c.now())
}

var _ feed.Cache = (*MemoryCache)(nil)
