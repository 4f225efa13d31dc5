package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yanqian/braindump/internal/domain/braindump"
)

const (
	defaultRecentLimit = 5
	maxRecentLimit     = 50
)

// Cache stores serialized backend responses with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Backend is the subset of the dump client the feed depends on.
type Backend interface {
	HealthCheck(ctx context.Context) (braindump.Health, error)
	RecentEntries(ctx context.Context, userID string, limit int) ([]json.RawMessage, error)
}

// Config controls cache lifetimes and defaults.
type Config struct {
	UserID    string
	RecentTTL time.Duration
	HealthTTL time.Duration
}

// RecentResponse is returned to the HTTP transport.
type RecentResponse struct {
	UserID  string            `json:"userId"`
	Limit   int               `json:"limit"`
	Entries []json.RawMessage `json:"entries"`
	Cached  bool              `json:"cached"`
}
