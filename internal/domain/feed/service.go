package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/braindump/internal/domain/braindump"
)

const (
	healthKey       = "health"
	recentNamespace = "recent:"
)

// Service serves backend reads through a short lived cache.
type Service interface {
	Recent(ctx context.Context, userID string, limit int) (RecentResponse, error)
	Health(ctx context.Context) (braindump.Health, error)
	Invalidate(ctx context.Context)
}

type service struct {
	cfg     Config
	backend Backend
	cache   Cache
	logger  *slog.Logger
}

// NewService wires the feed with its cache.
func NewService(cfg Config, backend Backend, cache Cache, logger *slog.Logger) Service {
	if strings.TrimSpace(cfg.UserID) == "" {
		cfg.UserID = braindump.DefaultUserID
	}
	if cfg.RecentTTL <= 0 {
		cfg.RecentTTL = 2 * time.Minute
	}
	if cfg.HealthTTL <= 0 {
		cfg.HealthTTL = 5 * time.Minute
	}
	return &service{
		cfg:     cfg,
		backend: backend,
		cache:   cache,
		logger:  logger.With("component", "feed.service"),
	}
}

func (s *service) Recent(ctx context.Context, userID string, limit int) (RecentResponse, error) {
	user := s.resolveUser(userID)
	limit = clampLimit(limit)
	key := recentKey(user, limit)

	if raw, ok := s.lookup(ctx, key); ok {
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err == nil {
			return RecentResponse{UserID: user, Limit: limit, Entries: entries, Cached: true}, nil
		}
		s.logger.Warn("discarding undecodable cache entry", "key", key)
	}

	entries, err := s.backend.RecentEntries(ctx, user, limit)
	if err != nil {
		return RecentResponse{}, err
	}
	s.store(ctx, key, entries, s.cfg.RecentTTL)
	return RecentResponse{UserID: user, Limit: limit, Entries: entries}, nil
}

func (s *service) Health(ctx context.Context) (braindump.Health, error) {
	if raw, ok := s.lookup(ctx, healthKey); ok {
		var health braindump.Health
		if err := json.Unmarshal(raw, &health); err == nil {
			return health, nil
		}
	}
	health, err := s.backend.HealthCheck(ctx)
	if err != nil {
		return braindump.Health{}, err
	}
	s.store(ctx, healthKey, health, s.cfg.HealthTTL)
	return health, nil
}

// Invalidate drops the cached recent entries of every user, since a dump can
// surface in any user's feed query.
func (s *service) Invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, recentNamespace); err != nil {
		s.logger.Warn("cache invalidation failed", "prefix", recentNamespace, "error", err)
	}
}

// lookup treats cache failures as misses so reads still reach the backend.
func (s *service) lookup(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	return raw, ok
}

func (s *service) store(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, payload, ttl); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (s *service) resolveUser(userID string) string {
	if user := strings.TrimSpace(userID); user != "" {
		return user
	}
	return s.cfg.UserID
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultRecentLimit
	case limit > maxRecentLimit:
		return maxRecentLimit
	default:
		return limit
	}
}

func recentPrefix(userID string) string {
	return fmt.Sprintf("%s%s:", recentNamespace, userID)
}

func recentKey(userID string, limit int) string {
	return fmt.Sprintf("%s%d", recentPrefix(userID), limit)
}
