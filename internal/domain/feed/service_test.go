package feed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/braindump/internal/domain/braindump"
)

func TestServiceRecentCachesResponses(t *testing.T) {
	backend := &stubBackend{entries: []json.RawMessage{json.RawMessage(`{"memory":"one"}`)}}
	cache := newMapCache()
	svc := NewService(Config{}, backend, cache, newTestLogger())

	first, err := svc.Recent(context.Background(), "", 0)
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Equal(t, braindump.DefaultUserID, first.UserID)
	require.Equal(t, 5, first.Limit)
	require.Equal(t, "anonymous", backend.lastUser)

	second, err := svc.Recent(context.Background(), "anonymous", 5)
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Len(t, second.Entries, 1)
	require.Equal(t, 1, backend.recentCalls)
	require.Equal(t, 2*time.Minute, cache.ttls["recent:anonymous:5"])
}

func TestServiceRecentClampsLimit(t *testing.T) {
	backend := &stubBackend{}
	svc := NewService(Config{}, backend, newMapCache(), newTestLogger())

	resp, err := svc.Recent(context.Background(), "u1", 500)
	require.NoError(t, err)
	require.Equal(t, 50, resp.Limit)
	require.Equal(t, 50, backend.lastLimit)
}

func TestServiceInvalidateDropsEveryUsersEntries(t *testing.T) {
	backend := &stubBackend{health: braindump.Health{OK: true}}
	cache := newMapCache()
	svc := NewService(Config{}, backend, cache, newTestLogger())

	_, err := svc.Recent(context.Background(), "u1", 3)
	require.NoError(t, err)
	_, err = svc.Recent(context.Background(), "", 5)
	require.NoError(t, err)
	_, err = svc.Health(context.Background())
	require.NoError(t, err)

	svc.Invalidate(context.Background())
	_, ok := cache.values["recent:u1:3"]
	require.False(t, ok)
	_, ok = cache.values["recent:anonymous:5"]
	require.False(t, ok)
	_, ok = cache.values["health"]
	require.True(t, ok)
}

func TestServiceHealthCachedAndErrorsPropagate(t *testing.T) {
	backend := &stubBackend{health: braindump.Health{OK: true}}
	svc := NewService(Config{HealthTTL: time.Minute}, backend, newMapCache(), newTestLogger())

	for i := 0; i < 3; i++ {
		health, err := svc.Health(context.Background())
		require.NoError(t, err)
		require.True(t, health.OK)
	}
	require.Equal(t, 1, backend.healthCalls)

	failing := NewService(Config{}, &stubBackend{err: braindump.ErrRequestFailed}, newMapCache(), newTestLogger())
	_, err := failing.Health(context.Background())
	require.ErrorIs(t, err, braindump.ErrRequestFailed)
}

func TestServiceCacheFailureFallsThrough(t *testing.T) {
	backend := &stubBackend{health: braindump.Health{OK: true}}
	cache := newMapCache()
	cache.err = errors.New("cache down")
	svc := NewService(Config{}, backend, cache, newTestLogger())

	health, err := svc.Health(context.Background())
	require.NoError(t, err)
	require.True(t, health.OK)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubBackend struct {
	entries     []json.RawMessage
	health      braindump.Health
	err         error
	recentCalls int
	healthCalls int
	lastUser    string
	lastLimit   int
}

func (s *stubBackend) HealthCheck(ctx context.Context) (braindump.Health, error) {
	s.healthCalls++
	return s.health, s.err
}

func (s *stubBackend) RecentEntries(ctx context.Context, userID string, limit int) ([]json.RawMessage, error) {
	s.recentCalls++
	s.lastUser = userID
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	if s.entries == nil {
		return []json.RawMessage{}, nil
	}
	return s.entries, nil
}

type mapCache struct {
	values map[string][]byte
	ttls   map[string]time.Duration
	err    error
}

func newMapCache() *mapCache {
	return &mapCache{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.err != nil {
		return c.err
	}
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) DeletePrefix(ctx context.Context, prefix string) error {
	for k := range c.values {
		if strings.HasPrefix(k, prefix) {
			delete(c.values, k)
		}
	}
	return nil
}
