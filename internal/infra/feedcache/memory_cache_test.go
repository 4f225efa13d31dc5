package feedcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "health", []byte(`{"ok":true}`), time.Minute))
	got, ok, err := cache.Get(ctx, "health")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"ok":true}`, string(got))

	now = now.Add(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "health")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryCacheNoTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	cache.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryCacheDeletePrefix(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	require.NoError(t, cache.Set(ctx, "recent:u1:5", []byte("a"), time.Minute))
	require.NoError(t, cache.Set(ctx, "recent:u1:10", []byte("b"), time.Minute))
	require.NoError(t, cache.Set(ctx, "recent:u10:5", []byte("c"), time.Minute))

	require.NoError(t, cache.DeletePrefix(ctx, "recent:u1:"))

	_, ok, _ := cache.Get(ctx, "recent:u1:5")
	require.False(t, ok)
	_, ok, _ = cache.Get(ctx, "recent:u1:10")
	require.False(t, ok)
	_, ok, _ = cache.Get(ctx, "recent:u10:5")
	require.True(t, ok)
}
