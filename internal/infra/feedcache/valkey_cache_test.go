package feedcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"
)

func TestValkeyCacheKeyNamespacing(t *testing.T) {
	cache := NewValkeyCache(nil, "")
	require.Equal(t, "braindump:recent:anonymous:5", cache.key("recent:anonymous:5"))

	custom := NewValkeyCache(nil, "staging")
	require.Equal(t, "staging:health", custom.key("health"))
}

func TestEscapeGlob(t *testing.T) {
	require.Equal(t, `recent:user\*1\?:`, escapeGlob("recent:user*1?:"))
	require.Equal(t, `a\[b\]\\c`, escapeGlob(`a[b]\c`))
	require.Equal(t, `braindump:recent:a\*b\?:`, escapeGlob("braindump:recent:a*b?:"))
	require.Equal(t, "recent:anonymous:", escapeGlob("recent:anonymous:"))
}

func TestValkeyCacheGet(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	cache := NewValkeyCache(client, "bd")

	client.EXPECT().Do(gomock.Any(), mock.Match("GET", "bd:health")).Return(mock.Result(mock.ValkeyBlobString(`{"ok":true}`)))
	got, ok, err := cache.Get(ctx, "health")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"ok":true}`, string(got))

	client.EXPECT().Do(gomock.Any(), mock.Match("GET", "bd:recent:u1:5")).Return(mock.Result(mock.ValkeyNil()))
	got, ok, err = cache.Get(ctx, "recent:u1:5")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, got)

	boom := errors.New("connection reset")
	client.EXPECT().Do(gomock.Any(), mock.Match("GET", "bd:health")).Return(mock.ErrorResult(boom))
	_, ok, err = cache.Get(ctx, "health")
	require.ErrorIs(t, err, boom)
	require.False(t, ok)
}

func TestValkeyCacheSetTTL(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	cache := NewValkeyCache(client, "bd")

	gomock.InOrder(
		client.EXPECT().Do(gomock.Any(), mock.Match("SET", "bd:recent:u1:5", "[]", "EX", "120")).Return(mock.Result(mock.ValkeyString("OK"))),
		client.EXPECT().Do(gomock.Any(), mock.Match("SET", "bd:health", "{}", "EX", "1")).Return(mock.Result(mock.ValkeyString("OK"))),
		client.EXPECT().Do(gomock.Any(), mock.Match("SET", "bd:forever", "x")).Return(mock.Result(mock.ValkeyString("OK"))),
	)

	require.NoError(t, cache.Set(ctx, "recent:u1:5", []byte("[]"), 2*time.Minute))
	// sub-second ttls round up to the one second EX minimum
	require.NoError(t, cache.Set(ctx, "health", []byte("{}"), 300*time.Millisecond))
	require.NoError(t, cache.Set(ctx, "forever", []byte("x"), 0))
}

func TestValkeyCacheDeletePrefixWalksCursor(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	cache := NewValkeyCache(client, "bd")

	gomock.InOrder(
		client.EXPECT().Do(gomock.Any(), mock.Match("SCAN", "0", "MATCH", "bd:recent:*", "COUNT", "100")).Return(mock.Result(mock.ValkeyArray(
			mock.ValkeyBlobString("17"),
			mock.ValkeyArray(mock.ValkeyBlobString("bd:recent:u1:5"), mock.ValkeyBlobString("bd:recent:u2:3")),
		))),
		client.EXPECT().Do(gomock.Any(), mock.Match("DEL", "bd:recent:u1:5", "bd:recent:u2:3")).Return(mock.Result(mock.ValkeyInt64(2))),
		client.EXPECT().Do(gomock.Any(), mock.Match("SCAN", "17", "MATCH", "bd:recent:*", "COUNT", "100")).Return(mock.Result(mock.ValkeyArray(
			mock.ValkeyBlobString("0"),
			mock.ValkeyArray(),
		))),
	)

	require.NoError(t, cache.DeletePrefix(ctx, "recent:"))
}

func TestValkeyCacheDeletePrefixStopsOnError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	cache := NewValkeyCache(client, "bd")

	boom := errors.New("scan failed")
	client.EXPECT().Do(gomock.Any(), mock.Match("SCAN", "0", "MATCH", `bd:recent:a\*:*`, "COUNT", "100")).Return(mock.ErrorResult(boom))

	require.ErrorIs(t, cache.DeletePrefix(ctx, "recent:a*:"), boom)
}
