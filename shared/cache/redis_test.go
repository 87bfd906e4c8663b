package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodging/infras/otel/mocks"
	"lodging/shared/cache"
)

func newRedisCache(t *testing.T) (cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), server
}

func TestRedisCache_SaveGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedisCache(t)

	in := cachedTotal{Month: 3, Total: "300.00", Lines: []int{7}}
	require.NoError(t, c.Save(ctx, "revenue:monthly:3:2024", in, 0))

	var out cachedTotal
	require.NoError(t, c.Get(ctx, "revenue:monthly:3:2024", &out))
	assert.Equal(t, in, out)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newRedisCache(t)

	var out cachedTotal
	assert.ErrorIs(t, c.Get(context.Background(), "absent", &out), cache.Nil)
}

func TestRedisCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, server := newRedisCache(t)

	require.NoError(t, c.Save(ctx, "limiter:10.0.0.1", 3, 10))
	require.NoError(t, c.Save(ctx, "forever", 3, 0))

	server.FastForward(11 * time.Second)

	var out int
	assert.ErrorIs(t, c.Get(ctx, "limiter:10.0.0.1", &out), cache.Nil)
	require.NoError(t, c.Get(ctx, "forever", &out))
	assert.Equal(t, 3, out)
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c, server := newRedisCache(t)

	require.NoError(t, c.Save(ctx, "reservation:range:20240301:20240331", "a", 0))
	require.NoError(t, c.Save(ctx, "reservation:range:20240401:20240430", "b", 0))
	require.NoError(t, c.Save(ctx, "revenue:monthly:3:2024", "c", 0))

	removed, err := c.Delete(ctx, "revenue:monthly:3:2024")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = c.Delete(ctx, "revenue:monthly:3:2024")
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, c.Clear(ctx, "reservation:range:*"))
	assert.Empty(t, server.Keys())
}
