package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodging/infras/otel/mocks"
	"lodging/shared/cache"
)

type cachedTotal struct {
	Month int    `json:"month"`
	Total string `json:"total"`
	Lines []int  `json:"lines"`
}

func TestMemoryCache_SaveGet(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(mocks.NewOtel())

	in := cachedTotal{Month: 3, Total: "300.00", Lines: []int{1, 2}}
	require.NoError(t, c.Save(ctx, "revenue:monthly:3:2024", in, 0))

	var out cachedTotal
	require.NoError(t, c.Get(ctx, "revenue:monthly:3:2024", &out))
	assert.Equal(t, in, out)

	out.Lines[0] = 99

	var again cachedTotal
	require.NoError(t, c.Get(ctx, "revenue:monthly:3:2024", &again))
	assert.Equal(t, 1, again.Lines[0], "reads must be copies")
}

func TestMemoryCache_String(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(mocks.NewOtel())

	require.NoError(t, c.Save(ctx, "plain", "value", 0))

	var out string
	require.NoError(t, c.Get(ctx, "plain", &out))
	assert.Equal(t, "value", out)
}

func TestMemoryCache_Miss(t *testing.T) {
	c := cache.NewMemoryCache(mocks.NewOtel())

	var out cachedTotal
	err := c.Get(context.Background(), "absent", &out)

	assert.ErrorIs(t, err, cache.Nil)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(mocks.NewOtel())

	require.NoError(t, c.Save(ctx, "k", 1, 0))

	removed, err := c.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = c.Delete(ctx, "k")
	require.NoError(t, err)
	assert.False(t, removed)

	var out int
	assert.ErrorIs(t, c.Get(ctx, "k", &out), cache.Nil)
}

func TestMemoryCache_Clear(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(mocks.NewOtel())

	keys := []string{
		"reservation:range:20240301:20240331",
		"reservation:range:20240401:20240430",
		"revenue:monthly:3:2024",
	}
	for _, k := range keys {
		require.NoError(t, c.Save(ctx, k, k, 0))
	}

	require.NoError(t, c.Clear(ctx, "reservation:range:*"))

	var out string
	assert.ErrorIs(t, c.Get(ctx, keys[0], &out), cache.Nil)
	assert.ErrorIs(t, c.Get(ctx, keys[1], &out), cache.Nil)
	require.NoError(t, c.Get(ctx, keys[2], &out))
	assert.Equal(t, keys[2], out)

	require.NoError(t, c.Clear(ctx, "*"))
	assert.ErrorIs(t, c.Get(ctx, keys[2], &out), cache.Nil)
}

func TestMemoryCache_ClearInvalidPattern(t *testing.T) {
	c := cache.NewMemoryCache(mocks.NewOtel())

	assert.Error(t, c.Clear(context.Background(), "["))
}

func TestMemoryCache_ConcurrentKeys(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(mocks.NewOtel())

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			key := fmt.Sprintf("key:%d", i)
			assert.NoError(t, c.Save(ctx, key, i, 0))

			var out int
			assert.NoError(t, c.Get(ctx, key, &out))
			assert.Equal(t, i, out)

			_, err := c.Delete(ctx, key)
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()
}
