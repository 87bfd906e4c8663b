package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodging/infras/otel/mocks"
)

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	c := &memoryCache{otel: mocks.NewOtel(), now: func() time.Time { return now }}

	require.NoError(t, c.Save(ctx, "limiter:127.0.0.1", 1, 60))
	require.NoError(t, c.Save(ctx, "forever", 1, 0))

	var out int
	require.NoError(t, c.Get(ctx, "limiter:127.0.0.1", &out))

	now = now.Add(61 * time.Second)

	assert.ErrorIs(t, c.Get(ctx, "limiter:127.0.0.1", &out), Nil)
	require.NoError(t, c.Get(ctx, "forever", &out))

	now = now.Add(24 * 365 * time.Hour)
	require.NoError(t, c.Get(ctx, "forever", &out))
}
