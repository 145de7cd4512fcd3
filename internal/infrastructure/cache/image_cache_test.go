package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/infrastructure/cache"
)

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./internal/infrastructure/cache/...
func TestImageOrderCache_SetGet(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	client, err := cache.NewRedisClient(addr, "", 15)
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.FlushDB(ctx).Err())

	c := cache.NewImageOrderCache(client, time.Minute)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, []string{"b.jpg", "a.jpg"}))
	urls, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"b.jpg", "a.jpg"}, urls)
}
