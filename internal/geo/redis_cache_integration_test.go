//go:build integration

package geo

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"service-dispatch/internal/domain"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	endpoint, err := c.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisCache_GetSet(t *testing.T) {
	client := startRedis(t)
	cache := NewRedisCache(client, "test")
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "1 Rue A")
	require.NoError(t, err)
	assert.False(t, ok)

	first := domain.Coordinates{Lat: 48.8, Lng: 2.3}
	require.NoError(t, cache.Set(ctx, "1 Rue A", first))
	require.NoError(t, cache.Set(ctx, "1 Rue A", domain.Coordinates{Lat: 1, Lng: 1}))

	got, ok, err := cache.Get(ctx, "1 Rue A")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, got)

	ttl, err := client.TTL(ctx, "test:geo:1 Rue A").Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl, "cached points never expire")
}
