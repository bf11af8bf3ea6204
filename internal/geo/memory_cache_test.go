package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/domain"
)

func TestMemoryCache_FirstWriteWins(t *testing.T) {
	t.Parallel()

	c := NewMemoryCache()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "x", domain.Coordinates{Lat: 1}))
	require.NoError(t, c.Set(ctx, "x", domain.Coordinates{Lat: 2}))

	got, ok, err := c.Get(ctx, "x")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.0, got.Lat)
}
