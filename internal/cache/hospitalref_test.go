package cache

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambusos/ambusos-api/internal/config"
	"github.com/ambusos/ambusos-api/internal/domain"
)

func newMemoryCache(t *testing.T) *HospitalRefs {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	c, err := New(config.CacheConfig{
		Enabled:    true,
		MemorySize: 8,
		TTL:        time.Minute,
	}, logger)
	require.NoError(t, err)
	require.NotNil(t, c)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestDisabledCacheIsNil(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	c, err := New(config.CacheConfig{Enabled: false}, logger)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *HospitalRefs
	ctx := context.Background()

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	c.Set(ctx, domain.HospitalRef{ID: 1, Name: "Central"})
	c.Invalidate(ctx, 1)
	assert.NoError(t, c.Close())
}

func TestSetGetInvalidate(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)

	c.Set(ctx, domain.HospitalRef{ID: 1, Name: "Central"})

	ref, ok := c.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "Central", ref.Name)

	c.Invalidate(ctx, 1)
	_, ok = c.Get(ctx, 1)
	assert.False(t, ok)
}

func TestMemoryTierEvictsOldest(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()

	for i := int64(1); i <= 9; i++ {
		c.Set(ctx, domain.HospitalRef{ID: i, Name: "H"})
	}

	// Capacity is 8; the first entry is gone, the latest survives.
	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	_, ok = c.Get(ctx, 9)
	assert.True(t, ok)
}
