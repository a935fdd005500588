package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-insertion-service/internal/adapters/distance"
	"route-insertion-service/internal/ports"
)

// singleLookup hides the batched API of the wrapped provider.
type singleLookup struct{ ports.DistanceProvider }

func mockPairs() []distance.MockPair {
	return []distance.MockPair{
		{From: "A", To: "B", Meters: 100, Seconds: 10},
		{From: "A", To: "C", Meters: 200, Seconds: 20},
	}
}

func TestCachedProviderServesRepeatLookupsFromCache(t *testing.T) {
	redisCache, _ := newRedisCache(t, time.Hour)
	inner := distance.NewMockDistanceProvider(mockPairs())
	p, err := NewCachedProvider(inner, redisCache)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := p.GetDistances(ctx, "A", []string{"B", "C"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), inner.Calls())

	second, err := p.GetDistances(ctx, "A", []string{"C", "B"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), inner.Calls(), "second lookup is a full cache hit")

	r, err := p.GetDistance(ctx, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 100, DurationSeconds: 10}, r)
}

func TestCachedProviderFetchesOnlyMisses(t *testing.T) {
	redisCache, _ := newRedisCache(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, redisCache.PutMany(ctx, "A", map[string]ports.DistanceResult{"B": {DistanceMeters: 999, DurationSeconds: 99}}))

	inner := distance.NewMockDistanceProvider(mockPairs())
	p, err := NewCachedProvider(singleLookup{inner}, redisCache)
	require.NoError(t, err)

	got, err := p.GetDistances(ctx, "A", []string{"B", "C"})
	require.NoError(t, err)
	assert.Equal(t, 999, got["B"].DistanceMeters, "cached value wins")
	assert.Equal(t, 200, got["C"].DistanceMeters)
	assert.Equal(t, int64(1), inner.Calls(), "only C reached the provider")
}

func TestCachedProviderPropagatesProviderErrors(t *testing.T) {
	redisCache, _ := newRedisCache(t, time.Hour)
	p, err := NewCachedProvider(distance.NewMockDistanceProvider(nil), redisCache)
	require.NoError(t, err)

	_, err = p.GetDistance(context.Background(), "A", "B")
	assert.Error(t, err)

	_, err = NewCachedProvider(nil, redisCache)
	assert.Error(t, err)
	_, err = NewCachedProvider(distance.NewMockDistanceProvider(nil), nil)
	assert.Error(t, err)
}
