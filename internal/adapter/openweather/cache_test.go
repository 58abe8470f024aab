package openweather

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiguelCorado/haxkthon-air-quality/internal/domain"
)

// countingGeocoder records how many times each method is called.
type countingGeocoder struct {
	forwardCalls int
	reverseCalls int
	result       domain.GeocodingResult
	err          error
}

func (g *countingGeocoder) ForwardGeocode(_ context.Context, _, _ string) (domain.GeocodingResult, error) {
	g.forwardCalls++
	return g.result, g.err
}

func (g *countingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.GeocodingResult, error) {
	g.reverseCalls++
	return g.result, g.err
}

func TestCachedGeocoder_ReverseHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{PlaceName: "Aracaju", FormattedAddress: "Aracaju, BR"},
	}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	ctx := context.Background()
	first, err := cached.ReverseGeocode(ctx, -10.9472, -37.0731)
	require.NoError(t, err)
	second, err := cached.ReverseGeocode(ctx, -10.9472, -37.0731)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.reverseCalls, "second lookup should be served from cache")
}

func TestCachedGeocoder_ForwardHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{PlaceName: "Aracaju"},
	}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	ctx := context.Background()
	_, err := cached.ForwardGeocode(ctx, "Aracaju", "BR")
	require.NoError(t, err)
	_, err = cached.ForwardGeocode(ctx, "Aracaju", "BR")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.forwardCalls)
}

func TestCachedGeocoder_DistinctKeysMiss(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{PlaceName: "somewhere"},
	}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	ctx := context.Background()
	_, _ = cached.ForwardGeocode(ctx, "Aracaju", "BR")
	_, _ = cached.ForwardGeocode(ctx, "Aracaju", "")
	_, _ = cached.ReverseGeocode(ctx, -10.9472, -37.0731)
	_, _ = cached.ReverseGeocode(ctx, -10.9473, -37.0731)

	assert.Equal(t, 2, inner.forwardCalls)
	assert.Equal(t, 2, inner.reverseCalls)
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{}}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	ctx := context.Background()
	_, _ = cached.ReverseGeocode(ctx, 0.01, 0.01)
	_, _ = cached.ReverseGeocode(ctx, 0.01, 0.01)

	assert.Equal(t, 2, inner.reverseCalls, "empty results should be retried, not cached")
}

func TestCachedGeocoder_ErrorNotCached(t *testing.T) {
	inner := &countingGeocoder{err: assert.AnError}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	ctx := context.Background()
	_, err := cached.ReverseGeocode(ctx, -10.9472, -37.0731)
	require.Error(t, err)
	_, err = cached.ReverseGeocode(ctx, -10.9472, -37.0731)
	require.Error(t, err)

	assert.Equal(t, 2, inner.reverseCalls)
}

func TestLRUCache_Eviction(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", domain.GeocodingResult{PlaceName: "a"})
	cache.put("b", domain.GeocodingResult{PlaceName: "b"})

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := cache.get("a")
	require.True(t, ok)

	cache.put("c", domain.GeocodingResult{PlaceName: "c"})

	_, ok = cache.get("a")
	assert.True(t, ok)
	_, ok = cache.get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = cache.get("c")
	assert.True(t, ok)
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", domain.GeocodingResult{PlaceName: "old"})
	cache.put("a", domain.GeocodingResult{PlaceName: "new"})
	cache.put("b", domain.GeocodingResult{PlaceName: "b"})

	got, ok := cache.get("a")
	require.True(t, ok)
	assert.Equal(t, "new", got.PlaceName)
}
