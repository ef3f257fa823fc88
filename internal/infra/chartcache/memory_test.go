package chartcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/kundali/internal/domain/natal"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	result := natal.ChartResult{
		Lagna:   natal.LagnaReading{Sign: natal.Leo, Degree: 12},
		Planets: []natal.PlanetReading{{Planet: natal.Sun, Sign: natal.Aries}},
	}
	require.NoError(t, cache.Save(ctx, "k", result, 0))
	result.Planets[0].Sign = natal.Taurus

	got, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, natal.Leo, got.Lagna.Sign)
	require.Equal(t, natal.Aries, got.Planets[0].Sign)
}

func TestMemoryCacheExpires(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "k", natal.ChartResult{}, time.Minute))
	_, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, cache.entries)
}

func TestMemoryCacheSweepsExpiredWhenFull(t *testing.T) {
	cache := NewMemoryCache()
	cache.maxEntries = 2
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "a", natal.ChartResult{}, time.Minute))
	require.NoError(t, cache.Save(ctx, "b", natal.ChartResult{}, time.Minute))
	now = now.Add(2 * time.Minute)

	require.NoError(t, cache.Save(ctx, "c", natal.ChartResult{}, time.Minute))
	require.Len(t, cache.entries, 1)
	require.Contains(t, cache.entries, "c")
}

func TestMemoryCacheStaysWithinCapacity(t *testing.T) {
	cache := NewMemoryCache()
	cache.maxEntries = 3
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "pinned", natal.ChartResult{}, 0))
	for i := 0; i < 10; i++ {
		key := string(rune('a' + i))
		require.NoError(t, cache.Save(ctx, key, natal.ChartResult{}, time.Duration(i+1)*time.Hour))
		require.LessOrEqual(t, len(cache.entries), 3)
	}
	require.Contains(t, cache.entries, "pinned")
	require.Contains(t, cache.entries, "j")

	// Overwriting an existing key never evicts.
	require.NoError(t, cache.Save(ctx, "j", natal.ChartResult{}, time.Hour))
	require.Len(t, cache.entries, 3)
}
