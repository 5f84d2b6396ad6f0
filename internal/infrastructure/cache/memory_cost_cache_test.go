package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
	"github.com/ldipasquale/terzo-posto-server/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCostCache(t *testing.T) {
	ctx := context.Background()

	t.Run("misses when empty", func(t *testing.T) {
		cache := NewInMemoryCostCache()

		costs, hit, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Nil(t, costs)
	})

	t.Run("round trips known and unknown costs", func(t *testing.T) {
		cache := NewInMemoryCostCache()
		knownID := uuid.New()
		unknownID := uuid.New()

		stored := map[uuid.UUID]supply.UnitCost{
			knownID:   supply.KnownCost(decimal.RequireFromString("12.50")),
			unknownID: supply.UnknownCost(),
		}
		require.NoError(t, cache.Set(ctx, stored, time.Minute))

		costs, hit, err := cache.Get(ctx)
		require.NoError(t, err)
		require.True(t, hit)
		require.Len(t, costs, 2)
		assert.True(t, costs[knownID].Known())
		assert.True(t, costs[knownID].Amount().Equal(decimal.RequireFromString("12.50")))
		assert.False(t, costs[unknownID].Known())
	})

	t.Run("expires after the TTL", func(t *testing.T) {
		cache := NewInMemoryCostCache()
		id := uuid.New()

		require.NoError(t, cache.Set(ctx, map[uuid.UUID]supply.UnitCost{
			id: supply.KnownCost(decimal.NewFromInt(3)),
		}, time.Nanosecond))

		time.Sleep(time.Millisecond)

		_, hit, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("invalidate clears the map", func(t *testing.T) {
		cache := NewInMemoryCostCache()
		id := uuid.New()

		require.NoError(t, cache.Set(ctx, map[uuid.UUID]supply.UnitCost{
			id: supply.KnownCost(decimal.NewFromInt(3)),
		}, time.Minute))
		require.NoError(t, cache.Invalidate(ctx))

		_, hit, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("returned map is a copy", func(t *testing.T) {
		cache := NewInMemoryCostCache()
		id := uuid.New()

		require.NoError(t, cache.Set(ctx, map[uuid.UUID]supply.UnitCost{
			id: supply.KnownCost(decimal.NewFromInt(3)),
		}, time.Minute))

		first, hit, err := cache.Get(ctx)
		require.NoError(t, err)
		require.True(t, hit)
		delete(first, id)

		second, hit, err := cache.Get(ctx)
		require.NoError(t, err)
		require.True(t, hit)
		assert.Len(t, second, 1)
	})

	t.Run("zero ttl uses the default", func(t *testing.T) {
		cache := NewInMemoryCostCache(WithInMemoryTTL(time.Hour))
		id := uuid.New()

		require.NoError(t, cache.Set(ctx, map[uuid.UUID]supply.UnitCost{
			id: supply.KnownCost(decimal.NewFromInt(3)),
		}, 0))

		_, hit, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.True(t, hit)
	})
}

func configCache(backend string) config.CacheConfig {
	return config.CacheConfig{Backend: backend, CostTTL: time.Minute}
}

func configRedis() config.RedisConfig {
	return config.RedisConfig{Host: "localhost", Port: 6379}
}

func TestCostCacheFactory(t *testing.T) {
	t.Run("creates in-memory cache", func(t *testing.T) {
		factory := NewCostCacheFactory(
			configCache("memory"),
			configRedis(),
		)

		cache, err := factory.CreateCache()
		require.NoError(t, err)
		assert.IsType(t, &InMemoryCostCache{}, cache)
	})

	t.Run("none backend returns nil cache", func(t *testing.T) {
		factory := NewCostCacheFactory(
			configCache("none"),
			configRedis(),
		)

		cache, err := factory.CreateCache()
		require.NoError(t, err)
		assert.Nil(t, cache)
	})

	t.Run("rejects unknown backend", func(t *testing.T) {
		factory := NewCostCacheFactory(
			configCache("memcached"),
			configRedis(),
		)

		cache, err := factory.CreateCache()
		assert.Error(t, err)
		assert.Nil(t, cache)
	})
}
