package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
	"github.com/ldipasquale/terzo-posto-server/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	costCacheKey = "supply_costs"
	// unknownCostMarker is stored for supplies whose cost could not be
	// resolved, so the cached map round-trips both states.
	unknownCostMarker = "unknown"
)

// RedisCostCache implements CostCache using Redis. The whole cost map
// is stored under one key, since it is always resolved and invalidated
// as a unit.
type RedisCostCache struct {
	client     *redis.Client
	ownsClient bool
	defaultTTL time.Duration
	logger     *zap.Logger
}

// RedisCostCacheOption is a functional option for configuring the cache
type RedisCostCacheOption func(*RedisCostCache)

// WithRedisTTL sets the default TTL used when Set receives a zero ttl
func WithRedisTTL(ttl time.Duration) RedisCostCacheOption {
	return func(c *RedisCostCache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithRedisLogger sets the logger for the cache
func WithRedisLogger(logger *zap.Logger) RedisCostCacheOption {
	return func(c *RedisCostCache) {
		c.logger = logger
	}
}

// NewRedisCostCache creates a new Redis-based cost cache
func NewRedisCostCache(cfg config.RedisConfig, opts ...RedisCostCacheOption) (*RedisCostCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisCostCache{
		client:     client,
		ownsClient: true,
		defaultTTL: defaultCostTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// NewRedisCostCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisCostCacheWithClient(client *redis.Client, opts ...RedisCostCacheOption) *RedisCostCache {
	cache := &RedisCostCache{
		client:     client,
		ownsClient: false,
		defaultTTL: defaultCostTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Get retrieves the cached cost map
func (c *RedisCostCache) Get(ctx context.Context) (map[uuid.UUID]supply.UnitCost, bool, error) {
	data, err := c.client.Get(ctx, costCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			c.logger.Debug("cost cache miss")
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cost cache: %w", err)
	}

	var payload map[string]string
	if err := json.Unmarshal(data, &payload); err != nil {
		// Corrupt entry: treat as a miss and drop it
		c.logger.Warn("discarding corrupt cost cache entry", zap.Error(err))
		_ = c.client.Del(ctx, costCacheKey).Err()
		return nil, false, nil
	}

	costs := make(map[uuid.UUID]supply.UnitCost, len(payload))
	for rawID, rawCost := range payload {
		id, err := uuid.Parse(rawID)
		if err != nil {
			c.logger.Warn("discarding corrupt cost cache entry", zap.String("id", rawID))
			_ = c.client.Del(ctx, costCacheKey).Err()
			return nil, false, nil
		}
		if rawCost == unknownCostMarker {
			costs[id] = supply.UnknownCost()
			continue
		}
		amount, err := decimal.NewFromString(rawCost)
		if err != nil {
			c.logger.Warn("discarding corrupt cost cache entry", zap.String("cost", rawCost))
			_ = c.client.Del(ctx, costCacheKey).Err()
			return nil, false, nil
		}
		costs[id] = supply.KnownCost(amount)
	}

	c.logger.Debug("cost cache hit", zap.Int("entries", len(costs)))
	return costs, true, nil
}

// Set stores the cost map with the specified TTL
func (c *RedisCostCache) Set(ctx context.Context, costs map[uuid.UUID]supply.UnitCost, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	payload := make(map[string]string, len(costs))
	for id, cost := range costs {
		if cost.Known() {
			payload[id.String()] = cost.Amount().String()
		} else {
			payload[id.String()] = unknownCostMarker
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal cost cache: %w", err)
	}
	if err := c.client.Set(ctx, costCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cost cache: %w", err)
	}
	return nil
}

// Invalidate removes the cached cost map
func (c *RedisCostCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, costCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cost cache: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache owns it
func (c *RedisCostCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisCostCache implements CostCache
var _ supply.CostCache = (*RedisCostCache)(nil)
