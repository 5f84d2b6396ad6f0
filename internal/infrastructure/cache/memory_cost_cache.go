package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
	"go.uber.org/zap"
)

const defaultCostTTL = 5 * time.Minute

// InMemoryCostCache implements CostCache using in-process storage.
// Suitable for single-instance deployments and testing.
type InMemoryCostCache struct {
	mu         sync.RWMutex
	costs      map[uuid.UUID]supply.UnitCost
	expiresAt  time.Time
	defaultTTL time.Duration
	logger     *zap.Logger
}

// InMemoryCostCacheOption is a functional option for configuring the cache
type InMemoryCostCacheOption func(*InMemoryCostCache)

// WithInMemoryTTL sets the default TTL used when Set receives a zero ttl
func WithInMemoryTTL(ttl time.Duration) InMemoryCostCacheOption {
	return func(c *InMemoryCostCache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryCostCacheOption {
	return func(c *InMemoryCostCache) {
		c.logger = logger
	}
}

// NewInMemoryCostCache creates a new in-memory cost cache
func NewInMemoryCostCache(opts ...InMemoryCostCacheOption) *InMemoryCostCache {
	cache := &InMemoryCostCache{
		defaultTTL: defaultCostTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Get retrieves the cached cost map
func (c *InMemoryCostCache) Get(ctx context.Context) (map[uuid.UUID]supply.UnitCost, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.costs == nil || time.Now().After(c.expiresAt) {
		c.logger.Debug("cost cache miss")
		return nil, false, nil
	}

	// Copy so callers cannot mutate the cached map
	costs := make(map[uuid.UUID]supply.UnitCost, len(c.costs))
	for id, cost := range c.costs {
		costs[id] = cost
	}
	c.logger.Debug("cost cache hit", zap.Int("entries", len(costs)))
	return costs, true, nil
}

// Set stores the cost map with the specified TTL
func (c *InMemoryCostCache) Set(ctx context.Context, costs map[uuid.UUID]supply.UnitCost, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	stored := make(map[uuid.UUID]supply.UnitCost, len(costs))
	for id, cost := range costs {
		stored[id] = cost
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.costs = stored
	c.expiresAt = time.Now().Add(ttl)
	return nil
}

// Invalidate removes the cached cost map
func (c *InMemoryCostCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.costs = nil
	return nil
}

// Ensure InMemoryCostCache implements CostCache
var _ supply.CostCache = (*InMemoryCostCache)(nil)
