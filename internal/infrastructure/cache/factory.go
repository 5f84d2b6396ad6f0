package cache

import (
	"fmt"

	"github.com/ldipasquale/terzo-posto-server/internal/domain/supply"
	"github.com/ldipasquale/terzo-posto-server/internal/infrastructure/config"
	"go.uber.org/zap"
)

// CostCacheFactory creates cost caches based on configuration
type CostCacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CostCacheFactoryOption is a functional option for configuring the factory
type CostCacheFactoryOption func(*CostCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CostCacheFactoryOption {
	return func(f *CostCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory
// cache when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) CostCacheFactoryOption {
	return func(f *CostCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCostCacheFactory creates a new factory
func NewCostCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...CostCacheFactoryOption) *CostCacheFactory {
	f := &CostCacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache creates a cost cache for the configured backend. A nil
// cache is returned for the "none" backend; callers treat it as
// always-miss.
func (f *CostCacheFactory) CreateCache() (supply.CostCache, error) {
	switch f.cacheConfig.Backend {
	case "none":
		f.logger.Info("cost cache disabled")
		return nil, nil

	case "memory":
		f.logger.Info("using in-memory cost cache")
		return NewInMemoryCostCache(
			WithInMemoryTTL(f.cacheConfig.CostTTL),
			WithInMemoryLogger(f.logger),
		), nil

	case "redis":
		cache, err := NewRedisCostCache(f.redisConfig,
			WithRedisTTL(f.cacheConfig.CostTTL),
			WithRedisLogger(f.logger),
		)
		if err == nil {
			f.logger.Info("using Redis cost cache")
			return cache, nil
		}
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("Redis required for cost cache but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory cost cache", zap.Error(err))
		return NewInMemoryCostCache(
			WithInMemoryTTL(f.cacheConfig.CostTTL),
			WithInMemoryLogger(f.logger),
		), nil

	default:
		return nil, fmt.Errorf("unknown cache backend: %s", f.cacheConfig.Backend)
	}
}
