package cache

import (
	"context"
	"fmt"
	"io"

	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StatisticsStore is a statistics cache that owns a connection
type StatisticsStore interface {
	appinv.StatisticsCache
	io.Closer
}

// StatisticsCacheFactory picks the statistics cache backend from configuration
type StatisticsCacheFactory struct {
	redisConfig           config.RedisConfig
	cacheConfig           config.CacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption configures a StatisticsCacheFactory
type FactoryOption func(*StatisticsCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *StatisticsCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to memory.
// Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *StatisticsCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStatisticsCacheFactory creates a new factory
func NewStatisticsCacheFactory(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, opts ...FactoryOption) *StatisticsCacheFactory {
	f := &StatisticsCacheFactory{
		redisConfig:           redisCfg,
		cacheConfig:           cacheCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns a Redis cache when Redis is enabled and reachable,
// otherwise an in-memory cache
func (f *StatisticsCacheFactory) CreateStore(ctx context.Context) (StatisticsStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory statistics cache")
		return NewInMemoryStatisticsCache(f.cacheConfig.StatisticsTTL), nil
	}

	store, err := NewRedisStatisticsCache(ctx, RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.cacheConfig.KeyPrefix, f.cacheConfig.StatisticsTTL)
	if err == nil {
		f.logger.Info("Using Redis statistics cache", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for statistics cache but unavailable: %w", err)
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory statistics cache; "+
		"invalidations will not reach other instances",
		zap.Error(err),
	)
	return NewInMemoryStatisticsCache(f.cacheConfig.StatisticsTTL), nil
}
