package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/inventory"
)

const statisticsKey = "inventory:statistics"

// RedisStatisticsCache stores stock statistics in Redis so every instance
// serves and invalidates the same copy
type RedisStatisticsCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStatisticsCache connects to Redis and verifies the connection
func NewRedisStatisticsCache(ctx context.Context, cfg RedisConfig, keyPrefix string, ttl time.Duration) (*RedisStatisticsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStatisticsCacheWithClient(client, keyPrefix, ttl), nil
}

// NewRedisStatisticsCacheWithClient creates a cache on an existing client
func NewRedisStatisticsCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStatisticsCache {
	return &RedisStatisticsCache{
		client: client,
		key:    keyPrefix + statisticsKey,
		ttl:    ttl,
	}
}

// Get returns the cached statistics, or nil on a miss
func (c *RedisStatisticsCache) Get(ctx context.Context) (*inventory.StockStatistics, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read statistics: %w", err)
	}

	var stats inventory.StockStatistics
	if err := json.Unmarshal(data, &stats); err != nil {
		// a corrupt value is treated as a miss and overwritten by the next Set
		return nil, nil
	}
	return &stats, nil
}

// Set stores stats until the TTL expires
func (c *RedisStatisticsCache) Set(ctx context.Context, stats inventory.StockStatistics) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write statistics: %w", err)
	}
	return nil
}

// Invalidate removes the cached statistics
func (c *RedisStatisticsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate statistics: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (c *RedisStatisticsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (c *RedisStatisticsCache) Close() error {
	return c.client.Close()
}

var _ appinv.StatisticsCache = (*RedisStatisticsCache)(nil)
