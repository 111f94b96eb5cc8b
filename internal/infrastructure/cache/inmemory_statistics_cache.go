package cache

import (
	"context"
	"sync"
	"time"

	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/inventory"
)

// InMemoryStatisticsCache keeps stock statistics in process memory.
// Invalidation is only visible to this instance.
type InMemoryStatisticsCache struct {
	mu        sync.RWMutex
	stats     *inventory.StockStatistics
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewInMemoryStatisticsCache creates an empty cache
func NewInMemoryStatisticsCache(ttl time.Duration) *InMemoryStatisticsCache {
	return &InMemoryStatisticsCache{ttl: ttl, now: time.Now}
}

// Get returns the cached statistics, or nil when empty or expired
func (c *InMemoryStatisticsCache) Get(_ context.Context) (*inventory.StockStatistics, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.stats == nil || !c.now().Before(c.expiresAt) {
		return nil, nil
	}
	stats := *c.stats
	return &stats, nil
}

// Set stores a copy of stats
func (c *InMemoryStatisticsCache) Set(_ context.Context, stats inventory.StockStatistics) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats = &stats
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

// Invalidate drops the cached statistics
func (c *InMemoryStatisticsCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats = nil
	return nil
}

// Close is a no-op
func (c *InMemoryStatisticsCache) Close() error {
	return nil
}

var _ appinv.StatisticsCache = (*InMemoryStatisticsCache)(nil)
