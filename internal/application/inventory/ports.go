package inventory

import (
	"context"

	"github.com/stockroom/backend/internal/domain/inventory"
)

// StatisticsCache holds the most recent stock statistics.
// A miss is reported as (nil, nil).
type StatisticsCache interface {
	Get(ctx context.Context) (*inventory.StockStatistics, error)
	Set(ctx context.Context, stats inventory.StockStatistics) error
	Invalidate(ctx context.Context) error
}

// Metrics receives counts of ledger activity
type Metrics interface {
	RecordAdjustment(ctx context.Context, reason string, delta int64)
	RecordOrderAdvanced(ctx context.Context, kind, status string)
	RecordUnitsMoved(ctx context.Context, movementType string, quantity int64)
}

type noopMetrics struct{}

func (noopMetrics) RecordAdjustment(context.Context, string, int64)     {}
func (noopMetrics) RecordOrderAdvanced(context.Context, string, string) {}
func (noopMetrics) RecordUnitsMoved(context.Context, string, int64)     {}

// NoopMetrics discards every measurement
func NoopMetrics() Metrics {
	return noopMetrics{}
}
