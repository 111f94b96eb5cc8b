package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// LedgerMetrics records stock ledger activity.
// It satisfies the application-level Metrics port of the inventory and order services.
type LedgerMetrics struct {
	logger *zap.Logger

	adjustmentsTotal    *Counter
	adjustedUnitsTotal  *Counter
	ordersAdvancedTotal *Counter
	unitsMovedTotal     *Counter

	lowStockEntries   *Gauge
	outOfStockEntries *Gauge
	sweepDuration     *Histogram
}

// LedgerMetricsConfig holds configuration for ledger metrics.
type LedgerMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewLedgerMetrics registers the ledger instruments on cfg.Meter.
func NewLedgerMetrics(cfg LedgerMetricsConfig) (*LedgerMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lm := &LedgerMetrics{logger: logger}
	var err error

	if lm.adjustmentsTotal, err = NewCounter(cfg.Meter,
		"stockroom_adjustments_total", "Number of manual stock adjustments", "{adjustments}"); err != nil {
		return nil, err
	}
	if lm.adjustedUnitsTotal, err = NewCounter(cfg.Meter,
		"stockroom_adjusted_units_total", "Absolute units changed by manual adjustments", "{units}"); err != nil {
		return nil, err
	}
	if lm.ordersAdvancedTotal, err = NewCounter(cfg.Meter,
		"stockroom_orders_advanced_total", "Number of order status transitions", "{orders}"); err != nil {
		return nil, err
	}
	if lm.unitsMovedTotal, err = NewCounter(cfg.Meter,
		"stockroom_units_moved_total", "Units posted to the stock ledger", "{units}"); err != nil {
		return nil, err
	}
	if lm.lowStockEntries, err = NewGauge(cfg.Meter,
		"stockroom_low_stock_entries", "Stock entries at or below their reorder level", "{entries}"); err != nil {
		return nil, err
	}
	if lm.outOfStockEntries, err = NewGauge(cfg.Meter,
		"stockroom_out_of_stock_entries", "Stock entries with nothing on hand", "{entries}"); err != nil {
		return nil, err
	}
	if lm.sweepDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "stockroom_stock_sweep_duration_seconds",
		Description: "Duration of the scheduled stock health sweep",
		Unit:        "s",
		Boundaries:  JobDurationBuckets,
	}); err != nil {
		return nil, err
	}

	return lm, nil
}

// RecordAdjustment counts an adjustment and the units it changed.
func (lm *LedgerMetrics) RecordAdjustment(ctx context.Context, reason string, delta int64) {
	lm.adjustmentsTotal.Inc(ctx, AttrReason.String(reason))
	if delta < 0 {
		delta = -delta
	}
	lm.adjustedUnitsTotal.Add(ctx, delta, AttrReason.String(reason))
}

// RecordOrderAdvanced counts an order reaching status.
func (lm *LedgerMetrics) RecordOrderAdvanced(ctx context.Context, kind, status string) {
	lm.ordersAdvancedTotal.Inc(ctx, AttrOrderKind.String(kind), AttrOrderStatus.String(status))
}

// RecordUnitsMoved counts units posted by a stock movement.
func (lm *LedgerMetrics) RecordUnitsMoved(ctx context.Context, movementType string, qty int64) {
	if qty <= 0 {
		return
	}
	lm.unitsMovedTotal.Add(ctx, qty, AttrMovementType.String(movementType))
}

// WarehouseStockHealth is the alert count of one warehouse.
type WarehouseStockHealth struct {
	WarehouseID int64
	LowStock    int64
	OutOfStock  int64
}

// RecordStockHealth sets the low and out-of-stock gauges per warehouse.
func (lm *LedgerMetrics) RecordStockHealth(ctx context.Context, health []WarehouseStockHealth) {
	for _, h := range health {
		lm.lowStockEntries.Record(ctx, h.LowStock, AttrWarehouseID.Int64(h.WarehouseID))
		lm.outOfStockEntries.Record(ctx, h.OutOfStock, AttrWarehouseID.Int64(h.WarehouseID))
	}
	lm.logger.Debug("Stock health gauges recorded", zap.Int("warehouses", len(health)))
}

// RecordSweepDuration records how long a stock health sweep took, in seconds.
func (lm *LedgerMetrics) RecordSweepDuration(ctx context.Context, seconds float64) {
	lm.sweepDuration.Record(ctx, seconds)
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewLedgerMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
