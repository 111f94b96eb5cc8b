package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StockAlertJobName identifies the stock alert sweep
const StockAlertJobName = "stock_alert_sweep"

// AlertSource lists current low and out-of-stock entries
type AlertSource interface {
	Alerts(ctx context.Context) ([]appinv.AlertResponse, error)
}

// StockHealthRecorder receives per-warehouse alert counts
type StockHealthRecorder interface {
	RecordStockHealth(ctx context.Context, health []telemetry.WarehouseStockHealth)
	RecordSweepDuration(ctx context.Context, seconds float64)
}

// StockAlertJob logs stock alerts and publishes alert gauges per warehouse
type StockAlertJob struct {
	source   AlertSource
	recorder StockHealthRecorder
	logger   *zap.Logger

	mu   sync.Mutex
	seen map[int64]bool
}

// NewStockAlertJob creates the sweep. recorder may be nil.
func NewStockAlertJob(source AlertSource, recorder StockHealthRecorder, logger *zap.Logger) *StockAlertJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockAlertJob{
		source:   source,
		recorder: recorder,
		logger:   logger.With(zap.String("job", StockAlertJobName)),
		seen:     make(map[int64]bool),
	}
}

// Name implements Job
func (j *StockAlertJob) Name() string {
	return StockAlertJobName
}

// Run implements Job
func (j *StockAlertJob) Run(ctx context.Context) error {
	var runErr error
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(StockAlertJobName, nil), func(ctx context.Context) {
		runErr = j.sweep(ctx)
	})
	return runErr
}

func (j *StockAlertJob) sweep(ctx context.Context) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "scheduler", StockAlertJobName)
	defer span.End()
	start := time.Now()

	alerts, err := j.source.Alerts(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	health := j.summarize(alerts)
	var low, out int64
	for _, h := range health {
		low += h.LowStock
		out += h.OutOfStock
	}

	for _, a := range alerts {
		if a.AlertType != inventory.StockStatusOutOfStock.String() {
			continue
		}
		j.logger.Warn("Product out of stock",
			zap.String("sku", a.SKU),
			zap.String("warehouse", a.WarehouseName),
			zap.Int64("reserved", a.Reserved),
		)
	}
	j.logger.Info("Stock alert sweep finished",
		zap.Int64("low_stock", low),
		zap.Int64("out_of_stock", out),
		zap.Int("warehouses", len(health)),
	)

	if j.recorder != nil {
		j.recorder.RecordStockHealth(ctx, health)
		j.recorder.RecordSweepDuration(ctx, time.Since(start).Seconds())
	}
	telemetry.SetAttributes(span, "low_stock", low, "out_of_stock", out)
	return nil
}

// summarize counts alerts per warehouse. Warehouses that had alerts in an
// earlier sweep and have none now are reported with zero counts.
func (j *StockAlertJob) summarize(alerts []appinv.AlertResponse) []telemetry.WarehouseStockHealth {
	byWarehouse := make(map[int64]*telemetry.WarehouseStockHealth)
	j.mu.Lock()
	for id := range j.seen {
		byWarehouse[id] = &telemetry.WarehouseStockHealth{WarehouseID: id}
	}
	j.mu.Unlock()

	for _, a := range alerts {
		h, ok := byWarehouse[a.WarehouseID]
		if !ok {
			h = &telemetry.WarehouseStockHealth{WarehouseID: a.WarehouseID}
			byWarehouse[a.WarehouseID] = h
		}
		switch a.AlertType {
		case inventory.StockStatusOutOfStock.String():
			h.OutOfStock++
		case inventory.StockStatusLowStock.String():
			h.LowStock++
		}
	}

	out := make([]telemetry.WarehouseStockHealth, 0, len(byWarehouse))
	j.mu.Lock()
	for id, h := range byWarehouse {
		out = append(out, *h)
		j.seen[id] = true
	}
	j.mu.Unlock()
	sort.Slice(out, func(a, b int) bool { return out[a].WarehouseID < out[b].WarehouseID })
	return out
}
