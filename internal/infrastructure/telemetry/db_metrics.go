package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetricsConfig holds configuration for database metrics collection.
type DBMetricsConfig struct {
	Enabled            bool
	SlowQueryThreshold time.Duration
}

// DefaultDBMetricsConfig returns default configuration for database metrics.
func DefaultDBMetricsConfig() DBMetricsConfig {
	return DBMetricsConfig{
		Enabled:            true,
		SlowQueryThreshold: 200 * time.Millisecond,
	}
}

var (
	attrDBOperation = attribute.Key("db.operation")
	attrDBTable     = attribute.Key("db.table")
	attrDBFailed    = attribute.Key("db.failed")
)

// DBMetrics holds query counters and pool gauges for the ledger database.
type DBMetrics struct {
	queryTotal     *Counter
	queryDuration  *Histogram
	slowQueryTotal *Counter

	poolConnections    metric.Int64ObservableGauge
	poolConnectionsMax metric.Int64ObservableGauge
	poolRegistration   metric.Registration

	meter  metric.Meter
	config DBMetricsConfig
	logger *zap.Logger
}

// NewDBMetrics creates the query instruments on meter.
func NewDBMetrics(meter metric.Meter, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if meter == nil {
		return nil, &MetricsError{Op: "NewDBMetrics", Err: "meter cannot be nil"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThreshold <= 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}

	m := &DBMetrics{meter: meter, config: cfg, logger: logger}
	var err error

	if m.queryTotal, err = NewCounter(meter,
		"db_query_total", "Database queries by operation", "{query}"); err != nil {
		return nil, err
	}
	if m.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.slowQueryTotal, err = NewCounter(meter,
		"db_slow_query_total", "Database queries slower than the configured threshold", "{query}"); err != nil {
		return nil, err
	}
	return m, nil
}

// ObservePool reports sqlDB connection pool statistics on every collection.
func (m *DBMetrics) ObservePool(sqlDB *sql.DB) error {
	var err error
	if m.poolConnections, err = m.meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"),
	); err != nil {
		return err
	}
	if m.poolConnectionsMax, err = m.meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections allowed"),
		metric.WithUnit("{connection}"),
	); err != nil {
		return err
	}

	m.poolRegistration, err = m.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(m.poolConnectionsMax, int64(stats.MaxOpenConnections))
		o.ObserveInt64(m.poolConnections, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(m.poolConnections, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(m.poolConnections, int64(stats.OpenConnections), metric.WithAttributes(AttrDBState.String("open")))
		return nil
	}, m.poolConnections, m.poolConnectionsMax)
	return err
}

// Stop unregisters the pool callback. Safe to call more than once.
func (m *DBMetrics) Stop() {
	if m.poolRegistration == nil {
		return
	}
	if err := m.poolRegistration.Unregister(); err != nil {
		m.logger.Warn("Failed to unregister pool metrics", zap.Error(err))
	}
	m.poolRegistration = nil
}

// RecordQuery records one finished query.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration, err error) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}

	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	m.queryTotal.Inc(ctx, attrDBOperation.String(operation), attrDBFailed.Bool(failed))
	m.queryDuration.RecordDuration(ctx, duration, attrDBOperation.String(operation))

	if duration > m.config.SlowQueryThreshold {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, attrDBTable.String(table))
	}
}

// DBMetricsPlugin is a GORM plugin feeding DBMetrics from query callbacks.
type DBMetricsPlugin struct {
	metrics *DBMetrics
}

// NewDBMetricsPlugin creates a new GORM plugin for database metrics.
func NewDBMetricsPlugin(metrics *DBMetrics) *DBMetricsPlugin {
	return &DBMetricsPlugin{metrics: metrics}
}

// Name returns the plugin name.
func (p *DBMetricsPlugin) Name() string {
	return "db_metrics"
}

type dbMetricsStartKey struct{}

// Initialize registers before/after callbacks for every GORM processor.
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		ctx := tx.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		tx.Statement.Context = context.WithValue(ctx, dbMetricsStartKey{}, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			op := operation
			if op == "" {
				op = detectOperationType(tx.Statement.SQL.String())
			}
			ctx := tx.Statement.Context
			if ctx == nil {
				ctx = context.Background()
			}
			var elapsed time.Duration
			if start, ok := ctx.Value(dbMetricsStartKey{}).(time.Time); ok {
				elapsed = time.Since(start)
			}
			p.metrics.RecordQuery(ctx, op, tx.Statement.Table, elapsed, tx.Error)
		}
	}

	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("db_metrics:before_create", before),
		cb.Create().After("gorm:create").Register("db_metrics:after_create", after("INSERT")),
		cb.Query().Before("gorm:query").Register("db_metrics:before_query", before),
		cb.Query().After("gorm:query").Register("db_metrics:after_query", after("SELECT")),
		cb.Update().Before("gorm:update").Register("db_metrics:before_update", before),
		cb.Update().After("gorm:update").Register("db_metrics:after_update", after("UPDATE")),
		cb.Delete().Before("gorm:delete").Register("db_metrics:before_delete", before),
		cb.Delete().After("gorm:delete").Register("db_metrics:after_delete", after("DELETE")),
		cb.Row().Before("gorm:row").Register("db_metrics:before_row", before),
		cb.Row().After("gorm:row").Register("db_metrics:after_row", after("")),
		cb.Raw().Before("gorm:raw").Register("db_metrics:before_raw", before),
		cb.Raw().After("gorm:raw").Register("db_metrics:after_raw", after("")),
	)
}

func detectOperationType(query string) string {
	query = strings.ToUpper(strings.TrimSpace(query))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(query, op) {
			return op
		}
	}
	return "OTHER"
}

// RegisterDBMetrics installs the metrics plugin on db and starts pool observation.
// It returns nil when metrics are disabled.
func RegisterDBMetrics(db *gorm.DB, meterProvider *MeterProvider, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled || meterProvider == nil || !meterProvider.IsEnabled() {
		logger.Debug("Database metrics disabled, skipping registration")
		return nil, nil
	}

	metrics, err := NewDBMetrics(meterProvider.Meter("db.client"), cfg, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := metrics.ObservePool(sqlDB); err != nil {
		return nil, err
	}
	if err := db.Use(NewDBMetricsPlugin(metrics)); err != nil {
		return nil, err
	}

	logger.Info("Database metrics registered",
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
	)
	return metrics, nil
}
