package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/stockroom/backend/internal/application/catalog"
	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
	orderapp "github.com/stockroom/backend/internal/application/order"
	warehouseapp "github.com/stockroom/backend/internal/application/warehouse"
	"github.com/stockroom/backend/internal/domain/order"
	"github.com/stockroom/backend/internal/infrastructure/cache"
	"github.com/stockroom/backend/internal/infrastructure/config"
	"github.com/stockroom/backend/internal/infrastructure/logger"
	"github.com/stockroom/backend/internal/infrastructure/persistence"
	"github.com/stockroom/backend/internal/infrastructure/scheduler"
	"github.com/stockroom/backend/internal/infrastructure/telemetry"
	"github.com/stockroom/backend/internal/interfaces/http/handler"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
	"github.com/stockroom/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			Stockroom API
//	@version		1.0
//	@description	Warehouse inventory: products, warehouses, stock levels and receipt, delivery and transfer orders.

//	@host		localhost:8080
//	@BasePath	/api/v1

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	// The log provider exists before the logger so the OTLP core can be teed in.
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, nil)
	if err != nil {
		panic("Failed to initialize log exporter: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		TimeFormat:  "2006-01-02T15:04:05.000Z07:00",
		Service:     cfg.App.Name,
		Environment: cfg.App.Env,
	}, logProvider.ZapCore(zapcore.InfoLevel))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()
	logProvider.SetLogger(log)

	log.Info("Starting stockroom",
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database_driver", cfg.Database.Driver),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.TracingConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.PyroscopeAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.PyroscopeUser,
		BasicAuthPassword: cfg.Telemetry.PyroscopePassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.Database.Driver == config.DriverSQLite {
		// Postgres schemas come from cmd/migrate; the embedded sqlite store is created in place.
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to create sqlite schema", zap.Error(err))
		}
	}
	log.Info("Database connected")

	dbSystem := "postgresql"
	if cfg.Database.Driver == config.DriverSQLite {
		dbSystem = "sqlite"
	}
	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        dbSystem,
	}, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DBMetricsConfig{
		Enabled:            true,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}

	statsCache, err := cache.NewStatisticsCacheFactory(cfg.Redis, cfg.Cache, cache.WithLogger(log)).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create statistics cache", zap.Error(err))
	}

	productRepo := persistence.NewGormProductRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	stockRepo := persistence.NewGormStockEntryRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	inventoryService := inventoryapp.NewInventoryService(txScope, stockRepo, movementRepo, productRepo, warehouseRepo, log)
	inventoryService.SetStatisticsCache(statsCache)
	orderService := orderapp.NewOrderService(txScope, orderRepo, log)
	orderService.SetStatisticsInvalidator(inventoryService)

	var ledgerMetrics *telemetry.LedgerMetrics
	if meterProvider.IsEnabled() {
		ledgerMetrics, err = telemetry.NewLedgerMetrics(telemetry.LedgerMetricsConfig{
			Meter:  meterProvider.Meter("stockroom.ledger"),
			Logger: log,
		})
		if err != nil {
			log.Fatal("Failed to create ledger metrics", zap.Error(err))
		}
		inventoryService.SetMetrics(ledgerMetrics)
		orderService.SetMetrics(ledgerMetrics)
	}

	jobs := scheduler.New(scheduler.Config{
		Enabled:    cfg.Scheduler.Enabled,
		JobTimeout: cfg.Scheduler.JobTimeout,
	}, log)
	var healthRecorder scheduler.StockHealthRecorder
	if ledgerMetrics != nil {
		healthRecorder = ledgerMetrics
	}
	if err := jobs.Register(cfg.Scheduler.StockAlertCron,
		scheduler.NewStockAlertJob(inventoryService, healthRecorder, log)); err != nil {
		log.Fatal("Failed to register stock alert job", zap.Error(err))
	}
	jobs.Start()

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access database handle", zap.Error(err))
	}
	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(sqlDB, version),
		Products:   handler.NewProductHandler(catalogapp.NewProductService(productRepo)),
		Warehouses: handler.NewWarehouseHandler(warehouseapp.NewWarehouseService(warehouseRepo)),
		Inventory:  handler.NewInventoryHandler(inventoryService),
	}
	for _, kind := range order.AllKinds() {
		handlers.Orders = append(handlers.Orders, handler.NewOrderHandler(kind, orderService))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request ID feeds logging and tracing, recovery wraps everything after it.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Logger:        log,
	}))
	engine.Use(middleware.Profiling(middleware.ProfilingConfig{
		Enabled:   profiler.IsEnabled(),
		SkipPaths: middleware.DefaultProfilingConfig().SkipPaths,
	}))
	engine.Use(middleware.Secure(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	router.RegisterAPI(engine, handlers, router.WithAPIVersion("v1"))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping scheduler", zap.Error(err))
	}
	if err := statsCache.Close(); err != nil {
		log.Error("Error closing statistics cache", zap.Error(err))
	}
	if dbMetrics != nil {
		dbMetrics.Stop()
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	_ = logProvider.Shutdown(shutdownCtx)
}
