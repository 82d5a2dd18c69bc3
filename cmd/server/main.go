package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/cache"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/config"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/logger"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/migration"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/persistence"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/telemetry"
	"github.com/EliwtFdez/ClusterWeb/internal/interfaces/http/middleware"
	"github.com/EliwtFdez/ClusterWeb/migrations"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

//	@title			ClusterWeb API
//	@version		1.0
//	@description	Residential community administration: houses, residents, dues and payments.

//	@contact.name	ClusterWeb
//	@contact.url	https://github.com/EliwtFdez/ClusterWeb

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; real environment variables still apply
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := context.Background()
	tel, err := startTelemetry(ctx, cfg, bootLog)
	if err != nil {
		return err
	}

	log, err := logger.New(logCfg, tel.logs.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	defer tel.shutdown(log)

	log.Info("Starting ClusterWeb",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("driver", cfg.Database.Driver),
	)

	db, err := openDatabase(cfg, log, tel.metrics)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	deps := dependencies{db: db}
	if metrics, err := telemetry.NewCommunityMetrics(tel.metrics.Meter("clusterweb.community")); err != nil {
		log.Warn("Community metrics disabled", zap.Error(err))
	} else {
		deps.metrics = metrics
	}
	if cfg.Idempotency.Enabled {
		store, err := cache.NewIdempotencyStoreFactory(cfg.Idempotency.Backend, cfg.Redis, cache.WithLogger(log)).CreateStore(ctx)
		if err != nil {
			return fmt.Errorf("failed to create idempotency store: %w", err)
		}
		defer func() { _ = store.Close() }()
		deps.idempotency = store
	}

	middleware.SetupValidator()
	engine, err := newEngine(cfg, log, tel.metrics, deps)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		log.Info("Shutting down server...", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited gracefully")
	return nil
}

// telemetryProviders groups the OpenTelemetry providers and the profiler
type telemetryProviders struct {
	traces   *telemetry.TracerProvider
	metrics  *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
}

func startTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) (*telemetryProviders, error) {
	tc := telemetry.Config{
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		Insecure:          cfg.Telemetry.Insecure,
		TracesEnabled:     cfg.Telemetry.Enabled,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		MetricsEnabled:    cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
		LogsEnabled:       cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
	}

	var (
		p   telemetryProviders
		err error
	)
	if p.traces, err = telemetry.NewTracerProvider(ctx, tc, log); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if p.metrics, err = telemetry.NewMeterProvider(ctx, tc, log); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	if p.logs, err = telemetry.NewLoggerProvider(ctx, tc, log); err != nil {
		return nil, fmt.Errorf("failed to initialize log export: %w", err)
	}

	p.profiler, err = telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServer,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Warn("Continuous profiling disabled", zap.Error(err))
	} else if p.profiler.IsEnabled() {
		p.traces.EnableSpanProfiles()
	}
	return &p, nil
}

func (p *telemetryProviders) shutdown(log *zap.Logger) {
	ctx := context.Background()
	if p.profiler != nil {
		if err := p.profiler.Stop(); err != nil {
			log.Warn("Error stopping profiler", zap.Error(err))
		}
	}
	// Errors are logged by the providers themselves
	_ = p.traces.Shutdown(ctx)
	_ = p.metrics.Shutdown(ctx)
	_ = p.logs.Shutdown(ctx)
}

// openDatabase connects, instruments and, when configured, migrates the schema.
// Postgres runs the embedded SQL migrations; sqlite uses gorm AutoMigrate.
func openDatabase(cfg *config.Config, log *zap.Logger, mp *telemetry.MeterProvider) (*persistence.Database, error) {
	gormLog := logger.NewGormLogger(log,
		logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold),
	)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		return nil, err
	}
	log.Info("Database connected successfully")

	dbSystem := "postgresql"
	if cfg.Database.Driver == config.DriverSQLite {
		dbSystem = "sqlite"
	}
	if err := telemetry.InstrumentDB(db.DB, telemetry.DBConfig{
		TraceEnabled:       cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:           dbSystem,
	}, mp, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to instrument database: %w", err)
	}

	if !cfg.Database.AutoMigrate {
		return db, nil
	}
	if err := migrateSchema(db, cfg.Database.Driver, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSchema(db *persistence.Database, driver string, log *zap.Logger) error {
	start := time.Now()
	if driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
		log.Info("Schema migrated", zap.Duration("took", time.Since(start)))
		return nil
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// The migrator is not closed: closing it would close sqlDB as well
	m, err := migration.NewFromFS(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Schema migrated", zap.Duration("took", time.Since(start)))
	return nil
}
