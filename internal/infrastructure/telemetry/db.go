package telemetry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig controls database instrumentation
type DBConfig struct {
	TraceEnabled       bool
	LogFullSQL         bool // include bound variables in spans, never in production
	SlowQueryThreshold time.Duration
	DBSystem           string // "postgresql" or "sqlite"
}

// InstrumentDB registers otelgorm tracing (when enabled) and the query and
// pool metrics plugin on db. Passing a nil or disabled MeterProvider skips
// the metrics.
func InstrumentDB(db *gorm.DB, cfg DBConfig, mp *MeterProvider, logger *zap.Logger) error {
	if cfg.SlowQueryThreshold <= 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}

	if cfg.TraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
		if !cfg.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
		logger.Info("Database tracing enabled", zap.String("db_system", cfg.DBSystem))
	}

	var instruments *dbInstruments
	if mp.IsEnabled() {
		var err error
		instruments, err = newDBInstruments(mp.Meter("db.client"), db)
		if err != nil {
			return err
		}
	}

	if !cfg.TraceEnabled && instruments == nil {
		return nil
	}
	return db.Use(&dbPlugin{
		slowThreshold: cfg.SlowQueryThreshold,
		instruments:   instruments,
	})
}

type dbInstruments struct {
	queryTotal     *Counter
	queryDuration  *Histogram
	slowQueryTotal *Counter
}

func newDBInstruments(meter metric.Meter, db *gorm.DB) (*dbInstruments, error) {
	queryTotal, err := NewCounter(meter, "db_query_total", "Database queries by operation and table", "{query}")
	if err != nil {
		return nil, err
	}
	queryDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	slowQueryTotal, err := NewCounter(meter, "db_slow_query_total", "Queries slower than the configured threshold", "{query}")
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	_, err = meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			stats := sqlDB.Stats()
			o.Observe(int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
			o.Observe(int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
			o.Observe(int64(stats.MaxOpenConnections), metric.WithAttributes(AttrDBState.String("max")))
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return &dbInstruments{
		queryTotal:     queryTotal,
		queryDuration:  queryDuration,
		slowQueryTotal: slowQueryTotal,
	}, nil
}

type startTimeKey struct{}

// dbPlugin times every statement, marks failed or slow statements on the
// active span and records query metrics
type dbPlugin struct {
	slowThreshold time.Duration
	instruments   *dbInstruments
}

func (p *dbPlugin) Name() string { return "clusterweb:db_telemetry" }

func (p *dbPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("db_telemetry:before_create", p.before),
		cb.Create().After("gorm:create").Register("db_telemetry:after_create", p.afterFor("INSERT")),
		cb.Query().Before("gorm:query").Register("db_telemetry:before_query", p.before),
		cb.Query().After("gorm:query").Register("db_telemetry:after_query", p.afterFor("SELECT")),
		cb.Update().Before("gorm:update").Register("db_telemetry:before_update", p.before),
		cb.Update().After("gorm:update").Register("db_telemetry:after_update", p.afterFor("UPDATE")),
		cb.Delete().Before("gorm:delete").Register("db_telemetry:before_delete", p.before),
		cb.Delete().After("gorm:delete").Register("db_telemetry:after_delete", p.afterFor("DELETE")),
		cb.Row().Before("gorm:row").Register("db_telemetry:before_row", p.before),
		cb.Row().After("gorm:row").Register("db_telemetry:after_row", p.afterFor("")),
		cb.Raw().Before("gorm:raw").Register("db_telemetry:before_raw", p.before),
		cb.Raw().After("gorm:raw").Register("db_telemetry:after_raw", p.afterFor("")),
	)
}

// afterFor binds the operation label; an empty one is read from the SQL
func (p *dbPlugin) afterFor(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) { p.after(db, operation) }
}

func (p *dbPlugin) before(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, startTimeKey{}, time.Now())
}

func (p *dbPlugin) after(db *gorm.DB, operation string) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	if operation == "" {
		operation = detectOperation(db.Statement.SQL.String())
	}

	var elapsed time.Duration
	if start, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
		elapsed = time.Since(start)
	}
	slow := elapsed > p.slowThreshold
	failed := db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}
		if failed {
			span.SetStatus(codes.Error, db.Error.Error())
			span.RecordError(db.Error)
		}
		if slow {
			span.AddEvent("slow_query", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.slowThreshold.Milliseconds()),
			))
		}
	}

	if p.instruments == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrDBOperation.String(operation),
		AttrDBTable.String(db.Statement.Table),
	}
	p.instruments.queryTotal.Inc(ctx, append(attrs, attribute.Bool("error", failed))...)
	p.instruments.queryDuration.RecordDuration(ctx, elapsed, attrs...)
	if slow {
		p.instruments.slowQueryTotal.Inc(ctx, attrs...)
	}
}

func detectOperation(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}
