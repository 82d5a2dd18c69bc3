// Package telemetry wires OpenTelemetry traces, metrics and logs plus
// Pyroscope profiling. Every provider is a no-op when disabled.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ErrMeterNil is returned when an instrument set is built without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

// Config holds the settings shared by all OpenTelemetry providers
type Config struct {
	ServiceName       string
	ServiceVersion    string
	CollectorEndpoint string // OTLP gRPC endpoint, e.g. "localhost:4317"
	Insecure          bool   // plaintext gRPC, development only

	TracesEnabled bool
	SamplingRatio float64 // 0.0-1.0

	MetricsEnabled  bool
	MetricsInterval time.Duration

	LogsEnabled bool
}

const shutdownTimeout = 10 * time.Second

func newResource(cfg Config) (*resource.Resource, error) {
	version := cfg.ServiceVersion
	if version == "" {
		version = "dev"
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// shutdownWithTimeout bounds a provider shutdown so a dead collector
// cannot hang process exit
func shutdownWithTimeout(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return fn(ctx)
}
