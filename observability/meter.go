package observability

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/Jonathas-Conceicao/pipers/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the host service.
	ServiceName string
	// ServiceVersion is the version of the host service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds metric instruments for pipeline observability.
type Metrics struct {
	spawnTotal    metric.Int64Counter
	spawnErrors   metric.Int64Counter
	stageDuration metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	spawnTotal, err := meter.Int64Counter("pipeline.spawn.total",
		metric.WithDescription("Total number of pipeline stage spawns"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.spawn.total counter: %w", err)
	}

	spawnErrors, err := meter.Int64Counter("pipeline.spawn.errors",
		metric.WithDescription("Total number of failed pipeline stage spawns"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.spawn.errors counter: %w", err)
	}

	stageDuration, err := meter.Float64Histogram("pipeline.stage.duration",
		metric.WithDescription("Wall-clock runtime of pipeline stages in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.stage.duration histogram: %w", err)
	}

	return &Metrics{
		spawnTotal:    spawnTotal,
		spawnErrors:   spawnErrors,
		stageDuration: stageDuration,
	}, nil
}

// RecordSpawn records a successful stage spawn.
func (m *Metrics) RecordSpawn(ctx context.Context, binary string) {
	m.spawnTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrBinary, binary),
	))
}

// RecordSpawnError records a failed stage spawn.
func (m *Metrics) RecordSpawnError(ctx context.Context, binary string) {
	m.spawnErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrBinary, binary),
	))
}

// RecordStageDuration records how long a stage ran before exiting.
func (m *Metrics) RecordStageDuration(ctx context.Context, binary string, d time.Duration) {
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(AttrBinary, binary),
	))
}

// --- Global metrics ---

var globalMetrics atomic.Pointer[Metrics]

// SetGlobalMetrics installs the Metrics instance used by the process package.
// Passing nil disables metric recording.
func SetGlobalMetrics(m *Metrics) {
	globalMetrics.Store(m)
}

// GlobalMetrics returns the installed Metrics, or nil when none is set.
func GlobalMetrics() *Metrics {
	return globalMetrics.Load()
}
