package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/paygate/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the host service embedding the SDK.
	ServiceName string `mapstructure:"service_name"`
	// ServiceVersion is the version of the host service.
	ServiceVersion string `mapstructure:"service_version"`
	// Environment is the pay environment (staging, production).
	Environment string `mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `mapstructure:"endpoint"`
	// Insecure allows insecure connections (for development).
	Insecure bool `mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "staging",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
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

// Metrics holds the SDK's metric instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	requestTotal     metric.Int64Counter
	requestDuration  metric.Float64Histogram
	requestActive    metric.Int64UpDownCounter
	decisionTotal    metric.Int64Counter
	credentialsTotal metric.Int64Counter
	errorTotal       metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requestTotal, err := meter.Int64Counter("pay.api.request.total",
		metric.WithDescription("Total number of pay API requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pay.api.request.total counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("pay.api.request.duration",
		metric.WithDescription("Duration of pay API requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pay.api.request.duration histogram: %w", err)
	}

	requestActive, err := meter.Int64UpDownCounter("pay.api.request.active",
		metric.WithDescription("Number of in-flight pay API requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pay.api.request.active gauge: %w", err)
	}

	decisionTotal, err := meter.Int64Counter("pay.entitlement.decision.total",
		metric.WithDescription("Entitlement decisions by outcome and reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pay.entitlement.decision.total counter: %w", err)
	}

	credentialsTotal, err := meter.Int64Counter("pay.credentials.check.total",
		metric.WithDescription("Credential probes by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pay.credentials.check.total counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("pay.error.total",
		metric.WithDescription("Total errors by code and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pay.error.total counter: %w", err)
	}

	return &Metrics{
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestActive:    requestActive,
		decisionTotal:    decisionTotal,
		credentialsTotal: credentialsTotal,
		errorTotal:       errorTotal,
	}, nil
}

// RecordRequestStart increments the in-flight request count.
func (m *Metrics) RecordRequestStart(ctx context.Context) {
	if m == nil {
		return
	}
	m.requestActive.Add(ctx, 1)
}

// RecordRequestEnd decrements in-flight requests and records the completed request.
func (m *Metrics) RecordRequestEnd(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestActive.Add(ctx, -1)
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordDecision records one entitlement decision.
func (m *Metrics) RecordDecision(ctx context.Context, granted bool, reason string) {
	if m == nil {
		return
	}
	m.decisionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("granted", granted),
		attribute.String("reason", reason),
	))
}

// RecordCredentialCheck records the result of a credential probe.
func (m *Metrics) RecordCredentialCheck(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.credentialsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordError records an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}
