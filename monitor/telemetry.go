package monitor

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// TelemetryConfig selects OpenTelemetry exporters for a monitor built
// with NewWithTelemetry. An empty exporter name disables that signal.
type TelemetryConfig struct {
	ServiceName     string
	Version         string
	MetricsExporter string // otlp|prometheus|stdout|none
	TracingExporter string // otlp|jaeger|stdout|none
}

var (
	validMetricsExporters = exporterSet(ValidMetricsExporters)
	validTracingExporters = exporterSet(ValidTracingExporters)
)

func exporterSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Validate validates the telemetry configuration.
func (c TelemetryConfig) Validate() error {
	if c.ServiceName == "" {
		return ErrMissingServiceName
	}
	if !validMetricsExporters[c.MetricsExporter] {
		return fmt.Errorf("%w: %q", ErrInvalidMetricsExporter, c.MetricsExporter)
	}
	if !validTracingExporters[c.TracingExporter] {
		return fmt.Errorf("%w: %q", ErrInvalidTracingExporter, c.TracingExporter)
	}
	return nil
}

// NewWithTelemetry creates a Monitor whose meter and tracer are built
// from the configured exporters. The returned monitor owns the
// providers; call Shutdown to flush them.
func NewWithTelemetry(ctx context.Context, cfg Config, tel TelemetryConfig) (*Monitor, error) {
	if err := tel.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(tel.ServiceName),
			semconv.ServiceVersion(tel.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var mp *sdkmetric.MeterProvider
	if tel.MetricsExporter != "" {
		reader, err := tel.metricsReader(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics reader: %w", err)
		}
		mp = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(reader),
		)
		cfg.Meter = mp.Meter(tel.ServiceName)
	}

	var tp *sdktrace.TracerProvider
	if tel.TracingExporter != "" {
		exporter, err := tel.traceExporter(ctx)
		if err != nil {
			if mp != nil {
				_ = mp.Shutdown(ctx)
			}
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp = sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithBatcher(exporter),
		)
		cfg.Tracer = tp.Tracer(tel.ServiceName)
	}

	m := New(cfg)
	m.meterProvider = mp
	m.tracerProvider = tp
	return m, nil
}

// Shutdown flushes any telemetry providers created by NewWithTelemetry.
// It is idempotent and returns the first error encountered.
func (m *Monitor) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	mp := m.meterProvider
	tp := m.tracerProvider
	m.meterProvider = nil
	m.tracerProvider = nil
	m.mu.Unlock()

	var errs []error
	if tp != nil {
		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if mp != nil {
		if err := mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
