package monitor

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Environment variables consulted for collector endpoints. The generic
// OTLP variable applies to both signals; the signal-specific and jaeger
// variables take precedence for theirs.
const (
	envOTLPEndpoint        = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOTLPMetricsEndpoint = "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"
	envOTLPTracesEndpoint  = "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"
	envJaegerEndpoint      = "OTEL_EXPORTER_JAEGER_ENDPOINT"
)

// metricsReader builds the metrics reader selected by MetricsExporter.
// "none" yields a reader that discards everything, so callers never
// need a nil check.
func (c TelemetryConfig) metricsReader(ctx context.Context) (sdkmetric.Reader, error) {
	switch c.MetricsExporter {
	case "stdout":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stdout))
		if err != nil {
			return nil, err
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "otlp":
		endpoint := firstEnv(envOTLPMetricsEndpoint, envOTLPEndpoint)
		if endpoint == "" {
			return nil, fmt.Errorf("%w: set %s or %s", ErrMissingEndpoint, envOTLPEndpoint, envOTLPMetricsEndpoint)
		}
		exp, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpointURL(endpoint))
		if err != nil {
			return nil, err
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "prometheus":
		return prometheus.New()

	case "none":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(io.Discard))
		if err != nil {
			return nil, err
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMetricsExporter, c.MetricsExporter)
	}
}

// traceExporter builds the span exporter selected by TracingExporter.
// jaeger ingests OTLP natively, so it shares the otlp path and differs
// only in which environment variable names its endpoint.
func (c TelemetryConfig) traceExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	switch c.TracingExporter {
	case "stdout":
		return stdouttrace.New(stdouttrace.WithWriter(os.Stdout))

	case "otlp", "jaeger":
		var endpoint string
		if c.TracingExporter == "jaeger" {
			endpoint = firstEnv(envJaegerEndpoint, envOTLPEndpoint)
		} else {
			endpoint = firstEnv(envOTLPTracesEndpoint, envOTLPEndpoint)
		}
		if endpoint == "" {
			return nil, fmt.Errorf("%w: set %s or %s", ErrMissingEndpoint, envOTLPEndpoint, envOTLPTracesEndpoint)
		}
		return otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(endpoint))

	case "none":
		return stdouttrace.New(stdouttrace.WithWriter(io.Discard))

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTracingExporter, c.TracingExporter)
	}
}

// firstEnv returns the first non-empty value among the named
// environment variables.
func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
