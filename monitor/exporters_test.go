package monitor

import (
	"context"
	"errors"
	"testing"
)

func TestTraceExporter_UnknownName(t *testing.T) {
	cfg := TelemetryConfig{TracingExporter: "zipkin"}
	if _, err := cfg.traceExporter(context.Background()); !errors.Is(err, ErrInvalidTracingExporter) {
		t.Errorf("expected ErrInvalidTracingExporter, got %v", err)
	}
}

func TestMetricsReader_UnknownName(t *testing.T) {
	cfg := TelemetryConfig{MetricsExporter: "statsd"}
	if _, err := cfg.metricsReader(context.Background()); !errors.Is(err, ErrInvalidMetricsExporter) {
		t.Errorf("expected ErrInvalidMetricsExporter, got %v", err)
	}
}

func TestTraceExporter_Stdout(t *testing.T) {
	cfg := TelemetryConfig{TracingExporter: "stdout"}
	exp, err := cfg.traceExporter(context.Background())
	if err != nil {
		t.Fatalf("stdout trace exporter: %v", err)
	}
	if exp == nil {
		t.Fatal("expected a non-nil exporter")
	}
}

func TestMetricsReader_Stdout(t *testing.T) {
	cfg := TelemetryConfig{MetricsExporter: "stdout"}
	reader, err := cfg.metricsReader(context.Background())
	if err != nil {
		t.Fatalf("stdout metrics reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected a non-nil reader")
	}
}

func TestMetricsReader_Prometheus(t *testing.T) {
	cfg := TelemetryConfig{MetricsExporter: "prometheus"}
	reader, err := cfg.metricsReader(context.Background())
	if err != nil {
		t.Fatalf("prometheus reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected a non-nil reader")
	}
}

func TestExporters_NoneDiscards(t *testing.T) {
	cfg := TelemetryConfig{MetricsExporter: "none", TracingExporter: "none"}

	if _, err := cfg.metricsReader(context.Background()); err != nil {
		t.Errorf("none metrics reader: %v", err)
	}
	if _, err := cfg.traceExporter(context.Background()); err != nil {
		t.Errorf("none trace exporter: %v", err)
	}
}

func TestTraceExporter_OTLPMissingEndpoint(t *testing.T) {
	t.Setenv(envOTLPEndpoint, "")
	t.Setenv(envOTLPTracesEndpoint, "")

	cfg := TelemetryConfig{TracingExporter: "otlp"}
	if _, err := cfg.traceExporter(context.Background()); !errors.Is(err, ErrMissingEndpoint) {
		t.Errorf("expected ErrMissingEndpoint, got %v", err)
	}
}

func TestTraceExporter_OTLPWithEndpoint(t *testing.T) {
	t.Setenv(envOTLPEndpoint, "http://localhost:4317")

	cfg := TelemetryConfig{TracingExporter: "otlp"}
	exp, err := cfg.traceExporter(context.Background())
	if err != nil {
		t.Fatalf("otlp trace exporter: %v", err)
	}
	if exp == nil {
		t.Fatal("expected a non-nil exporter")
	}
}

func TestMetricsReader_OTLPMissingEndpoint(t *testing.T) {
	t.Setenv(envOTLPEndpoint, "")
	t.Setenv(envOTLPMetricsEndpoint, "")

	cfg := TelemetryConfig{MetricsExporter: "otlp"}
	if _, err := cfg.metricsReader(context.Background()); !errors.Is(err, ErrMissingEndpoint) {
		t.Errorf("expected ErrMissingEndpoint, got %v", err)
	}
}

func TestTraceExporter_JaegerEndpointPrecedence(t *testing.T) {
	// Without either variable the jaeger path fails like otlp does.
	t.Setenv(envJaegerEndpoint, "")
	t.Setenv(envOTLPEndpoint, "")

	cfg := TelemetryConfig{TracingExporter: "jaeger"}
	if _, err := cfg.traceExporter(context.Background()); !errors.Is(err, ErrMissingEndpoint) {
		t.Fatalf("expected ErrMissingEndpoint, got %v", err)
	}

	// The jaeger-specific variable is enough on its own.
	t.Setenv(envJaegerEndpoint, "http://localhost:4317")
	if _, err := cfg.traceExporter(context.Background()); err != nil {
		t.Errorf("jaeger exporter with endpoint: %v", err)
	}
}
