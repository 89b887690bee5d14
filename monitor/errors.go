package monitor

import "errors"

// Runtime errors.
var (
	// ErrCacheNotFound indicates an unknown cache name was given to a
	// cache-level operation.
	ErrCacheNotFound = errors.New("monitor: cache not found")
)

// Telemetry configuration errors.
var (
	// ErrMissingServiceName indicates TelemetryConfig.ServiceName is empty.
	ErrMissingServiceName = errors.New("monitor: service name is required")

	// ErrInvalidMetricsExporter indicates an unknown metrics exporter name.
	ErrInvalidMetricsExporter = errors.New("monitor: invalid metrics exporter")

	// ErrInvalidTracingExporter indicates an unknown tracing exporter name.
	ErrInvalidTracingExporter = errors.New("monitor: invalid tracing exporter")

	// ErrMissingEndpoint indicates an exporter needing a collector
	// endpoint found none in the environment.
	ErrMissingEndpoint = errors.New("monitor: exporter endpoint not configured")
)

// ValidMetricsExporters lists valid metrics exporter names.
var ValidMetricsExporters = []string{"otlp", "prometheus", "stdout", "none", ""}

// ValidTracingExporters lists valid tracing exporter names.
var ValidTracingExporters = []string{"otlp", "jaeger", "stdout", "none", ""}
