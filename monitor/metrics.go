package monitor

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instruments holds the OpenTelemetry instruments the monitor exports
// through when a Meter is configured.
type instruments struct {
	totalCount   metric.Int64Counter
	slowCount    metric.Int64Counter
	durationHist metric.Float64Histogram
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	totalCount, err := meter.Int64Counter(
		"perf.op.total",
		metric.WithDescription("Total number of tracked operation executions"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	slowCount, err := meter.Int64Counter(
		"perf.op.degraded",
		metric.WithDescription("Operations observed above twice their rolling baseline"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"perf.op.duration_ms",
		metric.WithDescription("Tracked operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &instruments{
		totalCount:   totalCount,
		slowCount:    slowCount,
		durationHist: durationHist,
	}, nil
}

// record exports one observation.
func (i *instruments) record(ctx context.Context, operation string, duration time.Duration, degraded bool) {
	opt := metric.WithAttributes(attribute.String("operation.name", operation))

	i.totalCount.Add(ctx, 1, opt)
	if degraded {
		i.slowCount.Add(ctx, 1, opt)
	}
	i.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}
