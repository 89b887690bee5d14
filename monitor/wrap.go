package monitor

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Func is the signature Instrument wraps: a context-aware operation
// returning a value and an error.
type Func[T any] func(ctx context.Context) (T, error)

// Instrument wraps fn so every call is timed and recorded against the
// monitor under the given operation name.
//
// Contract:
//   - Errors from the wrapped function are recorded with an "error"
//     metadata field and returned unchanged.
//   - A nil monitor makes the wrapper a pure pass-through: fn runs and
//     nothing is recorded.
//   - When the monitor carries a tracer, every call runs inside a span.
func Instrument[T any](name string, m *Monitor, fn Func[T]) Func[T] {
	if m == nil {
		return fn
	}

	return func(ctx context.Context) (T, error) {
		var span trace.Span
		if m.tracer != nil {
			ctx, span = m.tracer.Start(ctx, "op.exec."+name,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attribute.String("operation.name", name)),
			)
		}

		start := time.Now()
		result, err := fn(ctx)
		duration := time.Since(start)

		if span != nil {
			if err != nil {
				span.SetStatus(codes.Error, err.Error())
				span.RecordError(err)
			} else {
				span.SetStatus(codes.Ok, "")
			}
			span.End()
		}

		if err != nil {
			m.TrackOperation(name, duration, map[string]any{"error": err.Error()})
		} else {
			m.TrackOperation(name, duration, nil)
		}

		return result, err
	}
}
