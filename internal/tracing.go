package internal

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used with the global tracer provider.
const TracerName = "github.com/AnatoleLucet/reactive"

func GlobalTracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// traced runs fn inside a span when the runtime has a tracer.
// Spans started while fn runs are children of this one.
func (r *Runtime) traced(name string, attrs []attribute.KeyValue, fn func()) {
	if r.tracer == nil {
		fn()
		return
	}

	ctx, span := r.tracer.Start(r.tracker.Context(), name, trace.WithAttributes(attrs...))
	defer span.End()

	defer func() {
		if p := recover(); p != nil {
			span.RecordError(fmt.Errorf("panic: %v", p))
			span.SetStatus(codes.Error, "panic")
			panic(p)
		}
	}()

	r.tracker.RunWithContext(ctx, fn)
}

func effectAttrs(e *Effect) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64("reactive.effect", int64(e.id)),
		attribute.Bool("reactive.scheduled", e.scheduler != nil),
	}
}

func triggerAttrs(op OpType, key any, dependents int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("reactive.op", op.String()),
		attribute.String("reactive.key", fmt.Sprint(key)),
		attribute.Int("reactive.dependents", dependents),
	}
}
