package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Operation pairs a span with the operation metrics.
type Operation struct {
	Name    string
	ctx     context.Context
	span    trace.Span
	metrics *Metrics
	start   time.Time
}

// StartOperation starts a span called name. Use Context() for the work
// inside the operation and End when it finishes.
func StartOperation(ctx context.Context, metrics *Metrics, name string, attrs ...attribute.KeyValue) *Operation {
	ctx, span := StartSpan(ctx, name, trace.WithAttributes(attrs...))
	return &Operation{
		Name:    name,
		ctx:     ctx,
		span:    span,
		metrics: metrics,
		start:   time.Now(),
	}
}

// Context carries the operation span.
func (o *Operation) Context() context.Context {
	return o.ctx
}

// Duration is the time since the operation started.
func (o *Operation) Duration() time.Duration {
	return time.Since(o.start)
}

// End closes the span and records the operation with status "ok" or "error".
func (o *Operation) End(err error) {
	status := "ok"
	if err != nil {
		status = "error"
		SetSpanError(o.ctx, err)
	}
	d := o.Duration()
	o.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, d.Milliseconds()),
	)
	o.span.End()
	o.metrics.RecordOperation(o.ctx, o.Name, status, d)
}
