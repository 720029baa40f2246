package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	coremetrics "github.com/tigerroll/fantasyload/pkg/etl/core/metrics"
)

const tracerName = "github.com/tigerroll/fantasyload"

// OpenTelemetryTracer is an implementation of metrics.Tracer using
// OpenTelemetry. Spans go to whatever tracer provider the host process
// installed globally; without one they are no-ops.
type OpenTelemetryTracer struct {
	tracer trace.Tracer
}

// NewOpenTelemetryTracer creates a new instance of OpenTelemetryTracer.
func NewOpenTelemetryTracer() *OpenTelemetryTracer {
	return &OpenTelemetryTracer{tracer: otel.Tracer(tracerName)}
}

type otelSpan struct {
	span trace.Span
}

func (s otelSpan) End() {
	s.span.End()
}

// StartSpan starts a new span for one unit of load work.
func (t *OpenTelemetryTracer) StartSpan(ctx context.Context, name string) (context.Context, coremetrics.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, otelSpan{span: span}
}

var _ coremetrics.Tracer = (*OpenTelemetryTracer)(nil)
