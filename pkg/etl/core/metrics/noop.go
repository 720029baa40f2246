package metrics

import (
	"context"
	"time"
)

// NoOpRecorder discards all measurements. It is the fallback when no metrics
// backend is wired in.
type NoOpRecorder struct{}

// NewNoOpRecorder creates a NoOpRecorder.
func NewNoOpRecorder() Recorder { return &NoOpRecorder{} }

func (*NoOpRecorder) RecordBatchAttempt(string, int, int, error)          {}
func (*NoOpRecorder) RecordRun(string, int, int, int, int, time.Duration) {}
func (*NoOpRecorder) RecordBatchSize(string, int)                         {}
func (*NoOpRecorder) RecordLoad(string, int, int, int, int)               {}
func (*NoOpRecorder) RecordStage(string, time.Duration, error)            {}

// NoOpTracer produces spans that do nothing.
type NoOpTracer struct{}

// NewNoOpTracer creates a NoOpTracer.
func NewNoOpTracer() Tracer { return &NoOpTracer{} }

type noopSpan struct{}

func (noopSpan) End() {}

// StartSpan implements Tracer.
func (*NoOpTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, noopSpan{}
}

var (
	_ Recorder = (*NoOpRecorder)(nil)
	_ Tracer   = (*NoOpTracer)(nil)
)
