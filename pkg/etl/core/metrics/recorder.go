// Package metrics abstracts the instrumentation emitted by the load path.
// The abstractions keep the engine and loaders backend-agnostic; concrete
// recorders (Prometheus, OpenTelemetry) live under
// pkg/etl/infrastructure/metrics, with no-op fallbacks provided here.
package metrics

import (
	"context"
	"time"
)

// Recorder receives measurement events from the engine, the loaders and the
// orchestrator. Implementations must be safe for concurrent use and must
// never influence control flow.
type Recorder interface {
	// RecordBatchAttempt records one attempt of one batch: its entity type,
	// item count, 1-based attempt number and outcome.
	RecordBatchAttempt(entity string, size, attempt int, err error)

	// RecordRun records the aggregate outcome of one engine run.
	RecordRun(entity string, processed, succeeded, failed, batches int, elapsed time.Duration)

	// RecordBatchSize records the engine's live batch size after adaptation.
	RecordBatchSize(entity string, size int)

	// RecordLoad records per-record outcomes of one loader call.
	RecordLoad(entity string, inserted, updated, skipped, failed int)

	// RecordStage records one orchestrator stage's duration and outcome.
	RecordStage(dataset string, duration time.Duration, err error)
}

// Span is one traced unit of work.
type Span interface {
	// End finishes the span.
	End()
}

// Tracer starts spans around orchestrator stages and engine runs.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}
