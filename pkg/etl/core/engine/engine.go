// Package engine implements the generic batch executor at the bottom of the
// load path. It partitions an input slice into batches, runs a caller-supplied
// batch operation sequentially or over a bounded worker pool, retries failed
// batches with linear backoff, and adapts its batch size to the observed
// throughput. The engine is entity-agnostic: loaders supply the operation,
// the engine supplies the execution policy.
package engine

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/metrics"
	"github.com/tigerroll/fantasyload/pkg/etl/support/logger"
)

// BatchOp is the caller-supplied operation applied to each batch. It is
// assumed atomic from the engine's perspective: one invocation is one
// transaction scope, and any error means the whole batch failed.
type BatchOp[T any] func(ctx context.Context, batch []T) error

// historyCap / historyKeep bound the performance history: when the history
// exceeds historyCap samples it is trimmed to the most recent historyKeep.
const (
	historyCap  = 100
	historyKeep = 50
)

// Engine executes batch operations under one tuning policy. The live batch
// size is per-engine mutable state: it is seeded from the config, adapted
// after each run, and persists across Run calls on the same instance.
type Engine struct {
	name     string
	config   Config
	recorder metrics.Recorder

	mu               sync.Mutex
	currentBatchSize int
	history          []PerformanceSample
	totalProcessed   int
	totalBatches     int
}

// New creates an Engine named for the entity type it serves. The config is
// normalized and then owned exclusively by the engine.
func New(name string, cfg Config, recorder metrics.Recorder) *Engine {
	cfg = cfg.normalized()
	if recorder == nil {
		recorder = metrics.NewNoOpRecorder()
	}
	return &Engine{
		name:             name,
		config:           cfg,
		recorder:         recorder,
		currentBatchSize: cfg.BatchSize,
	}
}

// Config returns the engine's immutable configuration.
func (e *Engine) Config() Config { return e.config }

// CurrentBatchSize returns the live, possibly-adapted batch size.
func (e *Engine) CurrentBatchSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentBatchSize
}

// Run partitions items into consecutive batches and applies op to each one,
// retrying failed batches per the engine's policy. Batch-level failures are
// non-fatal: the run continues with the remaining batches and the failures
// surface as error entries on the returned Result. Run never returns nil.
func Run[T any](ctx context.Context, e *Engine, items []T, op BatchOp[T]) *Result {
	result := NewResult()
	if len(items) == 0 {
		return result
	}

	start := time.Now()
	batchSize := e.CurrentBatchSize()
	batches := partition(items, batchSize)

	if e.config.ParallelEnabled && len(items) > 2*batchSize {
		runParallel(ctx, e, batches, op, result)
	} else {
		runSequential(ctx, e, batches, op, result)
	}
	result.Elapsed = time.Since(start)
	result.PerformanceStats["batch_size"] = batchSize
	result.PerformanceStats["throughput"] = result.Throughput()

	e.observe(result)
	e.recorder.RecordRun(e.name, result.Processed, result.Succeeded, result.Failed, result.BatchCount, result.Elapsed)

	logger.Infof("engine %s: %d/%d succeeded in %s (%.1f records/sec, %d batches)",
		e.name, result.Succeeded, result.Processed, result.Elapsed.Round(time.Millisecond), result.Throughput(), result.BatchCount)
	return result
}

// partition splits items into consecutive, non-overlapping slices of at most
// size elements. Slices share the backing array of items.
func partition[T any](items []T, size int) [][]T {
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}
	return batches
}

// runSequential executes batches strictly in input order.
func runSequential[T any](ctx context.Context, e *Engine, batches [][]T, op BatchOp[T], result *Result) {
	for i, batch := range batches {
		result.BatchCount++
		result.Processed += len(batch)
		if err := attemptBatch(ctx, e, i+1, batch, op); err != nil {
			result.Failed += len(batch)
			result.AddError(err.Error())
		} else {
			result.Succeeded += len(batch)
		}
	}
}

// batchOutcome is the immutable per-batch result handed back by workers.
type batchOutcome struct {
	index int
	size  int
	err   error
}

// runParallel submits every batch to a worker pool of MaxWorkers goroutines
// and folds outcomes on the calling goroutine (single writer, no locks on
// the aggregate). The fold is bounded by the configured timeout; batches
// still outstanding at expiry are recorded as failed, but their workers are
// not interrupted and may still commit in the background.
func runParallel[T any](ctx context.Context, e *Engine, batches [][]T, op BatchOp[T], result *Result) {
	jobs := make(chan int, len(batches))
	outcomes := make(chan batchOutcome, len(batches))

	workers := e.config.MaxWorkers
	if workers > len(batches) {
		workers = len(batches)
	}
	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				err := attemptBatch(ctx, e, i+1, batches[i], op)
				outcomes <- batchOutcome{index: i, size: len(batches[i]), err: err}
			}
		}()
	}
	for i := range batches {
		jobs <- i
	}
	close(jobs)

	timeout := time.NewTimer(e.config.Timeout)
	defer timeout.Stop()

	resolved := make([]bool, len(batches))
	pending := len(batches)
	for pending > 0 {
		select {
		case out := <-outcomes:
			resolved[out.index] = true
			pending--
			result.BatchCount++
			result.Processed += out.size
			if out.err != nil {
				result.Failed += out.size
				result.AddError(out.err.Error())
			} else {
				result.Succeeded += out.size
			}
		case <-timeout.C:
			for i, done := range resolved {
				if done {
					continue
				}
				result.BatchCount++
				result.Processed += len(batches[i])
				result.Failed += len(batches[i])
				result.AddError(fmt.Sprintf("batch %d did not complete within %s", i+1, e.config.Timeout))
			}
			return
		}
	}
}

// attemptBatch applies op to one batch with the retry policy: up to
// MaxRetries+1 attempts, sleeping RetryDelayBase*attempt between attempts
// (linear backoff). The returned error is the final-attempt failure.
func attemptBatch[T any](ctx context.Context, e *Engine, batchNo int, batch []T, op BatchOp[T]) error {
	var lastErr error
	for attempt := 1; attempt <= e.config.MaxRetries+1; attempt++ {
		err := op(ctx, batch)
		e.recorder.RecordBatchAttempt(e.name, len(batch), attempt, err)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt <= e.config.MaxRetries {
			logger.Warnf("engine %s: batch %d attempt %d failed: %v", e.name, batchNo, attempt, err)
			sleepContext(ctx, time.Duration(attempt)*e.config.RetryDelayBase)
		}
	}
	return fmt.Errorf("batch %d failed after %d attempts: %w", batchNo, e.config.MaxRetries+1, lastErr)
}

// sleepContext sleeps for d, returning early if ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// observe appends a performance sample, trims the history, and runs the
// adaptation step when enabled.
func (e *Engine) observe(result *Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.totalProcessed += result.Processed
	e.totalBatches += result.BatchCount
	e.history = append(e.history, PerformanceSample{
		Timestamp:   time.Now(),
		Throughput:  result.Throughput(),
		SuccessRate: result.SuccessRate(),
		BatchCount:  result.BatchCount,
		Duration:    result.Elapsed,
	})
	if len(e.history) > historyCap {
		e.history = append([]PerformanceSample(nil), e.history[len(e.history)-historyKeep:]...)
	}

	if e.config.AdaptiveEnabled {
		e.adaptBatchSize(result.Throughput())
	}
}

// adaptBatchSize nudges the live batch size toward the throughput target:
// shrink by 20% when running below 0.8x target, grow by 20% when above 1.2x,
// always clamped to [MinBatchSize, MaxBatchSize]. Needs at least two history
// samples so a single cold run cannot swing the size. Callers hold e.mu.
func (e *Engine) adaptBatchSize(current float64) {
	if len(e.history) < 2 {
		return
	}
	target := e.config.ThroughputTarget
	newSize := e.currentBatchSize
	switch {
	case current < 0.8*target:
		newSize = int(float64(e.currentBatchSize) * 0.8)
		if newSize < e.config.MinBatchSize {
			newSize = e.config.MinBatchSize
		}
	case current > 1.2*target:
		newSize = int(math.Ceil(float64(e.currentBatchSize) * 1.2))
		if newSize > e.config.MaxBatchSize {
			newSize = e.config.MaxBatchSize
		}
	}
	if newSize != e.currentBatchSize {
		logger.Infof("engine %s: adapting batch size %d -> %d (throughput %.1f, target %.1f)",
			e.name, e.currentBatchSize, newSize, current, target)
		e.currentBatchSize = newSize
		e.recorder.RecordBatchSize(e.name, newSize)
	}
}

// Summary reports aggregate counters and averages over the most recent
// history window (up to 10 samples).
func (e *Engine) Summary() PerformanceSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := PerformanceSummary{
		TotalProcessed:   e.totalProcessed,
		TotalBatches:     e.totalBatches,
		CurrentBatchSize: e.currentBatchSize,
		HistoryLen:       len(e.history),
	}
	window := e.history
	if len(window) > 10 {
		window = window[len(window)-10:]
	}
	if len(window) == 0 {
		return s
	}
	for _, rec := range window {
		s.AverageThroughput += rec.Throughput
		s.AverageSuccessRate += rec.SuccessRate
	}
	s.AverageThroughput /= float64(len(window))
	s.AverageSuccessRate /= float64(len(window))
	return s
}

// ResetStats clears the performance history and restores the configured
// batch size.
func (e *Engine) ResetStats() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
	e.totalProcessed = 0
	e.totalBatches = 0
	e.currentBatchSize = e.config.BatchSize
}
