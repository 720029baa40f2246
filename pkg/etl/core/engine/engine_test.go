package engine_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/fantasyload/pkg/etl/core/engine"
)

func quickConfig() engine.Config {
	return engine.Config{
		BatchSize:        2,
		MaxRetries:       1,
		RetryDelayBase:   time.Millisecond,
		MaxWorkers:       2,
		Timeout:          5 * time.Second,
		MinBatchSize:     1,
		MaxBatchSize:     100,
		ThroughputTarget: 1000,
	}
}

func TestRunSequentialCountsFailedBatch(t *testing.T) {
	e := engine.New("widgets", quickConfig(), nil)

	// 5 items at batch size 2 make 3 batches; the batch containing item 3
	// fails on every attempt.
	var attempts int
	op := func(ctx context.Context, batch []int) error {
		for _, item := range batch {
			if item == 3 {
				attempts++
				return errors.New("constraint violation")
			}
		}
		return nil
	}

	result := engine.Run(context.Background(), e, []int{1, 2, 3, 4, 5}, op)

	assert.Equal(t, 3, result.BatchCount)
	assert.Equal(t, 5, result.Processed)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 3, result.Succeeded)
	assert.Len(t, result.Errors, 1)
	// MaxRetries=1 means two attempts on the failing batch.
	assert.Equal(t, 2, attempts)
}

func TestRunRetrySucceedsOnSecondAttempt(t *testing.T) {
	e := engine.New("widgets", quickConfig(), nil)

	var mu sync.Mutex
	failedOnce := false
	op := func(ctx context.Context, batch []int) error {
		mu.Lock()
		defer mu.Unlock()
		if !failedOnce {
			failedOnce = true
			return errors.New("deadlock detected")
		}
		return nil
	}

	result := engine.Run(context.Background(), e, []int{1, 2, 3, 4}, op)

	assert.Equal(t, 4, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)
}

func TestRunEmptyInput(t *testing.T) {
	e := engine.New("widgets", quickConfig(), nil)

	called := false
	result := engine.Run(context.Background(), e, nil, func(ctx context.Context, batch []int) error {
		called = true
		return nil
	})

	assert.False(t, called)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 0, result.BatchCount)
}

func TestRunParallelProcessesEveryBatch(t *testing.T) {
	cfg := quickConfig()
	cfg.BatchSize = 1
	cfg.ParallelEnabled = true
	e := engine.New("widgets", cfg, nil)

	var mu sync.Mutex
	seen := map[int]bool{}
	op := func(ctx context.Context, batch []int) error {
		mu.Lock()
		defer mu.Unlock()
		for _, item := range batch {
			seen[item] = true
		}
		return nil
	}

	items := []int{1, 2, 3, 4, 5, 6}
	result := engine.Run(context.Background(), e, items, op)

	assert.Equal(t, 6, result.Processed)
	assert.Equal(t, 6, result.Succeeded)
	assert.Equal(t, 6, result.BatchCount)
	assert.Len(t, seen, 6)
}

func TestRunParallelIsolatesFailedBatches(t *testing.T) {
	cfg := quickConfig()
	cfg.BatchSize = 1
	cfg.MaxRetries = 0
	cfg.ParallelEnabled = true
	e := engine.New("widgets", cfg, nil)

	op := func(ctx context.Context, batch []int) error {
		if batch[0]%2 == 0 {
			return errors.New("even items fail")
		}
		return nil
	}

	result := engine.Run(context.Background(), e, []int{1, 2, 3, 4, 5, 6}, op)

	assert.Equal(t, 6, result.Processed)
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 3, result.Failed)
	assert.Len(t, result.Errors, 3)
}

func TestAdaptiveGrowsBatchSizeUnderHighThroughput(t *testing.T) {
	cfg := quickConfig()
	cfg.BatchSize = 10
	cfg.MaxBatchSize = 20
	cfg.AdaptiveEnabled = true
	// Any realistic run exceeds 1.2x of this target.
	cfg.ThroughputTarget = 0.001
	e := engine.New("widgets", cfg, nil)

	ok := func(ctx context.Context, batch []int) error { return nil }
	items := make([]int, 30)

	// Adaptation needs at least two history samples.
	engine.Run(context.Background(), e, items, ok)
	engine.Run(context.Background(), e, items, ok)

	size := e.CurrentBatchSize()
	assert.Greater(t, size, 10)
	assert.LessOrEqual(t, size, 20)
}

func TestAdaptiveShrinksBatchSizeTowardMinimum(t *testing.T) {
	cfg := quickConfig()
	cfg.BatchSize = 10
	cfg.MinBatchSize = 5
	cfg.AdaptiveEnabled = true
	// No run comes near 0.8x of this target.
	cfg.ThroughputTarget = 1e12
	e := engine.New("widgets", cfg, nil)

	ok := func(ctx context.Context, batch []int) error { return nil }
	items := make([]int, 30)

	for i := 0; i < 5; i++ {
		engine.Run(context.Background(), e, items, ok)
	}

	size := e.CurrentBatchSize()
	assert.Less(t, size, 10)
	assert.GreaterOrEqual(t, size, 5)
}

func TestResetStatsRestoresConfiguredBatchSize(t *testing.T) {
	cfg := quickConfig()
	cfg.BatchSize = 10
	cfg.MaxBatchSize = 40
	cfg.AdaptiveEnabled = true
	cfg.ThroughputTarget = 0.001
	e := engine.New("widgets", cfg, nil)

	ok := func(ctx context.Context, batch []int) error { return nil }
	items := make([]int, 30)
	engine.Run(context.Background(), e, items, ok)
	engine.Run(context.Background(), e, items, ok)
	require.NotEqual(t, 10, e.CurrentBatchSize())

	e.ResetStats()
	assert.Equal(t, 10, e.CurrentBatchSize())

	summary := e.Summary()
	assert.Equal(t, 0, summary.TotalProcessed)
	assert.Equal(t, 0, summary.HistoryLen)
}

func TestNewNormalizesZeroConfig(t *testing.T) {
	e := engine.New("widgets", engine.Config{}, nil)

	cfg := e.Config()
	assert.Equal(t, engine.DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, engine.DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, engine.DefaultMaxWorkers, cfg.MaxWorkers)
	assert.Equal(t, engine.DefaultBatchSize, e.CurrentBatchSize())
}

func TestCombineIsAssociative(t *testing.T) {
	a := &engine.Result{Processed: 10, Succeeded: 8, Failed: 2, BatchCount: 2, Elapsed: 3 * time.Second, Errors: []string{"a"}}
	b := &engine.Result{Processed: 5, Succeeded: 5, BatchCount: 1, Elapsed: 7 * time.Second}
	c := &engine.Result{Processed: 1, Failed: 1, BatchCount: 1, Elapsed: time.Second, Errors: []string{"c"}}

	left := a.Combine(b).Combine(c)
	right := a.Combine(b.Combine(c))

	assert.Equal(t, left.Processed, right.Processed)
	assert.Equal(t, left.Succeeded, right.Succeeded)
	assert.Equal(t, left.Failed, right.Failed)
	assert.Equal(t, left.BatchCount, right.BatchCount)
	assert.Equal(t, left.Elapsed, right.Elapsed)
	assert.Equal(t, left.Errors, right.Errors)
}
