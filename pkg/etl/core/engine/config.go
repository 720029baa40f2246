package engine

import "time"

// Default tuning values, matching the behavior the load path was tuned
// against in production.
const (
	DefaultBatchSize        = 1000
	DefaultMaxRetries       = 3
	DefaultRetryDelayBase   = time.Second
	DefaultMaxWorkers       = 4
	DefaultTimeout          = 300 * time.Second
	DefaultMinBatchSize     = 100
	DefaultMaxBatchSize     = 5000
	DefaultThroughputTarget = 1000.0 // records/sec
)

// Config holds the tuning knobs of one Engine. It is immutable once the
// engine is constructed; the engine owns the live (possibly adapted) batch
// size separately.
type Config struct {
	// BatchSize seeds the engine's live batch size.
	BatchSize int `yaml:"batch_size"`
	// MaxRetries is the number of retries after the first attempt, so each
	// batch is attempted at most MaxRetries+1 times.
	MaxRetries int `yaml:"max_retries"`
	// RetryDelayBase is the base of the linear backoff: attempt n sleeps
	// RetryDelayBase * n before retrying.
	RetryDelayBase time.Duration `yaml:"retry_delay_base"`
	// ParallelEnabled allows the engine to fan batches out over a bounded
	// worker pool when the input is large enough.
	ParallelEnabled bool `yaml:"parallel_enabled"`
	// MaxWorkers bounds the worker pool in parallel mode.
	MaxWorkers int `yaml:"max_workers"`
	// Timeout bounds the overall wait for all submitted batches in parallel
	// mode. Batches still outstanding when it expires are recorded as failed;
	// their workers are not interrupted.
	Timeout time.Duration `yaml:"timeout"`
	// AdaptiveEnabled turns on throughput-driven batch-size adaptation.
	AdaptiveEnabled bool `yaml:"adaptive_enabled"`
	// MinBatchSize / MaxBatchSize bound the adapted batch size.
	MinBatchSize int `yaml:"min_batch_size"`
	MaxBatchSize int `yaml:"max_batch_size"`
	// ThroughputTarget is the records-per-second target the adaptation steers
	// toward.
	ThroughputTarget float64 `yaml:"throughput_target"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:        DefaultBatchSize,
		MaxRetries:       DefaultMaxRetries,
		RetryDelayBase:   DefaultRetryDelayBase,
		ParallelEnabled:  false,
		MaxWorkers:       DefaultMaxWorkers,
		Timeout:          DefaultTimeout,
		AdaptiveEnabled:  true,
		MinBatchSize:     DefaultMinBatchSize,
		MaxBatchSize:     DefaultMaxBatchSize,
		ThroughputTarget: DefaultThroughputTarget,
	}
}

// normalized returns a copy with zero or inconsistent fields replaced by
// defaults, so a partially-populated Config is always safe to run with.
func (c Config) normalized() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelayBase <= 0 {
		c.RetryDelayBase = DefaultRetryDelayBase
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = DefaultMaxWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MinBatchSize <= 0 {
		c.MinBatchSize = DefaultMinBatchSize
	}
	if c.MaxBatchSize < c.MinBatchSize {
		c.MaxBatchSize = DefaultMaxBatchSize
	}
	if c.ThroughputTarget <= 0 {
		c.ThroughputTarget = DefaultThroughputTarget
	}
	return c
}
