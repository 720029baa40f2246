package engine

import "time"

// Result aggregates the outcome of one Run call. Counters always satisfy
// Succeeded+Failed == Processed.
type Result struct {
	Processed  int
	Succeeded  int
	Failed     int
	BatchCount int
	Elapsed    time.Duration
	// Errors holds one entry per failed batch, in completion order.
	Errors []string
	// PerformanceStats is a free-form snapshot of run-level measurements.
	PerformanceStats map[string]interface{}
}

// NewResult returns an empty Result with an initialized stats map.
func NewResult() *Result {
	return &Result{PerformanceStats: map[string]interface{}{}}
}

// SuccessRate returns Succeeded/Processed, or 0 when nothing was processed.
func (r *Result) SuccessRate() float64 {
	if r.Processed == 0 {
		return 0
	}
	return float64(r.Succeeded) / float64(r.Processed)
}

// Throughput returns Processed per second of Elapsed, or 0 when Elapsed is 0.
func (r *Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Processed) / r.Elapsed.Seconds()
}

// AddError records one batch-level error.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Combine merges two results of sub-loads of the same logical operation into
// a new Result: counters sum, Elapsed is the max of the two (sub-loads of one
// operation overlap in wall time), error lists concatenate, and performance
// snapshots merge with other's entries winning on key collision.
func (r *Result) Combine(other *Result) *Result {
	if other == nil {
		other = NewResult()
	}
	combined := &Result{
		Processed:  r.Processed + other.Processed,
		Succeeded:  r.Succeeded + other.Succeeded,
		Failed:     r.Failed + other.Failed,
		BatchCount: r.BatchCount + other.BatchCount,
		Elapsed:    maxDuration(r.Elapsed, other.Elapsed),
	}
	combined.Errors = append(combined.Errors, r.Errors...)
	combined.Errors = append(combined.Errors, other.Errors...)
	combined.PerformanceStats = make(map[string]interface{}, len(r.PerformanceStats)+len(other.PerformanceStats))
	for k, v := range r.PerformanceStats {
		combined.PerformanceStats[k] = v
	}
	for k, v := range other.PerformanceStats {
		combined.PerformanceStats[k] = v
	}
	return combined
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

// PerformanceSample is one point of the engine's throughput history.
type PerformanceSample struct {
	Timestamp   time.Time
	Throughput  float64
	SuccessRate float64
	BatchCount  int
	Duration    time.Duration
}

// PerformanceSummary describes the engine's recent history window.
type PerformanceSummary struct {
	TotalProcessed     int
	TotalBatches       int
	CurrentBatchSize   int
	AverageThroughput  float64
	AverageSuccessRate float64
	HistoryLen         int
}
