package loader

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
)

// Entry is one timestamped error or warning attached to a LoadResult,
// optionally carrying the offending record.
type Entry struct {
	Message   string
	Record    record.Record
	Timestamp time.Time
}

// Result is the per-entity-type outcome of one Load call. Callers always
// receive a Result with explicit counters and error/warning lists, even on
// large-scale partial failure; no record-level problem raises to the caller.
type Result struct {
	TotalRecords int
	Inserted     int
	Updated      int
	Skipped      int
	Failed       int

	Errors   []Entry
	Warnings []Entry

	Start time.Time
	End   time.Time
}

// NewResult returns an empty Result stamped with the current time.
func NewResult() *Result {
	now := time.Now()
	return &Result{Start: now, End: now}
}

// Duration returns the wall-clock span of the load.
func (r *Result) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// SuccessRate returns (Inserted+Updated)/TotalRecords, or 0 when the input
// was empty.
func (r *Result) SuccessRate() float64 {
	if r.TotalRecords == 0 {
		return 0
	}
	return float64(r.Inserted+r.Updated) / float64(r.TotalRecords)
}

// AddError appends a timestamped error entry. rec may be nil for batch-level
// failures.
func (r *Result) AddError(msg string, rec record.Record) {
	r.Errors = append(r.Errors, Entry{Message: msg, Record: rec, Timestamp: time.Now()})
}

// AddWarning appends a timestamped warning entry.
func (r *Result) AddWarning(msg string, rec record.Record) {
	r.Warnings = append(r.Warnings, Entry{Message: msg, Record: rec, Timestamp: time.Now()})
}

// Combine merges two results of sub-loads of the same logical operation into
// a new Result: counters sum, entry lists concatenate, the time window spans
// both inputs.
func (r *Result) Combine(other *Result) *Result {
	if other == nil {
		return r
	}
	combined := &Result{
		TotalRecords: r.TotalRecords + other.TotalRecords,
		Inserted:     r.Inserted + other.Inserted,
		Updated:      r.Updated + other.Updated,
		Skipped:      r.Skipped + other.Skipped,
		Failed:       r.Failed + other.Failed,
		Start:        r.Start,
		End:          r.End,
	}
	if other.Start.Before(combined.Start) {
		combined.Start = other.Start
	}
	if other.End.After(combined.End) {
		combined.End = other.End
	}
	combined.Errors = append(combined.Errors, r.Errors...)
	combined.Errors = append(combined.Errors, other.Errors...)
	combined.Warnings = append(combined.Warnings, r.Warnings...)
	combined.Warnings = append(combined.Warnings, other.Warnings...)
	return combined
}
