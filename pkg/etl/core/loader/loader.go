package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/engine"
	"github.com/tigerroll/fantasyload/pkg/etl/core/metrics"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/core/tx"
	"github.com/tigerroll/fantasyload/pkg/etl/support/exception"
	"github.com/tigerroll/fantasyload/pkg/etl/support/logger"
)

const moduleName = "loader"

// candidate is a record that survived validation and deduplication, paired
// with its natural-key predicate.
type candidate struct {
	rec record.Record
	key map[string]interface{}
}

// UpsertLoader persists records of one entity type with insert-or-update
// semantics. The validation, keying and merge behavior comes from the Spec;
// batching, retry and parallelism come from the engine.
type UpsertLoader[T any] struct {
	spec     Spec[T]
	engine   *engine.Engine
	manager  tx.Manager
	recorder metrics.Recorder
}

// accumulator collects per-batch tallies into one Result. It is closed when
// Load returns: a worker abandoned by a parallel-mode timeout may still
// commit its batch afterwards, but its tallies are discarded so the Result
// handed to the caller never changes after the fact.
type accumulator struct {
	mu     sync.Mutex
	result *Result
	closed bool
}

func (a *accumulator) fold(entity string, inserted, updated, skipped, failed int, entries []Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		logger.Warnf("%s: %s batch completed after its run timed out, %d rows may have committed unreported",
			moduleName, entity, inserted+updated)
		return
	}
	a.result.Inserted += inserted
	a.result.Updated += updated
	a.result.Skipped += skipped
	a.result.Failed += failed
	a.result.Errors = append(a.result.Errors, entries...)
}

func (a *accumulator) close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
}

// NewUpsertLoader assembles a loader for one entity type.
func NewUpsertLoader[T any](spec Spec[T], eng *engine.Engine, manager tx.Manager, recorder metrics.Recorder) *UpsertLoader[T] {
	if recorder == nil {
		recorder = metrics.NewNoOpRecorder()
	}
	return &UpsertLoader[T]{
		spec:     spec,
		engine:   eng,
		manager:  manager,
		recorder: recorder,
	}
}

// Entity returns the dataset name this loader handles.
func (l *UpsertLoader[T]) Entity() string {
	return l.spec.Entity
}

// Load runs the full pipeline over records: normalize, validate, dedupe,
// then upsert in batches. It never returns an error for record-level
// problems; every outcome is reflected in the Result counters and entries.
func (l *UpsertLoader[T]) Load(ctx context.Context, records []record.Record) *Result {
	result := NewResult()
	result.TotalRecords = len(records)
	if len(records) == 0 {
		logger.Debugf("%s: no %s records to load", moduleName, l.spec.Entity)
		return result
	}

	candidates := l.prepare(records, result)

	acc := &accumulator{result: result}
	br := engine.Run(ctx, l.engine, candidates, func(ctx context.Context, batch []candidate) error {
		return l.persistBatch(ctx, batch, acc)
	})
	acc.close()

	// Batches that exhausted their retries or timed out count every contained
	// record as failed; their errors surface as batch-level entries.
	if br.Failed > 0 {
		result.Failed += br.Failed
		for _, msg := range br.Errors {
			result.AddError(msg, nil)
		}
	}

	result.End = time.Now()
	l.recorder.RecordLoad(l.spec.Entity, result.Inserted, result.Updated, result.Skipped, result.Failed)
	logger.Infof("%s: %s load done: total=%d inserted=%d updated=%d skipped=%d failed=%d in %s",
		moduleName, l.spec.Entity, result.TotalRecords, result.Inserted, result.Updated,
		result.Skipped, result.Failed, result.Duration())
	return result
}

// prepare normalizes, validates and dedupes the raw records, updating the
// result counters for rejected and duplicate records.
func (l *UpsertLoader[T]) prepare(records []record.Record, result *Result) []candidate {
	candidates := make([]candidate, 0, len(records))
	seen := make(map[string]bool, len(records))

	for _, raw := range records {
		rec := raw.Clean()
		if l.spec.Preprocess != nil {
			normalized, err := l.spec.Preprocess(rec)
			if err != nil {
				result.Failed++
				result.AddError(fmt.Sprintf("%s: preprocess: %v", l.spec.Entity, err), rec)
				continue
			}
			rec = normalized
		}

		if err := l.validate(rec); err != nil {
			result.Failed++
			result.AddError(fmt.Sprintf("%s: %v", l.spec.Entity, err), rec)
			continue
		}

		key, err := l.spec.Key(rec)
		if err != nil {
			result.Failed++
			result.AddError(fmt.Sprintf("%s: key extraction: %v", l.spec.Entity, err), rec)
			continue
		}

		if !l.spec.AllowDuplicates {
			ks := keyString(key)
			if seen[ks] {
				result.Skipped++
				result.AddWarning(fmt.Sprintf("%s: duplicate key %s in input, keeping first occurrence", l.spec.Entity, ks), rec)
				continue
			}
			seen[ks] = true
		}

		candidates = append(candidates, candidate{rec: rec, key: key})
	}
	return candidates
}

func (l *UpsertLoader[T]) validate(rec record.Record) error {
	for _, f := range l.spec.RequiredFields {
		if !rec.Has(f) || rec.Get(f).IsNull() {
			return exception.NewValidationError(moduleName, fmt.Sprintf("missing required field %q", f))
		}
	}
	if l.spec.Validate != nil {
		return l.spec.Validate(rec)
	}
	return nil
}

// persistBatch writes one batch in a single transaction. Record-level
// problems are logged and counted without failing the batch; only
// infrastructure errors propagate so the engine can retry.
func (l *UpsertLoader[T]) persistBatch(ctx context.Context, batch []candidate, acc *accumulator) error {
	var (
		inserted, updated, skipped, failed int
		entries                            []Entry
	)

	err := tx.WithTx(ctx, l.manager, func(t tx.Tx) error {
		inserts := make([]*T, 0, len(batch))
		insertRecs := make([]record.Record, 0, len(batch))

		for _, cand := range batch {
			existing := new(T)
			found, err := t.FindOne(ctx, existing, cand.key)
			if err != nil {
				failed++
				entries = append(entries, entry(fmt.Sprintf("%s: lookup: %v", l.spec.Entity, err), cand.rec))
				continue
			}

			if found {
				if l.spec.ShouldUpdate != nil && !l.spec.ShouldUpdate(existing, cand.rec) {
					skipped++
					continue
				}
				incoming, err := l.spec.Build(cand.rec)
				if err != nil {
					failed++
					entries = append(entries, entry(fmt.Sprintf("%s: build: %v", l.spec.Entity, err), cand.rec))
					continue
				}
				l.merge(existing, incoming)
				if _, err := t.UpdateByKey(ctx, existing, cand.key, l.spec.UpdateColumns); err != nil {
					failed++
					entries = append(entries, entry(fmt.Sprintf("%s: update: %v", l.spec.Entity, err), cand.rec))
					continue
				}
				updated++
				continue
			}

			entity, err := l.spec.Build(cand.rec)
			if err != nil {
				failed++
				entries = append(entries, entry(fmt.Sprintf("%s: build: %v", l.spec.Entity, err), cand.rec))
				continue
			}
			inserts = append(inserts, entity)
			insertRecs = append(insertRecs, cand.rec)
		}

		if len(inserts) > 0 {
			n, f, es, err := l.flushInserts(ctx, t, inserts, insertRecs)
			if err != nil {
				return err
			}
			inserted += n
			failed += f
			entries = append(entries, es...)
		}
		return nil
	})
	if err != nil {
		return err
	}

	acc.fold(l.spec.Entity, inserted, updated, skipped, failed, entries)
	return nil
}

// bulkInsertSavepoint guards the bulk-insert fast path. PostgreSQL aborts a
// transaction on any failed statement, so the loader rolls back to this
// savepoint before attempting the per-row upserts.
const bulkInsertSavepoint = "bulk_insert"

// flushInserts bulk-inserts known-fresh entities in one statement. A
// duplicate-key violation rolls back to the pre-insert savepoint and drops
// down to per-row upserts so the rest of the batch still lands; any other
// error propagates for a batch retry.
func (l *UpsertLoader[T]) flushInserts(ctx context.Context, t tx.Tx, inserts []*T, recs []record.Record) (inserted, failed int, entries []Entry, err error) {
	if err := t.SavePoint(ctx, bulkInsertSavepoint); err != nil {
		return 0, 0, nil, exception.NewBatchOperationError(moduleName,
			fmt.Sprintf("savepoint before bulk insert of %d %s rows", len(inserts), l.spec.Entity), err)
	}
	_, bulkErr := t.BulkInsert(ctx, &inserts)
	if bulkErr == nil {
		return len(inserts), 0, nil, nil
	}
	if !l.manager.IsDuplicateKeyError(bulkErr) {
		return 0, 0, nil, exception.NewBatchOperationError(moduleName,
			fmt.Sprintf("bulk insert of %d %s rows", len(inserts), l.spec.Entity), bulkErr)
	}
	if err := t.RollbackTo(ctx, bulkInsertSavepoint); err != nil {
		return 0, 0, nil, exception.NewBatchOperationError(moduleName,
			fmt.Sprintf("rollback to savepoint after duplicate key in %s bulk insert", l.spec.Entity), err)
	}

	logger.Warnf("%s: bulk insert of %d %s rows hit a duplicate key, falling back to per-row upsert",
		moduleName, len(inserts), l.spec.Entity)
	for i, entity := range inserts {
		if _, upErr := t.BulkUpsert(ctx, entity, l.spec.ConflictColumns, l.spec.UpdateColumns); upErr != nil {
			failed++
			entries = append(entries, entry(fmt.Sprintf("%s: upsert fallback: %v", l.spec.Entity, upErr), recs[i]))
			continue
		}
		inserted++
	}
	return inserted, failed, entries, nil
}

func (l *UpsertLoader[T]) merge(existing *T, incoming *T) {
	if l.spec.Merge != nil {
		l.spec.Merge(existing, incoming)
		return
	}
	MergeNonZero(existing, incoming)
}

func entry(msg string, rec record.Record) Entry {
	return Entry{Message: msg, Record: rec, Timestamp: time.Now()}
}
