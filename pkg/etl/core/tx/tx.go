// Package tx declares the persistence port consumed by the load path. The
// engine and loaders only ever see these interfaces; the GORM adapter under
// pkg/etl/adapter/database implements them. Each batch operation runs inside
// exactly one Tx, committed on success and rolled back on any error, so a
// transaction scope is never shared across worker goroutines.
package tx

import (
	"context"
	"database/sql"
)

// Executor defines the data operations available both on a bare connection
// and inside a transaction.
type Executor interface {
	// BulkInsert inserts a slice of entities in one statement.
	// entities must be a pointer to a slice of one entity type.
	// A unique-constraint violation surfaces as an error for which the
	// connection's IsDuplicateKeyError reports true; callers fall back to
	// per-row upserts in that case.
	BulkInsert(ctx context.Context, entities interface{}) (rowsAffected int64, err error)

	// BulkUpsert inserts the entities with insert-or-update semantics keyed
	// on conflictColumns. An empty updateColumns list means conflicting rows
	// are left untouched (DO NOTHING).
	BulkUpsert(ctx context.Context, entities interface{}, conflictColumns, updateColumns []string) (rowsAffected int64, err error)

	// UpdateByKey writes the named columns of entity to the rows matching
	// the key predicate (column name -> value, combined with AND). The named
	// columns are written even when their field holds the zero value, so a
	// correction to false/0/"" reaches the database. An empty column list
	// writes the non-zero fields only.
	UpdateByKey(ctx context.Context, entity interface{}, key map[string]interface{}, columns []string) (rowsAffected int64, err error)

	// FindOne loads the single row matching the key predicate into dest
	// (a pointer to an entity). found is false when no row matches.
	FindOne(ctx context.Context, dest interface{}, key map[string]interface{}) (found bool, err error)

	// FindAll loads every row matching the predicate into dest (a pointer to
	// a slice). A nil predicate selects the whole table.
	FindAll(ctx context.Context, dest interface{}, query map[string]interface{}) error

	// Count returns the number of rows of model's table matching the
	// predicate.
	Count(ctx context.Context, model interface{}, query map[string]interface{}) (int64, error)
}

// Tx represents one ongoing transaction scope.
type Tx interface {
	Executor

	// SavePoint marks a named savepoint inside the transaction. On backends
	// where a failed statement aborts the whole transaction (PostgreSQL),
	// callers set one before a statement they intend to recover from.
	SavePoint(ctx context.Context, name string) error

	// RollbackTo discards the work done since the named savepoint and
	// returns the transaction to a usable state.
	RollbackTo(ctx context.Context, name string) error
}

// Manager owns the transaction lifecycle. Begin hands out an isolated scope;
// exactly one of Commit or Rollback must be called on every scope.
type Manager interface {
	Begin(ctx context.Context, opts ...*sql.TxOptions) (Tx, error)
	Commit(tx Tx) error
	Rollback(tx Tx) error

	// IsDuplicateKeyError reports whether err is the backend's
	// unique-constraint violation.
	IsDuplicateKeyError(err error) bool
}

// WithTx runs fn inside a fresh transaction scope, committing on a nil error
// and rolling back otherwise. The scope is released on all paths.
func WithTx(ctx context.Context, mgr Manager, fn func(tx Tx) error) error {
	scope, err := mgr.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(scope); err != nil {
		_ = mgr.Rollback(scope)
		return err
	}
	return mgr.Commit(scope)
}
