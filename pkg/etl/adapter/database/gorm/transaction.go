package gorm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	tx "github.com/tigerroll/fantasyload/pkg/etl/core/tx"
)

// GormTxAdapter implements tx.Tx on one GORM transaction scope.
type GormTxAdapter struct {
	db *gorm.DB
}

var _ tx.Tx = (*GormTxAdapter)(nil)

// BulkInsert implements tx.Executor.
func (t *GormTxAdapter) BulkInsert(ctx context.Context, entities interface{}) (int64, error) {
	result := t.db.WithContext(ctx).Create(entities)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// BulkUpsert implements tx.Executor using an ON CONFLICT clause keyed on
// conflictColumns. An empty updateColumns list produces DO NOTHING.
func (t *GormTxAdapter) BulkUpsert(ctx context.Context, entities interface{}, conflictColumns, updateColumns []string) (int64, error) {
	var columns []clause.Column
	for _, col := range conflictColumns {
		columns = append(columns, clause.Column{Name: col})
	}

	onConflict := clause.OnConflict{Columns: columns}
	if len(updateColumns) > 0 {
		onConflict.DoUpdates = clause.AssignmentColumns(updateColumns)
	} else {
		onConflict.DoNothing = true
	}

	result := t.db.WithContext(ctx).Clauses(onConflict).Create(entities)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateByKey implements tx.Executor. GORM's Updates skips zero-value struct
// fields, so the columns list is forced onto the statement with Select; that
// way a field merged to false/0/"" is still written. An empty list keeps the
// skip-zero behavior.
func (t *GormTxAdapter) UpdateByKey(ctx context.Context, entity interface{}, key map[string]interface{}, columns []string) (int64, error) {
	db := t.db.WithContext(ctx).Model(entity).Where(key)
	if len(columns) > 0 {
		db = db.Select(columns)
	}
	result := db.Updates(entity)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SavePoint implements tx.Tx.
func (t *GormTxAdapter) SavePoint(ctx context.Context, name string) error {
	return t.db.WithContext(ctx).SavePoint(name).Error
}

// RollbackTo implements tx.Tx.
func (t *GormTxAdapter) RollbackTo(ctx context.Context, name string) error {
	return t.db.WithContext(ctx).RollbackTo(name).Error
}

// FindOne implements tx.Executor.
func (t *GormTxAdapter) FindOne(ctx context.Context, dest interface{}, key map[string]interface{}) (bool, error) {
	result := t.db.WithContext(ctx).Where(key).First(dest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// FindAll implements tx.Executor.
func (t *GormTxAdapter) FindAll(ctx context.Context, dest interface{}, query map[string]interface{}) error {
	db := t.db.WithContext(ctx)
	if query != nil {
		db = db.Where(query)
	}
	return db.Find(dest).Error
}

// Count implements tx.Executor.
func (t *GormTxAdapter) Count(ctx context.Context, model interface{}, query map[string]interface{}) (int64, error) {
	var count int64
	db := t.db.WithContext(ctx).Model(model)
	if query != nil {
		db = db.Where(query)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormTransactionManager implements tx.Manager over one Connection.
type GormTransactionManager struct {
	conn *Connection
}

var _ tx.Manager = (*GormTransactionManager)(nil)

// NewTransactionManager creates a tx.Manager bound to conn.
func NewTransactionManager(conn *Connection) tx.Manager {
	return &GormTransactionManager{conn: conn}
}

// Begin implements tx.Manager.
func (m *GormTransactionManager) Begin(ctx context.Context, opts ...*sql.TxOptions) (tx.Tx, error) {
	var txOpts *sql.TxOptions
	if len(opts) > 0 && opts[0] != nil {
		txOpts = opts[0]
	}

	gormTx := m.conn.GormDB().WithContext(ctx).Begin(txOpts)
	if gormTx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", gormTx.Error)
	}
	return &GormTxAdapter{db: gormTx}, nil
}

// Commit implements tx.Manager.
func (m *GormTransactionManager) Commit(t tx.Tx) error {
	adapter, ok := t.(*GormTxAdapter)
	if !ok {
		return fmt.Errorf("invalid transaction type: expected *GormTxAdapter")
	}
	return adapter.db.Commit().Error
}

// Rollback implements tx.Manager.
func (m *GormTransactionManager) Rollback(t tx.Tx) error {
	adapter, ok := t.(*GormTxAdapter)
	if !ok {
		return fmt.Errorf("invalid transaction type: expected *GormTxAdapter")
	}
	return adapter.db.Rollback().Error
}

// IsDuplicateKeyError implements tx.Manager. GORM's TranslateError maps most
// backends onto gorm.ErrDuplicatedKey; the message checks cover drivers that
// predate the translation.
func (m *GormTransactionManager) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "Duplicate entry") || // MySQL (Error 1062)
		strings.Contains(msg, "duplicate key value violates unique constraint") || // PostgreSQL (23505)
		strings.Contains(msg, "SQLSTATE 23505")
}
