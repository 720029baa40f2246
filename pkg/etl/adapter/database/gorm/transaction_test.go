package gorm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"

	gormadapter "github.com/tigerroll/fantasyload/pkg/etl/adapter/database/gorm"
	"github.com/tigerroll/fantasyload/pkg/etl/core/config"
	"github.com/tigerroll/fantasyload/pkg/etl/core/tx"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
)

// setupMock wires a sqlmock-backed Connection and transaction manager.
func setupMock(t *testing.T) (sqlmock.Sqlmock, tx.Manager) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysqldriver.New(mysqldriver.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         gormadapter.NewGormLogger("SILENT"),
		TranslateError: true,
	})
	require.NoError(t, err)

	conn, err := gormadapter.NewConnection(gormDB, config.DatabaseConfig{Type: "mysql"}, "mock")
	require.NoError(t, err)

	return mock, gormadapter.NewTransactionManager(conn)
}

func TestFindOneReturnsRow(t *testing.T) {
	mock, manager := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `games` WHERE `game_key` = ?").
		WithArgs("428", 1).
		WillReturnRows(sqlmock.NewRows([]string{"game_key", "name", "code", "season"}).
			AddRow("428", "Basketball", "nba", "2023"))
	mock.ExpectCommit()

	scope, err := manager.Begin(context.Background())
	require.NoError(t, err)

	var game entity.Game
	found, err := scope.FindOne(context.Background(), &game, map[string]interface{}{"game_key": "428"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Basketball", game.Name)

	require.NoError(t, manager.Commit(scope))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOneMissReportsNotFound(t *testing.T) {
	mock, manager := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `games`").
		WillReturnRows(sqlmock.NewRows([]string{"game_key"}))
	mock.ExpectRollback()

	scope, err := manager.Begin(context.Background())
	require.NoError(t, err)

	var game entity.Game
	found, err := scope.FindOne(context.Background(), &game, map[string]interface{}{"game_key": "999"})
	assert.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, manager.Rollback(scope))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsertExecutesSingleStatement(t *testing.T) {
	mock, manager := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `games`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	scope, err := manager.Begin(context.Background())
	require.NoError(t, err)

	games := []*entity.Game{
		{GameKey: "428", GameID: "428", Name: "Basketball", Code: "nba", Season: "2023"},
		{GameKey: "429", GameID: "429", Name: "Football", Code: "nfl", Season: "2023"},
	}
	n, err := scope.BulkInsert(context.Background(), &games)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, manager.Commit(scope))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByKeyWritesZeroValuedColumns(t *testing.T) {
	mock, manager := setupMock(t)

	// A merged entity can legitimately carry zero values in the columns to
	// write. Selecting the columns explicitly keeps them in the SET clause.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `games` SET (.*)`is_game_over`=(.*) WHERE `game_key` =").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	scope, err := manager.Begin(context.Background())
	require.NoError(t, err)

	game := &entity.Game{GameKey: "428", IsGameOver: false}
	n, err := scope.UpdateByKey(context.Background(), game,
		map[string]interface{}{"game_key": "428"}, []string{"is_game_over"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, manager.Commit(scope))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePointAndRollbackTo(t *testing.T) {
	mock, manager := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("SAVEPOINT bulk_insert").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ROLLBACK TO SAVEPOINT bulk_insert").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	scope, err := manager.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, scope.SavePoint(context.Background(), "bulk_insert"))
	require.NoError(t, scope.RollbackTo(context.Background(), "bulk_insert"))

	require.NoError(t, manager.Commit(scope))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAppliesPredicate(t *testing.T) {
	mock, manager := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `teams`").
		WithArgs("428.l.12345").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectCommit()

	scope, err := manager.Begin(context.Background())
	require.NoError(t, err)

	n, err := scope.Count(context.Background(), &entity.Team{}, map[string]interface{}{"league_key": "428.l.12345"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	require.NoError(t, manager.Commit(scope))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	mock, manager := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	opErr := errors.New("batch failed")
	err := tx.WithTx(context.Background(), manager, func(scope tx.Tx) error {
		return opErr
	})

	assert.ErrorIs(t, err, opErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDuplicateKeyErrorRecognizesBackendMessages(t *testing.T) {
	_, manager := setupMock(t)

	assert.False(t, manager.IsDuplicateKeyError(nil))
	assert.False(t, manager.IsDuplicateKeyError(errors.New("connection reset")))
	assert.True(t, manager.IsDuplicateKeyError(gorm.ErrDuplicatedKey))
	assert.True(t, manager.IsDuplicateKeyError(errors.New("UNIQUE constraint failed: games.game_key")))
	assert.True(t, manager.IsDuplicateKeyError(errors.New("Error 1062: Duplicate entry '428' for key 'PRIMARY'")))
	assert.True(t, manager.IsDuplicateKeyError(errors.New(`duplicate key value violates unique constraint "games_pkey" (SQLSTATE 23505)`)))
}

func TestDialectorRegistry(t *testing.T) {
	gormadapter.RegisterDialector("fake", func(cfg config.DatabaseConfig) (gorm.Dialector, error) {
		return nil, nil
	})

	_, err := gormadapter.GetDialectorFactory("fake")
	assert.NoError(t, err)

	_, err = gormadapter.GetDialectorFactory("no-such-backend")
	assert.Error(t, err)
}
