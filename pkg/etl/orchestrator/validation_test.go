package orchestrator_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/fantasyload/pkg/etl/core/tx"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
	"github.com/tigerroll/fantasyload/pkg/etl/orchestrator"
)

// valManager serves the consistency checks from in-memory tables.
type valManager struct {
	league       *entity.League
	teams        []entity.Team
	players      []entity.Player
	rosters      []entity.RosterDaily
	dailyStats   []entity.PlayerDailyStats
	transactions []entity.Transaction

	// managersPerTeam / playersPerTransaction feed the Count queries.
	managersPerTeam       map[string]int64
	playersPerTransaction map[string]int64
}

func (m *valManager) Begin(ctx context.Context, opts ...*sql.TxOptions) (tx.Tx, error) {
	return &valTx{m: m}, nil
}
func (m *valManager) Commit(t tx.Tx) error             { return nil }
func (m *valManager) Rollback(t tx.Tx) error           { return nil }
func (m *valManager) IsDuplicateKeyError(e error) bool { return false }

type valTx struct {
	m *valManager
}

func (t *valTx) BulkInsert(ctx context.Context, entities interface{}) (int64, error) {
	return 0, nil
}

func (t *valTx) BulkUpsert(ctx context.Context, entities interface{}, conflictColumns, updateColumns []string) (int64, error) {
	return 0, nil
}

func (t *valTx) UpdateByKey(ctx context.Context, entity interface{}, key map[string]interface{}, columns []string) (int64, error) {
	return 0, nil
}

func (t *valTx) SavePoint(ctx context.Context, name string) error  { return nil }
func (t *valTx) RollbackTo(ctx context.Context, name string) error { return nil }

func (t *valTx) FindOne(ctx context.Context, dest interface{}, key map[string]interface{}) (bool, error) {
	if league, ok := dest.(*entity.League); ok && t.m.league != nil {
		*league = *t.m.league
		return true, nil
	}
	return false, nil
}

func (t *valTx) FindAll(ctx context.Context, dest interface{}, query map[string]interface{}) error {
	switch d := dest.(type) {
	case *[]entity.Team:
		*d = t.m.teams
	case *[]entity.Player:
		*d = t.m.players
	case *[]entity.RosterDaily:
		*d = t.m.rosters
	case *[]entity.PlayerDailyStats:
		*d = t.m.dailyStats
	case *[]entity.Transaction:
		*d = t.m.transactions
	}
	return nil
}

func (t *valTx) Count(ctx context.Context, model interface{}, query map[string]interface{}) (int64, error) {
	switch model.(type) {
	case *entity.Manager:
		return t.m.managersPerTeam[query["team_key"].(string)], nil
	case *entity.TransactionPlayer:
		return t.m.playersPerTransaction[query["transaction_key"].(string)], nil
	}
	return 0, nil
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func consistentManager() *valManager {
	return &valManager{
		league: &entity.League{
			LeagueKey: "428.l.12345",
			StartDate: "2023-10-24",
			EndDate:   "2024-04-14",
		},
		teams:   []entity.Team{{TeamKey: "t1", LeagueKey: "428.l.12345"}},
		players: []entity.Player{{PlayerKey: "p1", LeagueKey: "428.l.12345"}},
		rosters: []entity.RosterDaily{
			{TeamKey: "t1", PlayerKey: "p1", LeagueKey: "428.l.12345", Date: day("2023-10-25")},
		},
		dailyStats: []entity.PlayerDailyStats{
			{PlayerKey: "p1", LeagueKey: "428.l.12345", Date: day("2023-10-25")},
		},
		transactions:          []entity.Transaction{{TransactionKey: "x1", LeagueKey: "428.l.12345"}},
		managersPerTeam:       map[string]int64{"t1": 1},
		playersPerTransaction: map[string]int64{"x1": 2},
	}
}

func TestValidateConsistencyCleanLeague(t *testing.T) {
	o := orchestrator.New(consistentManager(), nil, nil)

	report, err := o.ValidateConsistency(context.Background(), "428.l.12345")
	require.NoError(t, err)

	assert.True(t, report.IsValid)
	assert.Empty(t, report.Warnings)
	assert.Empty(t, report.Errors)
	assert.Equal(t, []string{
		"teams_have_managers",
		"roster_player_references",
		"stats_date_ranges",
		"transaction_consistency",
	}, report.ChecksPerformed)
}

func TestValidateConsistencyDanglingRosterReferenceInvalidates(t *testing.T) {
	m := consistentManager()
	m.rosters = append(m.rosters, entity.RosterDaily{
		TeamKey: "t1", PlayerKey: "ghost", LeagueKey: "428.l.12345", Date: day("2023-10-25"),
	})
	o := orchestrator.New(m, nil, nil)

	report, err := o.ValidateConsistency(context.Background(), "428.l.12345")
	require.NoError(t, err)

	assert.False(t, report.IsValid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "roster player keys")
}

func TestValidateConsistencyWarningsDoNotInvalidate(t *testing.T) {
	m := consistentManager()
	m.managersPerTeam["t1"] = 0
	m.playersPerTransaction["x1"] = 0
	m.dailyStats = append(m.dailyStats, entity.PlayerDailyStats{
		PlayerKey: "p1", LeagueKey: "428.l.12345", Date: day("2024-07-01"),
	})
	o := orchestrator.New(m, nil, nil)

	report, err := o.ValidateConsistency(context.Background(), "428.l.12345")
	require.NoError(t, err)

	assert.True(t, report.IsValid)
	assert.Len(t, report.Warnings, 3)
}

func TestValidateConsistencySkipsDateCheckWithoutSeasonWindow(t *testing.T) {
	m := consistentManager()
	m.league.StartDate = ""
	o := orchestrator.New(m, nil, nil)

	report, err := o.ValidateConsistency(context.Background(), "428.l.12345")
	require.NoError(t, err)

	assert.True(t, report.IsValid)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "season window")
}
