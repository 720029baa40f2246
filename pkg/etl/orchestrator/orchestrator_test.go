package orchestrator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/metrics"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/orchestrator"
)

// stubTracer collects span names and tracks how many are still open.
type stubTracer struct {
	names []string
	open  int
}

func (s *stubTracer) StartSpan(ctx context.Context, name string) (context.Context, metrics.Span) {
	s.names = append(s.names, name)
	s.open++
	return ctx, &stubSpan{t: s}
}

type stubSpan struct {
	t *stubTracer
}

func (s *stubSpan) End() { s.t.open-- }

// stubLoader records the datasets it is handed and reports every record as
// inserted.
type stubLoader struct {
	entity string
	order  *[]string
	calls  [][]record.Record
}

func (s *stubLoader) Entity() string { return s.entity }

func (s *stubLoader) Load(ctx context.Context, records []record.Record) *loader.Result {
	*s.order = append(*s.order, s.entity)
	s.calls = append(s.calls, records)
	r := loader.NewResult()
	r.TotalRecords = len(records)
	r.Inserted = len(records)
	return r
}

func registerStubs(o *orchestrator.Orchestrator, order *[]string, entities ...string) map[string]*stubLoader {
	stubs := map[string]*stubLoader{}
	for _, e := range entities {
		s := &stubLoader{entity: e, order: order}
		stubs[e] = s
		o.Register(s)
	}
	return stubs
}

func rec(fields map[string]interface{}) record.Record {
	return record.FromJSONMap(fields)
}

func TestLoadAllRunsStagesInDependencyOrder(t *testing.T) {
	o := orchestrator.New(nil, nil, nil)
	var order []string
	registerStubs(o, &order,
		"games", "dates", "leagues", "stat_categories", "roster_positions",
		"teams", "managers", "players", "player_eligible_positions",
		"transactions", "transaction_players", "rosters",
		"player_stats_daily", "standings", "matchups")

	data := orchestrator.Dataset{
		"matchups": {rec(map[string]interface{}{"team_key": "t1", "week": float64(1)})},
		"rosters":  {rec(map[string]interface{}{"team_key": "t1", "player_key": "p1"})},
		"players":  {rec(map[string]interface{}{"player_key": "p1"})},
		"teams":    {rec(map[string]interface{}{"team_key": "t1"})},
		"leagues":  {rec(map[string]interface{}{"league_key": "l1"})},
		"games":    {rec(map[string]interface{}{"game_key": "428"})},
	}

	_, err := o.LoadAll(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, []string{"games", "leagues", "teams", "players", "rosters", "matchups"}, order)
}

func TestLoadAllFlattensNestedChildren(t *testing.T) {
	o := orchestrator.New(nil, nil, nil)
	var order []string
	stubs := registerStubs(o, &order, "leagues", "stat_categories", "roster_positions", "teams", "managers")

	data := orchestrator.Dataset{
		"leagues": {rec(map[string]interface{}{
			"league_key": "428.l.12345",
			"name":       "Test League",
			"stat_categories": []interface{}{
				map[string]interface{}{"stat_id": float64(12), "name": "Points"},
				map[string]interface{}{"stat_id": float64(15), "name": "Rebounds"},
			},
		})},
		"teams": {rec(map[string]interface{}{
			"team_key": "428.l.12345.t.1",
			"managers": []interface{}{
				map[string]interface{}{"manager_id": "1", "nickname": "alice"},
			},
		})},
	}

	results, err := o.LoadAll(context.Background(), data)
	require.NoError(t, err)

	// Children load right after their parent.
	assert.Equal(t, []string{"leagues", "stat_categories", "teams", "managers"}, order)

	// The child records inherit the parent key.
	cats := stubs["stat_categories"].calls[0]
	require.Len(t, cats, 2)
	lk, _ := cats[0].StringField("league_key")
	assert.Equal(t, "428.l.12345", lk)

	managers := stubs["managers"].calls[0]
	require.Len(t, managers, 1)
	tk, _ := managers[0].StringField("team_key")
	assert.Equal(t, "428.l.12345.t.1", tk)

	// The parent loader never sees the nested lists.
	parent := stubs["leagues"].calls[0][0]
	assert.False(t, parent.Has("stat_categories"))

	// Parent and child counts combine into the stage result.
	assert.Equal(t, 3, results["leagues"].Inserted)
	assert.Equal(t, 2, results["teams"].Inserted)
}

func TestLoadAllSynthesizesCalendarFromLeagueWindows(t *testing.T) {
	o := orchestrator.New(nil, nil, nil)
	var order []string
	stubs := registerStubs(o, &order, "dates", "leagues")

	data := orchestrator.Dataset{
		"leagues": {rec(map[string]interface{}{
			"league_key": "428.l.12345",
			"season":     "2023",
			"start_date": "2023-10-24",
			"end_date":   "2023-10-26",
		})},
	}

	results, err := o.LoadAll(context.Background(), data)
	require.NoError(t, err)

	// One calendar row per day, endpoints inclusive, loaded before leagues.
	assert.Equal(t, []string{"dates", "leagues"}, order)
	require.Len(t, stubs["dates"].calls[0], 3)
	first := stubs["dates"].calls[0][0]
	lk, _ := first.StringField("league_key")
	assert.Equal(t, "428.l.12345", lk)
	day, ok := first.DateField("date")
	require.True(t, ok)
	assert.Equal(t, "2023-10-24", day.Format("2006-01-02"))
	assert.Equal(t, 3, results["dates"].Inserted)
}

func TestLoadAllTracesRunAndStages(t *testing.T) {
	tracer := &stubTracer{}
	o := orchestrator.New(nil, nil, tracer)
	var order []string
	registerStubs(o, &order, "games", "teams")

	data := orchestrator.Dataset{
		"games": {rec(map[string]interface{}{"game_key": "428"})},
		"teams": {rec(map[string]interface{}{"team_key": "t1"})},
	}

	_, err := o.LoadAll(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, []string{"orchestrator.LoadAll", "stage.games", "stage.teams"}, tracer.names)
	assert.Zero(t, tracer.open)
}

func TestDateRangeRejectsInvertedWindow(t *testing.T) {
	start := time.Date(2023, 10, 26, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 10, 24, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, orchestrator.DateRange("428.l.12345", "2023", start, end))
}

func TestLoadAllReportsUnknownDataset(t *testing.T) {
	o := orchestrator.New(nil, nil, nil)
	var order []string
	registerStubs(o, &order, "games")

	data := orchestrator.Dataset{
		"games":   {rec(map[string]interface{}{"game_key": "428"})},
		"mystery": {rec(map[string]interface{}{"id": "1"})},
	}

	results, err := o.LoadAll(context.Background(), data)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
	// The known dataset still loads.
	assert.Equal(t, 1, results["games"].Inserted)
}

func TestLoadAllIsolatesMissingLoader(t *testing.T) {
	o := orchestrator.New(nil, nil, nil)
	var order []string
	registerStubs(o, &order, "teams")

	data := orchestrator.Dataset{
		"games": {rec(map[string]interface{}{"game_key": "428"})},
		"teams": {rec(map[string]interface{}{"team_key": "t1"})},
	}

	results, err := o.LoadAll(context.Background(), data)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "games")
	assert.Equal(t, 1, results["teams"].Inserted)
}

func TestSummarize(t *testing.T) {
	a := loader.NewResult()
	a.TotalRecords = 10
	a.Inserted = 8
	a.Skipped = 2

	b := loader.NewResult()
	b.TotalRecords = 5
	b.Updated = 4
	b.Failed = 1

	s := orchestrator.Summarize(map[string]*loader.Result{"games": a, "teams": b})

	assert.Equal(t, 2, s.Datasets)
	assert.Equal(t, 15, s.TotalRecords)
	assert.Equal(t, 8, s.Inserted)
	assert.Equal(t, 4, s.Updated)
	assert.Equal(t, 2, s.Skipped)
	assert.Equal(t, 1, s.Failed)
}
