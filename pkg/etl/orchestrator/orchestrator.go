// Package orchestrator coordinates full-dataset loads across entity types in
// dependency order and validates referential consistency afterwards.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/metrics"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/core/tx"
	"github.com/tigerroll/fantasyload/pkg/etl/support/exception"
	"github.com/tigerroll/fantasyload/pkg/etl/support/logger"
)

const moduleName = "orchestrator"

// Dataset is one extracted snapshot: records grouped by entity type name.
type Dataset map[string][]record.Record

// EntityLoader is the loader surface the orchestrator drives. Every
// UpsertLoader satisfies it.
type EntityLoader interface {
	Entity() string
	Load(ctx context.Context, records []record.Record) *loader.Result
}

// stage is one step of the fixed dependency order: the dataset it consumes
// and the child datasets nested inside its records.
type stage struct {
	dataset string
	// children maps a nested list field of the parent record to the entity
	// type it loads and the parent key fields copied onto each child.
	children []childStage
}

type childStage struct {
	field      string
	entity     string
	parentKeys []string
}

// stageOrder fixes the load order so foreign keys always resolve: games and
// the calendar first, then leagues, teams, players, and only then the
// fact-like datasets referencing them.
var stageOrder = []stage{
	{dataset: "games"},
	{dataset: "dates"},
	{dataset: "leagues", children: []childStage{
		{field: "stat_categories", entity: "stat_categories", parentKeys: []string{"league_key"}},
		{field: "roster_positions", entity: "roster_positions", parentKeys: []string{"league_key"}},
	}},
	{dataset: "teams", children: []childStage{
		{field: "managers", entity: "managers", parentKeys: []string{"team_key"}},
	}},
	{dataset: "players", children: []childStage{
		{field: "eligible_positions", entity: "player_eligible_positions", parentKeys: []string{"player_key"}},
	}},
	{dataset: "transactions", children: []childStage{
		{field: "players", entity: "transaction_players", parentKeys: []string{"transaction_key"}},
	}},
	{dataset: "rosters"},
	{dataset: "player_stats_daily"},
	{dataset: "player_stats_season"},
	{dataset: "team_stats"},
	{dataset: "standings"},
	{dataset: "matchups"},
}

// Orchestrator owns the registered entity loaders and the persistence port
// used by the consistency checks.
type Orchestrator struct {
	loaders  map[string]EntityLoader
	manager  tx.Manager
	recorder metrics.Recorder
	tracer   metrics.Tracer
}

// New creates an Orchestrator without any loaders registered.
func New(manager tx.Manager, recorder metrics.Recorder, tracer metrics.Tracer) *Orchestrator {
	if recorder == nil {
		recorder = metrics.NewNoOpRecorder()
	}
	if tracer == nil {
		tracer = metrics.NewNoOpTracer()
	}
	return &Orchestrator{
		loaders:  make(map[string]EntityLoader),
		manager:  manager,
		recorder: recorder,
		tracer:   tracer,
	}
}

// Register adds a loader under its entity type name, replacing any previous
// registration.
func (o *Orchestrator) Register(l EntityLoader) {
	o.loaders[l.Entity()] = l
}

// LoadAll runs every stage of the fixed order whose dataset is present in
// data. A failing stage is recorded and does not stop the remaining stages;
// the aggregate of stage-level problems is returned alongside the per-entity
// results.
func (o *Orchestrator) LoadAll(ctx context.Context, data Dataset) (map[string]*loader.Result, error) {
	runID := uuid.New().String()
	results := make(map[string]*loader.Result)
	var errs *multierror.Error

	if _, ok := data["dates"]; !ok {
		if synth := synthesizeDates(data["leagues"]); len(synth) > 0 {
			patched := make(Dataset, len(data)+1)
			for name, records := range data {
				patched[name] = records
			}
			patched["dates"] = synth
			data = patched
			logger.Infof("%s: synthesized %d calendar rows from league season windows", moduleName, len(synth))
		}
	}

	logger.Infof("%s: run %s starting with %d datasets", moduleName, runID, len(data))
	started := time.Now()

	ctx, runSpan := o.tracer.StartSpan(ctx, "orchestrator.LoadAll")
	defer runSpan.End()

	consumed := make(map[string]bool, len(data))
	for _, st := range stageOrder {
		records, ok := data[st.dataset]
		if !ok {
			continue
		}
		consumed[st.dataset] = true

		stageCtx, span := o.tracer.StartSpan(ctx, "stage."+st.dataset)
		stageStart := time.Now()
		result, err := o.runStage(stageCtx, st, records)
		span.End()
		o.recorder.RecordStage(st.dataset, time.Since(stageStart), err)
		if result != nil {
			results[st.dataset] = result
		}
		if err != nil {
			errs = multierror.Append(errs, exception.NewOrchestrationError(moduleName,
				fmt.Sprintf("stage %s failed", st.dataset), err))
			logger.Errorf("%s: run %s stage %s failed: %v", moduleName, runID, st.dataset, err)
			continue
		}
		logger.Infof("%s: run %s stage %s done: inserted=%d updated=%d skipped=%d failed=%d",
			moduleName, runID, st.dataset, result.Inserted, result.Updated, result.Skipped, result.Failed)
	}

	for name := range data {
		if !consumed[name] {
			errs = multierror.Append(errs, exception.NewOrchestrationError(moduleName,
				fmt.Sprintf("unknown dataset %q", name), nil))
		}
	}

	logger.Infof("%s: run %s finished in %s", moduleName, runID, time.Since(started))
	return results, errs.ErrorOrNil()
}

// runStage loads one dataset. Composite stages load the parent records
// first, then the nested child records with the parent keys injected, and
// combine the results into one.
func (o *Orchestrator) runStage(ctx context.Context, st stage, records []record.Record) (*loader.Result, error) {
	parentLoader, ok := o.loaders[st.dataset]
	if !ok {
		return nil, exception.NewOrchestrationError(moduleName,
			fmt.Sprintf("no loader registered for %q", st.dataset), nil)
	}

	parents := records
	if len(st.children) > 0 {
		parents = stripChildren(records, st.children)
	}
	result := parentLoader.Load(ctx, parents)

	for _, child := range st.children {
		childRecords := collectChildren(records, child)
		if len(childRecords) == 0 {
			continue
		}
		childLoader, ok := o.loaders[child.entity]
		if !ok {
			return result, exception.NewOrchestrationError(moduleName,
				fmt.Sprintf("no loader registered for %q", child.entity), nil)
		}
		result = result.Combine(childLoader.Load(ctx, childRecords))
	}
	return result, nil
}

// stripChildren returns copies of the parent records with the nested child
// lists removed, so the parent loader never sees them.
func stripChildren(records []record.Record, children []childStage) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, rec := range records {
		parent := rec.Clone()
		for _, child := range children {
			delete(parent, child.field)
		}
		out = append(out, parent)
	}
	return out
}

// collectChildren flattens one nested list across all parent records,
// copying the parent key fields onto each child.
func collectChildren(records []record.Record, child childStage) []record.Record {
	var out []record.Record
	for _, parent := range records {
		for _, nested := range parent.ChildRecords(child.field) {
			rec := nested.Clone()
			for _, keyField := range child.parentKeys {
				if !rec.Has(keyField) {
					rec[keyField] = parent.Get(keyField)
				}
			}
			out = append(out, rec)
		}
	}
	return out
}

// Summary aggregates per-entity results into run totals.
type Summary struct {
	Datasets     int
	TotalRecords int
	Inserted     int
	Updated      int
	Skipped      int
	Failed       int
}

// Summarize folds a LoadAll result map into one Summary.
func Summarize(results map[string]*loader.Result) Summary {
	var s Summary
	s.Datasets = len(results)
	for _, r := range results {
		s.TotalRecords += r.TotalRecords
		s.Inserted += r.Inserted
		s.Updated += r.Updated
		s.Skipped += r.Skipped
		s.Failed += r.Failed
	}
	return s
}
