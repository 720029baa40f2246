package orchestrator

import (
	"go.uber.org/fx"

	"github.com/tigerroll/fantasyload/pkg/etl/core/config"
	"github.com/tigerroll/fantasyload/pkg/etl/core/engine"
	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/metrics"
	"github.com/tigerroll/fantasyload/pkg/etl/core/tx"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/specs"
)

// register builds one entity loader from its spec and the entity-specific
// engine overrides, and registers it on the orchestrator.
func register[T any](o *Orchestrator, cfg *config.Config, manager tx.Manager, recorder metrics.Recorder, spec loader.Spec[T]) error {
	engineCfg, err := cfg.EngineConfigFor(spec.Entity)
	if err != nil {
		return err
	}
	eng := engine.New(spec.Entity, engineCfg, recorder)
	o.Register(loader.NewUpsertLoader(spec, eng, manager, recorder))
	return nil
}

// NewOrchestratorProvider assembles the orchestrator with one loader per
// supported entity type.
func NewOrchestratorProvider(cfg *config.Config, manager tx.Manager, recorder metrics.Recorder, tracer metrics.Tracer) (*Orchestrator, error) {
	o := New(manager, recorder, tracer)

	if err := register(o, cfg, manager, recorder, specs.GameSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.DateSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.LeagueSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.StatCategorySpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.RosterPositionSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.TeamSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.ManagerSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.PlayerSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.EligiblePositionSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.TransactionSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.TransactionPlayerSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.RosterSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.PlayerDailyStatsSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.PlayerSeasonStatsSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.TeamStatsSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.StandingsSpec()); err != nil {
		return nil, err
	}
	if err := register(o, cfg, manager, recorder, specs.MatchupSpec()); err != nil {
		return nil, err
	}

	return o, nil
}

// Module wires the orchestrator into the application container.
var Module = fx.Options(
	fx.Provide(NewOrchestratorProvider),
)
