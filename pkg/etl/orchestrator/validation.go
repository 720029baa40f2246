package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/tx"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
	"github.com/tigerroll/fantasyload/pkg/etl/support/logger"
)

// Report is the outcome of the post-load consistency checks for one league.
// Errors mark the league's data as inconsistent; warnings flag oddities that
// do not invalidate it.
type Report struct {
	LeagueKey       string
	IsValid         bool
	Warnings        []string
	Errors          []string
	ChecksPerformed []string
	ValidationTime  time.Time
}

func (r *Report) warn(format string, a ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, a...))
}

func (r *Report) fail(format string, a ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, a...))
	r.IsValid = false
}

// ValidateConsistency cross-checks the loaded data of one league: every team
// should have a manager, every roster entry must reference a loaded player,
// daily stats should fall inside the league's season window, and every
// transaction should carry at least one player movement. Dangling roster
// references invalidate the report; the other findings are warnings.
func (o *Orchestrator) ValidateConsistency(ctx context.Context, leagueKey string) (*Report, error) {
	report := &Report{
		LeagueKey:      leagueKey,
		IsValid:        true,
		ValidationTime: time.Now(),
	}

	ctx, span := o.tracer.StartSpan(ctx, "orchestrator.ValidateConsistency")
	defer span.End()

	err := tx.WithTx(ctx, o.manager, func(scope tx.Tx) error {
		if err := checkTeamManagers(ctx, scope, leagueKey, report); err != nil {
			return err
		}
		if err := checkRosterPlayerReferences(ctx, scope, leagueKey, report); err != nil {
			return err
		}
		if err := checkStatsDateRanges(ctx, scope, leagueKey, report); err != nil {
			return err
		}
		return checkTransactionConsistency(ctx, scope, leagueKey, report)
	})
	if err != nil {
		report.fail("validation aborted: %v", err)
		return report, err
	}

	logger.Infof("%s: consistency check for %s: valid=%t warnings=%d errors=%d",
		moduleName, leagueKey, report.IsValid, len(report.Warnings), len(report.Errors))
	return report, nil
}

func checkTeamManagers(ctx context.Context, scope tx.Tx, leagueKey string, report *Report) error {
	report.ChecksPerformed = append(report.ChecksPerformed, "teams_have_managers")

	var teams []entity.Team
	if err := scope.FindAll(ctx, &teams, map[string]interface{}{"league_key": leagueKey}); err != nil {
		return err
	}
	for _, team := range teams {
		n, err := scope.Count(ctx, &entity.Manager{}, map[string]interface{}{"team_key": team.TeamKey})
		if err != nil {
			return err
		}
		if n == 0 {
			report.warn("team %s has no manager", team.TeamKey)
		}
	}
	return nil
}

func checkRosterPlayerReferences(ctx context.Context, scope tx.Tx, leagueKey string, report *Report) error {
	report.ChecksPerformed = append(report.ChecksPerformed, "roster_player_references")

	var players []entity.Player
	if err := scope.FindAll(ctx, &players, map[string]interface{}{"league_key": leagueKey}); err != nil {
		return err
	}
	known := make(map[string]bool, len(players))
	for _, p := range players {
		known[p.PlayerKey] = true
	}

	var rosters []entity.RosterDaily
	if err := scope.FindAll(ctx, &rosters, map[string]interface{}{"league_key": leagueKey}); err != nil {
		return err
	}
	dangling := make(map[string]bool)
	for _, r := range rosters {
		if !known[r.PlayerKey] {
			dangling[r.PlayerKey] = true
		}
	}
	if len(dangling) > 0 {
		report.fail("%d roster player keys have no matching player row", len(dangling))
	}
	return nil
}

func checkStatsDateRanges(ctx context.Context, scope tx.Tx, leagueKey string, report *Report) error {
	report.ChecksPerformed = append(report.ChecksPerformed, "stats_date_ranges")

	var league entity.League
	found, err := scope.FindOne(ctx, &league, map[string]interface{}{"league_key": leagueKey})
	if err != nil {
		return err
	}
	if !found || league.StartDate == "" || league.EndDate == "" {
		report.warn("league %s is missing its season window, skipping date range check", leagueKey)
		return nil
	}
	start, err := time.Parse("2006-01-02", league.StartDate)
	if err != nil {
		report.warn("league %s has unparseable start_date %q", leagueKey, league.StartDate)
		return nil
	}
	end, err := time.Parse("2006-01-02", league.EndDate)
	if err != nil {
		report.warn("league %s has unparseable end_date %q", leagueKey, league.EndDate)
		return nil
	}

	var stats []entity.PlayerDailyStats
	if err := scope.FindAll(ctx, &stats, map[string]interface{}{"league_key": leagueKey}); err != nil {
		return err
	}
	outOfRange := 0
	for _, s := range stats {
		if s.Date.Before(start) || s.Date.After(end) {
			outOfRange++
		}
	}
	if outOfRange > 0 {
		report.warn("%d daily stat rows fall outside the season window %s..%s",
			outOfRange, league.StartDate, league.EndDate)
	}
	return nil
}

func checkTransactionConsistency(ctx context.Context, scope tx.Tx, leagueKey string, report *Report) error {
	report.ChecksPerformed = append(report.ChecksPerformed, "transaction_consistency")

	var transactions []entity.Transaction
	if err := scope.FindAll(ctx, &transactions, map[string]interface{}{"league_key": leagueKey}); err != nil {
		return err
	}
	empty := 0
	for _, t := range transactions {
		n, err := scope.Count(ctx, &entity.TransactionPlayer{}, map[string]interface{}{"transaction_key": t.TransactionKey})
		if err != nil {
			return err
		}
		if n == 0 {
			empty++
		}
	}
	if empty > 0 {
		report.warn("%d transactions have no player movements", empty)
	}
	return nil
}
