package specs

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
)

// MatchupSpec loads weekly head-to-head matchups keyed on
// (team_key, season, week).
func MatchupSpec() loader.Spec[entity.TeamMatchup] {
	return loader.Spec[entity.TeamMatchup]{
		Entity:         "matchups",
		RequiredFields: []string{"league_key", "team_key", "season", "week"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			out := coerceStrings(rec, "season")
			return coerceBools(out, "is_winner", "is_tied", "is_playoffs",
				"is_consolation", "is_matchup_of_week")
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			key, err := keyOf(rec, "team_key", "season")
			if err != nil {
				return nil, err
			}
			key["week"] = intField(rec, "week")
			return key, nil
		},
		Build: func(rec record.Record) (*entity.TeamMatchup, error) {
			now := time.Now()
			return &entity.TeamMatchup{
				LeagueKey:         stringField(rec, "league_key"),
				TeamKey:           stringField(rec, "team_key"),
				Season:            stringField(rec, "season"),
				Week:              intField(rec, "week"),
				WeekStart:         stringField(rec, "week_start"),
				WeekEnd:           stringField(rec, "week_end"),
				Status:            stringField(rec, "status"),
				OpponentTeamKey:   stringField(rec, "opponent_team_key"),
				IsWinner:          boolField(rec, "is_winner"),
				IsTied:            boolField(rec, "is_tied"),
				TeamPoints:        intField(rec, "team_points"),
				OpponentPoints:    intField(rec, "opponent_points"),
				WinnerTeamKey:     stringField(rec, "winner_team_key"),
				IsPlayoffs:        boolField(rec, "is_playoffs"),
				IsConsolation:     boolField(rec, "is_consolation"),
				IsMatchupOfWeek:   boolField(rec, "is_matchup_of_week"),
				WinsFieldGoalPct:  boolField(rec, "wins_field_goal_pct"),
				WinsFreeThrowPct:  boolField(rec, "wins_free_throw_pct"),
				WinsThreePointers: boolField(rec, "wins_three_pointers"),
				WinsPoints:        boolField(rec, "wins_points"),
				WinsRebounds:      boolField(rec, "wins_rebounds"),
				WinsAssists:       boolField(rec, "wins_assists"),
				WinsSteals:        boolField(rec, "wins_steals"),
				WinsBlocks:        boolField(rec, "wins_blocks"),
				WinsTurnovers:     boolField(rec, "wins_turnovers"),
				CompletedGames:    intField(rec, "completed_games"),
				RemainingGames:    intField(rec, "remaining_games"),
				LiveGames:         intField(rec, "live_games"),
				FetchedAt:         now,
				UpdatedAt:         now,
			}, nil
		},
		Merge:           loader.MergeOverwrite[entity.TeamMatchup],
		ConflictColumns: []string{"team_key", "season", "week"},
		UpdateColumns: []string{
			"status", "is_winner", "is_tied", "team_points", "opponent_points",
			"winner_team_key", "completed_games", "remaining_games", "live_games",
			"updated_at",
		},
	}
}
