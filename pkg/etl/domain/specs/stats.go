package specs

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
)

// Yahoo stat IDs of the core basketball categories. Composite categories
// (9004003, 9007006) carry "made/attempted" strings.
const (
	statFieldGoalsComposite = "9004003"
	statFieldGoalPct        = "5"
	statFreeThrowsComposite = "9007006"
	statFreeThrowPct        = "8"
	statThreePointersMade   = "10"
	statPoints              = "12"
	statRebounds            = "15"
	statAssists             = "16"
	statSteals              = "17"
	statBlocks              = "18"
	statTurnovers           = "19"
)

// flattenCoreStats extracts the core stat categories from a nested "stats"
// child map (keyed by stat ID) into flat record fields. Records that already
// arrive flat pass through unchanged.
func flattenCoreStats(rec record.Record, pointsField, reboundsField, assistsField, stealsField, blocksField, turnoversField string) (record.Record, error) {
	stats, ok := rec.ChildRecord("stats")
	if !ok {
		return rec, nil
	}
	out := rec.Clone()
	delete(out, "stats")

	if v := stringField(stats, statFieldGoalsComposite); v != "" {
		made, attempted, err := splitMadeAttempted(v)
		if err != nil {
			return nil, err
		}
		out["field_goals_made"] = record.Int(int64(made))
		out["field_goals_attempted"] = record.Int(int64(attempted))
	}
	if v := stringField(stats, statFreeThrowsComposite); v != "" {
		made, attempted, err := splitMadeAttempted(v)
		if err != nil {
			return nil, err
		}
		out["free_throws_made"] = record.Int(int64(made))
		out["free_throws_attempted"] = record.Int(int64(attempted))
	}
	if f, ok := stats.FloatField(statFieldGoalPct); ok {
		out["field_goal_percentage"] = record.Float(f)
	}
	if f, ok := stats.FloatField(statFreeThrowPct); ok {
		out["free_throw_percentage"] = record.Float(f)
	}

	for statID, field := range map[string]string{
		statThreePointersMade: "three_pointers_made",
		statPoints:            pointsField,
		statRebounds:          reboundsField,
		statAssists:           assistsField,
		statSteals:            stealsField,
		statBlocks:            blocksField,
		statTurnovers:         turnoversField,
	} {
		if i, ok := stats.IntField(statID); ok {
			out[field] = record.Int(i)
		}
	}
	return out, nil
}

// PlayerDailyStatsSpec loads per-day player stat lines keyed on
// (player_key, date). Updates overwrite the whole stat line so corrected
// zeros replace stale values.
func PlayerDailyStatsSpec() loader.Spec[entity.PlayerDailyStats] {
	return loader.Spec[entity.PlayerDailyStats]{
		Entity:         "player_stats_daily",
		RequiredFields: []string{"player_key", "editorial_player_key", "league_key", "season", "date"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			out := coerceStrings(rec, "season")
			return flattenCoreStats(out, "points", "rebounds", "assists", "steals", "blocks", "turnovers")
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			key, err := keyOf(rec, "player_key")
			if err != nil {
				return nil, err
			}
			date, err := dateField(rec, "date")
			if err != nil {
				return nil, err
			}
			key["date"] = date
			return key, nil
		},
		Build: func(rec record.Record) (*entity.PlayerDailyStats, error) {
			date, err := dateField(rec, "date")
			if err != nil {
				return nil, err
			}
			now := time.Now()
			return &entity.PlayerDailyStats{
				PlayerKey:           stringField(rec, "player_key"),
				EditorialPlayerKey:  stringField(rec, "editorial_player_key"),
				LeagueKey:           stringField(rec, "league_key"),
				Season:              stringField(rec, "season"),
				Date:                date,
				Week:                intField(rec, "week"),
				FieldGoalsMade:      intField(rec, "field_goals_made"),
				FieldGoalsAttempted: intField(rec, "field_goals_attempted"),
				FieldGoalPercentage: floatField(rec, "field_goal_percentage"),
				FreeThrowsMade:      intField(rec, "free_throws_made"),
				FreeThrowsAttempted: intField(rec, "free_throws_attempted"),
				FreeThrowPercentage: floatField(rec, "free_throw_percentage"),
				ThreePointersMade:   intField(rec, "three_pointers_made"),
				Points:              intField(rec, "points"),
				Rebounds:            intField(rec, "rebounds"),
				Assists:             intField(rec, "assists"),
				Steals:              intField(rec, "steals"),
				Blocks:              intField(rec, "blocks"),
				Turnovers:           intField(rec, "turnovers"),
				FetchedAt:           now,
				UpdatedAt:           now,
			}, nil
		},
		Merge:           loader.MergeOverwrite[entity.PlayerDailyStats],
		ConflictColumns: []string{"player_key", "date"},
		UpdateColumns: []string{
			"field_goals_made", "field_goals_attempted", "field_goal_percentage",
			"free_throws_made", "free_throws_attempted", "free_throw_percentage",
			"three_pointers_made", "points", "rebounds", "assists", "steals",
			"blocks", "turnovers", "updated_at",
		},
	}
}

// PlayerSeasonStatsSpec loads cumulative season stat lines keyed on
// (player_key, season).
func PlayerSeasonStatsSpec() loader.Spec[entity.PlayerSeasonStats] {
	return loader.Spec[entity.PlayerSeasonStats]{
		Entity:         "player_stats_season",
		RequiredFields: []string{"player_key", "editorial_player_key", "league_key", "season"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			out := coerceStrings(rec, "season")
			return flattenCoreStats(out, "total_points", "total_rebounds", "total_assists",
				"total_steals", "total_blocks", "total_turnovers")
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			return keyOf(rec, "player_key", "season")
		},
		Build: func(rec record.Record) (*entity.PlayerSeasonStats, error) {
			now := time.Now()
			return &entity.PlayerSeasonStats{
				PlayerKey:           stringField(rec, "player_key"),
				EditorialPlayerKey:  stringField(rec, "editorial_player_key"),
				LeagueKey:           stringField(rec, "league_key"),
				Season:              stringField(rec, "season"),
				FieldGoalsMade:      intField(rec, "field_goals_made"),
				FieldGoalsAttempted: intField(rec, "field_goals_attempted"),
				FieldGoalPercentage: floatField(rec, "field_goal_percentage"),
				FreeThrowsMade:      intField(rec, "free_throws_made"),
				FreeThrowsAttempted: intField(rec, "free_throws_attempted"),
				FreeThrowPercentage: floatField(rec, "free_throw_percentage"),
				ThreePointersMade:   intField(rec, "three_pointers_made"),
				TotalPoints:         intField(rec, "total_points"),
				TotalRebounds:       intField(rec, "total_rebounds"),
				TotalAssists:        intField(rec, "total_assists"),
				TotalSteals:         intField(rec, "total_steals"),
				TotalBlocks:         intField(rec, "total_blocks"),
				TotalTurnovers:      intField(rec, "total_turnovers"),
				FetchedAt:           now,
				UpdatedAt:           now,
			}, nil
		},
		Merge:           loader.MergeOverwrite[entity.PlayerSeasonStats],
		ConflictColumns: []string{"player_key", "season"},
		UpdateColumns: []string{
			"field_goals_made", "field_goals_attempted", "field_goal_percentage",
			"free_throws_made", "free_throws_attempted", "free_throw_percentage",
			"three_pointers_made", "total_points", "total_rebounds", "total_assists",
			"total_steals", "total_blocks", "total_turnovers", "updated_at",
		},
	}
}

// TeamStatsSpec loads weekly team stat lines keyed on
// (team_key, season, week).
func TeamStatsSpec() loader.Spec[entity.TeamStatsWeekly] {
	return loader.Spec[entity.TeamStatsWeekly]{
		Entity:         "team_stats",
		RequiredFields: []string{"team_key", "league_key", "season", "week"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			out := coerceStrings(rec, "season")
			return flattenCoreStats(out, "points", "rebounds", "assists", "steals", "blocks", "turnovers")
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			key, err := keyOf(rec, "team_key", "season")
			if err != nil {
				return nil, err
			}
			key["week"] = intField(rec, "week")
			return key, nil
		},
		Build: func(rec record.Record) (*entity.TeamStatsWeekly, error) {
			now := time.Now()
			return &entity.TeamStatsWeekly{
				TeamKey:             stringField(rec, "team_key"),
				LeagueKey:           stringField(rec, "league_key"),
				Season:              stringField(rec, "season"),
				Week:                intField(rec, "week"),
				FieldGoalsMade:      intField(rec, "field_goals_made"),
				FieldGoalsAttempted: intField(rec, "field_goals_attempted"),
				FieldGoalPercentage: floatField(rec, "field_goal_percentage"),
				FreeThrowsMade:      intField(rec, "free_throws_made"),
				FreeThrowsAttempted: intField(rec, "free_throws_attempted"),
				FreeThrowPercentage: floatField(rec, "free_throw_percentage"),
				ThreePointersMade:   intField(rec, "three_pointers_made"),
				Points:              intField(rec, "points"),
				Rebounds:            intField(rec, "rebounds"),
				Assists:             intField(rec, "assists"),
				Steals:              intField(rec, "steals"),
				Blocks:              intField(rec, "blocks"),
				Turnovers:           intField(rec, "turnovers"),
				FetchedAt:           now,
				UpdatedAt:           now,
			}, nil
		},
		Merge:           loader.MergeOverwrite[entity.TeamStatsWeekly],
		ConflictColumns: []string{"team_key", "season", "week"},
		UpdateColumns: []string{
			"field_goals_made", "field_goals_attempted", "field_goal_percentage",
			"free_throws_made", "free_throws_attempted", "free_throw_percentage",
			"three_pointers_made", "points", "rebounds", "assists", "steals",
			"blocks", "turnovers", "updated_at",
		},
	}
}
