package specs

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
)

// liftSettings merges the fields of a nested "settings" sub-record onto the
// league record. The extractor nests the season window and scoring settings
// there; the leagues table stores them flat. Top-level fields win on
// collision.
func liftSettings(rec record.Record) record.Record {
	settings, ok := rec.ChildRecord("settings")
	if !ok {
		return rec
	}
	out := rec.Clone()
	for field, v := range settings {
		if !out.Has(field) {
			out[field] = v
		}
	}
	delete(out, "settings")
	return out
}

// LeagueSpec loads leagues keyed on league_key.
func LeagueSpec() loader.Spec[entity.League] {
	return loader.Spec[entity.League]{
		Entity:         "leagues",
		RequiredFields: []string{"league_key", "league_id", "game_key", "name", "season"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			out := liftSettings(rec)
			out = coerceStrings(out, "league_id", "season", "current_week", "start_week", "end_week")
			return coerceBools(out, "is_pro_league", "is_cash_league", "is_finished",
				"allow_add_to_dl_extra_pos")
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			return keyOf(rec, "league_key")
		},
		Build: func(rec record.Record) (*entity.League, error) {
			now := time.Now()
			return &entity.League{
				LeagueKey:            stringField(rec, "league_key"),
				LeagueID:             stringField(rec, "league_id"),
				GameKey:              stringField(rec, "game_key"),
				Name:                 stringField(rec, "name"),
				URL:                  stringField(rec, "url"),
				LogoURL:              stringField(rec, "logo_url"),
				DraftStatus:          stringField(rec, "draft_status"),
				NumTeams:             intField(rec, "num_teams"),
				ScoringType:          stringField(rec, "scoring_type"),
				LeagueType:           stringField(rec, "league_type"),
				Renew:                stringField(rec, "renew"),
				Renewed:              stringField(rec, "renewed"),
				FeloTier:             stringField(rec, "felo_tier"),
				AllowAddToDLExtraPos: boolField(rec, "allow_add_to_dl_extra_pos"),
				IsProLeague:          boolField(rec, "is_pro_league"),
				IsCashLeague:         boolField(rec, "is_cash_league"),
				CurrentWeek:          stringField(rec, "current_week"),
				StartWeek:            stringField(rec, "start_week"),
				StartDate:            stringField(rec, "start_date"),
				EndWeek:              stringField(rec, "end_week"),
				EndDate:              stringField(rec, "end_date"),
				IsFinished:           boolField(rec, "is_finished"),
				GameCode:             stringField(rec, "game_code"),
				Season:               stringField(rec, "season"),
				CreatedAt:            now,
				UpdatedAt:            now,
			}, nil
		},
		ConflictColumns: []string{"league_key"},
		UpdateColumns: []string{
			"name", "draft_status", "num_teams", "current_week", "is_finished",
			"end_date", "updated_at",
		},
	}
}

// StatCategorySpec loads scoring category definitions keyed on
// (league_key, stat_id).
func StatCategorySpec() loader.Spec[entity.StatCategory] {
	return loader.Spec[entity.StatCategory]{
		Entity:         "stat_categories",
		RequiredFields: []string{"league_key", "stat_id", "name", "display_name", "abbr"},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			key, err := keyOf(rec, "league_key")
			if err != nil {
				return nil, err
			}
			key["stat_id"] = intField(rec, "stat_id")
			return key, nil
		},
		Build: func(rec record.Record) (*entity.StatCategory, error) {
			now := time.Now()
			return &entity.StatCategory{
				LeagueKey:         stringField(rec, "league_key"),
				StatID:            intField(rec, "stat_id"),
				Name:              stringField(rec, "name"),
				DisplayName:       stringField(rec, "display_name"),
				Abbr:              stringField(rec, "abbr"),
				GroupName:         stringField(rec, "group_name"),
				SortOrder:         intField(rec, "sort_order"),
				PositionType:      stringField(rec, "position_type"),
				IsEnabled:         boolField(rec, "is_enabled"),
				IsOnlyDisplayStat: boolField(rec, "is_only_display_stat"),
				IsCoreStat:        boolField(rec, "is_core_stat"),
				CoreStatColumn:    stringField(rec, "core_stat_column"),
				CreatedAt:         now,
				UpdatedAt:         now,
			}, nil
		},
		ConflictColumns: []string{"league_key", "stat_id"},
		UpdateColumns:   []string{"name", "display_name", "abbr", "is_enabled", "updated_at"},
	}
}

// RosterPositionSpec loads league lineup slot definitions keyed on
// (league_key, position).
func RosterPositionSpec() loader.Spec[entity.RosterPosition] {
	return loader.Spec[entity.RosterPosition]{
		Entity:         "roster_positions",
		RequiredFields: []string{"league_key", "position"},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			return keyOf(rec, "league_key", "position")
		},
		Build: func(rec record.Record) (*entity.RosterPosition, error) {
			now := time.Now()
			pos := stringField(rec, "position")
			return &entity.RosterPosition{
				LeagueKey:          stringField(rec, "league_key"),
				Position:           pos,
				PositionType:       stringField(rec, "position_type"),
				Count:              intField(rec, "count"),
				IsStartingPosition: pos != "BN" && pos != "IL" && pos != "IR",
				CreatedAt:          now,
				UpdatedAt:          now,
			}, nil
		},
		ConflictColumns: []string{"league_key", "position"},
		UpdateColumns:   []string{"position_type", "count", "is_starting_position", "updated_at"},
	}
}
