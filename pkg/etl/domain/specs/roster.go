package specs

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
)

// RosterSpec loads daily roster assignments keyed on
// (team_key, player_key, date). The lineup-slot flags are derived from
// selected_position when the source did not flag them explicitly.
func RosterSpec() loader.Spec[entity.RosterDaily] {
	return loader.Spec[entity.RosterDaily]{
		Entity:         "rosters",
		RequiredFields: []string{"team_key", "player_key", "league_key", "date", "season"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			out, err := coerceBools(rec.Clone(), "is_starting", "is_bench",
				"is_injured_reserve", "is_keeper", "is_editable")
			if err != nil {
				return nil, err
			}
			pos := stringField(out, "selected_position")
			if pos != "" && !out.Has("is_bench") {
				out["is_bench"] = record.Bool(pos == "BN")
			}
			if pos != "" && !out.Has("is_injured_reserve") {
				out["is_injured_reserve"] = record.Bool(pos == "IL" || pos == "IR")
			}
			if pos != "" && !out.Has("is_starting") {
				out["is_starting"] = record.Bool(pos != "BN" && pos != "IL" && pos != "IR")
			}
			return coerceStrings(out, "season", "keeper_cost"), nil
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			key, err := keyOf(rec, "team_key", "player_key")
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
		Build: func(rec record.Record) (*entity.RosterDaily, error) {
			date, err := dateField(rec, "date")
			if err != nil {
				return nil, err
			}
			now := time.Now()
			return &entity.RosterDaily{
				TeamKey:          stringField(rec, "team_key"),
				PlayerKey:        stringField(rec, "player_key"),
				LeagueKey:        stringField(rec, "league_key"),
				Date:             date,
				Season:           stringField(rec, "season"),
				Week:             intField(rec, "week"),
				SelectedPosition: stringField(rec, "selected_position"),
				IsStarting:       boolField(rec, "is_starting"),
				IsBench:          boolField(rec, "is_bench"),
				IsInjuredReserve: boolField(rec, "is_injured_reserve"),
				PlayerStatus:     stringField(rec, "player_status"),
				StatusFull:       stringField(rec, "status_full"),
				InjuryNote:       stringField(rec, "injury_note"),
				IsKeeper:         boolField(rec, "is_keeper"),
				KeeperCost:       stringField(rec, "keeper_cost"),
				IsEditable:       boolField(rec, "is_editable"),
				FetchedAt:        now,
				UpdatedAt:        now,
			}, nil
		},
		ConflictColumns: []string{"team_key", "player_key", "date"},
		UpdateColumns: []string{
			"selected_position", "is_starting", "is_bench", "is_injured_reserve",
			"player_status", "status_full", "injury_note", "updated_at",
		},
	}
}

// DateSpec loads the schedule calendar keyed on (date, league_key).
func DateSpec() loader.Spec[entity.DateDimension] {
	return loader.Spec[entity.DateDimension]{
		Entity:         "dates",
		RequiredFields: []string{"date", "league_key", "season"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			return coerceStrings(rec, "season"), nil
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			key, err := keyOf(rec, "league_key")
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
		Build: func(rec record.Record) (*entity.DateDimension, error) {
			date, err := dateField(rec, "date")
			if err != nil {
				return nil, err
			}
			return &entity.DateDimension{
				Date:      date,
				LeagueKey: stringField(rec, "league_key"),
				Season:    stringField(rec, "season"),
			}, nil
		},
		ConflictColumns: []string{"date", "league_key"},
	}
}
