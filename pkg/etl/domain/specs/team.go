package specs

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
)

// TeamSpec loads teams keyed on team_key.
func TeamSpec() loader.Spec[entity.Team] {
	return loader.Spec[entity.Team]{
		Entity:         "teams",
		RequiredFields: []string{"team_key", "team_id", "league_key", "name"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			out := coerceStrings(rec, "team_id", "faab_balance", "roster_adds_week", "roster_adds_value")
			return coerceBools(out, "clinched_playoffs", "has_draft_grade")
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			return keyOf(rec, "team_key")
		},
		Build: func(rec record.Record) (*entity.Team, error) {
			now := time.Now()
			return &entity.Team{
				TeamKey:          stringField(rec, "team_key"),
				TeamID:           stringField(rec, "team_id"),
				LeagueKey:        stringField(rec, "league_key"),
				Name:             stringField(rec, "name"),
				URL:              stringField(rec, "url"),
				TeamLogoURL:      stringField(rec, "team_logo_url"),
				DivisionID:       stringField(rec, "division_id"),
				WaiverPriority:   intField(rec, "waiver_priority"),
				FaabBalance:      stringField(rec, "faab_balance"),
				NumberOfMoves:    intField(rec, "number_of_moves"),
				NumberOfTrades:   intField(rec, "number_of_trades"),
				RosterAddsWeek:   stringField(rec, "roster_adds_week"),
				RosterAddsValue:  stringField(rec, "roster_adds_value"),
				ClinchedPlayoffs: boolField(rec, "clinched_playoffs"),
				HasDraftGrade:    boolField(rec, "has_draft_grade"),
				CreatedAt:        now,
				UpdatedAt:        now,
			}, nil
		},
		ConflictColumns: []string{"team_key"},
		UpdateColumns: []string{
			"name", "waiver_priority", "faab_balance", "number_of_moves",
			"number_of_trades", "clinched_playoffs", "updated_at",
		},
	}
}

// ManagerSpec loads team managers keyed on (team_key, manager_id).
func ManagerSpec() loader.Spec[entity.Manager] {
	return loader.Spec[entity.Manager]{
		Entity:         "managers",
		RequiredFields: []string{"manager_id", "team_key", "nickname", "guid"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			out := coerceStrings(rec, "manager_id", "felo_score")
			return coerceBools(out, "is_commissioner")
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			return keyOf(rec, "team_key", "manager_id")
		},
		Build: func(rec record.Record) (*entity.Manager, error) {
			now := time.Now()
			return &entity.Manager{
				ManagerID:      stringField(rec, "manager_id"),
				TeamKey:        stringField(rec, "team_key"),
				Nickname:       stringField(rec, "nickname"),
				GUID:           stringField(rec, "guid"),
				IsCommissioner: boolField(rec, "is_commissioner"),
				Email:          stringField(rec, "email"),
				ImageURL:       stringField(rec, "image_url"),
				FeloScore:      stringField(rec, "felo_score"),
				FeloTier:       stringField(rec, "felo_tier"),
				CreatedAt:      now,
				UpdatedAt:      now,
			}, nil
		},
		ConflictColumns: []string{"team_key", "manager_id"},
		UpdateColumns:   []string{"nickname", "felo_score", "felo_tier", "updated_at"},
	}
}
