package specs

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
)

// PlayerSpec loads players keyed on player_key.
func PlayerSpec() loader.Spec[entity.Player] {
	return loader.Spec[entity.Player]{
		Entity:         "players",
		RequiredFields: []string{"player_key", "player_id", "editorial_player_key", "league_key", "full_name", "season"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			out := coerceStrings(rec, "player_id", "season", "uniform_number")
			return coerceBools(out, "is_undroppable")
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			return keyOf(rec, "player_key")
		},
		Build: func(rec record.Record) (*entity.Player, error) {
			now := time.Now()
			return &entity.Player{
				PlayerKey:          stringField(rec, "player_key"),
				PlayerID:           stringField(rec, "player_id"),
				EditorialPlayerKey: stringField(rec, "editorial_player_key"),
				LeagueKey:          stringField(rec, "league_key"),
				FullName:           stringField(rec, "full_name"),
				FirstName:          stringField(rec, "first_name"),
				LastName:           stringField(rec, "last_name"),
				CurrentTeamKey:     stringField(rec, "current_team_key"),
				CurrentTeamName:    stringField(rec, "current_team_name"),
				CurrentTeamAbbr:    stringField(rec, "current_team_abbr"),
				DisplayPosition:    stringField(rec, "display_position"),
				PrimaryPosition:    stringField(rec, "primary_position"),
				PositionType:       stringField(rec, "position_type"),
				UniformNumber:      stringField(rec, "uniform_number"),
				Status:             stringField(rec, "status"),
				ImageURL:           stringField(rec, "image_url"),
				HeadshotURL:        stringField(rec, "headshot_url"),
				IsUndroppable:      boolField(rec, "is_undroppable"),
				Season:             stringField(rec, "season"),
				CreatedAt:          now,
				UpdatedAt:          now,
			}, nil
		},
		ConflictColumns: []string{"player_key"},
		UpdateColumns: []string{
			"current_team_key", "current_team_name", "current_team_abbr",
			"display_position", "status", "is_undroppable", "updated_at",
		},
	}
}

// EligiblePositionSpec loads player position eligibility keyed on
// (player_key, position).
func EligiblePositionSpec() loader.Spec[entity.PlayerEligiblePosition] {
	return loader.Spec[entity.PlayerEligiblePosition]{
		Entity:         "player_eligible_positions",
		RequiredFields: []string{"player_key", "position"},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			return keyOf(rec, "player_key", "position")
		},
		Build: func(rec record.Record) (*entity.PlayerEligiblePosition, error) {
			return &entity.PlayerEligiblePosition{
				PlayerKey: stringField(rec, "player_key"),
				Position:  stringField(rec, "position"),
				CreatedAt: time.Now(),
			}, nil
		},
		ConflictColumns: []string{"player_key", "position"},
	}
}
