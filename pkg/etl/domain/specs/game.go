package specs

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
)

// GameSpec loads game offerings keyed on game_key.
func GameSpec() loader.Spec[entity.Game] {
	return loader.Spec[entity.Game]{
		Entity:         "games",
		RequiredFields: []string{"game_key", "game_id", "name", "code", "season"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			out := coerceStrings(rec, "game_id", "season")
			return coerceBools(out, "is_registration_over", "is_game_over", "is_offseason")
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			return keyOf(rec, "game_key")
		},
		Build: func(rec record.Record) (*entity.Game, error) {
			now := time.Now()
			return &entity.Game{
				GameKey:            stringField(rec, "game_key"),
				GameID:             stringField(rec, "game_id"),
				Name:               stringField(rec, "name"),
				Code:               stringField(rec, "code"),
				Type:               stringField(rec, "type"),
				URL:                stringField(rec, "url"),
				Season:             stringField(rec, "season"),
				IsRegistrationOver: boolField(rec, "is_registration_over"),
				IsGameOver:         boolField(rec, "is_game_over"),
				IsOffseason:        boolField(rec, "is_offseason"),
				EditorialSeason:    stringField(rec, "editorial_season"),
				PicksStatus:        stringField(rec, "picks_status"),
				ContestGroupID:     stringField(rec, "contest_group_id"),
				CreatedAt:          now,
				UpdatedAt:          now,
			}, nil
		},
		ConflictColumns: []string{"game_key"},
		UpdateColumns: []string{
			"name", "type", "url", "is_registration_over", "is_game_over",
			"is_offseason", "editorial_season", "picks_status", "updated_at",
		},
	}
}
