package specs

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
)

// TransactionSpec loads league transactions keyed on transaction_key.
func TransactionSpec() loader.Spec[entity.Transaction] {
	return loader.Spec[entity.Transaction]{
		Entity:         "transactions",
		RequiredFields: []string{"transaction_key", "transaction_id", "league_key", "type", "status", "timestamp"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			return coerceStrings(rec, "transaction_id", "timestamp"), nil
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			return keyOf(rec, "transaction_key")
		},
		Build: func(rec record.Record) (*entity.Transaction, error) {
			now := time.Now()
			return &entity.Transaction{
				TransactionKey: stringField(rec, "transaction_key"),
				TransactionID:  stringField(rec, "transaction_id"),
				LeagueKey:      stringField(rec, "league_key"),
				Type:           stringField(rec, "type"),
				Status:         stringField(rec, "status"),
				Timestamp:      stringField(rec, "timestamp"),
				TraderTeamKey:  stringField(rec, "trader_team_key"),
				TraderTeamName: stringField(rec, "trader_team_name"),
				TradeeTeamKey:  stringField(rec, "tradee_team_key"),
				TradeeTeamName: stringField(rec, "tradee_team_name"),
				CreatedAt:      now,
				UpdatedAt:      now,
			}, nil
		},
		ConflictColumns: []string{"transaction_key"},
		UpdateColumns:   []string{"status", "updated_at"},
	}
}

// TransactionPlayerSpec loads per-player transaction detail keyed on
// (transaction_key, player_key).
func TransactionPlayerSpec() loader.Spec[entity.TransactionPlayer] {
	return loader.Spec[entity.TransactionPlayer]{
		Entity:         "transaction_players",
		RequiredFields: []string{"transaction_key", "player_key", "player_id", "player_name", "transaction_type"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			return coerceStrings(rec, "player_id"), nil
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			return keyOf(rec, "transaction_key", "player_key")
		},
		Build: func(rec record.Record) (*entity.TransactionPlayer, error) {
			now := time.Now()
			return &entity.TransactionPlayer{
				TransactionKey:      stringField(rec, "transaction_key"),
				PlayerKey:           stringField(rec, "player_key"),
				PlayerID:            stringField(rec, "player_id"),
				PlayerName:          stringField(rec, "player_name"),
				EditorialTeamAbbr:   stringField(rec, "editorial_team_abbr"),
				DisplayPosition:     stringField(rec, "display_position"),
				PositionType:        stringField(rec, "position_type"),
				TransactionType:     stringField(rec, "transaction_type"),
				SourceType:          stringField(rec, "source_type"),
				SourceTeamKey:       stringField(rec, "source_team_key"),
				SourceTeamName:      stringField(rec, "source_team_name"),
				DestinationType:     stringField(rec, "destination_type"),
				DestinationTeamKey:  stringField(rec, "destination_team_key"),
				DestinationTeamName: stringField(rec, "destination_team_name"),
				CreatedAt:           now,
				UpdatedAt:           now,
			}, nil
		},
		ConflictColumns: []string{"transaction_key", "player_key"},
		UpdateColumns:   []string{"transaction_type", "destination_team_key", "updated_at"},
	}
}
