package specs

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/loader"
	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/domain/entity"
)

// StandingsSpec loads league standings keyed on (league_key, team_key,
// season). Standings are a snapshot, so updates overwrite the whole record.
func StandingsSpec() loader.Spec[entity.LeagueStandings] {
	return loader.Spec[entity.LeagueStandings]{
		Entity:         "standings",
		RequiredFields: []string{"league_key", "team_key", "season", "rank"},
		Preprocess: func(rec record.Record) (record.Record, error) {
			return coerceStrings(rec, "season", "playoff_seed", "games_back"), nil
		},
		Key: func(rec record.Record) (map[string]interface{}, error) {
			return keyOf(rec, "league_key", "team_key", "season")
		},
		Build: func(rec record.Record) (*entity.LeagueStandings, error) {
			now := time.Now()
			return &entity.LeagueStandings{
				LeagueKey:        stringField(rec, "league_key"),
				TeamKey:          stringField(rec, "team_key"),
				Season:           stringField(rec, "season"),
				Rank:             intField(rec, "rank"),
				PlayoffSeed:      stringField(rec, "playoff_seed"),
				Wins:             intField(rec, "wins"),
				Losses:           intField(rec, "losses"),
				Ties:             intField(rec, "ties"),
				WinPercentage:    floatField(rec, "win_percentage"),
				GamesBack:        stringField(rec, "games_back"),
				DivisionalWins:   intField(rec, "divisional_wins"),
				DivisionalLosses: intField(rec, "divisional_losses"),
				DivisionalTies:   intField(rec, "divisional_ties"),
				FetchedAt:        now,
				UpdatedAt:        now,
			}, nil
		},
		Merge:           loader.MergeOverwrite[entity.LeagueStandings],
		ConflictColumns: []string{"league_key", "team_key", "season"},
		UpdateColumns: []string{
			"rank", "playoff_seed", "wins", "losses", "ties", "win_percentage",
			"games_back", "updated_at",
		},
	}
}
