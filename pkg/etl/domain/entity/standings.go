package entity

import "time"

// LeagueStandings is one team's rank and record within a league season.
type LeagueStandings struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	LeagueKey string `gorm:"column:league_key;not null;uniqueIndex:idx_league_standings_unique"`
	TeamKey   string `gorm:"column:team_key;not null;uniqueIndex:idx_league_standings_unique"`
	Season    string `gorm:"column:season;not null;uniqueIndex:idx_league_standings_unique"`

	Rank          int     `gorm:"column:rank;not null"`
	PlayoffSeed   string  `gorm:"column:playoff_seed"`
	Wins          int     `gorm:"column:wins"`
	Losses        int     `gorm:"column:losses"`
	Ties          int     `gorm:"column:ties"`
	WinPercentage float64 `gorm:"column:win_percentage"`
	GamesBack     string  `gorm:"column:games_back"`

	DivisionalWins   int `gorm:"column:divisional_wins"`
	DivisionalLosses int `gorm:"column:divisional_losses"`
	DivisionalTies   int `gorm:"column:divisional_ties"`

	FetchedAt time.Time `gorm:"column:fetched_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (LeagueStandings) TableName() string { return "league_standings" }
