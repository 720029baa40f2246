package entity

import "time"

// TeamMatchup is one team's side of a weekly head-to-head matchup, including
// the per-category outcome.
type TeamMatchup struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	LeagueKey string `gorm:"column:league_key;not null;index:idx_team_matchup_league"`
	TeamKey   string `gorm:"column:team_key;not null;uniqueIndex:idx_team_matchup_unique"`
	Season    string `gorm:"column:season;not null;uniqueIndex:idx_team_matchup_unique"`
	Week      int    `gorm:"column:week;not null;uniqueIndex:idx_team_matchup_unique"`

	WeekStart       string `gorm:"column:week_start"`
	WeekEnd         string `gorm:"column:week_end"`
	Status          string `gorm:"column:status"`
	OpponentTeamKey string `gorm:"column:opponent_team_key;index:idx_team_matchup_opponent"`

	IsWinner       bool   `gorm:"column:is_winner"`
	IsTied         bool   `gorm:"column:is_tied"`
	TeamPoints     int    `gorm:"column:team_points"`
	OpponentPoints int    `gorm:"column:opponent_points"`
	WinnerTeamKey  string `gorm:"column:winner_team_key"`

	IsPlayoffs      bool `gorm:"column:is_playoffs"`
	IsConsolation   bool `gorm:"column:is_consolation"`
	IsMatchupOfWeek bool `gorm:"column:is_matchup_of_week"`

	WinsFieldGoalPct  bool `gorm:"column:wins_field_goal_pct"`
	WinsFreeThrowPct  bool `gorm:"column:wins_free_throw_pct"`
	WinsThreePointers bool `gorm:"column:wins_three_pointers"`
	WinsPoints        bool `gorm:"column:wins_points"`
	WinsRebounds      bool `gorm:"column:wins_rebounds"`
	WinsAssists       bool `gorm:"column:wins_assists"`
	WinsSteals        bool `gorm:"column:wins_steals"`
	WinsBlocks        bool `gorm:"column:wins_blocks"`
	WinsTurnovers     bool `gorm:"column:wins_turnovers"`

	CompletedGames int `gorm:"column:completed_games"`
	RemainingGames int `gorm:"column:remaining_games"`
	LiveGames      int `gorm:"column:live_games"`

	FetchedAt time.Time `gorm:"column:fetched_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (TeamMatchup) TableName() string { return "team_matchups" }
