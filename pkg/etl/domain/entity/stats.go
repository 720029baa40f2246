package entity

import "time"

// PlayerDailyStats holds one player's core stat line for one day. The stat
// categories are normalized into columns rather than stored as raw
// stat_id/value pairs.
type PlayerDailyStats struct {
	ID                 uint      `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerKey          string    `gorm:"column:player_key;not null;uniqueIndex:idx_player_daily_unique"`
	EditorialPlayerKey string    `gorm:"column:editorial_player_key;not null"`
	LeagueKey          string    `gorm:"column:league_key;not null;index:idx_player_daily_league_date"`
	Season             string    `gorm:"column:season;not null"`
	Date               time.Time `gorm:"column:date;not null;uniqueIndex:idx_player_daily_unique"`
	Week               int       `gorm:"column:week"`

	FieldGoalsMade      int     `gorm:"column:field_goals_made"`
	FieldGoalsAttempted int     `gorm:"column:field_goals_attempted"`
	FieldGoalPercentage float64 `gorm:"column:field_goal_percentage"`
	FreeThrowsMade      int     `gorm:"column:free_throws_made"`
	FreeThrowsAttempted int     `gorm:"column:free_throws_attempted"`
	FreeThrowPercentage float64 `gorm:"column:free_throw_percentage"`
	ThreePointersMade   int     `gorm:"column:three_pointers_made"`
	Points              int     `gorm:"column:points"`
	Rebounds            int     `gorm:"column:rebounds"`
	Assists             int     `gorm:"column:assists"`
	Steals              int     `gorm:"column:steals"`
	Blocks              int     `gorm:"column:blocks"`
	Turnovers           int     `gorm:"column:turnovers"`

	FetchedAt time.Time `gorm:"column:fetched_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PlayerDailyStats) TableName() string { return "player_daily_stats" }

// PlayerSeasonStats holds one player's cumulative stat line for a season.
type PlayerSeasonStats struct {
	ID                 uint   `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerKey          string `gorm:"column:player_key;not null;uniqueIndex:idx_player_season_unique"`
	EditorialPlayerKey string `gorm:"column:editorial_player_key;not null"`
	LeagueKey          string `gorm:"column:league_key;not null;index:idx_player_season_league"`
	Season             string `gorm:"column:season;not null;uniqueIndex:idx_player_season_unique"`

	FieldGoalsMade      int     `gorm:"column:field_goals_made"`
	FieldGoalsAttempted int     `gorm:"column:field_goals_attempted"`
	FieldGoalPercentage float64 `gorm:"column:field_goal_percentage"`
	FreeThrowsMade      int     `gorm:"column:free_throws_made"`
	FreeThrowsAttempted int     `gorm:"column:free_throws_attempted"`
	FreeThrowPercentage float64 `gorm:"column:free_throw_percentage"`
	ThreePointersMade   int     `gorm:"column:three_pointers_made"`
	TotalPoints         int     `gorm:"column:total_points"`
	TotalRebounds       int     `gorm:"column:total_rebounds"`
	TotalAssists        int     `gorm:"column:total_assists"`
	TotalSteals         int     `gorm:"column:total_steals"`
	TotalBlocks         int     `gorm:"column:total_blocks"`
	TotalTurnovers      int     `gorm:"column:total_turnovers"`

	FetchedAt time.Time `gorm:"column:fetched_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PlayerSeasonStats) TableName() string { return "player_season_stats" }

// TeamStatsWeekly holds one team's aggregated stat line for one week.
type TeamStatsWeekly struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	TeamKey   string `gorm:"column:team_key;not null;uniqueIndex:idx_team_stat_weekly_unique"`
	LeagueKey string `gorm:"column:league_key;not null;index:idx_team_stat_weekly_league"`
	Season    string `gorm:"column:season;not null;uniqueIndex:idx_team_stat_weekly_unique"`
	Week      int    `gorm:"column:week;not null;uniqueIndex:idx_team_stat_weekly_unique"`

	FieldGoalsMade      int     `gorm:"column:field_goals_made"`
	FieldGoalsAttempted int     `gorm:"column:field_goals_attempted"`
	FieldGoalPercentage float64 `gorm:"column:field_goal_percentage"`
	FreeThrowsMade      int     `gorm:"column:free_throws_made"`
	FreeThrowsAttempted int     `gorm:"column:free_throws_attempted"`
	FreeThrowPercentage float64 `gorm:"column:free_throw_percentage"`
	ThreePointersMade   int     `gorm:"column:three_pointers_made"`
	Points              int     `gorm:"column:points"`
	Rebounds            int     `gorm:"column:rebounds"`
	Assists             int     `gorm:"column:assists"`
	Steals              int     `gorm:"column:steals"`
	Blocks              int     `gorm:"column:blocks"`
	Turnovers           int     `gorm:"column:turnovers"`

	FetchedAt time.Time `gorm:"column:fetched_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (TeamStatsWeekly) TableName() string { return "team_stats_weekly" }
