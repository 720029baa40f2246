package entity

import "time"

// League is one fantasy league within a game offering.
type League struct {
	LeagueKey            string    `gorm:"column:league_key;primaryKey"`
	LeagueID             string    `gorm:"column:league_id;not null"`
	GameKey              string    `gorm:"column:game_key;not null;index:idx_league_game_season"`
	Name                 string    `gorm:"column:name;not null"`
	URL                  string    `gorm:"column:url"`
	LogoURL              string    `gorm:"column:logo_url"`
	DraftStatus          string    `gorm:"column:draft_status"`
	NumTeams             int       `gorm:"column:num_teams;not null"`
	ScoringType          string    `gorm:"column:scoring_type"`
	LeagueType           string    `gorm:"column:league_type"`
	Renew                string    `gorm:"column:renew"`
	Renewed              string    `gorm:"column:renewed"`
	FeloTier             string    `gorm:"column:felo_tier"`
	AllowAddToDLExtraPos bool      `gorm:"column:allow_add_to_dl_extra_pos"`
	IsProLeague          bool      `gorm:"column:is_pro_league"`
	IsCashLeague         bool      `gorm:"column:is_cash_league"`
	CurrentWeek          string    `gorm:"column:current_week"`
	StartWeek            string    `gorm:"column:start_week"`
	StartDate            string    `gorm:"column:start_date"`
	EndWeek              string    `gorm:"column:end_week"`
	EndDate              string    `gorm:"column:end_date"`
	IsFinished           bool      `gorm:"column:is_finished"`
	GameCode             string    `gorm:"column:game_code"`
	Season               string    `gorm:"column:season;not null;index:idx_league_game_season"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (League) TableName() string { return "leagues" }

// StatCategory defines one scoring category of a league.
type StatCategory struct {
	ID                uint      `gorm:"column:id;primaryKey;autoIncrement"`
	LeagueKey         string    `gorm:"column:league_key;not null;uniqueIndex:idx_stat_category_unique"`
	StatID            int       `gorm:"column:stat_id;not null;uniqueIndex:idx_stat_category_unique"`
	Name              string    `gorm:"column:name;not null"`
	DisplayName       string    `gorm:"column:display_name;not null"`
	Abbr              string    `gorm:"column:abbr;not null"`
	GroupName         string    `gorm:"column:group_name"`
	SortOrder         int       `gorm:"column:sort_order"`
	PositionType      string    `gorm:"column:position_type"`
	IsEnabled         bool      `gorm:"column:is_enabled"`
	IsOnlyDisplayStat bool      `gorm:"column:is_only_display_stat"`
	IsCoreStat        bool      `gorm:"column:is_core_stat"`
	CoreStatColumn    string    `gorm:"column:core_stat_column"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (StatCategory) TableName() string { return "stat_categories" }

// RosterPosition is one lineup slot definition of a league.
type RosterPosition struct {
	ID                 uint      `gorm:"column:id;primaryKey;autoIncrement"`
	LeagueKey          string    `gorm:"column:league_key;not null;uniqueIndex:idx_roster_position_unique"`
	Position           string    `gorm:"column:position;not null;uniqueIndex:idx_roster_position_unique"`
	PositionType       string    `gorm:"column:position_type"`
	Count              int       `gorm:"column:count"`
	IsStartingPosition bool      `gorm:"column:is_starting_position"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (RosterPosition) TableName() string { return "league_roster_positions" }
