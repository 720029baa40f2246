package entity

import "time"

// RosterDaily records which team a player was assigned to on one calendar
// day, and in which lineup slot.
type RosterDaily struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	TeamKey   string    `gorm:"column:team_key;not null;uniqueIndex:idx_roster_daily_unique"`
	PlayerKey string    `gorm:"column:player_key;not null;uniqueIndex:idx_roster_daily_unique"`
	LeagueKey string    `gorm:"column:league_key;not null;index:idx_roster_daily_date"`
	Date      time.Time `gorm:"column:date;not null;uniqueIndex:idx_roster_daily_unique"`
	Season    string    `gorm:"column:season;not null"`
	Week      int       `gorm:"column:week"`

	SelectedPosition string `gorm:"column:selected_position"`
	IsStarting       bool   `gorm:"column:is_starting"`
	IsBench          bool   `gorm:"column:is_bench"`
	IsInjuredReserve bool   `gorm:"column:is_injured_reserve"`

	PlayerStatus string `gorm:"column:player_status"`
	StatusFull   string `gorm:"column:status_full"`
	InjuryNote   string `gorm:"column:injury_note"`

	IsKeeper   bool   `gorm:"column:is_keeper"`
	KeeperCost string `gorm:"column:keeper_cost"`
	IsEditable bool   `gorm:"column:is_editable"`

	FetchedAt time.Time `gorm:"column:fetched_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (RosterDaily) TableName() string { return "roster_daily" }

// DateDimension enumerates every schedule day of a league season, used to
// drive per-day extraction and the date-range consistency check.
type DateDimension struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Date      time.Time `gorm:"column:date;not null;uniqueIndex:idx_date_unique"`
	LeagueKey string    `gorm:"column:league_key;not null;uniqueIndex:idx_date_unique"`
	Season    string    `gorm:"column:season;not null"`
}

func (DateDimension) TableName() string { return "date_dimension" }
