// Package entity defines the persistent model of the fantasy sports data
// warehouse. Natural keys are enforced with unique indexes so the load path
// can rely on the database rejecting duplicates it failed to catch.
package entity

import "time"

// Game is one fantasy game offering (sport plus season), the root of the
// entity hierarchy.
type Game struct {
	GameKey            string    `gorm:"column:game_key;primaryKey"`
	GameID             string    `gorm:"column:game_id;not null"`
	Name               string    `gorm:"column:name;not null"`
	Code               string    `gorm:"column:code;not null;index:idx_game_code_season"`
	Type               string    `gorm:"column:type"`
	URL                string    `gorm:"column:url"`
	Season             string    `gorm:"column:season;not null;index:idx_game_code_season"`
	IsRegistrationOver bool      `gorm:"column:is_registration_over"`
	IsGameOver         bool      `gorm:"column:is_game_over"`
	IsOffseason        bool      `gorm:"column:is_offseason"`
	EditorialSeason    string    `gorm:"column:editorial_season"`
	PicksStatus        string    `gorm:"column:picks_status"`
	ContestGroupID     string    `gorm:"column:contest_group_id"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (Game) TableName() string { return "games" }
