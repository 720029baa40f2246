package entity

import "time"

// Player is one rosterable player within a league and season.
type Player struct {
	PlayerKey          string    `gorm:"column:player_key;primaryKey"`
	PlayerID           string    `gorm:"column:player_id;not null"`
	EditorialPlayerKey string    `gorm:"column:editorial_player_key;not null;index:idx_player_editorial_key"`
	LeagueKey          string    `gorm:"column:league_key;not null;index:idx_player_league"`
	FullName           string    `gorm:"column:full_name;not null;index:idx_player_name"`
	FirstName          string    `gorm:"column:first_name"`
	LastName           string    `gorm:"column:last_name"`
	CurrentTeamKey     string    `gorm:"column:current_team_key"`
	CurrentTeamName    string    `gorm:"column:current_team_name"`
	CurrentTeamAbbr    string    `gorm:"column:current_team_abbr"`
	DisplayPosition    string    `gorm:"column:display_position;index:idx_player_position"`
	PrimaryPosition    string    `gorm:"column:primary_position"`
	PositionType       string    `gorm:"column:position_type"`
	UniformNumber      string    `gorm:"column:uniform_number"`
	Status             string    `gorm:"column:status"`
	ImageURL           string    `gorm:"column:image_url"`
	HeadshotURL        string    `gorm:"column:headshot_url"`
	IsUndroppable      bool      `gorm:"column:is_undroppable"`
	Season             string    `gorm:"column:season;not null"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (Player) TableName() string { return "players" }

// PlayerEligiblePosition is one position a player may legally fill.
type PlayerEligiblePosition struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerKey string    `gorm:"column:player_key;not null;uniqueIndex:idx_player_position_unique"`
	Position  string    `gorm:"column:position;not null;uniqueIndex:idx_player_position_unique"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (PlayerEligiblePosition) TableName() string { return "player_eligible_positions" }
