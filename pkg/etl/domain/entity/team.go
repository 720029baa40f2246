package entity

import "time"

// Team is one fantasy team within a league.
type Team struct {
	TeamKey          string    `gorm:"column:team_key;primaryKey"`
	TeamID           string    `gorm:"column:team_id;not null"`
	LeagueKey        string    `gorm:"column:league_key;not null;index:idx_team_league"`
	Name             string    `gorm:"column:name;not null"`
	URL              string    `gorm:"column:url"`
	TeamLogoURL      string    `gorm:"column:team_logo_url"`
	DivisionID       string    `gorm:"column:division_id"`
	WaiverPriority   int       `gorm:"column:waiver_priority"`
	FaabBalance      string    `gorm:"column:faab_balance"`
	NumberOfMoves    int       `gorm:"column:number_of_moves"`
	NumberOfTrades   int       `gorm:"column:number_of_trades"`
	RosterAddsWeek   string    `gorm:"column:roster_adds_week"`
	RosterAddsValue  string    `gorm:"column:roster_adds_value"`
	ClinchedPlayoffs bool      `gorm:"column:clinched_playoffs"`
	HasDraftGrade    bool      `gorm:"column:has_draft_grade"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (Team) TableName() string { return "teams" }

// Manager is one human manager of a team. A team can have several.
type Manager struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ManagerID      string    `gorm:"column:manager_id;not null;uniqueIndex:idx_manager_unique"`
	TeamKey        string    `gorm:"column:team_key;not null;uniqueIndex:idx_manager_unique"`
	Nickname       string    `gorm:"column:nickname;not null"`
	GUID           string    `gorm:"column:guid;not null"`
	IsCommissioner bool      `gorm:"column:is_commissioner"`
	Email          string    `gorm:"column:email"`
	ImageURL       string    `gorm:"column:image_url"`
	FeloScore      string    `gorm:"column:felo_score"`
	FeloTier       string    `gorm:"column:felo_tier"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Manager) TableName() string { return "managers" }
