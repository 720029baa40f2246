package entity

import "time"

// Transaction is one league transaction (add/drop, trade, waiver claim).
type Transaction struct {
	TransactionKey string `gorm:"column:transaction_key;primaryKey"`
	TransactionID  string `gorm:"column:transaction_id;not null"`
	LeagueKey      string `gorm:"column:league_key;not null;index:idx_transaction_league"`
	Type           string `gorm:"column:type;not null;index:idx_transaction_type"`
	Status         string `gorm:"column:status;not null"`
	Timestamp      string `gorm:"column:timestamp;not null;index:idx_transaction_timestamp"`

	TraderTeamKey  string `gorm:"column:trader_team_key"`
	TraderTeamName string `gorm:"column:trader_team_name"`
	TradeeTeamKey  string `gorm:"column:tradee_team_key"`
	TradeeTeamName string `gorm:"column:tradee_team_name"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionPlayer is one player movement within a transaction.
type TransactionPlayer struct {
	ID                  uint      `gorm:"column:id;primaryKey;autoIncrement"`
	TransactionKey      string    `gorm:"column:transaction_key;not null;uniqueIndex:idx_transaction_player_unique"`
	PlayerKey           string    `gorm:"column:player_key;not null;uniqueIndex:idx_transaction_player_unique"`
	PlayerID            string    `gorm:"column:player_id;not null"`
	PlayerName          string    `gorm:"column:player_name;not null"`
	EditorialTeamAbbr   string    `gorm:"column:editorial_team_abbr"`
	DisplayPosition     string    `gorm:"column:display_position"`
	PositionType        string    `gorm:"column:position_type"`
	TransactionType     string    `gorm:"column:transaction_type;not null"`
	SourceType          string    `gorm:"column:source_type"`
	SourceTeamKey       string    `gorm:"column:source_team_key"`
	SourceTeamName      string    `gorm:"column:source_team_name"`
	DestinationType     string    `gorm:"column:destination_type"`
	DestinationTeamKey  string    `gorm:"column:destination_team_key"`
	DestinationTeamName string    `gorm:"column:destination_team_name"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (TransactionPlayer) TableName() string { return "transaction_players" }
