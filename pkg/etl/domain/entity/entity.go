package entity

// All returns every table model in foreign-key-safe creation order, for
// schema setup.
func All() []interface{} {
	return []interface{}{
		&Game{},
		&League{},
		&StatCategory{},
		&RosterPosition{},
		&Team{},
		&Manager{},
		&Player{},
		&PlayerEligiblePosition{},
		&Transaction{},
		&TransactionPlayer{},
		&RosterDaily{},
		&DateDimension{},
		&PlayerDailyStats{},
		&PlayerSeasonStats{},
		&TeamStatsWeekly{},
		&LeagueStandings{},
		&TeamMatchup{},
	}
}
