// Package sqlite registers the SQLite dialector with the GORM adapter.
package sqlite

import (
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	gormadapter "github.com/tigerroll/fantasyload/pkg/etl/adapter/database/gorm"
	"github.com/tigerroll/fantasyload/pkg/etl/core/config"
)

// init registers the SQLite dialector factory. Importing this package makes
// "type: sqlite" connections available.
func init() {
	gormadapter.RegisterDialector("sqlite", func(cfg config.DatabaseConfig) (gorm.Dialector, error) {
		if cfg.Database == "" {
			return nil, errors.New("SQLite database path cannot be empty")
		}
		return sqlite.Open(ConnectionString(cfg)), nil
	})
}

// ConnectionString generates the DSN for SQLite connections. The GORM SQLite
// dialector expects the file path directly.
func ConnectionString(c config.DatabaseConfig) string {
	return c.Database
}
