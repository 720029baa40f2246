// Package postgres registers the PostgreSQL dialector with the GORM adapter.
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	gormadapter "github.com/tigerroll/fantasyload/pkg/etl/adapter/database/gorm"
	"github.com/tigerroll/fantasyload/pkg/etl/core/config"
)

// init registers the PostgreSQL dialector factory. Importing this package
// makes "type: postgres" connections available.
func init() {
	gormadapter.RegisterDialector("postgres", func(cfg config.DatabaseConfig) (gorm.Dialector, error) {
		return postgres.Open(ConnectionString(cfg)), nil
	})
}

// ConnectionString generates the DSN for PostgreSQL connections.
func ConnectionString(c config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}
