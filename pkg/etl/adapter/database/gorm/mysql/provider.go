// Package mysql registers the MySQL dialector with the GORM adapter.
package mysql

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	gormadapter "github.com/tigerroll/fantasyload/pkg/etl/adapter/database/gorm"
	"github.com/tigerroll/fantasyload/pkg/etl/core/config"
)

// init registers the MySQL dialector factory. Importing this package makes
// "type: mysql" connections available.
func init() {
	gormadapter.RegisterDialector("mysql", func(cfg config.DatabaseConfig) (gorm.Dialector, error) {
		return mysql.Open(ConnectionString(cfg)), nil
	})
}

// ConnectionString generates the DSN for MySQL connections.
func ConnectionString(c config.DatabaseConfig) string {
	authPart := c.User
	if c.Password != "" {
		authPart = fmt.Sprintf("%s:%s", c.User, c.Password)
	}
	if authPart != "" {
		authPart += "@"
	}
	return fmt.Sprintf("%stcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		authPart, c.Host, c.Port, c.Database)
}
