package gorm

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/tigerroll/fantasyload/pkg/etl/core/config"
)

// NewConnectionProvider opens the "default" database connection and ties its
// lifetime to the Fx application.
func NewConnectionProvider(lc fx.Lifecycle, cfg *config.Config) (*Connection, error) {
	dbCfg, ok := cfg.DefaultDatabase()
	if !ok {
		return nil, fmt.Errorf("database configuration 'default' not found")
	}
	conn, err := Open(dbCfg, "default")
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return conn.Close()
		},
	})
	return conn, nil
}

// Module exports the GORM adapter components for dependency injection.
// Dialect registration happens in the driver subpackages' init functions;
// importing one of them selects the backend.
var Module = fx.Options(
	fx.Provide(NewConnectionProvider),
	fx.Provide(NewTransactionManager),
)
