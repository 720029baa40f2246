// Package gorm adapts the persistence port onto GORM. Dialect-specific
// subpackages register their dialector factories here via init().
package gorm

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tigerroll/fantasyload/pkg/etl/core/config"
	"github.com/tigerroll/fantasyload/pkg/etl/support/logger"
)

// DialectorFactory builds a gorm.Dialector from a database configuration.
type DialectorFactory func(cfg config.DatabaseConfig) (gorm.Dialector, error)

var (
	dialectorRegistry = make(map[string]DialectorFactory)
	dialectorMutex    sync.RWMutex
)

// RegisterDialector registers a DialectorFactory for the given database type.
func RegisterDialector(dbType string, factory DialectorFactory) {
	dialectorMutex.Lock()
	defer dialectorMutex.Unlock()
	if _, exists := dialectorRegistry[dbType]; exists {
		logger.Warnf("Dialector for type '%s' already registered. Overwriting.", dbType)
	}
	dialectorRegistry[dbType] = factory
}

// GetDialectorFactory retrieves the DialectorFactory for the specified type.
func GetDialectorFactory(dbType string) (DialectorFactory, error) {
	dialectorMutex.RLock()
	defer dialectorMutex.RUnlock()
	factory, ok := dialectorRegistry[dbType]
	if !ok {
		return nil, fmt.Errorf("no dialector registered for database type: %s", dbType)
	}
	return factory, nil
}

// Connection wraps one GORM database handle together with its configuration.
type Connection struct {
	db    *gorm.DB
	sqlDB *sql.DB
	cfg   config.DatabaseConfig
	name  string
}

// Open establishes a GORM connection for the configured database type.
func Open(cfg config.DatabaseConfig, name string) (*Connection, error) {
	factory, err := GetDialectorFactory(cfg.Type)
	if err != nil {
		return nil, err
	}
	dialector, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dialector for %s: %w", cfg.Type, err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger("SILENT"),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open GORM connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	logger.Infof("Established DB connection: %s (%s)", name, cfg.Type)
	return &Connection{db: db, sqlDB: sqlDB, cfg: cfg, name: name}, nil
}

// NewConnection wraps an already-opened GORM handle. Tests use it to inject
// mocked connections.
func NewConnection(db *gorm.DB, cfg config.DatabaseConfig, name string) (*Connection, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return &Connection{db: db, sqlDB: sqlDB, cfg: cfg, name: name}, nil
}

// GormDB exposes the underlying GORM handle to the transaction manager.
func (c *Connection) GormDB() *gorm.DB { return c.db }

// Name returns the logical connection name.
func (c *Connection) Name() string { return c.name }

// Type returns the database type of this connection.
func (c *Connection) Type() string { return c.cfg.Type }

// Config returns the configuration this connection was opened with.
func (c *Connection) Config() config.DatabaseConfig { return c.cfg }

// AutoMigrate creates or updates the tables for the given models.
func (c *Connection) AutoMigrate(models ...interface{}) error {
	if err := c.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema on %s: %w", c.name, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *Connection) Close() error {
	return c.sqlDB.Close()
}

// NewGormLogger creates a gorm logger instance honoring the given level and
// redirecting output to the application logger.
func NewGormLogger(level string) gormlogger.Interface {
	var gormLevel gormlogger.LogLevel
	switch strings.ToUpper(level) {
	case "ERROR":
		gormLevel = gormlogger.Error
	case "WARN":
		gormLevel = gormlogger.Warn
	case "INFO", "DEBUG":
		gormLevel = gormlogger.Info
	default:
		gormLevel = gormlogger.Silent
	}

	return gormlogger.New(
		&gormWriter{},
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// gormWriter redirects GORM log output to the application logger. SQL trace
// lines go to DEBUG, everything else to INFO.
type gormWriter struct{}

func (w *gormWriter) Printf(format string, v ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	if strings.Contains(msg, "SELECT") || strings.Contains(msg, "INSERT") ||
		strings.Contains(msg, "UPDATE") || strings.Contains(msg, "DELETE") {
		logger.Debugf("[GORM] %s", msg)
		return
	}
	logger.Infof("[GORM] %s", msg)
}
