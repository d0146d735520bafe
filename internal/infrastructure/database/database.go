package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/barberoil/fuelpos/internal/config"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported backing drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// NewDB opens the backing database selected by cfg.Driver. Any failure is
// reported as a StoreUnavailable error.
func NewDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	switch cfg.Driver {
	case "", DriverSQLite:
		return NewSQLiteDB(cfg.SQLitePath(), logLevel)
	case DriverPostgres:
		return NewPostgresDB(cfg, logLevel)
	default:
		return nil, apperror.NewStoreUnavailableError(fmt.Errorf("unsupported database driver %q", cfg.Driver))
	}
}

// NewSQLiteDB opens (creating if absent) the local sqlite file at path.
func NewSQLiteDB(path string, logLevel logger.LogLevel) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperror.NewStoreUnavailableError(fmt.Errorf("failed to create data directory: %w", err))
		}
	}

	dsn := path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, apperror.NewStoreUnavailableError(fmt.Errorf("failed to open sqlite database: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperror.NewStoreUnavailableError(fmt.Errorf("failed to get underlying sql.DB: %w", err))
	}
	// one writer at a time
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		return nil, apperror.NewStoreUnavailableError(err)
	}

	log.Printf("Opened sqlite database at %s", path)
	return db, nil
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, apperror.NewStoreUnavailableError(fmt.Errorf("failed to connect to database: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperror.NewStoreUnavailableError(fmt.Errorf("failed to get underlying sql.DB: %w", err))
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}
