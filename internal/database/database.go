package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the configured database. SQLite is the default; Postgres
// is selected with driver "postgres" and a DSN.
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormLogger := logger.Default
	if !cfg.LogMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		// ensure parent directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dialector = sqlite.Open(cfg.Path)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// connection pool
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if cfg.Driver == "" || cfg.Driver == "sqlite" {
		// SQLite performance and reliability tuning
		_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
		_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
		_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	}

	return db, nil
}
