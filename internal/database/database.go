package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/justchokingaround/aniseek/internal/config"
)

// Open opens the sqlite database at cfg.Path, applies connection settings
// and brings the schema up to date.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 1
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(max(maxConns/2, 1))

	if err := applyPragmas(db, cfg); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if err := RunMigrations(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run auto migrations: %w\n\n"+
			"Hint: if the database was created by an incompatible version, delete it and restart:\n"+
			"  rm -f %s", err, cfg.Path)
	}

	return db, nil
}

func applyPragmas(db *gorm.DB, cfg *config.DatabaseConfig) error {
	if cfg.WALMode {
		if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if cfg.AutoVacuum {
		if err := db.Exec("PRAGMA auto_vacuum=INCREMENTAL").Error; err != nil {
			return fmt.Errorf("failed to enable auto vacuum: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
