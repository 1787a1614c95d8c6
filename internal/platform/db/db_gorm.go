// Package db opens the gorm database handle for the service.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"twse_codes/internal/feature/codes/domain/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// Config holds database connection settings. It is passed in explicitly; no
// package-level connection state exists.
type Config struct {
	Driver      string // "sqlite" or "postgres"
	DSN         string // file path for sqlite, key/value DSN for postgres
	AutoMigrate bool
}

// LoadConfigFromEnv reads the database settings from DB_DRIVER, DB_DSN and
// RUN_MIGRATIONS. The default is a local sqlite file, matching the standalone
// download tool.
func LoadConfigFromEnv() Config {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = DriverSQLite
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "twse_codes.db"
	}
	return Config{
		Driver:      driver,
		DSN:         dsn,
		AutoMigrate: os.Getenv("RUN_MIGRATIONS") == "true",
	}
}

// Opener opens a gorm handle for a DSN. Extracted so the retry logic is
// testable without a real database.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry keeps calling open until it succeeds or the timeout
// elapses. A server-based database may not be ready when the service starts.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}
}

// Open connects using the configured driver and optionally migrates the
// snapshot table. Only postgres connections are retried; opening a sqlite
// file either works or never will.
func Open(cfg Config) (*gorm.DB, error) {
	var open Opener
	switch cfg.Driver {
	case DriverSQLite:
		open = func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}
	case DriverPostgres:
		open = func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.Driver)
	}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.Driver == DriverPostgres {
		db, err = ConnectWithRetry(cfg.DSN, connectTimeout, open)
	} else {
		db, err = open(cfg.DSN)
	}
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&entity.CodeRecord{}); err != nil {
			return nil, fmt.Errorf("migrate twse_codes: %w", err)
		}
	}
	return db, nil
}
