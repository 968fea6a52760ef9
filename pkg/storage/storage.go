package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	_ "github.com/mattn/go-sqlite3"
)

// Drivers understood by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrDriverUnknown reports a driver name Open does not recognise.
var ErrDriverUnknown = errors.New("storage: unknown driver")

// ErrDSNRequired reports a file or server backed driver missing its DSN.
var ErrDSNRequired = errors.New("storage: dsn required")

// Config selects the database backing the archive.
type Config struct {
	Driver string
	DSN    string
}

// Open connects to the configured database and wraps it in a bun.DB with
// the matching dialect. The memory driver shares a single connection so
// every caller sees the same in-memory database.
func Open(cfg Config) (*bun.DB, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		sqlDB, err := sql.Open("sqlite3", "file::memory:?cache=shared")
		if err != nil {
			return nil, fmt.Errorf("storage: open memory db: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	case DriverSQLite:
		if cfg.DSN == "" {
			return nil, ErrDSNRequired
		}
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite db: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, ErrDSNRequired
		}
		sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriverUnknown, cfg.Driver)
	}
}
