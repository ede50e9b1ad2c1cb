package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Drivers understood by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrDriverUnsupported = errors.New("storage: unsupported driver")
	ErrDSNRequired       = errors.New("storage: dsn is required")
)

// Config selects the SQL backend of the page repository.
type Config struct {
	Name    string         `json:"name"`
	Driver  string         `json:"driver"`
	DSN     string         `json:"dsn"`
	Options map[string]any `json:"options,omitempty"`
}

// Open connects to the configured database and returns a bun handle using the
// matching dialect. SQLite connections are limited to one open connection so
// in-memory databases survive across queries.
func Open(cfg Config) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, ErrDSNRequired
	}
	switch Dialect(cfg.Driver) {
	case DriverSQLite:
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	case DriverPostgres:
		sqlDB, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		if max, ok := cfg.Options["max_open_conns"].(int); ok && max > 0 {
			sqlDB.SetMaxOpenConns(max)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriverUnsupported, cfg.Driver)
	}
}

// Dialect normalises driver aliases ("sqlite3", "pgx", "postgresql") to a
// driver constant. Unknown names come back lowercased.
func Dialect(driver string) string {
	switch name := strings.ToLower(strings.TrimSpace(driver)); name {
	case "sqlite", "sqlite3":
		return DriverSQLite
	case "postgres", "postgresql", "pgx", "pg":
		return DriverPostgres
	default:
		return name
	}
}
