package storage_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"github.com/linkmax/lnkmx/internal/validation"
	"github.com/linkmax/lnkmx/pkg/storage"
	"github.com/uptrace/bun/dialect"
)

func memoryConfig() storage.Config {
	return storage.Config{Driver: "sqlite3", DSN: "file:storage-" + uuid.NewString() + "?mode=memory&cache=shared"}
}

func TestOpenSelectsDialect(t *testing.T) {
	db, err := storage.Open(memoryConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if db.Dialect().Name() != dialect.SQLite {
		t.Fatalf("expected sqlite dialect, got %v", db.Dialect().Name())
	}

	pg, err := storage.Open(storage.Config{Driver: "postgresql", DSN: "postgres://lnkmx@localhost:5432/lnkmx?sslmode=disable"})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() { _ = pg.Close() })
	if pg.Dialect().Name() != dialect.PG {
		t.Fatalf("expected pg dialect, got %v", pg.Dialect().Name())
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	if _, err := storage.Open(storage.Config{Driver: "sqlite"}); !errors.Is(err, storage.ErrDSNRequired) {
		t.Fatalf("expected ErrDSNRequired, got %v", err)
	}
	if _, err := storage.Open(storage.Config{Driver: "mongo", DSN: "x"}); !errors.Is(err, storage.ErrDriverUnsupported) {
		t.Fatalf("expected ErrDriverUnsupported, got %v", err)
	}
}

func TestApplyMigrationsRunsDialectScripts(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(memoryConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	fsys := fstest.MapFS{
		"migrations/sqlite/0002_b.up.sql":   {Data: []byte("CREATE TABLE IF NOT EXISTS b (id TEXT);")},
		"migrations/sqlite/0001_a.up.sql":   {Data: []byte("CREATE TABLE IF NOT EXISTS a (id TEXT);\nCREATE INDEX IF NOT EXISTS idx_a ON a (id);")},
		"migrations/sqlite/README.md":       {Data: []byte("ignored")},
		"migrations/postgres/0001_a.up.sql": {Data: []byte("CREATE TABLE a (id UUID);")},
	}

	applied, err := storage.ApplyMigrations(ctx, db, fsys, "migrations")
	if err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if !slices.Equal(applied, []string{"0001_a.up.sql", "0002_b.up.sql"}) {
		t.Fatalf("unexpected applied list %v", applied)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO b (id) VALUES ('x')"); err != nil {
		t.Fatalf("expected table b to exist: %v", err)
	}

	if _, err := storage.ApplyMigrations(ctx, db, fsys, "migrations"); err != nil {
		t.Fatalf("expected migrations to be re-runnable, got %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := storage.ValidateConfig(memoryConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	err := storage.ValidateConfig(storage.Config{Driver: "mongo", DSN: "x"})
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected schema validation error, got %v", err)
	}
	if issues := validation.Issues(err); len(issues) == 0 {
		t.Fatal("expected validation issues")
	}
}

func TestDialectAliases(t *testing.T) {
	cases := map[string]string{
		"sqlite3":    storage.DriverSQLite,
		" SQLite ":   storage.DriverSQLite,
		"pgx":        storage.DriverPostgres,
		"postgresql": storage.DriverPostgres,
		"mysql":      "mysql",
	}
	for in, want := range cases {
		if got := storage.Dialect(in); got != want {
			t.Fatalf("Dialect(%q) = %q, want %q", in, got, want)
		}
	}
}
