package lnkmx_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/linkmax/lnkmx"
)

func TestEmbeddedMigrationsCoverBothDialects(t *testing.T) {
	for _, dir := range []string{"sqlite", "postgres"} {
		matches, err := fs.Glob(lnkmx.GetMigrationsFS(), lnkmx.MigrationsRoot+"/"+dir+"/*.up.sql")
		if err != nil {
			t.Fatalf("glob %s: %v", dir, err)
		}
		if len(matches) != 2 {
			t.Fatalf("expected 2 %s migrations, got %v", dir, matches)
		}
	}
}

func TestModuleSQLiteRoundTrip(t *testing.T) {
	cfg := lnkmx.DefaultConfig()
	cfg.Storage.Provider = "sqlite"
	cfg.Storage.DSN = fmt.Sprintf("file:lnkmx_module_%d?mode=memory&cache=shared", time.Now().UnixNano())

	module, err := lnkmx.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	if module.DB() == nil {
		t.Fatal("expected sqlite database handle")
	}

	ctx := context.Background()
	page, err := module.Pages().Create(ctx, "anna")
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	saved := module.Store().Save(ctx, page)
	if saved.IsFailure() {
		t.Fatalf("save page: %v", saved.Err())
	}

	loaded, err := module.Store().LoadUserPage(ctx, "anna").Unwrap()
	if err != nil {
		t.Fatalf("load user page: %v", err)
	}
	if loaded == nil || loaded.ID != page.ID {
		t.Fatalf("expected page %s, got %#v", page.ID, loaded)
	}
}

func TestModuleCommandsDisabled(t *testing.T) {
	cfg := lnkmx.DefaultConfig()
	cfg.Features.Commands = false

	module, err := lnkmx.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if _, err := module.Commands(); !errors.Is(err, lnkmx.ErrCommandsDisabled) {
		t.Fatalf("expected ErrCommandsDisabled, got %v", err)
	}
}

func TestModuleCloseIsIdempotent(t *testing.T) {
	module, err := lnkmx.New(lnkmx.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if err := module.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := module.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
