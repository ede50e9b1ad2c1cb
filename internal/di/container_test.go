package di_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/linkmax/lnkmx/internal/blocks"
	"github.com/linkmax/lnkmx/internal/commands/fixtures"
	pagescmd "github.com/linkmax/lnkmx/internal/commands/pages"
	"github.com/linkmax/lnkmx/internal/di"
	"github.com/linkmax/lnkmx/internal/runtimeconfig"
)

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Languages = nil

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrLanguagesRequired) {
		t.Fatalf("expected ErrLanguagesRequired, got %v", err)
	}
}

func TestContainerDefaultsToMemoryStorage(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.DB() != nil {
		t.Fatal("expected no database for memory storage")
	}
	if container.PageService() == nil || container.Store() == nil || container.Importer() == nil {
		t.Fatal("expected page service, store and importer to be configured")
	}
	if _, err := container.Commands(); err != nil {
		t.Fatalf("expected commands to be registered, got %v", err)
	}

	page, err := container.PageService().Create(context.Background(), "anna")
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := container.PageService().Save(context.Background(), page); err != nil {
		t.Fatalf("save page: %v", err)
	}
	url, err := container.PageService().PublicURL(page)
	if err != nil {
		t.Fatalf("public url: %v", err)
	}
	if url != "https://lnkmx.my/anna" {
		t.Fatalf("unexpected public url %q", url)
	}
}

func TestContainerCommandsDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Commands = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, err := container.Commands(); !errors.Is(err, di.ErrCommandsDisabled) {
		t.Fatalf("expected ErrCommandsDisabled, got %v", err)
	}
}

func TestContainerRegistersCommandsWithRegistry(t *testing.T) {
	registry := fixtures.NewRecordingRegistry()

	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithCommandRegistry(registry))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	set, err := container.Commands()
	if err != nil {
		t.Fatalf("commands: %v", err)
	}
	if len(registry.Handlers) != 4 {
		t.Fatalf("expected 4 registered handlers, got %d", len(registry.Handlers))
	}
	if registry.Handlers[0] != any(set.Reorder) {
		t.Fatalf("expected reorder handler to register first")
	}
}

func TestContainerSQLiteStorage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageSQLite
	cfg.Storage.DSN = fmt.Sprintf("file:di_sqlite_%d?mode=memory&cache=shared", time.Now().UnixNano())
	cfg.Cache.Enabled = true

	container, err := di.NewContainer(cfg, di.WithMigrations(os.DirFS("../../data/sql/migrations"), "."))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.DB() == nil {
		t.Fatal("expected sqlite database")
	}

	ctx := context.Background()
	svc := container.PageService()
	page, err := svc.Create(ctx, "anna")
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := svc.Save(ctx, page); err != nil {
		t.Fatalf("save page: %v", err)
	}

	loaded, err := container.Store().LoadBySlug(ctx, "anna").Unwrap()
	if err != nil {
		t.Fatalf("load by slug: %v", err)
	}
	if loaded == nil || loaded.ID != page.ID {
		t.Fatalf("expected stored page %s, got %#v", page.ID, loaded)
	}
	if len(loaded.Blocks) != len(page.Blocks) {
		t.Fatalf("expected %d blocks, got %d", len(page.Blocks), len(loaded.Blocks))
	}
}

func TestContainerDispatchesPageCommands(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithDispatcher(1))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	ctx := context.Background()
	svc := container.PageService()
	page, err := svc.Create(ctx, "dispatch")
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := svc.Save(ctx, page); err != nil {
		t.Fatalf("save page: %v", err)
	}

	err = dispatcher.Dispatch(ctx, pagescmd.AddBlockCommand{
		PageID:    page.ID,
		BlockType: string(blocks.TypeLink),
		Fields:    map[string]any{"url": "https://shop.example", "title": "Shop"},
	})
	if err != nil {
		t.Fatalf("dispatch add block: %v", err)
	}

	updated, err := svc.Get(ctx, page.ID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if len(updated.Blocks) != len(page.Blocks)+1 {
		t.Fatalf("expected %d blocks after dispatch, got %d", len(page.Blocks)+1, len(updated.Blocks))
	}
	if last := updated.Blocks[len(updated.Blocks)-1]; last.Type != blocks.TypeLink {
		t.Fatalf("expected appended link block, got %s", last.Type)
	}
}
