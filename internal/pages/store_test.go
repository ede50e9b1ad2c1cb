package pages_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/linkmax/lnkmx/internal/pages"
)

func TestStoreSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService(t)
	store := pages.NewStore(svc)

	page := pages.CreateDefault("anna")
	saved := store.Save(ctx, &page)
	if !saved.IsSuccess() {
		t.Fatalf("expected success, got %v", saved.Err())
	}
	if saved.Data().Slug != "anna" || saved.Data().PageID != page.ID.String() {
		t.Fatalf("unexpected outcome %+v", saved.Data())
	}

	loaded := store.LoadBySlug(ctx, "anna")
	if !loaded.IsSuccess() || loaded.Data() == nil || loaded.Data().ID != page.ID {
		t.Fatalf("unexpected load result %v", loaded)
	}

	byUser := store.LoadUserPage(ctx, "anna")
	if !byUser.IsSuccess() || byUser.Data() == nil {
		t.Fatalf("unexpected user page result %v", byUser)
	}
}

func TestStoreMissingPageIsEmptySuccess(t *testing.T) {
	svc, _ := newMemoryService(t)
	store := pages.NewStore(svc)

	res := store.LoadBySlug(context.Background(), "ghost")
	if !res.IsSuccess() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	if res.Data() != nil {
		t.Fatalf("expected nil page, got %+v", res.Data())
	}
}

func TestStoreClassifiesFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService(t)
	store := pages.NewStore(svc)

	invalid := pages.CreateDefault("anna")
	invalid.Blocks = nil
	res := store.Save(ctx, &invalid)
	if !res.IsFailure() {
		t.Fatal("expected failure for a page without blocks")
	}
	if !goerrors.IsCategory(res.Err(), goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", res.Err())
	}

	if user := store.LoadUserPage(ctx, " "); !goerrors.IsCategory(user.Err(), goerrors.CategoryValidation) {
		t.Fatalf("expected validation category for blank user, got %v", user.Err())
	}
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	svc, _ := newMemoryService(t)
	store := pages.NewStore(svc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := pages.CreateDefault("anna")
	res := store.Save(ctx, &page)
	if res.IsFailure() {
		return
	}
	// The save may still win the race against ctx.Done.
	if res.Data().Slug == "" {
		t.Fatalf("unexpected empty outcome %+v", res.Data())
	}
}
