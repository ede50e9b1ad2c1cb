package pages_test

import (
	"context"
	"testing"

	"github.com/linkmax/lnkmx/pages"
)

func TestFacadeRoundTrip(t *testing.T) {
	svc := pages.NewService(pages.NewMemoryPageRepository())
	store := pages.NewStore(svc)

	page := pages.CreateDefault("anna")
	if res := page.Validate(); !res.Valid {
		t.Fatalf("expected default page to validate, got %v", res.Errors)
	}

	outcome, err := store.Save(context.Background(), &page).Unwrap()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if outcome.Slug != "anna" {
		t.Fatalf("expected slug anna, got %q", outcome.Slug)
	}

	loaded, err := store.LoadBySlug(context.Background(), "anna").Unwrap()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || len(loaded.Blocks) != len(page.Blocks) {
		t.Fatalf("expected %d blocks, got %#v", len(page.Blocks), loaded)
	}
}
