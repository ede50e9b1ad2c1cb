package pages_test

import (
	"errors"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"
	"github.com/linkmax/lnkmx/internal/pages"
)

func TestPublicURLResolver(t *testing.T) {
	resolver := pages.NewPublicURLResolver("https://lnkmx.my/", "", "")
	url, err := resolver.PageURL("anna")
	if err != nil {
		t.Fatalf("PageURL: %v", err)
	}
	if url != "https://lnkmx.my/anna" {
		t.Fatalf("unexpected url %q", url)
	}

	if _, err := resolver.PageURL("  "); !errors.Is(err, pages.ErrSlugInvalid) {
		t.Fatalf("expected ErrSlugInvalid, got %v", err)
	}
}

func TestPublicURLResolverWithoutManager(t *testing.T) {
	resolver := pages.NewURLKitResolver(pages.URLKitResolverOptions{})
	if _, err := resolver.PageURL("anna"); !errors.Is(err, pages.ErrPublicURLDisabled) {
		t.Fatalf("expected ErrPublicURLDisabled, got %v", err)
	}
}

func TestPublicURLResolverUnknownGroup(t *testing.T) {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{Name: "public", BaseURL: "https://lnkmx.my", Paths: map[string]string{"page": "/p/:slug"}},
		},
	})

	custom := pages.NewURLKitResolver(pages.URLKitResolverOptions{Manager: manager})
	url, err := custom.PageURL("anna")
	if err != nil || url != "https://lnkmx.my/p/anna" {
		t.Fatalf("unexpected url %q (%v)", url, err)
	}

	missing := pages.NewURLKitResolver(pages.URLKitResolverOptions{Manager: manager, Group: "missing"})
	if _, err := missing.PageURL("anna"); err == nil {
		t.Fatal("expected an error for an unknown route group")
	}
}
