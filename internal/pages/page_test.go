package pages

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/linkmax/lnkmx/internal/blocks"
	"github.com/linkmax/lnkmx/internal/i18n"
)

func blockIDs(list []blocks.Block) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}

func pageWith(ids ...string) Page {
	page := CreateDefault("user-1")
	page.Blocks = nil
	for _, id := range ids {
		page.Blocks = append(page.Blocks, blocks.Block{ID: id, Type: blocks.TypeLink, Fields: map[string]any{"url": "https://x/" + id, "title": id}})
	}
	return page
}

func TestCreateDefault(t *testing.T) {
	page := CreateDefault("user-1")
	if len(page.Blocks) != 1 || page.Blocks[0].Type != blocks.TypeProfile {
		t.Fatalf("expected one profile block, got %+v", page.Blocks)
	}
	if page.EditorMode != EditorModeLinear {
		t.Fatalf("expected linear editor mode, got %q", page.EditorMode)
	}
	if !page.HasProfileBlock() || page.HasPremiumContent() {
		t.Fatal("unexpected derived flags on default page")
	}
	if name, _ := page.Blocks[0].Text("name"); name != blocks.DefaultProfileName {
		t.Fatalf("unexpected default profile name %#v", name)
	}
	if res := page.Validate(); !res.Valid {
		t.Fatalf("expected default page to validate: %v", res.Errors)
	}

	anonymous := CreateDefault("")
	res := anonymous.Validate()
	if res.Valid || !slices.Contains(res.Errors, "User ID is required") {
		t.Fatalf("expected missing user error, got %+v", res)
	}
}

func TestValidatePageInvariants(t *testing.T) {
	page := pageWith()
	page.UserID = ""
	page.EditorMode = "masonry"
	res := page.Validate()
	want := []string{"User ID is required", "Page must contain at least one block", "Unknown editor mode: masonry"}
	if !slices.Equal(res.Errors, want) {
		t.Fatalf("expected %v, got %v", want, res.Errors)
	}

	dup := pageWith("a", "a")
	if res := dup.Validate(); res.Valid || res.Errors[0] != "Duplicate block ID: a" {
		t.Fatalf("expected duplicate id error, got %+v", res)
	}
}

func TestTwoTierValidation(t *testing.T) {
	page := CreateDefault("user-1")
	if len(page.Blocks) != 1 || page.Blocks[0].Type != blocks.TypeProfile {
		t.Fatalf("unexpected default blocks %+v", page.Blocks)
	}
	link, err := page.AppendNew(blocks.TypeLink, map[string]any{"url": "", "title": "Shop"})
	if err != nil {
		t.Fatalf("AppendNew: %v", err)
	}

	if res := page.Validate(); !res.Valid {
		t.Fatalf("page-level validation should pass, got %v", res.Errors)
	}
	res := blocks.Validate(link)
	if res.Valid || !slices.Contains(res.Errors, "link: url is required") {
		t.Fatalf("expected link validation failure, got %+v", res)
	}
	issues := page.ValidateBlocks()
	if len(issues) != 1 || issues[0].BlockID != link.ID || issues[0].Position != 1 {
		t.Fatalf("unexpected block issues %+v", issues)
	}
}

func TestCountBlocks(t *testing.T) {
	page := CreateDefault("user-1")
	if _, err := page.AppendNew(blocks.TypeVideo, map[string]any{"url": "https://v"}); err != nil {
		t.Fatalf("AppendNew: %v", err)
	}
	if page.CountBlocks(false) != 2 || page.CountBlocks(true) != 1 {
		t.Fatalf("unexpected counts %d/%d", page.CountBlocks(false), page.CountBlocks(true))
	}
	if !page.HasPremiumContent() {
		t.Fatal("expected video to count as premium content")
	}
}

func TestReorderBlocksIsProjection(t *testing.T) {
	page := pageWith("A", "B", "C")
	reordered := page.ReorderBlocks([]string{"C", "A", "missing", "C"})
	if got := blockIDs(reordered.Blocks); !slices.Equal(got, []string{"C", "A"}) {
		t.Fatalf("expected [C A], got %v", got)
	}
	if got := blockIDs(page.Blocks); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("source page mutated: %v", got)
	}
}

func TestReorderBlocksStrict(t *testing.T) {
	page := pageWith("A", "B", "C")
	reordered, err := page.ReorderBlocksStrict([]string{"B", "C", "A"})
	if err != nil {
		t.Fatalf("ReorderBlocksStrict: %v", err)
	}
	if got := blockIDs(reordered.Blocks); !slices.Equal(got, []string{"B", "C", "A"}) {
		t.Fatalf("unexpected order %v", got)
	}

	for _, ids := range [][]string{{"C", "A"}, {"A", "B", "X"}, {"A", "A", "B"}} {
		if _, err := page.ReorderBlocksStrict(ids); !errors.Is(err, ErrReorderIncomplete) {
			t.Fatalf("expected ErrReorderIncomplete for %v, got %v", ids, err)
		}
	}
}

func TestBlockMutations(t *testing.T) {
	page := pageWith("A", "B")

	if err := page.AddBlock(blocks.Block{ID: "A", Type: blocks.TypeText}); !errors.Is(err, ErrDuplicateBlockID) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := page.AddBlock(blocks.Block{Type: blocks.TypeText}); !errors.Is(err, ErrBlockIDRequired) {
		t.Fatalf("expected id required, got %v", err)
	}
	if err := page.InsertBlock(1, blocks.Block{ID: "T", Type: blocks.TypeText, Fields: map[string]any{"content": "hi"}}); err != nil {
		t.Fatalf("InsertBlock: %v", err)
	}
	if got := blockIDs(page.Blocks); !slices.Equal(got, []string{"A", "T", "B"}) {
		t.Fatalf("unexpected order after insert %v", got)
	}

	err := page.UpdateBlock("T", func(b *blocks.Block) error {
		b.ID = "hijack"
		return b.Set("content", "updated")
	})
	if err != nil {
		t.Fatalf("UpdateBlock: %v", err)
	}
	updated, ok := page.Block("T")
	if !ok || updated.String("content") != "updated" {
		t.Fatalf("expected updated content, got %+v", updated)
	}

	boom := errors.New("boom")
	if err := page.UpdateBlock("T", func(b *blocks.Block) error {
		_ = b.Set("content", "discarded")
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if kept, _ := page.Block("T"); kept.String("content") != "updated" {
		t.Fatal("failed update leaked into page")
	}

	if err := page.RemoveBlock("A"); err != nil {
		t.Fatalf("RemoveBlock: %v", err)
	}
	if err := page.RemoveBlock("A"); !errors.Is(err, ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
	if got := blockIDs(page.Blocks); !slices.Equal(got, []string{"T", "B"}) {
		t.Fatalf("unexpected blocks after removal %v", got)
	}
}

func TestAppendNewRetriesOnCollision(t *testing.T) {
	page := CreateDefault("user-1")
	added, err := page.AppendNew(blocks.TypeSeparator, nil)
	if err != nil {
		t.Fatalf("AppendNew: %v", err)
	}
	if !strings.HasPrefix(added.ID, "separator-") {
		t.Fatalf("unexpected id %q", added.ID)
	}
	if _, err := page.AppendNew("unknown_widget", nil); !errors.Is(err, blocks.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestSetLanguages(t *testing.T) {
	page := pageWith("A")
	if err := page.SetLanguages([]i18n.Language{"en", "EN", "kk"}); err != nil {
		t.Fatalf("SetLanguages: %v", err)
	}
	if !slices.Equal(page.Languages, []i18n.Language{i18n.LanguageEN, i18n.LanguageKK}) {
		t.Fatalf("unexpected languages %v", page.Languages)
	}
	title := page.Blocks[0].Fields["title"]
	if title != (i18n.Text{EN: "A", KK: "A"}) {
		t.Fatalf("expected converted title, got %#v", title)
	}

	if err := page.SetLanguages(nil); !errors.Is(err, ErrLanguagesRequired) {
		t.Fatalf("expected ErrLanguagesRequired, got %v", err)
	}
	if err := page.SetLanguages([]i18n.Language{"de"}); !errors.Is(err, ErrLanguageInvalid) {
		t.Fatalf("expected ErrLanguageInvalid, got %v", err)
	}
}

func TestVisibleBlocks(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	page := pageWith("A", "B")
	page.Blocks[1].Schedule = &blocks.Schedule{StartDate: &later}

	if got := blockIDs(page.VisibleBlocks(now)); !slices.Equal(got, []string{"A"}) {
		t.Fatalf("unexpected visible blocks %v", got)
	}
}
