package pagescmd

import (
	"context"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/linkmax/lnkmx/internal/blocks"
	"github.com/linkmax/lnkmx/internal/commands"
	"github.com/linkmax/lnkmx/internal/logging"
	"github.com/linkmax/lnkmx/internal/pages"
)

func seededService(t *testing.T) (pages.Service, *pages.Page) {
	t.Helper()
	service := pages.NewService(pages.NewMemoryPageRepository())
	page, err := service.Create(context.Background(), "anna")
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	return service, page
}

func TestAddBlockHandlerExecutesService(t *testing.T) {
	service, page := seededService(t)
	handler := NewAddBlockHandler(service, commands.CommandLogger(nil, "pages"), FeatureGates{})

	first := 0
	msg := AddBlockCommand{
		PageID:    page.ID,
		BlockType: string(blocks.TypeLink),
		Fields:    map[string]any{"url": "https://shop.example", "title": "Shop"},
		Position:  &first,
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	stored, err := service.Get(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if len(stored.Blocks) != 2 || stored.Blocks[0].Type != blocks.TypeLink {
		t.Fatalf("expected link inserted first, got %+v", stored.Blocks)
	}
}

func TestAddBlockHandlerValidationError(t *testing.T) {
	service, page := seededService(t)
	handler := NewAddBlockHandler(service, logging.NoOp(), FeatureGates{})

	err := handler.Execute(context.Background(), AddBlockCommand{PageID: page.ID, BlockType: "hologram"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestAddBlockHandlerPremiumGate(t *testing.T) {
	service, page := seededService(t)
	handler := NewAddBlockHandler(service, logging.NoOp(), FeatureGates{
		PremiumEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), AddBlockCommand{PageID: page.ID, BlockType: string(blocks.TypeVideo)})
	if err == nil {
		t.Fatal("expected premium gate error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category when premium is disabled, got %v", err)
	}

	err = handler.Execute(context.Background(), AddBlockCommand{PageID: page.ID, BlockType: string(blocks.TypeSeparator)})
	if err != nil {
		t.Fatalf("expected free block to pass the gate, got %v", err)
	}
}

func TestReorderBlocksHandlerRejectsPartialOrder(t *testing.T) {
	service, page := seededService(t)
	added, err := service.AddBlock(context.Background(), pages.AddBlockRequest{PageID: page.ID, Type: blocks.TypeSeparator})
	if err != nil {
		t.Fatalf("add block: %v", err)
	}
	handler := NewReorderBlocksHandler(service, logging.NoOp())

	err = handler.Execute(context.Background(), ReorderBlocksCommand{PageID: page.ID, BlockIDs: []string{added.Blocks[1].ID}})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category for incomplete reorder, got %v", err)
	}

	full := []string{added.Blocks[1].ID, added.Blocks[0].ID}
	if err := handler.Execute(context.Background(), ReorderBlocksCommand{PageID: page.ID, BlockIDs: full}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	stored, err := service.Get(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if stored.Blocks[0].ID != full[0] {
		t.Fatalf("expected %s first, got %s", full[0], stored.Blocks[0].ID)
	}
}

func TestRemoveBlockHandlerNotFound(t *testing.T) {
	service, page := seededService(t)
	handler := NewRemoveBlockHandler(service, logging.NoOp())

	err := handler.Execute(context.Background(), RemoveBlockCommand{PageID: page.ID, BlockID: "ghost"})
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}

	err = handler.Execute(context.Background(), RemoveBlockCommand{PageID: uuid.New(), BlockID: "ghost"})
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category for missing page, got %v", err)
	}
}

func TestScheduleBlockHandler(t *testing.T) {
	service, page := seededService(t)
	blockID := page.Blocks[0].ID
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	disabled := NewScheduleBlockHandler(service, logging.NoOp(), FeatureGates{SchedulingEnabled: func() bool { return false }})
	if err := disabled.Execute(context.Background(), ScheduleBlockCommand{PageID: page.ID, BlockID: blockID, StartDate: &start}); err == nil {
		t.Fatal("expected scheduling gate error")
	}

	handler := NewScheduleBlockHandler(service, logging.NoOp(), FeatureGates{})
	if err := handler.Execute(context.Background(), ScheduleBlockCommand{PageID: page.ID, BlockID: blockID, StartDate: &start, EndDate: &end}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	stored, err := service.Get(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	schedule := stored.Blocks[0].Schedule
	if schedule == nil || !schedule.StartDate.Equal(start) || !schedule.EndDate.Equal(end) {
		t.Fatalf("unexpected schedule %+v", schedule)
	}

	if err := handler.Execute(context.Background(), ScheduleBlockCommand{PageID: page.ID, BlockID: blockID}); err != nil {
		t.Fatalf("clear schedule: %v", err)
	}
	stored, _ = service.Get(context.Background(), page.ID)
	if stored.Blocks[0].Schedule != nil {
		t.Fatalf("expected schedule cleared, got %+v", stored.Blocks[0].Schedule)
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	service, page := seededService(t)
	handler := NewRemoveBlockHandler(service, logging.NoOp())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, RemoveBlockCommand{PageID: page.ID, BlockID: page.Blocks[0].ID})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for cancellation, got %v", err)
	}
	stored, err := service.Get(context.Background(), page.ID)
	if err != nil || len(stored.Blocks) != 1 {
		t.Fatalf("expected page untouched, got %v %v", stored, err)
	}
}
