package pagescmd

import (
	"context"
	"strings"

	"github.com/linkmax/lnkmx/internal/blocks"
	"github.com/linkmax/lnkmx/internal/commands"
	"github.com/linkmax/lnkmx/internal/logging"
	"github.com/linkmax/lnkmx/internal/pages"
	"github.com/linkmax/lnkmx/pkg/interfaces"
)

// ReorderBlocksHandler applies ReorderBlocksCommand through the page service.
type ReorderBlocksHandler struct {
	inner *commands.Handler[ReorderBlocksCommand]
}

func NewReorderBlocksHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderBlocksCommand]) *ReorderBlocksHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ReorderBlocksCommand) error {
		page, err := service.Reorder(ctx, pages.ReorderBlocksRequest{PageID: msg.PageID, BlockIDs: msg.BlockIDs})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"page_id":     page.ID,
			"block_count": len(page.Blocks),
		}).Info("pages.command.reorder_blocks.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ReorderBlocksCommand]{
		commands.WithLogger[ReorderBlocksCommand](baseLogger),
		commands.WithOperation[ReorderBlocksCommand]("pages.reorder_blocks"),
		commands.WithErrorClassifier[ReorderBlocksCommand](classify),
		commands.WithMessageFields(func(msg ReorderBlocksCommand) map[string]any {
			return map[string]any{
				"page_id":     msg.PageID,
				"block_count": len(msg.BlockIDs),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ReorderBlocksCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReorderBlocksHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ReorderBlocksCommand].
func (h *ReorderBlocksHandler) Execute(ctx context.Context, msg ReorderBlocksCommand) error {
	return h.inner.Execute(ctx, msg)
}

// AddBlockHandler applies AddBlockCommand. Premium block types are refused
// while the premium gate is closed.
type AddBlockHandler struct {
	inner *commands.Handler[AddBlockCommand]
}

func NewAddBlockHandler(service pages.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[AddBlockCommand]) *AddBlockHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg AddBlockCommand) error {
		blockType := blocks.Type(strings.TrimSpace(msg.BlockType))
		if blocks.IsPremiumGated(blockType) && !gates.premiumEnabled() {
			return ErrPremiumDisabled
		}
		page, err := service.AddBlock(ctx, pages.AddBlockRequest{
			PageID:   msg.PageID,
			Type:     blockType,
			Fields:   msg.Fields,
			Position: msg.Position,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"page_id":     page.ID,
			"block_type":  blockType,
			"block_count": len(page.Blocks),
		}).Info("pages.command.add_block.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[AddBlockCommand]{
		commands.WithLogger[AddBlockCommand](baseLogger),
		commands.WithOperation[AddBlockCommand]("pages.add_block"),
		commands.WithErrorClassifier[AddBlockCommand](classify),
		commands.WithMessageFields(func(msg AddBlockCommand) map[string]any {
			fields := map[string]any{
				"page_id":    msg.PageID,
				"block_type": msg.BlockType,
			}
			if msg.Position != nil {
				fields["position"] = *msg.Position
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[AddBlockCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &AddBlockHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[AddBlockCommand].
func (h *AddBlockHandler) Execute(ctx context.Context, msg AddBlockCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RemoveBlockHandler applies RemoveBlockCommand.
type RemoveBlockHandler struct {
	inner *commands.Handler[RemoveBlockCommand]
}

func NewRemoveBlockHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RemoveBlockCommand]) *RemoveBlockHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RemoveBlockCommand) error {
		_, err := service.RemoveBlock(ctx, pages.RemoveBlockRequest{PageID: msg.PageID, BlockID: strings.TrimSpace(msg.BlockID)})
		return err
	}

	handlerOpts := []commands.HandlerOption[RemoveBlockCommand]{
		commands.WithLogger[RemoveBlockCommand](baseLogger),
		commands.WithOperation[RemoveBlockCommand]("pages.remove_block"),
		commands.WithErrorClassifier[RemoveBlockCommand](classify),
		commands.WithMessageFields(func(msg RemoveBlockCommand) map[string]any {
			return map[string]any{"page_id": msg.PageID, "block_id": msg.BlockID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RemoveBlockCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RemoveBlockHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RemoveBlockCommand].
func (h *RemoveBlockHandler) Execute(ctx context.Context, msg RemoveBlockCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ScheduleBlockHandler applies ScheduleBlockCommand when scheduling is enabled.
type ScheduleBlockHandler struct {
	inner *commands.Handler[ScheduleBlockCommand]
}

func NewScheduleBlockHandler(service pages.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ScheduleBlockCommand]) *ScheduleBlockHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ScheduleBlockCommand) error {
		if !gates.schedulingEnabled() {
			return ErrSchedulingDisabled
		}
		_, err := service.ScheduleBlock(ctx, pages.ScheduleBlockRequest{
			PageID:   msg.PageID,
			BlockID:  strings.TrimSpace(msg.BlockID),
			Schedule: msg.Schedule(),
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[ScheduleBlockCommand]{
		commands.WithLogger[ScheduleBlockCommand](baseLogger),
		commands.WithOperation[ScheduleBlockCommand]("pages.schedule_block"),
		commands.WithErrorClassifier[ScheduleBlockCommand](classify),
		commands.WithMessageFields(func(msg ScheduleBlockCommand) map[string]any {
			fields := map[string]any{"page_id": msg.PageID, "block_id": msg.BlockID}
			if msg.StartDate != nil {
				fields["start_date"] = msg.StartDate
			}
			if msg.EndDate != nil {
				fields["end_date"] = msg.EndDate
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ScheduleBlockCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ScheduleBlockHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ScheduleBlockCommand].
func (h *ScheduleBlockHandler) Execute(ctx context.Context, msg ScheduleBlockCommand) error {
	return h.inner.Execute(ctx, msg)
}
