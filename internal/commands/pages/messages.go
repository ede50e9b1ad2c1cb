package pagescmd

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/linkmax/lnkmx/internal/blocks"
)

const (
	reorderBlocksMessageType = "lnkmx.pages.reorder_blocks"
	addBlockMessageType      = "lnkmx.pages.add_block"
	removeBlockMessageType   = "lnkmx.pages.remove_block"
	scheduleBlockMessageType = "lnkmx.pages.schedule_block"
)

// ReorderBlocksCommand rewrites the block order of a page.
type ReorderBlocksCommand struct {
	PageID   uuid.UUID `json:"page_id"`
	BlockIDs []string  `json:"block_ids"`
}

// Type implements command.Message.
func (ReorderBlocksCommand) Type() string { return reorderBlocksMessageType }

// Validate ensures the message carries a page and a non-empty id list.
func (m ReorderBlocksCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("lnkmx.pages.reorder_blocks.page_id_required", "page_id is required")
	}
	if len(m.BlockIDs) == 0 {
		errs["block_ids"] = validation.NewError("lnkmx.pages.reorder_blocks.block_ids_required", "block_ids must list at least one block")
	}
	for _, id := range m.BlockIDs {
		if strings.TrimSpace(id) == "" {
			errs["block_ids"] = validation.NewError("lnkmx.pages.reorder_blocks.block_id_blank", "block_ids cannot contain blank ids")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AddBlockCommand appends (or inserts at Position) a new block of BlockType.
type AddBlockCommand struct {
	PageID    uuid.UUID      `json:"page_id"`
	BlockType string         `json:"block_type"`
	Fields    map[string]any `json:"fields,omitempty"`
	Position  *int           `json:"position,omitempty"`
}

// Type implements command.Message.
func (AddBlockCommand) Type() string { return addBlockMessageType }

// Validate checks the page id, that the block type is registered and that a
// given position is not negative.
func (m AddBlockCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.PageID, validation.By(requireUUID("lnkmx.pages.add_block.page_id_required", "page_id is required"))),
		validation.Field(&m.BlockType,
			validation.Required.ErrorObject(validation.NewError("lnkmx.pages.add_block.type_required", "block_type is required")),
			validation.By(func(value any) error {
				if !blocks.IsKnown(blocks.Type(strings.TrimSpace(value.(string)))) {
					return validation.NewError("lnkmx.pages.add_block.type_unknown", "block_type is not a registered block type")
				}
				return nil
			}),
		),
		validation.Field(&m.Position, validation.By(func(value any) error {
			if pos, ok := value.(*int); ok && pos != nil && *pos < 0 {
				return validation.NewError("lnkmx.pages.add_block.position_negative", "position cannot be negative")
			}
			return nil
		})),
	)
}

// RemoveBlockCommand deletes one block from a page.
type RemoveBlockCommand struct {
	PageID  uuid.UUID `json:"page_id"`
	BlockID string    `json:"block_id"`
}

// Type implements command.Message.
func (RemoveBlockCommand) Type() string { return removeBlockMessageType }

func (m RemoveBlockCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.PageID, validation.By(requireUUID("lnkmx.pages.remove_block.page_id_required", "page_id is required"))),
		validation.Field(&m.BlockID, validation.Required.ErrorObject(validation.NewError("lnkmx.pages.remove_block.block_id_required", "block_id is required"))),
	)
}

// ScheduleBlockCommand sets the visibility window of a block. Both bounds nil
// clears the schedule.
type ScheduleBlockCommand struct {
	PageID    uuid.UUID  `json:"page_id"`
	BlockID   string     `json:"block_id"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Type implements command.Message.
func (ScheduleBlockCommand) Type() string { return scheduleBlockMessageType }

// Validate rejects a window whose end precedes its start.
func (m ScheduleBlockCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("lnkmx.pages.schedule_block.page_id_required", "page_id is required")
	}
	if strings.TrimSpace(m.BlockID) == "" {
		errs["block_id"] = validation.NewError("lnkmx.pages.schedule_block.block_id_required", "block_id is required")
	}
	if m.StartDate != nil && m.StartDate.IsZero() {
		errs["start_date"] = validation.NewError("lnkmx.pages.schedule_block.start_date_invalid", "start_date must be a valid timestamp when provided")
	}
	if m.EndDate != nil && m.EndDate.IsZero() {
		errs["end_date"] = validation.NewError("lnkmx.pages.schedule_block.end_date_invalid", "end_date must be a valid timestamp when provided")
	}
	if m.StartDate != nil && m.EndDate != nil && m.EndDate.Before(*m.StartDate) {
		errs["end_date"] = validation.NewError("lnkmx.pages.schedule_block.window_invalid", "end_date must not precede start_date")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Schedule converts the message window into a block schedule.
func (m ScheduleBlockCommand) Schedule() *blocks.Schedule {
	if m.StartDate == nil && m.EndDate == nil {
		return nil
	}
	return blocks.NewSchedule(m.StartDate, m.EndDate)
}

func requireUUID(code, message string) validation.RuleFunc {
	return func(value any) error {
		if id, ok := value.(uuid.UUID); !ok || id == uuid.Nil {
			return validation.NewError(code, message)
		}
		return nil
	}
}
