package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/linkmax/lnkmx/internal/blocks"
	"github.com/linkmax/lnkmx/internal/i18n"
)

// EditorMode selects how the editor lays out blocks.
type EditorMode string

const (
	EditorModeLinear EditorMode = "linear"
	EditorModeGrid   EditorMode = "grid"
)

// Page is the aggregate root: an ordered block list plus page-wide settings.
// Block order is rendering order.
type Page struct {
	ID         uuid.UUID       `json:"id"`
	UserID     string          `json:"userId"`
	Slug       string          `json:"slug,omitempty"`
	Blocks     []blocks.Block  `json:"blocks"`
	Theme      Theme           `json:"theme"`
	SEO        SEO             `json:"seo"`
	EditorMode EditorMode      `json:"editorMode"`
	GridConfig *GridConfig     `json:"gridConfig,omitempty"`
	Languages  []i18n.Language `json:"languages,omitempty"`
	CreatedAt  time.Time       `json:"createdAt,omitzero"`
	UpdatedAt  time.Time       `json:"updatedAt,omitzero"`
}

// Theme holds the page's visual defaults.
type Theme struct {
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	ButtonColor     string `json:"buttonColor"`
	Font            string `json:"font"`
}

// SEO holds the page's search metadata.
type SEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// GridConfig configures the grid editor.
type GridConfig struct {
	Columns int `json:"columns"`
	Gap     int `json:"gap"`
}

// ValidationResult is shared with block validation.
type ValidationResult = blocks.ValidationResult

// SaveResult reports where a page was stored and which blocks still have
// validation problems. Block issues never prevent a save.
type SaveResult struct {
	PageID      uuid.UUID    `json:"pageId"`
	Slug        string       `json:"slug"`
	BlockIssues []BlockIssue `json:"blockIssues,omitempty"`
}

// BlockIssue lists the validation errors of one block.
type BlockIssue struct {
	BlockID  string   `json:"blockId"`
	Position int      `json:"position"`
	Errors   []string `json:"errors"`
}
