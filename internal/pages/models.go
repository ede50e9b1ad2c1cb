package pages

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/linkmax/lnkmx/internal/i18n"
	"github.com/linkmax/lnkmx/internal/records"
	"github.com/uptrace/bun"
)

// PageModel is the stored page row. Blocks live in page_blocks.
type PageModel struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID         uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	UserID     string         `bun:"user_id,notnull" json:"user_id"`
	Slug       string         `bun:"slug,notnull,unique" json:"slug"`
	Theme      map[string]any `bun:"theme,type:jsonb" json:"theme,omitempty"`
	SEO        map[string]any `bun:"seo,type:jsonb" json:"seo,omitempty"`
	EditorMode string         `bun:"editor_mode,notnull" json:"editor_mode"`
	GridConfig map[string]any `bun:"grid_config,type:jsonb" json:"grid_config,omitempty"`
	Languages  []string       `bun:"languages,type:jsonb" json:"languages,omitempty"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// BlockModel is one persistence record of a page's block list.
type BlockModel struct {
	bun.BaseModel `bun:"table:page_blocks,alias:pb"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	PageID    uuid.UUID      `bun:"page_id,notnull,type:uuid" json:"page_id"`
	BlockID   string         `bun:"block_id,notnull" json:"block_id"`
	Type      string         `bun:"type,notnull" json:"type"`
	Position  int            `bun:"position,notnull" json:"position"`
	Title     *string        `bun:"title" json:"title"`
	Content   map[string]any `bun:"content,type:jsonb,notnull" json:"content"`
	Style     map[string]any `bun:"style,type:jsonb" json:"style"`
	Schedule  map[string]any `bun:"schedule,type:jsonb" json:"schedule"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Record returns the persistence record held by the row.
func (m *BlockModel) Record() records.Record {
	style := m.Style
	if style == nil {
		style = map[string]any{}
	}
	return records.Record{
		Type:     m.Type,
		Position: m.Position,
		Title:    m.Title,
		Content:  m.Content,
		Style:    style,
		Schedule: m.Schedule,
	}
}

func toPageModel(page *Page) (*PageModel, error) {
	model := &PageModel{
		ID:         page.ID,
		UserID:     page.UserID,
		Slug:       page.Slug,
		EditorMode: string(page.EditorMode),
		CreatedAt:  page.CreatedAt,
		UpdatedAt:  page.UpdatedAt,
	}
	if model.EditorMode == "" {
		model.EditorMode = string(EditorModeLinear)
	}
	var err error
	if model.Theme, err = toJSONMap(page.Theme); err != nil {
		return nil, err
	}
	if model.SEO, err = toJSONMap(page.SEO); err != nil {
		return nil, err
	}
	if page.GridConfig != nil {
		if model.GridConfig, err = toJSONMap(page.GridConfig); err != nil {
			return nil, err
		}
	}
	for _, lang := range page.Languages {
		model.Languages = append(model.Languages, string(lang))
	}
	return model, nil
}

func fromPageModel(model *PageModel) (*Page, error) {
	page := &Page{
		ID:         model.ID,
		UserID:     model.UserID,
		Slug:       model.Slug,
		EditorMode: EditorMode(model.EditorMode),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
	if err := fromJSONMap(model.Theme, &page.Theme); err != nil {
		return nil, err
	}
	if err := fromJSONMap(model.SEO, &page.SEO); err != nil {
		return nil, err
	}
	if model.GridConfig != nil {
		page.GridConfig = &GridConfig{}
		if err := fromJSONMap(model.GridConfig, page.GridConfig); err != nil {
			return nil, err
		}
	}
	for _, code := range model.Languages {
		page.Languages = append(page.Languages, i18n.Language(code))
	}
	return page, nil
}

func toJSONMap(v any) (map[string]any, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func fromJSONMap(m map[string]any, out any) error {
	if m == nil {
		return nil
	}
	encoded, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, out)
}
