package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linkmax/lnkmx/internal/blocks"
	"github.com/linkmax/lnkmx/internal/i18n"
)

const appendRetries = 5

// DefaultTheme is applied to freshly created pages.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: "#ffffff",
		TextColor:       "#111827",
		ButtonColor:     "#3b82f6",
		Font:            "Inter",
	}
}

// DefaultSEO is applied to freshly created pages.
func DefaultSEO() SEO {
	return SEO{Title: "LinkMAX", Keywords: []string{}}
}

// CreateDefault builds a page for userID holding one profile block. It never
// fails; an empty userID is reported by Validate.
func CreateDefault(userID string) Page {
	profile, _ := blocks.NewBlock(blocks.TypeProfile, nil)
	return Page{
		ID:         uuid.New(),
		UserID:     strings.TrimSpace(userID),
		Blocks:     []blocks.Block{profile},
		Theme:      DefaultTheme(),
		SEO:        DefaultSEO(),
		EditorMode: EditorModeLinear,
		Languages:  i18n.Languages(),
	}
}

// Validate checks page-level invariants only. Block payloads are validated
// separately with blocks.Validate so one bad block never hides the rest.
func (p Page) Validate() ValidationResult {
	var errs []string
	if strings.TrimSpace(p.UserID) == "" {
		errs = append(errs, "User ID is required")
	}
	if len(p.Blocks) == 0 {
		errs = append(errs, "Page must contain at least one block")
	}

	seen := make(map[string]struct{}, len(p.Blocks))
	for _, b := range p.Blocks {
		if b.ID == "" {
			continue
		}
		if _, dup := seen[b.ID]; dup {
			errs = append(errs, fmt.Sprintf("Duplicate block ID: %s", b.ID))
			continue
		}
		seen[b.ID] = struct{}{}
	}

	switch p.EditorMode {
	case "", EditorModeLinear, EditorModeGrid:
	default:
		errs = append(errs, fmt.Sprintf("Unknown editor mode: %s", p.EditorMode))
	}

	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateBlocks runs blocks.Validate on every block and returns the ones with
// problems.
func (p Page) ValidateBlocks() []BlockIssue {
	var issues []BlockIssue
	for position, b := range p.Blocks {
		if res := blocks.Validate(b); !res.Valid {
			issues = append(issues, BlockIssue{BlockID: b.ID, Position: position, Errors: res.Errors})
		}
	}
	return issues
}

// CountBlocks counts blocks, optionally leaving out profile blocks.
func (p Page) CountBlocks(excludeProfile bool) int {
	if !excludeProfile {
		return len(p.Blocks)
	}
	count := 0
	for _, b := range p.Blocks {
		if b.Type != blocks.TypeProfile {
			count++
		}
	}
	return count
}

func (p Page) HasProfileBlock() bool {
	for _, b := range p.Blocks {
		if b.Type == blocks.TypeProfile {
			return true
		}
	}
	return false
}

func (p Page) HasPremiumContent() bool {
	for _, b := range p.Blocks {
		if blocks.IsPremiumGated(b.Type) {
			return true
		}
	}
	return false
}

// Block returns a copy of the block with id.
func (p Page) Block(id string) (blocks.Block, bool) {
	if idx := p.indexOf(id); idx >= 0 {
		return p.Blocks[idx].Clone(), true
	}
	return blocks.Block{}, false
}

// ReorderBlocks returns a new page holding the blocks named by ids in that
// order. Unknown ids are skipped and blocks not named are dropped; repeated
// ids keep their first occurrence.
func (p Page) ReorderBlocks(ids []string) Page {
	out := p.Clone()
	byID := make(map[string]blocks.Block, len(out.Blocks))
	for _, b := range out.Blocks {
		byID[b.ID] = b
	}
	ordered := make([]blocks.Block, 0, len(ids))
	used := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := used[id]; dup {
			continue
		}
		used[id] = struct{}{}
		ordered = append(ordered, b)
	}
	out.Blocks = ordered
	return out
}

// ReorderBlocksStrict is ReorderBlocks that refuses to drop or invent blocks:
// ids must be a permutation of the current block ids.
func (p Page) ReorderBlocksStrict(ids []string) (Page, error) {
	if len(ids) != len(p.Blocks) {
		return Page{}, fmt.Errorf("%w: got %d ids for %d blocks", ErrReorderIncomplete, len(ids), len(p.Blocks))
	}
	reordered := p.ReorderBlocks(ids)
	if len(reordered.Blocks) != len(p.Blocks) {
		return Page{}, fmt.Errorf("%w: unknown or repeated ids", ErrReorderIncomplete)
	}
	return reordered, nil
}

// AddBlock appends b. Blank and duplicate ids are rejected.
func (p *Page) AddBlock(b blocks.Block) error {
	return p.InsertBlock(len(p.Blocks), b)
}

// InsertBlock places b at position, clamped to the list bounds.
func (p *Page) InsertBlock(position int, b blocks.Block) error {
	if strings.TrimSpace(b.ID) == "" {
		return ErrBlockIDRequired
	}
	if p.indexOf(b.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateBlockID, b.ID)
	}
	if position < 0 {
		position = 0
	}
	if position > len(p.Blocks) {
		position = len(p.Blocks)
	}
	next := make([]blocks.Block, 0, len(p.Blocks)+1)
	next = append(next, p.Blocks[:position]...)
	next = append(next, b.Clone())
	p.Blocks = append(next, p.Blocks[position:]...)
	return nil
}

// AppendNew creates a block of type t with a fresh id and appends it. The id
// is regenerated if it collides with an existing block.
func (p *Page) AppendNew(t blocks.Type, fields map[string]any) (blocks.Block, error) {
	for attempt := 0; attempt < appendRetries; attempt++ {
		b, err := blocks.NewBlock(t, fields)
		if err != nil {
			return blocks.Block{}, err
		}
		if p.indexOf(b.ID) >= 0 {
			continue
		}
		if len(p.Languages) > 0 {
			b = blocks.ConvertLanguages(b, p.Languages)
		}
		p.Blocks = append(p.Blocks, b)
		return b.Clone(), nil
	}
	return blocks.Block{}, fmt.Errorf("%w: could not generate a unique id for %s", ErrDuplicateBlockID, t)
}

// RemoveBlock deletes the block with id.
func (p *Page) RemoveBlock(id string) error {
	idx := p.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	remaining := make([]blocks.Block, 0, len(p.Blocks)-1)
	remaining = append(remaining, p.Blocks[:idx]...)
	p.Blocks = append(remaining, p.Blocks[idx+1:]...)
	return nil
}

// UpdateBlock applies fn to the block with id. The block id and type cannot
// be changed by fn; the change is discarded if fn fails.
func (p *Page) UpdateBlock(id string, fn func(*blocks.Block) error) error {
	idx := p.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	working := p.Blocks[idx].Clone()
	if err := fn(&working); err != nil {
		return err
	}
	working.ID = p.Blocks[idx].ID
	working.Type = p.Blocks[idx].Type
	p.Blocks[idx] = working
	return nil
}

// SetLanguages changes the page language set and converts every localizable
// block field to multilingual text covering it.
func (p *Page) SetLanguages(langs []i18n.Language) error {
	normalized := make([]i18n.Language, 0, len(langs))
	seen := map[i18n.Language]struct{}{}
	for _, lang := range langs {
		parsed, ok := i18n.ParseLanguage(string(lang))
		if !ok {
			return fmt.Errorf("%w: %q", ErrLanguageInvalid, lang)
		}
		if _, dup := seen[parsed]; dup {
			continue
		}
		seen[parsed] = struct{}{}
		normalized = append(normalized, parsed)
	}
	if len(normalized) == 0 {
		return ErrLanguagesRequired
	}

	for i, b := range p.Blocks {
		p.Blocks[i] = blocks.ConvertLanguages(b, normalized)
	}
	p.Languages = normalized
	return nil
}

// VisibleBlocks returns the blocks visible at now, in order.
func (p Page) VisibleBlocks(now time.Time) []blocks.Block {
	return blocks.VisibleAt(p.Blocks, now)
}

// Clone returns a deep copy of p.
func (p Page) Clone() Page {
	out := p
	if p.Blocks != nil {
		out.Blocks = make([]blocks.Block, len(p.Blocks))
		for i, b := range p.Blocks {
			out.Blocks[i] = b.Clone()
		}
	}
	if p.SEO.Keywords != nil {
		out.SEO.Keywords = append([]string(nil), p.SEO.Keywords...)
	}
	if p.GridConfig != nil {
		grid := *p.GridConfig
		out.GridConfig = &grid
	}
	if p.Languages != nil {
		out.Languages = append([]i18n.Language(nil), p.Languages...)
	}
	return out
}

func (p Page) indexOf(id string) int {
	for i, b := range p.Blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
