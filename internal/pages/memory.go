package pages

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linkmax/lnkmx/internal/blocks"
)

// MemoryPageRepository is an in-memory page store for tests and the
// "memory" storage provider.
type MemoryPageRepository struct {
	mu        sync.RWMutex
	pages     map[uuid.UUID]*PageModel
	slugIndex map[string]uuid.UUID
	blocks    map[uuid.UUID][]*BlockModel
}

// NewMemoryPageRepository constructs the repository.
func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{
		pages:     make(map[uuid.UUID]*PageModel),
		slugIndex: make(map[string]uuid.UUID),
		blocks:    make(map[uuid.UUID][]*BlockModel),
	}
}

// Create inserts the supplied page. Slugs are unique.
func (m *MemoryPageRepository) Create(_ context.Context, record *PageModel) (*PageModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.slugIndex[record.Slug]; taken {
		return nil, ErrSlugExists
	}
	copied := clonePageModel(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	now := time.Now().UTC()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = now
	}
	if copied.UpdatedAt.IsZero() {
		copied.UpdatedAt = now
	}
	m.pages[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePageModel(copied), nil
}

// Update replaces a stored page.
func (m *MemoryPageRepository) Update(_ context.Context, record *PageModel) (*PageModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.pages[record.ID]
	if !ok {
		return nil, &PageNotFoundError{Key: record.ID.String()}
	}
	if owner, taken := m.slugIndex[record.Slug]; taken && owner != record.ID {
		return nil, ErrSlugExists
	}
	copied := clonePageModel(record)
	copied.CreatedAt = existing.CreatedAt
	delete(m.slugIndex, existing.Slug)
	m.pages[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePageModel(copied), nil
}

// GetByID retrieves a page by identifier.
func (m *MemoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*PageModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.pages[id]
	if !ok {
		return nil, &PageNotFoundError{Key: id.String()}
	}
	return clonePageModel(record), nil
}

// GetBySlug retrieves a page by slug.
func (m *MemoryPageRepository) GetBySlug(_ context.Context, slug string) (*PageModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[strings.TrimSpace(slug)]
	if !ok {
		return nil, &PageNotFoundError{Key: slug}
	}
	return clonePageModel(m.pages[id]), nil
}

// GetLatestByUser returns the most recently updated page of userID.
func (m *MemoryPageRepository) GetLatestByUser(_ context.Context, userID string) (*PageModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *PageModel
	for _, record := range m.pages {
		if record.UserID != userID {
			continue
		}
		if latest == nil || record.UpdatedAt.After(latest.UpdatedAt) {
			latest = record
		}
	}
	if latest == nil {
		return nil, &PageNotFoundError{Key: userID}
	}
	return clonePageModel(latest), nil
}

// Delete removes a page and its blocks.
func (m *MemoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.pages[id]
	if !ok {
		return &PageNotFoundError{Key: id.String()}
	}
	delete(m.slugIndex, record.Slug)
	delete(m.pages, id)
	delete(m.blocks, id)
	return nil
}

// ReplaceBlocks swaps the block list of pageID.
func (m *MemoryPageRepository) ReplaceBlocks(_ context.Context, pageID uuid.UUID, list []*BlockModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[pageID]; !ok {
		return &PageNotFoundError{Key: pageID.String()}
	}
	copied := make([]*BlockModel, 0, len(list))
	for _, record := range list {
		if record == nil {
			continue
		}
		cloned := cloneBlockModel(record)
		cloned.PageID = pageID
		copied = append(copied, cloned)
	}
	m.blocks[pageID] = copied
	return nil
}

// SavePage stores record and its block list under one lock. Every check runs
// before the first write, so a rejected save leaves the previous state.
func (m *MemoryPageRepository) SavePage(_ context.Context, record *PageModel, list []*BlockModel, create bool) (*PageModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePageModel(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	existing, exists := m.pages[copied.ID]
	switch {
	case create && exists:
		return nil, fmt.Errorf("page %s already exists", copied.ID)
	case !create && !exists:
		return nil, &PageNotFoundError{Key: copied.ID.String()}
	}
	if owner, taken := m.slugIndex[copied.Slug]; taken && owner != copied.ID {
		return nil, ErrSlugExists
	}

	rows := make(map[uuid.UUID]struct{}, len(list))
	stored := make([]*BlockModel, 0, len(list))
	for _, block := range list {
		if block == nil {
			continue
		}
		cloned := cloneBlockModel(block)
		cloned.PageID = copied.ID
		if cloned.ID != uuid.Nil {
			if _, dup := rows[cloned.ID]; dup {
				return nil, fmt.Errorf("insert page blocks: duplicate row %s", cloned.ID)
			}
			rows[cloned.ID] = struct{}{}
		}
		stored = append(stored, cloned)
	}

	if exists {
		copied.CreatedAt = existing.CreatedAt
		delete(m.slugIndex, existing.Slug)
	}
	m.pages[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	m.blocks[copied.ID] = stored
	return clonePageModel(copied), nil
}

// ListBlocks returns the block records of pageID ordered by position.
func (m *MemoryPageRepository) ListBlocks(_ context.Context, pageID uuid.UUID) ([]*BlockModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.blocks[pageID]
	out := make([]*BlockModel, 0, len(stored))
	for _, record := range stored {
		out = append(out, cloneBlockModel(record))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func clonePageModel(src *PageModel) *PageModel {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Theme = cloneJSONMap(src.Theme)
	cloned.SEO = cloneJSONMap(src.SEO)
	cloned.GridConfig = cloneJSONMap(src.GridConfig)
	if src.Languages != nil {
		cloned.Languages = append([]string(nil), src.Languages...)
	}
	return &cloned
}

func cloneBlockModel(src *BlockModel) *BlockModel {
	cloned := *src
	if src.Title != nil {
		title := *src.Title
		cloned.Title = &title
	}
	cloned.Content = cloneJSONMap(src.Content)
	cloned.Style = cloneJSONMap(src.Style)
	cloned.Schedule = cloneJSONMap(src.Schedule)
	return &cloned
}

func cloneJSONMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	cloned, _ := blocks.CloneValue(src).(map[string]any)
	return cloned
}
