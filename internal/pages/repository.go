package pages

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageRepository stores pages and their block records.
type PageRepository interface {
	Create(ctx context.Context, record *PageModel) (*PageModel, error)
	Update(ctx context.Context, record *PageModel) (*PageModel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PageModel, error)
	GetBySlug(ctx context.Context, slug string) (*PageModel, error)
	// GetLatestByUser returns the most recently updated page of userID.
	GetLatestByUser(ctx context.Context, userID string) (*PageModel, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ReplaceBlocks swaps the whole block list of a page atomically.
	ReplaceBlocks(ctx context.Context, pageID uuid.UUID, blocks []*BlockModel) error
	// SavePage creates (or updates) record and replaces its block list as a
	// single unit. Nothing is written when any step fails.
	SavePage(ctx context.Context, record *PageModel, blocks []*BlockModel, create bool) (*PageModel, error)
	ListBlocks(ctx context.Context, pageID uuid.UUID) ([]*BlockModel, error)
}

func NewPageModelRepository(db *bun.DB) repository.Repository[*PageModel] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageModel]{
		NewRecord: func() *PageModel { return &PageModel{} },
		GetID: func(p *PageModel) uuid.UUID {
			return p.ID
		},
		SetID: func(p *PageModel, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *PageModel) string {
			return p.Slug
		},
	})
}

func NewBlockModelRepository(db *bun.DB) repository.Repository[*BlockModel] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*BlockModel]{
		NewRecord: func() *BlockModel { return &BlockModel{} },
		GetID: func(b *BlockModel) uuid.UUID {
			return b.ID
		},
		SetID: func(b *BlockModel, id uuid.UUID) {
			b.ID = id
		},
		GetIdentifier: func() string {
			return "block_id"
		},
		GetIdentifierValue: func(b *BlockModel) string {
			return b.BlockID
		},
	})
}
