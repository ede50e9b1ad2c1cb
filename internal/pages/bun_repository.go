package pages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunPageRepository struct {
	db     *bun.DB
	pages  repository.Repository[*PageModel]
	blocks repository.Repository[*BlockModel]
}

func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

// NewBunPageRepositoryWithCache constructs a PageRepository backed by bun.
// Page reads go through the cache when one is supplied; block lists are
// always read from the database.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPageRepository {
	return &BunPageRepository{
		db:     db,
		pages:  wrapWithCache(NewPageModelRepository(db), cacheService, keySerializer),
		blocks: NewBlockModelRepository(db),
	}
}

// CreateSchema creates the page tables from the bun models when they are
// missing. Deployments with SQL migrations should prefer those.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{(*PageModel)(nil), (*BlockModel)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("pages: create table %T: %w", model, err)
		}
	}
	return nil
}

func (r *BunPageRepository) Create(ctx context.Context, record *PageModel) (*PageModel, error) {
	created, err := r.pages.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "page", record.Slug)
	}
	return created, nil
}

var pageUpdateColumns = []string{
	"user_id",
	"slug",
	"theme",
	"seo",
	"editor_mode",
	"grid_config",
	"languages",
	"updated_at",
}

func (r *BunPageRepository) Update(ctx context.Context, record *PageModel) (*PageModel, error) {
	updated, err := r.pages.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(pageUpdateColumns...),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page", record.ID.String())
	}
	return updated, nil
}

// SavePage writes record and its block list in one transaction. Page writes
// go through the cached repository so stale slug and id entries are dropped.
func (r *BunPageRepository) SavePage(ctx context.Context, record *PageModel, list []*BlockModel, create bool) (*PageModel, error) {
	if r.db == nil {
		return nil, fmt.Errorf("page repository: database not configured")
	}

	var saved *PageModel
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		if create {
			saved, err = r.pages.CreateTx(ctx, tx, record)
		} else {
			saved, err = r.pages.UpdateTx(ctx, tx, record,
				repository.UpdateByID(record.ID.String()),
				repository.UpdateColumns(pageUpdateColumns...),
			)
		}
		if err != nil {
			return mapRepositoryError(err, "page", record.Slug)
		}
		return r.replaceBlocksTx(ctx, tx, record.ID, list)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*PageModel, error) {
	record, err := r.pages.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return record, nil
}

func (r *BunPageRepository) GetBySlug(ctx context.Context, slug string) (*PageModel, error) {
	record, err := r.pages.GetByIdentifier(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, mapRepositoryError(err, "page", slug)
	}
	return record, nil
}

func (r *BunPageRepository) GetLatestByUser(ctx context.Context, userID string) (*PageModel, error) {
	if r.db == nil {
		return nil, fmt.Errorf("page repository: database not configured")
	}
	record := &PageModel{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		OrderExpr("?TableAlias.updated_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, &PageNotFoundError{Key: userID}
		}
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	return record, nil
}

// Delete removes the page and its blocks. The page row is deleted through
// the cached repository so cached lookups of it are invalidated.
func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("page repository: database not configured")
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := r.pages.GetByIDTx(ctx, tx, id.String())
		if err != nil {
			return mapRepositoryError(err, "page", id.String())
		}
		if err := r.blocks.DeleteWhereTx(ctx, tx, blocksOfPage(id)); err != nil {
			return fmt.Errorf("delete page blocks: %w", err)
		}
		if err := r.pages.DeleteTx(ctx, tx, record); err != nil {
			return mapRepositoryError(err, "page", id.String())
		}
		return nil
	})
}

func (r *BunPageRepository) ReplaceBlocks(ctx context.Context, pageID uuid.UUID, list []*BlockModel) error {
	if r.db == nil {
		return fmt.Errorf("page repository: database not configured")
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return r.replaceBlocksTx(ctx, tx, pageID, list)
	})
}

func (r *BunPageRepository) replaceBlocksTx(ctx context.Context, tx bun.IDB, pageID uuid.UUID, list []*BlockModel) error {
	if err := r.blocks.DeleteWhereTx(ctx, tx, blocksOfPage(pageID)); err != nil {
		return fmt.Errorf("delete page blocks: %w", err)
	}

	now := time.Now().UTC()
	toInsert := make([]*BlockModel, 0, len(list))
	for _, record := range list {
		if record == nil {
			continue
		}
		cloned := *record
		cloned.PageID = pageID
		if cloned.ID == uuid.Nil {
			cloned.ID = uuid.New()
		}
		if cloned.Style == nil {
			cloned.Style = map[string]any{}
		}
		if cloned.CreatedAt.IsZero() {
			cloned.CreatedAt = now
		}
		cloned.UpdatedAt = now
		toInsert = append(toInsert, &cloned)
	}

	if len(toInsert) == 0 {
		return nil
	}

	if _, err := tx.NewInsert().Model(&toInsert).Exec(ctx); err != nil {
		return fmt.Errorf("insert page blocks: %w", err)
	}
	return nil
}

func blocksOfPage(pageID uuid.UUID) repository.DeleteCriteria {
	return func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("?TableAlias.page_id = ?", pageID)
	}
}

func (r *BunPageRepository) ListBlocks(ctx context.Context, pageID uuid.UUID) ([]*BlockModel, error) {
	records, _, err := r.blocks.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				OrderExpr("?TableAlias.position ASC").
				Limit(0)
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page_blocks", pageID.String())
	}
	return records, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || isNoRows(err) {
		return &PageNotFoundError{
			Key: key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
