package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"github.com/linkmax/lnkmx/internal/blocks"
	"github.com/linkmax/lnkmx/internal/i18n"
	"github.com/linkmax/lnkmx/internal/identity"
	"github.com/linkmax/lnkmx/internal/logging"
	"github.com/linkmax/lnkmx/internal/records"
	"github.com/linkmax/lnkmx/pkg/interfaces"
)

// Service persists pages through the serialization pipeline.
type Service interface {
	Create(ctx context.Context, userID string) (*Page, error)
	Save(ctx context.Context, page *Page) (*SaveResult, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	LoadBySlug(ctx context.Context, slug string) (*Page, error)
	LoadUserPage(ctx context.Context, userID string) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Reorder(ctx context.Context, req ReorderBlocksRequest) (*Page, error)
	AddBlock(ctx context.Context, req AddBlockRequest) (*Page, error)
	RemoveBlock(ctx context.Context, req RemoveBlockRequest) (*Page, error)
	ScheduleBlock(ctx context.Context, req ScheduleBlockRequest) (*Page, error)

	PublicURL(page *Page) (string, error)
}

// ReorderBlocksRequest lists the block ids of a page in their new order.
type ReorderBlocksRequest struct {
	PageID   uuid.UUID
	BlockIDs []string
}

// AddBlockRequest adds a new block of Type. A nil Position appends.
type AddBlockRequest struct {
	PageID   uuid.UUID
	Type     blocks.Type
	Fields   map[string]any
	Position *int
}

type RemoveBlockRequest struct {
	PageID  uuid.UUID
	BlockID string
}

// ScheduleBlockRequest replaces a block's visibility window. A nil Schedule
// clears it.
type ScheduleBlockRequest struct {
	PageID   uuid.UUID
	BlockID  string
	Schedule *blocks.Schedule
}

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecordsLogger sets the logger used when stored block records are
// rejected during load.
func WithRecordsLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.recordsLogger = logger
		}
	}
}

// WithPageIDGenerator overrides the default ID generator.
func WithPageIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStrictReorder makes Reorder reject id lists that are not a
// permutation of the page's blocks.
func WithStrictReorder(strict bool) ServiceOption {
	return func(s *service) {
		s.strictReorder = strict
	}
}

// WithTitleLanguage selects the language stored record titles resolve to.
func WithTitleLanguage(lang i18n.Language) ServiceOption {
	return func(s *service) {
		if lang != "" {
			s.titles = records.DefaultTitleExtractor(lang)
		}
	}
}

// WithPublicURLResolver configures how public page URLs are built.
func WithPublicURLResolver(resolver PublicURLResolver) ServiceOption {
	return func(s *service) {
		s.urls = resolver
	}
}

const maxSlugAttempts = 20

type service struct {
	repo          PageRepository
	logger        interfaces.Logger
	recordsLogger interfaces.Logger
	id            IDGenerator
	now           func() time.Time
	titles        records.TitleExtractor
	urls          PublicURLResolver
	strictReorder bool
}

// NewService constructs a page service instance.
func NewService(repo PageRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{
		repo:          repo,
		logger:        logging.NoOp(),
		recordsLogger: logging.NoOp(),
		id:            uuid.New,
		now:           time.Now,
		titles:        records.DefaultTitleExtractor(i18n.DefaultFallback),
		strictReorder: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, userID string) (*Page, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}
	page := CreateDefault(userID)
	page.ID = s.id()
	if _, err := s.Save(ctx, &page); err != nil {
		return nil, err
	}
	return s.Get(ctx, page.ID)
}

// Save validates and stores page. Page-level problems reject the save; block
// problems are reported in SaveResult.BlockIssues and do not.
func (s *service) Save(ctx context.Context, page *Page) (*SaveResult, error) {
	if page == nil {
		return nil, ErrPageRequired
	}
	working := page.Clone()
	logger := logging.WithPageContext(s.logger, working.ID.String(), working.Slug, working.UserID)

	if res := working.Validate(); !res.Valid {
		logger.Warn("pages.save.rejected", "errors", res.Errors)
		return nil, &PageValidationError{Errors: res.Errors}
	}
	issues := working.ValidateBlocks()

	payload, err := records.BuildPayload(working.Blocks, s.titles)
	if err != nil {
		logger.Error("pages.save.serialize_failed", "error", err)
		return nil, err
	}

	var existing *PageModel
	if working.ID != uuid.Nil {
		existing, err = s.repo.GetByID(ctx, working.ID)
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
	} else {
		working.ID = s.id()
	}

	resolved, err := s.resolveSlug(ctx, &working)
	if err != nil {
		return nil, err
	}
	working.Slug = resolved

	now := s.now().UTC()
	working.UpdatedAt = now
	if existing != nil {
		working.CreatedAt = existing.CreatedAt
	} else if working.CreatedAt.IsZero() {
		working.CreatedAt = now
	}

	model, err := toPageModel(&working)
	if err != nil {
		return nil, fmt.Errorf("pages: encode page: %w", err)
	}
	rows := toBlockModels(working.ID, working.Blocks, payload)
	if _, err := s.repo.SavePage(ctx, model, rows, existing == nil); err != nil {
		logger.Error("pages.save.write_failed", "error", err)
		return nil, err
	}

	logger.Info("pages.save.complete",
		"slug", working.Slug,
		"block_count", len(payload),
		"block_issues", len(issues),
		"created", existing == nil,
	)

	page.ID = working.ID
	page.Slug = working.Slug
	page.CreatedAt = working.CreatedAt
	page.UpdatedAt = working.UpdatedAt

	return &SaveResult{PageID: working.ID, Slug: working.Slug, BlockIssues: issues}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, model)
}

func (s *service) LoadBySlug(ctx context.Context, value string) (*Page, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return nil, &PageNotFoundError{Key: value}
	}
	model, err := s.repo.GetBySlug(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, model)
}

func (s *service) LoadUserPage(ctx context.Context, userID string) (*Page, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}
	model, err := s.repo.GetLatestByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, model)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logging.WithPageContext(s.logger, id.String(), "", "").Info("pages.delete.complete")
	return nil
}

func (s *service) Reorder(ctx context.Context, req ReorderBlocksRequest) (*Page, error) {
	return s.mutate(ctx, req.PageID, func(page *Page) error {
		if !s.strictReorder {
			*page = page.ReorderBlocks(req.BlockIDs)
			return nil
		}
		reordered, err := page.ReorderBlocksStrict(req.BlockIDs)
		if err != nil {
			return err
		}
		*page = reordered
		return nil
	})
}

func (s *service) AddBlock(ctx context.Context, req AddBlockRequest) (*Page, error) {
	return s.mutate(ctx, req.PageID, func(page *Page) error {
		added, err := page.AppendNew(req.Type, req.Fields)
		if err != nil {
			return err
		}
		if req.Position == nil {
			return nil
		}
		if err := page.RemoveBlock(added.ID); err != nil {
			return err
		}
		return page.InsertBlock(*req.Position, added)
	})
}

func (s *service) RemoveBlock(ctx context.Context, req RemoveBlockRequest) (*Page, error) {
	return s.mutate(ctx, req.PageID, func(page *Page) error {
		return page.RemoveBlock(req.BlockID)
	})
}

func (s *service) ScheduleBlock(ctx context.Context, req ScheduleBlockRequest) (*Page, error) {
	return s.mutate(ctx, req.PageID, func(page *Page) error {
		return page.UpdateBlock(req.BlockID, func(b *blocks.Block) error {
			return b.Reschedule(req.Schedule)
		})
	})
}

func (s *service) PublicURL(page *Page) (string, error) {
	if page == nil {
		return "", ErrPageRequired
	}
	if s.urls == nil {
		return "", ErrPublicURLDisabled
	}
	return s.urls.PageURL(page.Slug)
}

func (s *service) mutate(ctx context.Context, id uuid.UUID, fn func(*Page) error) (*Page, error) {
	page, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(page); err != nil {
		return nil, err
	}
	if _, err := s.Save(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *service) hydrate(ctx context.Context, model *PageModel) (*Page, error) {
	page, err := fromPageModel(model)
	if err != nil {
		return nil, fmt.Errorf("pages: decode page %s: %w", model.ID, err)
	}
	rows, err := s.repo.ListBlocks(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	list := make([]records.Record, 0, len(rows))
	for _, row := range rows {
		record := row.Record()
		if err := records.CheckShape(record); err != nil {
			logging.WithPageContext(s.recordsLogger, model.ID.String(), model.Slug, model.UserID).
				Error("records.load.rejected", "block_id", row.BlockID, "error", err)
			return nil, err
		}
		list = append(list, record)
	}
	page.Blocks, err = records.RehydrateAll(list)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// resolveSlug keeps an explicit slug (rejecting one owned by another page) or
// derives one from the user id or SEO title, adding a numeric suffix on
// collision.
func (s *service) resolveSlug(ctx context.Context, page *Page) (string, error) {
	if explicit := strings.TrimSpace(page.Slug); explicit != "" {
		normalized, err := slug.Normalize(explicit)
		if err != nil || normalized == "" || !slug.IsValid(normalized) {
			return "", fmt.Errorf("%w: %q", ErrSlugInvalid, explicit)
		}
		free, err := s.slugAvailable(ctx, normalized, page.ID)
		if err != nil {
			return "", err
		}
		if !free {
			return "", fmt.Errorf("%w: %s", ErrSlugExists, normalized)
		}
		return normalized, nil
	}

	base := ""
	for _, candidate := range []string{page.UserID, page.SEO.Title, "page"} {
		if normalized, err := slug.Normalize(candidate); err == nil && normalized != "" && slug.IsValid(normalized) {
			base = normalized
			break
		}
	}
	if base == "" {
		base = "page"
	}
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := base
		if attempt > 1 {
			candidate = base + "-" + strconv.Itoa(attempt)
		}
		free, err := s.slugAvailable(ctx, candidate, page.ID)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSlugExists, base)
}

func (s *service) slugAvailable(ctx context.Context, candidate string, owner uuid.UUID) (bool, error) {
	existing, err := s.repo.GetBySlug(ctx, candidate)
	if err != nil {
		var notFound *PageNotFoundError
		if errors.As(err, &notFound) {
			return true, nil
		}
		return false, err
	}
	return existing.ID == owner, nil
}

func toBlockModels(pageID uuid.UUID, list []blocks.Block, payload []records.Record) []*BlockModel {
	out := make([]*BlockModel, 0, len(payload))
	for i, record := range payload {
		blockID := list[i].ID
		out = append(out, &BlockModel{
			ID:       identity.BlockRowUUID(pageID, blockID),
			PageID:   pageID,
			BlockID:  blockID,
			Type:     record.Type,
			Position: record.Position,
			Title:    record.Title,
			Content:  record.Content,
			Style:    record.Style,
			Schedule: record.Schedule,
		})
	}
	return out
}
