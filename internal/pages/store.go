package pages

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/linkmax/lnkmx/internal/blocks"
	"github.com/linkmax/lnkmx/internal/records"
	"github.com/linkmax/lnkmx/pkg/result"
)

const (
	storeValidationCode = "PAGE_VALIDATION_FAILED"
	storeConflictCode   = "PAGE_SLUG_CONFLICT"
	storeMalformedCode  = "PAGE_MALFORMED_BLOCK"
	storeNotFoundCode   = "PAGE_NOT_FOUND"
	storeFailureCode    = "PAGE_STORE_FAILED"
)

// SaveOutcome is the success payload of Store.Save.
type SaveOutcome struct {
	PageID      string       `json:"pageId"`
	Slug        string       `json:"slug"`
	BlockIssues []BlockIssue `json:"blockIssues,omitempty"`
}

// Store exposes the repository boundary as Result values. Every call runs
// through result.TryCatchAsync and never returns a Go error directly. Missing
// pages load as a successful nil.
type Store struct {
	service Service
}

func NewStore(service Service) *Store {
	if service == nil {
		panic(ErrRepositoryRequired)
	}
	return &Store{service: service}
}

func (s *Store) Save(ctx context.Context, page *Page) result.Result[SaveOutcome] {
	return result.TryCatchAsync(ctx, func(ctx context.Context) (SaveOutcome, error) {
		saved, err := s.service.Save(ctx, page)
		if err != nil {
			return SaveOutcome{}, Classify(err)
		}
		return SaveOutcome{PageID: saved.PageID.String(), Slug: saved.Slug, BlockIssues: saved.BlockIssues}, nil
	})
}

func (s *Store) LoadBySlug(ctx context.Context, slug string) result.Result[*Page] {
	return s.load(ctx, func(ctx context.Context) (*Page, error) {
		return s.service.LoadBySlug(ctx, slug)
	})
}

func (s *Store) LoadUserPage(ctx context.Context, userID string) result.Result[*Page] {
	return s.load(ctx, func(ctx context.Context) (*Page, error) {
		return s.service.LoadUserPage(ctx, userID)
	})
}

func (s *Store) load(ctx context.Context, fn func(context.Context) (*Page, error)) result.Result[*Page] {
	return result.TryCatchAsync(ctx, func(ctx context.Context) (*Page, error) {
		page, err := fn(ctx)
		if IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, Classify(err)
		}
		return page, nil
	})
}

// Classify tags service errors with go-errors categories. The original error
// stays reachable through errors.Is / errors.As.
func Classify(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case IsNotFound(err), errors.Is(err, ErrBlockNotFound):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "page or block not found").WithTextCode(storeNotFoundCode)
	case errors.Is(err, ErrPageInvalid),
		errors.Is(err, ErrUserIDRequired),
		errors.Is(err, ErrSlugInvalid),
		errors.Is(err, ErrReorderIncomplete),
		errors.Is(err, ErrDuplicateBlockID),
		errors.Is(err, ErrBlockIDRequired),
		errors.Is(err, ErrLanguagesRequired),
		errors.Is(err, ErrLanguageInvalid),
		errors.Is(err, blocks.ErrUnknownType),
		errors.Is(err, blocks.ErrReservedField),
		errors.Is(err, blocks.ErrInvalidSchedule):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "page rejected").WithTextCode(storeValidationCode)
	case errors.Is(err, ErrSlugExists):
		return goerrors.Wrap(err, goerrors.CategoryConflict, "page slug taken").WithTextCode(storeConflictCode)
	case errors.Is(err, records.ErrMalformedBlock), errors.Is(err, records.ErrInvalidRecord):
		return goerrors.Wrap(err, goerrors.CategoryInternal, "page block data malformed").WithTextCode(storeMalformedCode)
	default:
		return goerrors.Wrap(err, goerrors.CategoryInternal, "page store failed").WithTextCode(storeFailureCode)
	}
}
