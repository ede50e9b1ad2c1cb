// Package pages exposes the page aggregate, its persistence service and the
// result-returning store.
package pages

import (
	"github.com/uptrace/bun"

	"github.com/linkmax/lnkmx/internal/pages"
)

type (
	Page                 = pages.Page
	Theme                = pages.Theme
	SEO                  = pages.SEO
	GridConfig           = pages.GridConfig
	EditorMode           = pages.EditorMode
	ValidationResult     = pages.ValidationResult
	SaveResult           = pages.SaveResult
	SaveOutcome          = pages.SaveOutcome
	BlockIssue           = pages.BlockIssue
	Service              = pages.Service
	ServiceOption        = pages.ServiceOption
	Store                = pages.Store
	PageRepository       = pages.PageRepository
	PublicURLResolver    = pages.PublicURLResolver
	ReorderBlocksRequest = pages.ReorderBlocksRequest
	AddBlockRequest      = pages.AddBlockRequest
	RemoveBlockRequest   = pages.RemoveBlockRequest
	ScheduleBlockRequest = pages.ScheduleBlockRequest
	PageNotFoundError    = pages.PageNotFoundError
	PageValidationError  = pages.PageValidationError
)

const (
	EditorModeLinear = pages.EditorModeLinear
	EditorModeGrid   = pages.EditorModeGrid
)

var (
	ErrUserIDRequired    = pages.ErrUserIDRequired
	ErrSlugInvalid       = pages.ErrSlugInvalid
	ErrSlugExists        = pages.ErrSlugExists
	ErrBlockIDRequired   = pages.ErrBlockIDRequired
	ErrDuplicateBlockID  = pages.ErrDuplicateBlockID
	ErrBlockNotFound     = pages.ErrBlockNotFound
	ErrReorderIncomplete = pages.ErrReorderIncomplete
	ErrLanguagesRequired = pages.ErrLanguagesRequired
	ErrLanguageInvalid   = pages.ErrLanguageInvalid
	ErrPageInvalid       = pages.ErrPageInvalid
	ErrPublicURLDisabled = pages.ErrPublicURLDisabled
)

var (
	WithLogger            = pages.WithLogger
	WithNow               = pages.WithNow
	WithStrictReorder     = pages.WithStrictReorder
	WithTitleLanguage     = pages.WithTitleLanguage
	WithPublicURLResolver = pages.WithPublicURLResolver
)

// CreateDefault returns a new page with the starter block set for userID.
func CreateDefault(userID string) Page { return pages.CreateDefault(userID) }

func DefaultTheme() Theme { return pages.DefaultTheme() }

func DefaultSEO() SEO { return pages.DefaultSEO() }

func NewService(repo PageRepository, opts ...ServiceOption) Service {
	return pages.NewService(repo, opts...)
}

func NewStore(service Service) *Store { return pages.NewStore(service) }

func NewMemoryPageRepository() PageRepository { return pages.NewMemoryPageRepository() }

func NewBunPageRepository(db *bun.DB) PageRepository { return pages.NewBunPageRepository(db) }

// NewPublicURLResolver builds a go-urlkit resolver for baseURL + pagePath.
func NewPublicURLResolver(baseURL, pagePath, slugParam string) PublicURLResolver {
	return pages.NewPublicURLResolver(baseURL, pagePath, slugParam)
}

func IsNotFound(err error) bool { return pages.IsNotFound(err) }
