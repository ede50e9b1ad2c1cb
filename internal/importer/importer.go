package importer

import (
	"context"
	"fmt"
	"os"

	"github.com/linkmax/lnkmx/internal/logging"
	"github.com/linkmax/lnkmx/internal/pages"
	"github.com/linkmax/lnkmx/pkg/interfaces"
)

// Config encapsulates the importer dependencies. Service may be nil when the
// importer only builds pages.
type Config struct {
	Service pages.Service
	Logger  interfaces.Logger
}

// Options tune a single import.
type Options struct {
	// User overrides the manifest owner.
	User string
	// DryRun builds and validates the page without saving it.
	DryRun bool
}

// Result reports an import.
type Result struct {
	Page        *pages.Page
	BlockIssues []pages.BlockIssue
	Saved       *pages.SaveResult
}

// Importer converts Markdown page manifests into pages.
type Importer struct {
	service pages.Service
	logger  interfaces.Logger
}

func NewImporter(cfg Config) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{service: cfg.Service, logger: logger}
}

// Import parses source and, unless opts.DryRun is set, saves the page.
func (i *Importer) Import(ctx context.Context, source []byte, opts Options) (*Result, error) {
	manifest, body, err := Parse(source)
	if err != nil {
		return nil, err
	}
	page, err := BuildPage(manifest, body, opts.User)
	if err != nil {
		return nil, err
	}
	logger := logging.WithPageContext(i.logger, page.ID.String(), page.Slug, page.UserID)

	res := &Result{Page: &page}
	if opts.DryRun {
		if check := page.Validate(); !check.Valid {
			return res, &pages.PageValidationError{Errors: check.Errors}
		}
		res.BlockIssues = page.ValidateBlocks()
		logger.Info("importer.dry_run.complete", "block_count", len(page.Blocks), "block_issues", len(res.BlockIssues))
		return res, nil
	}

	if i.service == nil {
		return res, ErrServiceRequired
	}
	saved, err := i.service.Save(ctx, &page)
	if err != nil {
		logger.Error("importer.save.failed", "error", err)
		return res, err
	}
	res.Saved = saved
	res.BlockIssues = saved.BlockIssues
	logger.Info("importer.save.complete", "block_count", len(page.Blocks), "block_issues", len(saved.BlockIssues))
	return res, nil
}

// ImportFile reads path and imports it.
func (i *Importer) ImportFile(ctx context.Context, path string, opts Options) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("importer: read %s: %w", path, err)
	}
	return i.Import(ctx, source, opts)
}
