package logging

import (
	"context"
	"strings"

	"github.com/linkmax/lnkmx/pkg/interfaces"
)

const (
	rootModule     = "lnkmx"
	pagesModule    = "lnkmx.pages"
	recordsModule  = "lnkmx.records"
	importerModule = "lnkmx.importer"
)

const (
	fieldPageID   = "page_id"
	fieldPageSlug = "slug"
	fieldUserID   = "user_id"
)

// ModuleLogger returns a module-scoped logger. A nil provider, or one that
// returns nil, yields a no-op logger. The module name is attached as the
// "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PagesLogger returns the logger namespace reserved for page services.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// RecordsLogger returns the logger namespace reserved for the persistence
// record pipeline.
func RecordsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, recordsModule)
}

// ImporterLogger returns the logger namespace reserved for manifest imports.
func ImporterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, importerModule)
}

// WithPageContext enriches logger with page identity fields. Empty values are
// skipped.
func WithPageContext(logger interfaces.Logger, pageID, slug, userID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pageID); trimmed != "" {
		fields[fieldPageID] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldPageSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(userID); trimmed != "" {
		fields[fieldUserID] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
