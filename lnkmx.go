package lnkmx

import (
	"github.com/linkmax/lnkmx/internal/di"
	"github.com/linkmax/lnkmx/internal/importer"
	"github.com/linkmax/lnkmx/internal/pages"
	"github.com/uptrace/bun"

	pagescmd "github.com/linkmax/lnkmx/internal/commands/pages"
)

// PageService exports the pages service contract.
type PageService = pages.Service

// PageStore exports the result-returning persistence facade.
type PageStore = *pages.Store

// Importer exports the Markdown manifest importer.
type Importer = *importer.Importer

// PageCommands exports the registered page command handlers.
type PageCommands = *pagescmd.HandlerSet

// Option customises the module wiring.
type Option = di.Option

var (
	WithLoggerProvider    = di.WithLoggerProvider
	WithBunDB             = di.WithBunDB
	WithCache             = di.WithCache
	WithPageRepository    = di.WithPageRepository
	WithPublicURLResolver = di.WithPublicURLResolver
	WithCommandRegistry   = di.WithCommandRegistry
	WithFeatureGates      = di.WithFeatureGates
	WithDispatcher        = di.WithDispatcher
)

// ErrCommandsDisabled is returned by Commands when the feature is off.
var ErrCommandsDisabled = di.ErrCommandsDisabled

// Module represents the top level lnkmx runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg. SQL storage is migrated with the
// embedded migrations unless opts supply a database of their own.
func New(cfg Config, opts ...Option) (*Module, error) {
	all := append([]Option{di.WithMigrations(migrationsFS, MigrationsRoot)}, opts...)
	container, err := di.NewContainer(cfg, all...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Store returns the page store.
func (m *Module) Store() PageStore {
	return m.container.Store()
}

func (m *Module) Importer() Importer {
	return m.container.Importer()
}

// Commands returns the page command handlers.
func (m *Module) Commands() (PageCommands, error) {
	return m.container.Commands()
}

// DB returns the database handle, or nil for memory storage.
func (m *Module) DB() *bun.DB {
	return m.container.DB()
}

// Close releases the resources opened by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
