package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	pagescmd "github.com/linkmax/lnkmx/internal/commands/pages"
	"github.com/linkmax/lnkmx/internal/i18n"
	"github.com/linkmax/lnkmx/internal/importer"
	"github.com/linkmax/lnkmx/internal/logging"
	"github.com/linkmax/lnkmx/internal/logging/gologger"
	"github.com/linkmax/lnkmx/internal/pages"
	"github.com/linkmax/lnkmx/internal/runtimeconfig"
	"github.com/linkmax/lnkmx/pkg/interfaces"
	"github.com/linkmax/lnkmx/pkg/storage"
)

var (
	ErrCommandsDisabled = errors.New("di: commands feature is disabled")
)

// Container wires the lnkmx services from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB      *bun.DB
	ownsDB     bool
	migrations fs.FS
	migRoot    string

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	pageRepo pages.PageRepository
	urls     pages.PublicURLResolver
	pageSvc  pages.Service
	store    *pages.Store
	importer *importer.Importer

	registry      pagescmd.CommandRegistry
	gates         pagescmd.FeatureGates
	dispatch      bool
	maxRetries    int
	commands      *pagescmd.HandlerSet
	unsubscribers []func()

	closeOnce sync.Once
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB supplies an existing database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithMigrations sets the SQL migrations applied to databases opened by the
// container.
func WithMigrations(fsys fs.FS, root string) Option {
	return func(c *Container) {
		c.migrations = fsys
		c.migRoot = root
	}
}

// WithCache overrides the cache service used by the bun page repository.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithPageRepository replaces the page repository.
func WithPageRepository(repo pages.PageRepository) Option {
	return func(c *Container) {
		if repo != nil {
			c.pageRepo = repo
		}
	}
}

// WithPublicURLResolver replaces the public URL resolver.
func WithPublicURLResolver(resolver pages.PublicURLResolver) Option {
	return func(c *Container) {
		if resolver != nil {
			c.urls = resolver
		}
	}
}

// WithCommandRegistry receives the page command handlers on registration.
func WithCommandRegistry(reg pagescmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithFeatureGates sets the premium and scheduling gates of the command handlers.
func WithFeatureGates(gates pagescmd.FeatureGates) Option {
	return func(c *Container) {
		c.gates = gates
	}
}

// WithDispatcher subscribes the page command handlers to the go-command
// dispatcher, retrying failed commands up to maxRetries times.
func WithDispatcher(maxRetries int) Option {
	return func(c *Container) {
		c.dispatch = true
		if maxRetries > 0 {
			c.maxRetries = maxRetries
		}
	}
}

// NewContainer validates cfg and builds the services it describes.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureRepositories(); err != nil {
		return nil, err
	}
	c.configureServices()
	if err := c.configureCommands(); err != nil {
		c.Close()
		return nil, err
	}

	c.logger.Info("container.configured",
		"storage", c.storageProvider(),
		"cache", c.cacheService != nil,
		"commands", c.commands != nil,
	)
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider == nil && c.Config.Features.Logger {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: logger provider: %w", err)
		}
		c.loggerProvider = provider
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "lnkmx.di")
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger.Warn("container.cache.disabled", "error", err)
		} else {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() error {
	if c.pageRepo != nil {
		return nil
	}

	if c.bunDB == nil {
		provider := c.storageProvider()
		if provider == runtimeconfig.StorageMemory {
			c.pageRepo = pages.NewMemoryPageRepository()
			return nil
		}
		storageCfg := storage.Config{
			Name:   "pages",
			Driver: provider,
			DSN:    c.Config.Storage.DSN,
		}
		if err := storage.ValidateConfig(storageCfg); err != nil {
			return err
		}
		db, err := storage.Open(storageCfg)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	if err := c.prepareSchema(context.Background()); err != nil {
		if c.ownsDB {
			_ = c.bunDB.Close()
		}
		return err
	}
	c.pageRepo = pages.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	return nil
}

func (c *Container) prepareSchema(ctx context.Context) error {
	if c.migrations == nil {
		return pages.CreateSchema(ctx, c.bunDB)
	}
	applied, err := storage.ApplyMigrations(ctx, c.bunDB, c.migrations, c.migRoot)
	if err != nil {
		return err
	}
	c.logger.Debug("container.migrations.applied", "files", applied)
	return nil
}

func (c *Container) configureServices() {
	if c.urls == nil {
		c.urls = pages.NewPublicURLResolver(
			c.Config.PublicURL.BaseURL,
			c.Config.PublicURL.PagePath,
			c.Config.PublicURL.SlugParam,
		)
	}

	serviceOpts := []pages.ServiceOption{
		pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
		pages.WithRecordsLogger(logging.RecordsLogger(c.loggerProvider)),
		pages.WithStrictReorder(c.Config.Features.StrictReorder),
		pages.WithPublicURLResolver(c.urls),
	}
	if lang, ok := i18n.ParseLanguage(c.Config.DefaultLanguage); ok {
		serviceOpts = append(serviceOpts, pages.WithTitleLanguage(lang))
	}

	c.pageSvc = pages.NewService(c.pageRepo, serviceOpts...)
	c.store = pages.NewStore(c.pageSvc)
	c.importer = importer.NewImporter(importer.Config{
		Service: c.pageSvc,
		Logger:  logging.ImporterLogger(c.loggerProvider),
	})
}

func (c *Container) configureCommands() error {
	if !c.Config.Features.Commands {
		return nil
	}

	set, err := pagescmd.RegisterPageCommands(c.registry, c.pageSvc, c.loggerProvider, c.gates,
		pagescmd.WithTimeout(c.Config.Commands.Timeout))
	if err != nil {
		return fmt.Errorf("di: register page commands: %w", err)
	}
	c.commands = set

	if c.dispatch {
		retries := runner.WithMaxRetries(c.maxRetries)
		c.unsubscribers = append(c.unsubscribers,
			dispatcher.SubscribeCommand[pagescmd.ReorderBlocksCommand](set.Reorder, retries).Unsubscribe,
			dispatcher.SubscribeCommand[pagescmd.AddBlockCommand](set.Add, retries).Unsubscribe,
			dispatcher.SubscribeCommand[pagescmd.RemoveBlockCommand](set.Remove, retries).Unsubscribe,
			dispatcher.SubscribeCommand[pagescmd.ScheduleBlockCommand](set.Schedule, retries).Unsubscribe,
		)
	}
	return nil
}

func (c *Container) storageProvider() string {
	if c.bunDB != nil && c.pageRepo == nil {
		return storage.Dialect(c.bunDB.Dialect().Name().String())
	}
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
	if provider == "" {
		return runtimeconfig.StorageMemory
	}
	return provider
}

// LoggerProvider returns the configured logger provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) DB() *bun.DB {
	return c.bunDB
}

func (c *Container) PageRepository() pages.PageRepository {
	return c.pageRepo
}

func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

func (c *Container) Store() *pages.Store {
	return c.store
}

func (c *Container) Importer() *importer.Importer {
	return c.importer
}

func (c *Container) PublicURLResolver() pages.PublicURLResolver {
	return c.urls
}

// Commands returns the registered page command handlers.
func (c *Container) Commands() (*pagescmd.HandlerSet, error) {
	if c.commands == nil {
		return nil, ErrCommandsDisabled
	}
	return c.commands, nil
}

// Close unsubscribes dispatcher handlers and closes a database the container
// opened itself.
func (c *Container) Close() error {
	var err error
	c.closeOnce.Do(func() {
		for _, unsubscribe := range c.unsubscribers {
			unsubscribe()
		}
		c.unsubscribers = nil
		if c.ownsDB && c.bunDB != nil {
			err = c.bunDB.Close()
		}
	})
	return err
}
