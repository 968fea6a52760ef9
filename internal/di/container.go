package di

import (
	"io/fs"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-blog/internal/archive"
	"github.com/goliatone/go-blog/internal/bloghttp"
	"github.com/goliatone/go-blog/internal/commands"
	contentcmd "github.com/goliatone/go-blog/internal/commands/content"
	"github.com/goliatone/go-blog/internal/lint"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markup"
	"github.com/goliatone/go-blog/internal/permalink"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/validation"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Container wires module dependencies. Memory repositories serve as the
// default; supplying a bun.DB switches the archive to database storage with
// optional caching.
type Container struct {
	Config runtimeconfig.Config

	loggers interfaces.LoggerProvider

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	contentFS fs.FS

	entryRepo  archive.EntryRepository
	archiveSvc archive.Service

	documentSvc interfaces.DocumentService
	linter      *lint.Runner
	permalinks  *permalink.Resolver
	syncer      *archive.Syncer

	validateHandler *contentcmd.ValidateContentHandler
	syncHandler     *contentcmd.SyncContentHandler

	watcher *markup.Watcher
	httpAPI *bloghttp.API
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB switches archive storage to the supplied database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithArchive overrides the default archive service binding.
func WithArchive(svc archive.Service) Option {
	return func(c *Container) {
		c.archiveSvc = svc
	}
}

// WithEntryRepository overrides the default entry repository binding.
func WithEntryRepository(repo archive.EntryRepository) Option {
	return func(c *Container) {
		c.entryRepo = repo
	}
}

// WithLogger installs the logger provider used for module loggers.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggers = provider
	}
}

// WithContentFS serves content from the supplied filesystem instead of the
// configured content directory. Embedded corpora use this.
func WithContentFS(filesystem fs.FS) Option {
	return func(c *Container) {
		c.contentFS = filesystem
	}
}

// WithDocumentService overrides the default markup service binding.
func WithDocumentService(svc interfaces.DocumentService) Option {
	return func(c *Container) {
		c.documentSvc = svc
	}
}

// NewContainer builds the dependency graph for the supplied configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	c := &Container{
		Config:    cfg,
		cacheTTL:  cfg.Cache.DefaultTTL,
		entryRepo: archive.NewMemoryEntryRepository(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggers(); err != nil {
		return nil, err
	}

	validation.RegisterSchemaDocument()

	c.configureCacheDefaults()
	c.configureRepositories()

	if c.permalinks == nil {
		c.permalinks = permalink.New(permalink.Config{
			Posts:         cfg.Routes.Posts,
			Pages:         cfg.Routes.Pages,
			TrailingSlash: cfg.Site.TrailingSlash,
		})
	}

	if c.linter == nil {
		c.linter = lint.NewRunner(
			lint.Config{Layouts: cfg.Site.Layouts},
			lint.WithLogger(logging.LintLogger(c.loggers)),
			lint.WithPermalinkResolver(c.permalinks.Resolve),
		)
	}

	if c.documentSvc == nil {
		markupCfg := markup.Config{
			BasePath:  cfg.Content.Dir,
			Pattern:   cfg.Content.Pattern,
			Recursive: cfg.Content.Recursive,
			Parser: interfaces.ParseOptions{
				Extensions: cfg.Parser.Extensions,
				Sanitize:   cfg.Parser.Sanitize,
				HardWraps:  cfg.Parser.HardWraps,
				SafeMode:   cfg.Parser.SafeMode,
			},
		}

		var (
			svc *markup.Service
			err error
		)
		if c.contentFS != nil {
			markupCfg.BasePath = ""
			svc, err = markup.NewServiceWithFS(c.contentFS, markupCfg, nil)
		} else {
			svc, err = markup.NewService(markupCfg, nil)
		}
		if err != nil {
			return nil, err
		}
		c.documentSvc = svc
	}

	if c.archiveSvc == nil {
		c.archiveSvc = archive.NewService(
			c.entryRepo,
			archive.WithLogger(logging.ArchiveLogger(c.loggers)),
		)
	}

	if c.syncer == nil {
		c.syncer = archive.NewSyncer(
			c.archiveSvc,
			c.linter,
			c.permalinks,
			archive.WithSyncLogger(logging.SyncLogger(c.loggers)),
		)
	}

	c.validateHandler = contentcmd.NewValidateContentHandler(
		c.documentSvc,
		c.linter,
		commands.CommandLogger(c.loggers, "content"),
	)
	c.syncHandler = contentcmd.NewSyncContentHandler(
		c.documentSvc,
		c.syncer,
		commands.CommandLogger(c.loggers, "content"),
	)

	if cfg.Features.Watch && c.contentFS == nil {
		watcher, err := markup.NewWatcher(markup.WatcherConfig{
			Dir:     cfg.Content.Dir,
			Pattern: cfg.Content.Pattern,
			Logger:  logging.WatcherLogger(c.loggers),
		})
		if err != nil {
			return nil, err
		}
		c.watcher = watcher
	}

	if cfg.Features.HTTP {
		c.httpAPI = bloghttp.New(
			c.archiveSvc,
			bloghttp.WithSiteTitle(cfg.Site.Title),
			bloghttp.WithBaseURL(cfg.Site.BaseURL),
			bloghttp.WithLogger(logging.HTTPLogger(c.loggers)),
		)
	}

	return c, nil
}

func (c *Container) configureLoggers() error {
	if c.loggers != nil {
		return nil
	}

	switch c.Config.Logging.Provider {
	case runtimeconfig.LoggingProviderGoLogger:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggers = provider
	default:
		c.loggers = console.NewProvider(console.Options{
			Level: console.ParseLevel(c.Config.Logging.Level),
		})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.entryRepo = archive.NewBunEntryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

// EntryRepository exposes the configured archive storage.
func (c *Container) EntryRepository() archive.EntryRepository {
	return c.entryRepo
}

// ArchiveService exposes the archive use-cases.
func (c *Container) ArchiveService() archive.Service {
	return c.archiveSvc
}

// DocumentService exposes the markup loading and rendering service.
func (c *Container) DocumentService() interfaces.DocumentService {
	return c.documentSvc
}

// Linter exposes the configured lint runner.
func (c *Container) Linter() *lint.Runner {
	return c.linter
}

// PermalinkResolver exposes the configured permalink resolver.
func (c *Container) PermalinkResolver() *permalink.Resolver {
	return c.permalinks
}

// Syncer exposes the content-to-archive reconciler.
func (c *Container) Syncer() *archive.Syncer {
	return c.syncer
}

// ValidateContentHandler exposes the validate command handler.
func (c *Container) ValidateContentHandler() *contentcmd.ValidateContentHandler {
	return c.validateHandler
}

// SyncContentHandler exposes the sync command handler.
func (c *Container) SyncContentHandler() *contentcmd.SyncContentHandler {
	return c.syncHandler
}

// Watcher exposes the content tree watcher, nil unless the watch feature is
// enabled for an on-disk content tree.
func (c *Container) Watcher() *markup.Watcher {
	return c.watcher
}

// HTTPAPI exposes the read-only HTTP adapter, nil unless the feature is enabled.
func (c *Container) HTTPAPI() *bloghttp.API {
	return c.httpAPI
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggers
}
