package bootstrap

import (
	"context"
	"fmt"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/pkg/storage"
)

// Options captures configuration shared by the blog CLIs.
type Options struct {
	ConfigFile     string
	ContentDir     string
	Pattern        string
	Driver         string
	DSN            string
	HTTP           bool
	Watch          bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the blog module plus the logger configured for CLI output.
type Module struct {
	Module *blog.Module
	Logger interfaces.Logger
}

// BuildModule constructs a blog module for CLI use. A site config file, when
// supplied, is overlaid on the defaults before flag overrides apply.
func BuildModule(ctx context.Context, opts Options) (*Module, error) {
	cfg := blog.DefaultConfig()

	if path := strings.TrimSpace(opts.ConfigFile); path != "" {
		loaded, err := blog.LoadSiteFile(path, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Content.Dir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Content.Pattern = pattern
	}
	if driver := strings.TrimSpace(opts.Driver); driver != "" {
		cfg.Storage.Driver = driver
	}
	if dsn := strings.TrimSpace(opts.DSN); dsn != "" {
		cfg.Storage.DSN = dsn
	}
	if opts.HTTP {
		cfg.Features.HTTP = true
	}
	if opts.Watch {
		cfg.Features.Watch = true
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLogger(opts.LoggerProvider))
	}

	if cfg.Storage.Driver != "" && cfg.Storage.Driver != storage.DriverMemory {
		db, err := storage.Open(storage.Config{
			Driver: cfg.Storage.Driver,
			DSN:    cfg.Storage.DSN,
		})
		if err != nil {
			return nil, fmt.Errorf("open archive storage: %w", err)
		}
		if err := storage.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("migrate archive storage: %w", err)
		}
		diOpts = append(diOpts, di.WithBunDB(db))
	}

	module, err := blog.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}

	logger := logging.ModuleLogger(module.Container().LoggerProvider(), "blog.cli")

	return &Module{
		Module: module,
		Logger: logger,
	}, nil
}
