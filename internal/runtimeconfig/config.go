package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrSiteTitleRequired = errors.New("blog config: site title is required")
var ErrContentDirRequired = errors.New("blog config: content directory is required")
var ErrCollectionDirRequired = errors.New("blog config: collection directory is required")
var ErrRouteTemplateInvalid = errors.New("blog config: route template must start with /")
var ErrStorageDriverUnknown = errors.New("blog config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("blog config: storage dsn is required")
var ErrCacheTTLInvalid = errors.New("blog config: cache ttl must be zero or positive")
var ErrCacheFeatureRequired = errors.New("blog config: cache feature must be enabled to configure cache")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates runtime settings for the blog module. Fields use simple
// types so host applications can populate them from their own config stack.
type Config struct {
	Module   ModuleConfig  `yaml:"module"`
	Site     SiteConfig    `yaml:"site"`
	Content  ContentConfig `yaml:"content"`
	Routes   RoutesConfig  `yaml:"routes"`
	Storage  StorageConfig `yaml:"storage"`
	Cache    CacheConfig   `yaml:"cache"`
	Features Features      `yaml:"features"`
	Logging  LoggingConfig `yaml:"logging"`
	Parser   ParserConfig  `yaml:"parser"`
}

// ModuleConfig identifies the running module instance.
type ModuleConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
}

// SiteConfig carries site-wide publishing metadata.
type SiteConfig struct {
	Title         string   `yaml:"title"`
	BaseURL       string   `yaml:"base_url"`
	Layouts       []string `yaml:"layouts"`
	TrailingSlash bool     `yaml:"trailing_slash"`
}

// ContentConfig captures filesystem layout for the content tree.
type ContentConfig struct {
	Dir       string `yaml:"dir"`
	PostsDir  string `yaml:"posts_dir"`
	PagesDir  string `yaml:"pages_dir"`
	Pattern   string `yaml:"pattern"`
	Recursive bool   `yaml:"recursive"`
}

// RoutesConfig holds permalink templates per collection.
type RoutesConfig struct {
	Posts string `yaml:"posts"`
	Pages string `yaml:"pages"`
}

// StorageConfig selects the archive backend.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// CacheConfig captures repository cache behaviour.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// UnmarshalYAML accepts Go duration strings ("5m", "90s") for default_ttl.
func (c *CacheConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Enabled    bool   `yaml:"enabled"`
		DefaultTTL string `yaml:"default_ttl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.Enabled = raw.Enabled
	if strings.TrimSpace(raw.DefaultTTL) != "" {
		ttl, err := time.ParseDuration(raw.DefaultTTL)
		if err != nil {
			return fmt.Errorf("blog config: cache default_ttl: %w", err)
		}
		c.DefaultTTL = ttl
	}
	return nil
}

// Logging providers understood by the DI container.
const (
	LoggingProviderConsole  = "console"
	LoggingProviderGoLogger = "gologger"
)

// Features toggles optional module surfaces.
type Features struct {
	Watch bool `yaml:"watch"`
	HTTP  bool `yaml:"http"`
	Cache bool `yaml:"cache"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// ParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type ParserConfig struct {
	Extensions []string `yaml:"extensions"`
	Sanitize   bool     `yaml:"sanitize"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// DefaultConfig returns opinionated defaults for a conventional content tree.
func DefaultConfig() Config {
	return Config{
		Module: ModuleConfig{
			Name:        "blog",
			Environment: "development",
		},
		Site: SiteConfig{
			Title:         "Blog",
			Layouts:       []string{"post", "page"},
			TrailingSlash: true,
		},
		Content: ContentConfig{
			Dir:       "content",
			PostsDir:  "posts",
			PagesDir:  "pages",
			Pattern:   "*.md",
			Recursive: true,
		},
		Routes: RoutesConfig{
			Posts: "/:year/:month/:slug",
			Pages: "/:slug",
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: LoggingProviderConsole,
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.Title) == "" {
		return ErrSiteTitleRequired
	}
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Content.PostsDir) == "" {
		return fmt.Errorf("%w: posts", ErrCollectionDirRequired)
	}
	if strings.TrimSpace(cfg.Content.PagesDir) == "" {
		return fmt.Errorf("%w: pages", ErrCollectionDirRequired)
	}
	for name, template := range map[string]string{"posts": cfg.Routes.Posts, "pages": cfg.Routes.Pages} {
		if trimmed := strings.TrimSpace(template); trimmed != "" && !strings.HasPrefix(trimmed, "/") {
			return fmt.Errorf("%w: %s", ErrRouteTemplateInvalid, name)
		}
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch driver {
	case "", "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Features.Cache && !cfg.Cache.Enabled {
		return ErrCacheFeatureRequired
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == LoggingProviderGoLogger {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// overlayConfig shadows Config for site-file decoding. Booleans are pointers
// so an explicit false in the file is distinguishable from an absent key.
type overlayConfig struct {
	Module struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
	} `yaml:"module"`
	Site struct {
		Title         string   `yaml:"title"`
		BaseURL       string   `yaml:"base_url"`
		Layouts       []string `yaml:"layouts"`
		TrailingSlash *bool    `yaml:"trailing_slash"`
	} `yaml:"site"`
	Content struct {
		Dir       string `yaml:"dir"`
		PostsDir  string `yaml:"posts_dir"`
		PagesDir  string `yaml:"pages_dir"`
		Pattern   string `yaml:"pattern"`
		Recursive *bool  `yaml:"recursive"`
	} `yaml:"content"`
	Routes  RoutesConfig  `yaml:"routes"`
	Storage StorageConfig `yaml:"storage"`
	Cache   struct {
		Enabled    *bool  `yaml:"enabled"`
		DefaultTTL string `yaml:"default_ttl"`
	} `yaml:"cache"`
	Features struct {
		Watch *bool `yaml:"watch"`
		HTTP  *bool `yaml:"http"`
		Cache *bool `yaml:"cache"`
	} `yaml:"features"`
	Logging struct {
		Provider  string   `yaml:"provider"`
		Level     string   `yaml:"level"`
		Format    string   `yaml:"format"`
		AddSource *bool    `yaml:"add_source"`
		Focus     []string `yaml:"focus"`
	} `yaml:"logging"`
	Parser struct {
		Extensions []string `yaml:"extensions"`
		Sanitize   *bool    `yaml:"sanitize"`
		HardWraps  *bool    `yaml:"hard_wraps"`
		SafeMode   *bool    `yaml:"safe_mode"`
	} `yaml:"parser"`
}

// LoadSiteFile reads a YAML site config file and overlays it on the supplied
// base. Absent keys keep the base setting, so partial site files stay valid;
// explicit values, including false, always win.
func LoadSiteFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("blog config: reading %s: %w", path, err)
	}

	var overlay overlayConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return base, fmt.Errorf("blog config: parsing %s: %w", path, err)
	}

	return merge(base, overlay)
}

func merge(base Config, overlay overlayConfig) (Config, error) {
	out := base

	applyString(&out.Module.Name, overlay.Module.Name)
	applyString(&out.Module.Environment, overlay.Module.Environment)

	applyString(&out.Site.Title, overlay.Site.Title)
	applyString(&out.Site.BaseURL, overlay.Site.BaseURL)
	if len(overlay.Site.Layouts) > 0 {
		out.Site.Layouts = overlay.Site.Layouts
	}
	applyBool(&out.Site.TrailingSlash, overlay.Site.TrailingSlash)

	applyString(&out.Content.Dir, overlay.Content.Dir)
	applyString(&out.Content.PostsDir, overlay.Content.PostsDir)
	applyString(&out.Content.PagesDir, overlay.Content.PagesDir)
	applyString(&out.Content.Pattern, overlay.Content.Pattern)
	applyBool(&out.Content.Recursive, overlay.Content.Recursive)

	applyString(&out.Routes.Posts, overlay.Routes.Posts)
	applyString(&out.Routes.Pages, overlay.Routes.Pages)

	applyString(&out.Storage.Driver, overlay.Storage.Driver)
	applyString(&out.Storage.DSN, overlay.Storage.DSN)

	applyBool(&out.Cache.Enabled, overlay.Cache.Enabled)
	if raw := strings.TrimSpace(overlay.Cache.DefaultTTL); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return base, fmt.Errorf("blog config: cache default_ttl: %w", err)
		}
		out.Cache.DefaultTTL = ttl
	}

	applyBool(&out.Features.Watch, overlay.Features.Watch)
	applyBool(&out.Features.HTTP, overlay.Features.HTTP)
	applyBool(&out.Features.Cache, overlay.Features.Cache)

	applyString(&out.Logging.Provider, overlay.Logging.Provider)
	applyString(&out.Logging.Level, overlay.Logging.Level)
	applyString(&out.Logging.Format, overlay.Logging.Format)
	applyBool(&out.Logging.AddSource, overlay.Logging.AddSource)
	if len(overlay.Logging.Focus) > 0 {
		out.Logging.Focus = overlay.Logging.Focus
	}

	if len(overlay.Parser.Extensions) > 0 {
		out.Parser.Extensions = overlay.Parser.Extensions
	}
	applyBool(&out.Parser.Sanitize, overlay.Parser.Sanitize)
	applyBool(&out.Parser.HardWraps, overlay.Parser.HardWraps)
	applyBool(&out.Parser.SafeMode, overlay.Parser.SafeMode)

	return out, nil
}

func applyString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case LoggingProviderConsole, LoggingProviderGoLogger:
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}
