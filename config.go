package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrSiteTitleRequired       = runtimeconfig.ErrSiteTitleRequired
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrCollectionDirRequired   = runtimeconfig.ErrCollectionDirRequired
	ErrRouteTemplateInvalid    = runtimeconfig.ErrRouteTemplateInvalid
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheFeatureRequired    = runtimeconfig.ErrCacheFeatureRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	ModuleConfig  = runtimeconfig.ModuleConfig
	SiteConfig    = runtimeconfig.SiteConfig
	ContentConfig = runtimeconfig.ContentConfig
	RoutesConfig  = runtimeconfig.RoutesConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	Features      = runtimeconfig.Features
	LoggingConfig = runtimeconfig.LoggingConfig
	ParserConfig  = runtimeconfig.ParserConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadSiteFile overlays the YAML site file at path on top of base.
func LoadSiteFile(path string, base Config) (Config, error) {
	return runtimeconfig.LoadSiteFile(path, base)
}
