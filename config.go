package fluent

import "github.com/goliatone/go-fluent/internal/runtimeconfig"

var (
	ErrLocalesRequired         = runtimeconfig.ErrLocalesRequired
	ErrDefaultLocaleUnknown    = runtimeconfig.ErrDefaultLocaleUnknown
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrDatabaseFeatureRequired = runtimeconfig.ErrDatabaseFeatureRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	LocaleConfig     = runtimeconfig.LocaleConfig
	DomainConfig     = runtimeconfig.DomainConfig
	RoutingConfig    = runtimeconfig.RoutingConfig
	PublishingConfig = runtimeconfig.PublishingConfig
	CacheConfig      = runtimeconfig.CacheConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
	Features         = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
