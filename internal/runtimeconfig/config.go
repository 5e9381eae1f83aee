package runtimeconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-fluent/internal/locales"
)

var ErrLocalesRequired = errors.New("fluent config: at least one locale is required")
var ErrDefaultLocaleUnknown = errors.New("fluent config: default locale is not configured")
var ErrCacheTTLInvalid = errors.New("fluent config: cache ttl must be positive when cache is enabled")
var ErrDatabaseFeatureRequired = errors.New("fluent config: database feature must be enabled to cache the catalogue")
var ErrLoggingProviderRequired = errors.New("fluent config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("fluent config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("fluent config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("fluent config: logging format is invalid")

var (
	localeCodePattern = regexp.MustCompile(`^[A-Za-z]{2,3}([_-][A-Za-z0-9]{2,8})*$`)
	queryParamPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// Config aggregates the catalogue, routing and publishing rules of the
// resolver module.
type Config struct {
	DefaultLocale string           `json:"default_locale" yaml:"default_locale"`
	Locales       []LocaleConfig   `json:"locales" yaml:"locales"`
	Domains       []DomainConfig   `json:"domains" yaml:"domains"`
	Routing       RoutingConfig    `json:"routing" yaml:"routing"`
	Publishing    PublishingConfig `json:"publishing" yaml:"publishing"`
	Cache         CacheConfig      `json:"cache" yaml:"cache"`
	Logging       LoggingConfig    `json:"logging" yaml:"logging"`
	Features      Features         `json:"features" yaml:"features"`
}

// LocaleConfig describes one locale of the catalogue.
type LocaleConfig struct {
	Code           string   `json:"code" yaml:"code"`
	Title          string   `json:"title,omitempty" yaml:"title,omitempty"`
	URLSegment     string   `json:"url_segment,omitempty" yaml:"url_segment,omitempty"`
	LanguageCode   string   `json:"language_code,omitempty" yaml:"language_code,omitempty"`
	LanguageNative string   `json:"language_native,omitempty" yaml:"language_native,omitempty"`
	Domain         string   `json:"domain,omitempty" yaml:"domain,omitempty"`
	IsDefault      bool     `json:"is_default,omitempty" yaml:"is_default,omitempty"`
	Fallbacks      []string `json:"fallbacks,omitempty" yaml:"fallbacks,omitempty"`
}

// Validate implements validation.Validatable.
func (l LocaleConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Code, validation.Required, validation.Match(localeCodePattern)),
		validation.Field(&l.Fallbacks, validation.Each(validation.Match(localeCodePattern))),
	)
}

// DomainConfig binds a hostname to a default locale.
type DomainConfig struct {
	Hostname      string `json:"hostname" yaml:"hostname"`
	DefaultLocale string `json:"default_locale,omitempty" yaml:"default_locale,omitempty"`
}

// Validate implements validation.Validatable.
func (d DomainConfig) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Hostname, validation.Required),
	)
}

// RoutingConfig captures link generation switches.
type RoutingConfig struct {
	DisableDefaultPrefix bool   `json:"disable_default_prefix" yaml:"disable_default_prefix"`
	NestedURLs           bool   `json:"nested_urls" yaml:"nested_urls"`
	QueryParam           string `json:"query_param" yaml:"query_param"`
	HomeSegment          string `json:"home_segment" yaml:"home_segment"`
	BasePath             string `json:"base_path" yaml:"base_path"`
	Scheme               string `json:"scheme" yaml:"scheme"`
	BaseURL              string `json:"base_url" yaml:"base_url"`
}

// Validate implements validation.Validatable.
func (r RoutingConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.QueryParam, validation.Required, validation.Match(queryParamPattern)),
		validation.Field(&r.Scheme, validation.In("", "http", "https")),
	)
}

// PublishingConfig captures visibility and status message rules.
type PublishingConfig struct {
	FrontendPublishRequired bool `json:"frontend_publish_required" yaml:"frontend_publish_required"`
	CMSLocalisationRequired bool `json:"cms_localisation_required" yaml:"cms_localisation_required"`
	StatusMessages          bool `json:"status_messages" yaml:"status_messages"`
}

// CacheConfig controls the catalogue repository cache.
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
}

// LoggingConfig captures provider options for runtime logging.
type LoggingConfig struct {
	Provider  string   `json:"provider" yaml:"provider"`
	Level     string   `json:"level" yaml:"level"`
	Format    string   `json:"format" yaml:"format"`
	AddSource bool     `json:"add_source" yaml:"add_source"`
	Focus     []string `json:"focus,omitempty" yaml:"focus,omitempty"`
}

// Features toggles optional wiring.
type Features struct {
	Logger   bool `json:"logger" yaml:"logger"`
	Database bool `json:"database" yaml:"database"`
}

// DefaultConfig returns the defaults used when a host provides no overrides.
// The catalogue itself is empty and must be supplied.
func DefaultConfig() Config {
	return Config{
		Routing: RoutingConfig{
			NestedURLs:  true,
			QueryParam:  "l",
			HomeSegment: "home",
			BasePath:    "/",
			Scheme:      "http",
		},
		Publishing: PublishingConfig{
			StatusMessages: true,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate checks field formats with ozzo-validation and then the cross-field
// rules guarded by sentinel errors. Catalogue checks run last so callers
// loading locales from another source can tolerate ErrLocalesRequired.
func (cfg Config) Validate() error {
	err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.Locales),
		validation.Field(&cfg.Domains),
		validation.Field(&cfg.Routing),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "fluent config: invalid configuration")
	}

	if cfg.Cache.Enabled {
		if cfg.Cache.TTL <= 0 {
			return ErrCacheTTLInvalid
		}
		if !cfg.Features.Database {
			return ErrDatabaseFeatureRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	if len(cfg.Locales) == 0 {
		return ErrLocalesRequired
	}
	if code := strings.TrimSpace(cfg.DefaultLocale); code != "" && !cfg.hasLocale(code) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleUnknown, code)
	}
	return nil
}

// LocaleDefinition converts the catalogue section into a registry definition.
func (cfg Config) LocaleDefinition() locales.Definition {
	def := locales.Definition{
		DefaultLocale: strings.TrimSpace(cfg.DefaultLocale),
		Locales:       make([]locales.LocaleDefinition, 0, len(cfg.Locales)),
		Domains:       make([]locales.DomainDefinition, 0, len(cfg.Domains)),
	}
	for _, lc := range cfg.Locales {
		def.Locales = append(def.Locales, locales.LocaleDefinition{
			Code:           lc.Code,
			Title:          lc.Title,
			URLSegment:     lc.URLSegment,
			LanguageCode:   lc.LanguageCode,
			LanguageNative: lc.LanguageNative,
			Domain:         lc.Domain,
			IsDefault:      lc.IsDefault,
			Fallbacks:      append([]string(nil), lc.Fallbacks...),
		})
	}
	for _, dc := range cfg.Domains {
		def.Domains = append(def.Domains, locales.DomainDefinition{
			Hostname:      dc.Hostname,
			DefaultLocale: dc.DefaultLocale,
		})
	}
	return def
}

// WithDefinition returns a copy of cfg whose catalogue section mirrors def.
func (cfg Config) WithDefinition(def locales.Definition) Config {
	cfg.DefaultLocale = def.DefaultLocale
	cfg.Locales = make([]LocaleConfig, 0, len(def.Locales))
	for _, ld := range def.Locales {
		cfg.Locales = append(cfg.Locales, LocaleConfig{
			Code:           ld.Code,
			Title:          ld.Title,
			URLSegment:     ld.URLSegment,
			LanguageCode:   ld.LanguageCode,
			LanguageNative: ld.LanguageNative,
			Domain:         ld.Domain,
			IsDefault:      ld.IsDefault,
			Fallbacks:      append([]string(nil), ld.Fallbacks...),
		})
	}
	cfg.Domains = make([]DomainConfig, 0, len(def.Domains))
	for _, dd := range def.Domains {
		cfg.Domains = append(cfg.Domains, DomainConfig{Hostname: dd.Hostname, DefaultLocale: dd.DefaultLocale})
	}
	return cfg
}

func (cfg Config) hasLocale(code string) bool {
	for _, lc := range cfg.Locales {
		if strings.EqualFold(strings.ReplaceAll(lc.Code, "-", "_"), strings.ReplaceAll(code, "-", "_")) {
			return true
		}
	}
	return false
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	return provider == "gologger"
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
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
