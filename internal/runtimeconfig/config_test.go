package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-fluent/internal/runtimeconfig"
)

func validConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = "en_NZ"
	cfg.Locales = []runtimeconfig.LocaleConfig{
		{Code: "en_NZ", URLSegment: "newzealand"},
		{Code: "de_DE", URLSegment: "german", Domain: "www.example.de", Fallbacks: []string{"en_NZ"}},
	}
	cfg.Domains = []runtimeconfig.DomainConfig{{Hostname: "www.example.de"}}
	return cfg
}

func TestDefaultConfigRoutingDefaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if !cfg.Routing.NestedURLs || cfg.Routing.QueryParam != "l" || cfg.Routing.HomeSegment != "home" {
		t.Fatalf("unexpected routing defaults %+v", cfg.Routing)
	}
	if !cfg.Publishing.StatusMessages {
		t.Fatal("expected status messages enabled by default")
	}
}

func TestConfigValidate_AcceptsCatalogue(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresLocales(t *testing.T) {
	err := runtimeconfig.DefaultConfig().Validate()
	if !errors.Is(err, runtimeconfig.ErrLocalesRequired) {
		t.Fatalf("expected ErrLocalesRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownDefaultLocale(t *testing.T) {
	cfg := validConfig()
	cfg.DefaultLocale = "fr_FR"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrDefaultLocaleUnknown) {
		t.Fatalf("expected ErrDefaultLocaleUnknown, got %v", err)
	}
}

func TestConfigValidate_FieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		field  string
	}{
		{
			name:   "locale code format",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Locales[0].Code = "not a code" },
			field:  "locales",
		},
		{
			name:   "domain hostname",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Domains[0].Hostname = "" },
			field:  "domains",
		},
		{
			name:   "query param",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Routing.QueryParam = "" },
			field:  "routing",
		},
		{
			name:   "scheme",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Routing.Scheme = "ftp" },
			field:  "routing",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
			var ge *goerrors.Error
			if !errors.As(err, &ge) || len(ge.AllValidationErrors()) == 0 {
				t.Fatalf("expected field errors, got %v", err)
			}
		})
	}
}

func TestConfigValidate_CacheRules(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = 0
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}

	cfg.Cache.TTL = time.Minute
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDatabaseFeatureRequired) {
		t.Fatalf("expected ErrDatabaseFeatureRequired, got %v", err)
	}

	cfg.Features.Database = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid cache config, got %v", err)
	}
}

func TestConfigValidate_LoggingRules(t *testing.T) {
	cases := []struct {
		name    string
		logging runtimeconfig.LoggingConfig
		want    error
	}{
		{"missing provider", runtimeconfig.LoggingConfig{}, runtimeconfig.ErrLoggingProviderRequired},
		{"unknown provider", runtimeconfig.LoggingConfig{Provider: "syslog"}, runtimeconfig.ErrLoggingProviderUnknown},
		{"bad level", runtimeconfig.LoggingConfig{Provider: "gologger", Level: "loud"}, runtimeconfig.ErrLoggingLevelInvalid},
		{"bad format", runtimeconfig.LoggingConfig{Provider: "gologger", Format: "xml"}, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Features.Logger = true
			cfg.Logging = tc.logging

			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLocaleDefinitionRoundTrip(t *testing.T) {
	cfg := validConfig()
	def := cfg.LocaleDefinition()

	if def.DefaultLocale != "en_NZ" || len(def.Locales) != 2 || len(def.Domains) != 1 {
		t.Fatalf("unexpected definition %+v", def)
	}
	if def.Locales[1].Domain != "www.example.de" || def.Locales[1].Fallbacks[0] != "en_NZ" {
		t.Fatalf("expected locale fields copied, got %+v", def.Locales[1])
	}

	def.Locales[1].Fallbacks[0] = "mutated"
	if cfg.Locales[1].Fallbacks[0] != "en_NZ" {
		t.Fatal("expected fallbacks to be copied")
	}

	rebuilt := runtimeconfig.DefaultConfig().WithDefinition(cfg.LocaleDefinition())
	if len(rebuilt.Locales) != 2 || rebuilt.Locales[0].URLSegment != "newzealand" {
		t.Fatalf("expected catalogue restored, got %+v", rebuilt.Locales)
	}
}
