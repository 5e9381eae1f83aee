package locales

import (
	"slices"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func fixtureDefinition() Definition {
	return Definition{
		DefaultLocale: "en_NZ",
		Locales: []LocaleDefinition{
			{Code: "en_NZ", Title: "English (New Zealand)", URLSegment: "newzealand", LanguageNative: "English"},
			{Code: "de_DE", Title: "German", URLSegment: "german", Domain: "www.example.de"},
			{Code: "en_US", Title: "English (US)", URLSegment: "usa", Domain: "www.example.com", IsDefault: true},
			{Code: "es_ES", Title: "Spanish", Domain: "www.example.com", Fallbacks: []string{"en_US", "es_ES", "en_US", "en_NZ"}},
			{Code: "zh_CN", Title: "Chinese"},
		},
		Domains: []DomainDefinition{
			{Hostname: "www.example.de"},
			{Hostname: "WWW.Example.com"},
		},
	}
}

func mustRegistry(t *testing.T, def Definition) *Registry {
	t.Helper()
	registry, err := NewRegistry(def)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return registry
}

func TestRegistryLocaleLookup(t *testing.T) {
	registry := mustRegistry(t, fixtureDefinition())

	locale, err := registry.Locale("en-nz")
	if err != nil {
		t.Fatalf("Locale: %v", err)
	}
	if locale.Code != "en_NZ" {
		t.Fatalf("expected en_NZ, got %q", locale.Code)
	}
	if locale.RFC1766 != "en-nz" || locale.HrefLang() != "en-nz" {
		t.Fatalf("expected rfc1766 en-nz, got %q", locale.RFC1766)
	}
	if locale.LanguageCode != "en" {
		t.Fatalf("expected language code en, got %q", locale.LanguageCode)
	}
	if locale.LanguageNative != "English" {
		t.Fatalf("expected configured native name, got %q", locale.LanguageNative)
	}
	if locale.URLSegment != "newzealand" {
		t.Fatalf("expected url segment newzealand, got %q", locale.URLSegment)
	}
	if !locale.IsDefault || locale.HasDomain() {
		t.Fatalf("expected unbound global default, got %+v", locale)
	}

	spanish, err := registry.Locale("es_ES")
	if err != nil {
		t.Fatalf("Locale es_ES: %v", err)
	}
	if spanish.URLSegment != "es_ES" {
		t.Fatalf("expected url segment to default to code, got %q", spanish.URLSegment)
	}
	if spanish.Domain == nil || spanish.Domain.Hostname != "www.example.com" {
		t.Fatalf("expected normalised domain binding, got %+v", spanish.Domain)
	}
}

func TestRegistryLocaleNotFound(t *testing.T) {
	registry := mustRegistry(t, fixtureDefinition())

	_, err := registry.Locale("fr_FR")
	if err == nil {
		t.Fatal("expected error for unknown locale")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not found text code, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
	if registry.Has("fr_FR") {
		t.Fatal("expected Has to report false")
	}
}

func TestRegistryDomainDefaults(t *testing.T) {
	registry := mustRegistry(t, fixtureDefinition())

	german, _ := registry.Locale("de_DE")
	if !german.IsDefault {
		t.Fatal("expected single locale on domain to be implicit default")
	}

	us, _ := registry.DefaultLocaleForDomain("www.example.com")
	if us.Code != "en_US" {
		t.Fatalf("expected en_US default for example.com, got %q", us.Code)
	}

	if _, ok := registry.DefaultLocaleForDomain("www.example.org"); ok {
		t.Fatal("expected no default for unknown domain")
	}

	zh, _ := registry.Locale("zh_CN")
	if zh.IsDefault {
		t.Fatal("expected unbound non-global locale not to be default")
	}
}

func TestRegistryIsOnlyLocaleOnDomain(t *testing.T) {
	registry := mustRegistry(t, fixtureDefinition())

	cases := map[string]bool{
		"de_DE": true,
		"en_US": false,
		"es_ES": false,
		"zh_CN": false,
		"en_NZ": false,
		"fr_FR": false,
	}
	for code, want := range cases {
		if got := registry.IsOnlyLocaleOnDomain(code); got != want {
			t.Fatalf("IsOnlyLocaleOnDomain(%s) = %v, want %v", code, got, want)
		}
	}
}

func TestRegistryDomainModeAwareness(t *testing.T) {
	registry := mustRegistry(t, fixtureDefinition())

	if !registry.IsOnlyLocale("de_DE", true) {
		t.Fatal("expected de_DE alone on its domain in domain mode")
	}
	if registry.IsOnlyLocale("de_DE", false) {
		t.Fatal("expected de_DE to have siblings outside domain mode")
	}
	if !registry.IsDefault("en_US", true) {
		t.Fatal("expected en_US default in domain mode")
	}
	if registry.IsDefault("en_US", false) {
		t.Fatal("expected en_US not to be the global default")
	}
	if !registry.IsDefault("en_NZ", false) {
		t.Fatal("expected en_NZ global default")
	}
	if _, ok := registry.DomainFor("de_DE", false); ok {
		t.Fatal("expected no domain outside domain mode")
	}
	domain, ok := registry.DomainFor("de_DE", true)
	if !ok || domain.Hostname != "www.example.de" {
		t.Fatalf("expected www.example.de, got %+v", domain)
	}

	siblings := registry.SiblingLocales("es_ES", true)
	codes := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		codes = append(codes, sibling.Code)
	}
	if !slices.Equal(codes, []string{"en_US", "es_ES"}) {
		t.Fatalf("unexpected siblings %v", codes)
	}
	if got := len(registry.SiblingLocales("es_ES", false)); got != 5 {
		t.Fatalf("expected all 5 locales outside domain mode, got %d", got)
	}
}

func TestRegistryFallbackOrderIsSanitised(t *testing.T) {
	registry := mustRegistry(t, fixtureDefinition())

	got := registry.FallbackOrder("es_ES")
	if !slices.Equal(got, []string{"en_US", "en_NZ"}) {
		t.Fatalf("unexpected fallback chain %v", got)
	}
	got[0] = "mutated"
	if registry.FallbackOrder("es_ES")[0] != "en_US" {
		t.Fatal("expected fallback chain to be copied")
	}
	if chain := registry.FallbackOrder("de_DE"); len(chain) != 0 {
		t.Fatalf("expected empty chain by default, got %v", chain)
	}
}

func TestRegistryReturnsCopies(t *testing.T) {
	registry := mustRegistry(t, fixtureDefinition())

	locale, _ := registry.Locale("en_US")
	locale.Domain.Locales[0] = "xx_XX"

	again, _ := registry.Locale("en_US")
	if again.Domain.Locales[0] != "en_US" {
		t.Fatalf("expected registry domain to be isolated, got %v", again.Domain.Locales)
	}
}

func TestRegistryInvalidConfiguration(t *testing.T) {
	cases := []struct {
		name string
		def  Definition
	}{
		{
			name: "no locales",
			def:  Definition{},
		},
		{
			name: "unknown domain",
			def: Definition{Locales: []LocaleDefinition{
				{Code: "en_US", Domain: "www.example.com"},
			}},
		},
		{
			name: "two defaults on one domain",
			def: Definition{
				Locales: []LocaleDefinition{
					{Code: "en_US", Domain: "www.example.com", IsDefault: true},
					{Code: "es_ES", Domain: "www.example.com", IsDefault: true},
				},
				Domains: []DomainDefinition{{Hostname: "www.example.com"}},
			},
		},
		{
			name: "domain default conflicts with flag",
			def: Definition{
				Locales: []LocaleDefinition{
					{Code: "en_US", Domain: "www.example.com", IsDefault: true},
					{Code: "es_ES", Domain: "www.example.com"},
				},
				Domains: []DomainDefinition{{Hostname: "www.example.com", DefaultLocale: "es_ES"}},
			},
		},
		{
			name: "domain default not served",
			def: Definition{
				Locales: []LocaleDefinition{
					{Code: "en_US", Domain: "www.example.com"},
					{Code: "de_DE"},
				},
				Domains: []DomainDefinition{{Hostname: "www.example.com", DefaultLocale: "de_DE"}},
			},
		},
		{
			name: "empty domain",
			def: Definition{
				Locales: []LocaleDefinition{{Code: "en_US"}},
				Domains: []DomainDefinition{{Hostname: "www.example.com"}},
			},
		},
		{
			name: "unknown fallback",
			def: Definition{Locales: []LocaleDefinition{
				{Code: "en_US", Fallbacks: []string{"fr_FR"}},
			}},
		},
		{
			name: "unknown global default",
			def: Definition{
				DefaultLocale: "fr_FR",
				Locales:       []LocaleDefinition{{Code: "en_US"}},
			},
		},
		{
			name: "duplicate locale",
			def: Definition{Locales: []LocaleDefinition{
				{Code: "en_US"},
				{Code: "en-us"},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry(tc.def)
			if err == nil {
				t.Fatal("expected configuration error")
			}
			if !IsInvalidConfiguration(err) {
				t.Fatalf("expected invalid configuration, got %v", err)
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
		})
	}
}

func TestRegistryGlobalDefaultFallsBackToFirstLocale(t *testing.T) {
	registry := mustRegistry(t, Definition{Locales: []LocaleDefinition{
		{Code: "fr_FR"},
		{Code: "it_IT"},
	}})

	if got := registry.DefaultLocale().Code; got != "fr_FR" {
		t.Fatalf("expected first locale as default, got %q", got)
	}
	if registry.IsOnlyLocale("fr_FR", true) {
		t.Fatal("expected unbound locale to have siblings")
	}
}
