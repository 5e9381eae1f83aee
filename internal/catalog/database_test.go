package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-fluent/internal/locales"
	"github.com/goliatone/go-fluent/internal/storage"
	"github.com/goliatone/go-fluent/pkg/testsupport"
)

func seededDefinition() locales.Definition {
	return locales.Definition{
		DefaultLocale: "en_NZ",
		Locales: []locales.LocaleDefinition{
			{Code: "en_NZ", URLSegment: "newzealand"},
			{Code: "de_DE", URLSegment: "german", Domain: "www.example.de"},
			{Code: "en_US", URLSegment: "usa", Domain: "www.example.com", IsDefault: true},
			{Code: "es_ES", Domain: "www.example.com", Fallbacks: []string{"en_US"}},
		},
		Domains: []locales.DomainDefinition{
			{Hostname: "www.example.de"},
			{Hostname: "www.example.com"},
		},
	}
}

func TestDatabaseSourceRoundTrip(t *testing.T) {
	db := testsupport.NewBunDB(t, (*storage.LocaleRecord)(nil), (*storage.DomainRecord)(nil))
	source := NewDatabaseSource(db)
	ctx := context.Background()

	if err := source.Seed(ctx, seededDefinition()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	def, err := source.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	codes := make([]string, 0, len(def.Locales))
	for _, ld := range def.Locales {
		codes = append(codes, ld.Code)
	}
	if len(codes) != 4 || codes[0] != "en_NZ" || codes[3] != "es_ES" {
		t.Fatalf("expected position order, got %v", codes)
	}
	if def.DefaultLocale != "en_NZ" {
		t.Fatalf("expected global default en_NZ, got %q", def.DefaultLocale)
	}
	if len(def.Domains) != 2 || def.Domains[0].Hostname != "www.example.de" {
		t.Fatalf("unexpected domains %+v", def.Domains)
	}

	registry, err := locales.NewRegistry(def)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if !registry.IsOnlyLocaleOnDomain("de_DE") {
		t.Fatal("expected de_DE alone on www.example.de")
	}
	if got := registry.FallbackOrder("es_ES"); len(got) != 1 || got[0] != "en_US" {
		t.Fatalf("unexpected fallback chain %v", got)
	}
}

func TestDatabaseSourceKeepsDomainBoundGlobalDefault(t *testing.T) {
	db := testsupport.NewBunDB(t, (*storage.LocaleRecord)(nil), (*storage.DomainRecord)(nil))
	source := NewDatabaseSource(db)
	ctx := context.Background()

	seeded := seededDefinition()
	seeded.DefaultLocale = "es_ES"
	if err := source.Seed(ctx, seeded); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	def, err := source.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if def.DefaultLocale != "es_ES" {
		t.Fatalf("expected global default es_ES, got %q", def.DefaultLocale)
	}

	registry, err := locales.NewRegistry(def)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if got := registry.DefaultLocale().Code; got != "es_ES" {
		t.Fatalf("expected registry default es_ES, got %s", got)
	}
	if got := registry.Locales()[0]; got.Code != "en_NZ" || got.IsDefault {
		t.Fatalf("expected en_NZ to lose the default flag, got %+v", got)
	}
}

func TestDatabaseSourceInvalidateRefreshesCache(t *testing.T) {
	db := testsupport.NewBunDB(t, (*storage.LocaleRecord)(nil), (*storage.DomainRecord)(nil))
	source := NewDatabaseSource(db, WithCacheTTL(time.Minute))
	ctx := context.Background()

	if err := source.Seed(ctx, locales.Definition{Locales: []locales.LocaleDefinition{{Code: "en_US"}}}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if def, err := source.Load(ctx); err != nil || len(def.Locales) != 1 {
		t.Fatalf("Load: %v %+v", err, def)
	}

	_, err := storage.NewLocaleRepository(db).Create(ctx, &storage.LocaleRecord{
		ID:       uuid.New(),
		Code:     "fr_FR",
		Position: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	source.Invalidate()
	def, err := source.Load(ctx)
	if err != nil {
		t.Fatalf("Load after invalidate: %v", err)
	}
	if len(def.Locales) != 2 || def.Locales[1].Code != "fr_FR" {
		t.Fatalf("expected refreshed catalogue, got %+v", def.Locales)
	}
}
