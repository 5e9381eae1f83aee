package di

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-fluent/internal/catalog"
	"github.com/goliatone/go-fluent/internal/runtimeconfig"
	"github.com/goliatone/go-fluent/internal/settings"
	"github.com/goliatone/go-fluent/pkg/testsupport"
)

func TestContainerDefaultsToInMemoryCollaborators(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Locales = []runtimeconfig.LocaleConfig{{Code: "en_US"}}

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := container.CatalogSource().(*catalog.ConfigSource); !ok {
		t.Fatalf("expected config source, got %T", container.CatalogSource())
	}
	if _, ok := container.SettingsRepository().(*settings.MemoryRepository); !ok {
		t.Fatalf("expected memory settings, got %T", container.SettingsRepository())
	}
	if container.ExistenceLoader() != nil {
		t.Fatal("expected no existence loader without database")
	}
	if err := container.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema without database: %v", err)
	}

	def, err := container.CatalogSource().Load(context.Background())
	if err != nil || len(def.Locales) != 1 {
		t.Fatalf("unexpected catalogue %+v, %v", def, err)
	}
}

func TestContainerWiresDatabaseCollaborators(t *testing.T) {
	db := testsupport.NewBunDB(t)
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Database = true
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = time.Minute

	container, err := NewContainer(cfg, WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	source, ok := container.CatalogSource().(*catalog.DatabaseSource)
	if !ok {
		t.Fatalf("expected database source, got %T", container.CatalogSource())
	}
	if _, ok := container.SettingsRepository().(*settings.BunRepository); !ok {
		t.Fatalf("expected bun settings, got %T", container.SettingsRepository())
	}
	if container.ExistenceLoader() == nil {
		t.Fatal("expected existence loader")
	}

	ctx := context.Background()
	if err := container.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	container.InvalidateCatalog()

	def, err := source.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(def.Locales) != 0 {
		t.Fatalf("expected empty catalogue, got %+v", def.Locales)
	}

	if _, err := container.SettingsRepository().Upsert(ctx, settings.Settings{NestedURLs: true}); err != nil {
		t.Fatalf("Upsert settings: %v", err)
	}
}

func TestContainerIgnoresDatabaseWhenFeatureDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Locales = []runtimeconfig.LocaleConfig{{Code: "en_US"}}
	cfg.Features.Database = false

	container, err := NewContainer(cfg, WithBunDB(testsupport.NewBunDB(t)))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if container.ExistenceLoader() != nil {
		t.Fatal("expected no existence loader with the database feature disabled")
	}
	if _, ok := container.CatalogSource().(*catalog.ConfigSource); !ok {
		t.Fatalf("expected config source, got %T", container.CatalogSource())
	}
	if _, ok := container.SettingsRepository().(*settings.MemoryRepository); !ok {
		t.Fatalf("expected memory settings, got %T", container.SettingsRepository())
	}
}

func TestContainerHonoursOverrides(t *testing.T) {
	repo := settings.NewMemoryRepository()
	source := catalog.NewConfigSource(runtimeconfig.DefaultConfig())

	container, err := NewContainer(runtimeconfig.DefaultConfig(),
		WithSettingsRepository(repo),
		WithCatalogSource(source),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if container.SettingsRepository() != repo {
		t.Fatal("expected settings override")
	}
	if container.CatalogSource() != source {
		t.Fatal("expected catalogue override")
	}
}

func TestContainerLinkOptions(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Routing.BasePath = "/site/"
	cfg.Routing.BaseURL = "https://example.org/"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	opts := container.LinkOptions(settings.Settings{DisableDefaultPrefix: true})
	if !opts.DisableDefaultPrefix || opts.NestedURLs {
		t.Fatalf("expected live settings to drive switches, got %+v", opts)
	}
	if opts.BasePath != "/site/" || opts.BaseURL != "https://example.org/" || opts.QueryParam != "l" {
		t.Fatalf("unexpected routing options %+v", opts)
	}
	if opts.Logger == nil {
		t.Fatal("expected links logger")
	}
}
