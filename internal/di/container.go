package di

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-fluent/internal/catalog"
	"github.com/goliatone/go-fluent/internal/commands"
	"github.com/goliatone/go-fluent/internal/commands/catalogcmd"
	"github.com/goliatone/go-fluent/internal/commands/settingscmd"
	"github.com/goliatone/go-fluent/internal/links"
	"github.com/goliatone/go-fluent/internal/logging"
	"github.com/goliatone/go-fluent/internal/logging/gologger"
	"github.com/goliatone/go-fluent/internal/records"
	"github.com/goliatone/go-fluent/internal/runtimeconfig"
	"github.com/goliatone/go-fluent/internal/settings"
	"github.com/goliatone/go-fluent/internal/storage"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

// Container wires the catalogue source, settings repository, logging and
// storage collaborators of the module.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB           *bun.DB
	catalogSource   catalog.Source
	settingsRepo    settings.Repository
	existenceLoader *storage.ExistenceLoader
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB enables the database backed collaborators.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider overrides the logger provider derived from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCatalogSource overrides where the locale catalogue is read from.
func WithCatalogSource(source catalog.Source) Option {
	return func(c *Container) {
		c.catalogSource = source
	}
}

// WithSettingsRepository overrides the settings repository.
func WithSettingsRepository(repo settings.Repository) Option {
	return func(c *Container) {
		c.settingsRepo = repo
	}
}

// NewContainer wires collaborators for cfg. Options override the defaults
// derived from the config; cfg itself is validated by the caller.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.configureCatalog()
	c.configureSettings()
	if c.databaseEnabled() {
		c.existenceLoader = storage.NewExistenceLoader(c.bunDB)
	}

	c.logger.Info("container.configured",
		"catalog_source", fmt.Sprintf("%T", c.catalogSource),
		"settings_repository", fmt.Sprintf("%T", c.settingsRepo),
		"database", c.bunDB != nil,
	)
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider == nil && c.Config.Features.Logger {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "")
	return nil
}

func (c *Container) configureCatalog() {
	if c.catalogSource != nil {
		return
	}
	if !c.databaseEnabled() {
		c.catalogSource = catalog.NewConfigSource(c.Config)
		return
	}

	opts := []catalog.DatabaseOption{
		catalog.WithDatabaseLogger(logging.CatalogLogger(c.loggerProvider)),
	}
	if c.Config.Cache.Enabled {
		opts = append(opts, catalog.WithCacheTTL(c.Config.Cache.TTL))
	}
	c.catalogSource = catalog.NewDatabaseSource(c.bunDB, opts...)
}

func (c *Container) configureSettings() {
	if c.settingsRepo != nil {
		return
	}
	if c.databaseEnabled() {
		c.settingsRepo = settings.NewBunRepository(c.bunDB)
		return
	}
	c.settingsRepo = settings.NewMemoryRepository()
}

// databaseEnabled reports whether storage backed collaborators are wired.
func (c *Container) databaseEnabled() bool {
	return c.bunDB != nil && c.Config.Features.Database
}

// EnsureSchema creates the catalogue, localisation and settings tables.
func (c *Container) EnsureSchema(ctx context.Context) error {
	if c.bunDB == nil {
		return nil
	}
	if err := storage.RegisterModels(ctx, c.bunDB); err != nil {
		return err
	}
	if repo, ok := c.settingsRepo.(*settings.BunRepository); ok {
		return repo.EnsureSchema(ctx)
	}
	return nil
}

// InvalidateCatalog drops cached catalogue rows when the source caches.
func (c *Container) InvalidateCatalog() {
	if invalidator, ok := c.catalogSource.(interface{ Invalidate() }); ok {
		invalidator.Invalidate()
	}
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the module-scoped logger for module.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

func (c *Container) CatalogSource() catalog.Source {
	return c.catalogSource
}

func (c *Container) SettingsRepository() settings.Repository {
	return c.settingsRepo
}

// ExistenceLoader is nil unless a database is wired and the database feature
// is enabled.
func (c *Container) ExistenceLoader() *storage.ExistenceLoader {
	return c.existenceLoader
}

// LinkOptions maps the routing config and live settings onto link options.
func (c *Container) LinkOptions(current settings.Settings) links.Options {
	routing := c.Config.Routing
	return links.Options{
		DisableDefaultPrefix: current.DisableDefaultPrefix,
		NestedURLs:           current.NestedURLs,
		QueryParam:           routing.QueryParam,
		HomeSegment:          routing.HomeSegment,
		BasePath:             routing.BasePath,
		Scheme:               routing.Scheme,
		BaseURL:              routing.BaseURL,
		Logger:               logging.LinksLogger(c.loggerProvider),
	}
}

func (c *Container) NewLinkResolver(catalogue links.Catalogue, current settings.Settings) *links.Resolver {
	return links.NewResolver(catalogue, c.LinkOptions(current))
}

func (c *Container) NewRecordResolver(catalogue records.Catalogue) *records.Resolver {
	return records.NewResolver(catalogue, records.WithLogger(logging.RecordsLogger(c.loggerProvider)))
}

func (c *Container) ReloadCatalogHandler(reloader catalogcmd.Reloader) *catalogcmd.ReloadCatalogHandler {
	return catalogcmd.NewReloadCatalogHandler(reloader, commands.CommandLogger(c.loggerProvider, "catalog"))
}

func (c *Container) UpdateSettingsHandler(defaults settings.Settings) *settingscmd.UpdateSettingsHandler {
	return settingscmd.NewUpdateSettingsHandler(c.settingsRepo, defaults, commands.CommandLogger(c.loggerProvider, "settings"))
}

func (c *Container) ResetSettingsHandler() *settingscmd.ResetSettingsHandler {
	return settingscmd.NewResetSettingsHandler(c.settingsRepo, commands.CommandLogger(c.loggerProvider, "settings"))
}
