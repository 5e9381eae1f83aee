package fluent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/goliatone/go-fluent/internal/catalog"
	"github.com/goliatone/go-fluent/internal/commands/catalogcmd"
	"github.com/goliatone/go-fluent/internal/commands/settingscmd"
	"github.com/goliatone/go-fluent/internal/di"
	"github.com/goliatone/go-fluent/internal/flags"
	"github.com/goliatone/go-fluent/internal/links"
	"github.com/goliatone/go-fluent/internal/locales"
	"github.com/goliatone/go-fluent/internal/logging"
	"github.com/goliatone/go-fluent/internal/records"
	"github.com/goliatone/go-fluent/internal/settings"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

// Module represents the top level localisation runtime facade.
type Module struct {
	container *di.Container
	logger    interfaces.Logger
	settings  *settings.State
	flags     *flags.Computer

	reloadMu sync.Mutex
	current  atomic.Pointer[snapshot]

	reloadHandler *catalogcmd.ReloadCatalogHandler
	updateHandler *settingscmd.UpdateSettingsHandler
	resetHandler  *settingscmd.ResetSettingsHandler
}

// snapshot groups the resolvers built from one catalogue load.
type snapshot struct {
	registry *locales.Registry
	links    *links.Resolver
	records  *records.Resolver
}

// New constructs a module using the provided configuration and optional DI
// overrides, then loads the locale catalogue and the persisted settings.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := validateConfig(cfg, container.CatalogSource()); err != nil {
		return nil, err
	}

	m := &Module{
		container: container,
		logger:    container.Logger(""),
		settings:  settings.NewState(settings.FromConfig(cfg)),
		flags:     flags.NewComputer(nil),
	}
	m.reloadHandler = container.ReloadCatalogHandler(m)
	m.updateHandler = container.UpdateSettingsHandler(settings.FromConfig(cfg))
	m.resetHandler = container.ResetSettingsHandler()

	ctx := context.Background()
	if err := m.bootstrap(ctx); err != nil {
		return nil, err
	}
	if err := m.settings.Load(ctx, container.SettingsRepository()); err != nil {
		return nil, err
	}
	if err := m.Reload(ctx); err != nil {
		return nil, err
	}
	m.settings.OnChange(m.rebuildLinks)
	return m, nil
}

// validateConfig tolerates an empty catalogue section when locales come from
// a source other than the config itself.
func validateConfig(cfg Config, source catalog.Source) error {
	err := cfg.Validate()
	if err == nil {
		return nil
	}
	if _, fromConfig := source.(*catalog.ConfigSource); !fromConfig && errors.Is(err, ErrLocalesRequired) {
		return nil
	}
	return err
}

// bootstrap creates the storage tables and seeds an empty database catalogue
// from the configured locales.
func (m *Module) bootstrap(ctx context.Context) error {
	cfg := m.container.Config
	if m.container.BunDB() == nil || !cfg.Features.Database {
		return nil
	}
	if err := m.container.EnsureSchema(ctx); err != nil {
		return err
	}

	source, ok := m.container.CatalogSource().(*catalog.DatabaseSource)
	if !ok || len(cfg.Locales) == 0 {
		return nil
	}
	def, err := source.Load(ctx)
	if err != nil {
		return err
	}
	if len(def.Locales) > 0 {
		return nil
	}
	if err := source.Seed(ctx, cfg.LocaleDefinition()); err != nil {
		return err
	}
	m.logger.Info("catalog.seeded", "locales", len(cfg.Locales), "domains", len(cfg.Domains))
	return nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Reload re-reads the catalogue and swaps the resolvers. Calls in flight keep
// the snapshot they started with.
func (m *Module) Reload(ctx context.Context) error {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	m.container.InvalidateCatalog()
	def, err := m.container.CatalogSource().Load(ctx)
	if err != nil {
		return err
	}
	registry, err := locales.NewRegistry(def)
	if err != nil {
		return err
	}

	m.current.Store(&snapshot{
		registry: registry,
		links:    m.container.NewLinkResolver(registry, m.settings.Snapshot()),
		records:  m.container.NewRecordResolver(registry),
	})
	m.logger.Info("catalog.reloaded",
		"locales", len(def.Locales),
		"domains", len(def.Domains),
		"default_locale", registry.DefaultLocale().Code,
	)
	return nil
}

// ReloadCatalog runs the reload command, which validates the message and
// logs the outcome before calling Reload.
func (m *Module) ReloadCatalog(ctx context.Context, cmd ReloadCatalogCommand) error {
	return m.reloadHandler.Execute(ctx, cmd)
}

// rebuildLinks reads the settings under reloadMu so the last rebuild always
// sees the latest applied value.
func (m *Module) rebuildLinks(settings.Settings) {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	snap := m.current.Load()
	if snap == nil {
		return
	}
	next := *snap
	next.links = m.container.NewLinkResolver(snap.registry, m.settings.Snapshot())
	m.current.Store(&next)
}

func (m *Module) snapshot() *snapshot {
	return m.current.Load()
}

// Settings returns the runtime settings currently applied.
func (m *Module) Settings() Settings {
	return m.settings.Snapshot()
}

// UpdateSettings persists patch and applies the result.
func (m *Module) UpdateSettings(ctx context.Context, patch SettingsPatch) error {
	if err := m.updateHandler.Execute(ctx, patch); err != nil {
		return err
	}
	return m.settings.Load(ctx, m.container.SettingsRepository())
}

// ResetSettings deletes the persisted settings and restores the configured
// defaults.
func (m *Module) ResetSettings(ctx context.Context) error {
	if err := m.resetHandler.Execute(ctx, settingscmd.ResetSettingsCommand{}); err != nil {
		return err
	}
	m.settings.Reset()
	return nil
}

// Watch applies settings changes published by the settings repository until
// ctx is cancelled.
func (m *Module) Watch(ctx context.Context) error {
	return m.settings.Watch(ctx, m.container.SettingsRepository(), logging.SettingsLogger(m.container.LoggerProvider()))
}

// Locale returns the catalogue entry for code.
func (m *Module) Locale(code string) (Locale, error) {
	return m.snapshot().registry.Locale(code)
}

// DefaultLocale returns the global default locale.
func (m *Module) DefaultLocale() Locale {
	return m.snapshot().registry.DefaultLocale()
}

// CatalogueLocales returns every registered locale in catalogue order.
func (m *Module) CatalogueLocales() []Locale {
	return m.snapshot().registry.Locales()
}

// Domains returns every registered domain in catalogue order.
func (m *Module) Domains() []Domain {
	return m.snapshot().registry.Domains()
}

// FallbackOrder returns the fallback chain configured for code.
func (m *Module) FallbackOrder(code string) []string {
	return m.snapshot().registry.FallbackOrder(code)
}

// RecordLocale resolves the content state of nodeID in code, or in the
// stack's current locale when code is empty.
func (m *Module) RecordLocale(stack *Stack, nodeID uuid.UUID, code string, provider ExistenceProvider) (RecordLocale, error) {
	snap := m.snapshot()
	code = localeOrCurrent(code, stack.Current())
	if code == "" {
		code = snap.registry.DefaultLocale().Code
	}
	return snap.records.Resolve(orEmptyIndex(provider), nodeID, code)
}

// RecordLocales resolves the content state of nodeID in every locale.
func (m *Module) RecordLocales(nodeID uuid.UUID, provider ExistenceProvider) []RecordLocale {
	return m.snapshot().records.ResolveAll(orEmptyIndex(provider), nodeID)
}

// ComputeStatusFlags derives the status flags of nodeID from raw. Without an
// active locale raw is returned as a copy.
func (m *Module) ComputeStatusFlags(stack *Stack, nodeID uuid.UUID, code string, raw Flags, source ContentStateSource) (Flags, error) {
	ec := stack.Current()
	if !ec.HasLocale() {
		return raw.Clone(), nil
	}
	if source == nil {
		source = NewExistenceIndex()
	}

	record, err := m.snapshot().records.Resolve(source, nodeID, localeOrCurrent(code, ec))
	if err != nil {
		return nil, err
	}
	return m.flags.Compute(flags.Input{
		Record:               record,
		HasAnyLocaleInstance: source.HasAnyLocaleInstance(nodeID),
		Context:              ec,
	}, raw), nil
}

// StatusMessage returns the editor notice for record under the current
// publishing settings.
func (m *Module) StatusMessage(record RecordLocale) (StatusMessage, bool) {
	return flags.StatusMessage(record, m.settings.Snapshot().Policy())
}

// RestoreAvailable reports whether an archived localisation can be restored.
func (m *Module) RestoreAvailable(record RecordLocale) bool {
	return flags.RestoreAvailable(record)
}

// Visible reports whether record may be shown in the stack's current context.
func (m *Module) Visible(stack *Stack, record RecordLocale) bool {
	return flags.Visible(record, stack.Current(), m.settings.Snapshot().Policy())
}

func localeOrCurrent(code string, ec ExecutionContext) string {
	if code = strings.TrimSpace(code); code != "" {
		return code
	}
	return strings.TrimSpace(ec.Locale)
}

func orEmptyIndex(provider ExistenceProvider) ExistenceProvider {
	if provider == nil {
		return NewExistenceIndex()
	}
	return provider
}
