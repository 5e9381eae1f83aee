package fluent

import "github.com/goliatone/go-fluent/internal/di"

// Option customises the collaborators wired by New.
type Option = di.Option

var (
	WithBunDB              = di.WithBunDB
	WithLoggerProvider     = di.WithLoggerProvider
	WithCatalogSource      = di.WithCatalogSource
	WithSettingsRepository = di.WithSettingsRepository
)
