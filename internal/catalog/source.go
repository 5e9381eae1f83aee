package catalog

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-fluent/internal/locales"
	"github.com/goliatone/go-fluent/internal/runtimeconfig"
)

const (
	TextCodeCatalogInvalid  = "CATALOG_INVALID"
	TextCodeCatalogSchema   = "CATALOG_SCHEMA_INVALID"
	TextCodeCatalogReadFail = "CATALOG_READ_FAILED"
)

// Source yields the locale catalogue used to build a registry.
type Source interface {
	Load(ctx context.Context) (locales.Definition, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (locales.Definition, error)

func (f SourceFunc) Load(ctx context.Context) (locales.Definition, error) {
	return f(ctx)
}

// ConfigSource serves the catalogue section of a runtime configuration.
type ConfigSource struct {
	cfg runtimeconfig.Config
}

func NewConfigSource(cfg runtimeconfig.Config) *ConfigSource {
	return &ConfigSource{cfg: cfg}
}

func (s *ConfigSource) Load(ctx context.Context) (locales.Definition, error) {
	if err := ctx.Err(); err != nil {
		return locales.Definition{}, err
	}
	return s.cfg.LocaleDefinition(), nil
}

// IsSchemaError reports whether err was raised by catalogue schema validation.
func IsSchemaError(err error) bool {
	var richErr *goerrors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TextCodeCatalogSchema
}
