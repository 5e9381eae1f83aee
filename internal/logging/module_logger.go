package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-fluent/pkg/interfaces"
)

const (
	rootModule     = "fluent"
	linksModule    = "fluent.links"
	recordsModule  = "fluent.records"
	catalogModule  = "fluent.catalog"
	settingsModule = "fluent.settings"
	commandsModule = "fluent.commands"
)

const (
	fieldLocale   = "locale"
	fieldHostname = "hostname"
	fieldNodeID   = "node_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// LinksLogger returns the logger used by the link resolver.
func LinksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, linksModule)
}

// RecordsLogger returns the logger used by the content state resolver.
func RecordsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, recordsModule)
}

// CatalogLogger returns the logger used by catalogue loaders.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// SettingsLogger returns the logger used by the settings repositories.
func SettingsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, settingsModule)
}

// CommandsLogger returns the logger used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithLocaleContext enriches logger with the locale, hostname and node being
// resolved. Empty values are ignored.
func WithLocaleContext(logger interfaces.Logger, locale, hostname, nodeID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(hostname); trimmed != "" {
		fields[fieldHostname] = trimmed
	}
	if trimmed := strings.TrimSpace(nodeID); trimmed != "" {
		fields[fieldNodeID] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
