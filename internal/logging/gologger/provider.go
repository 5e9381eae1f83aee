package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-fluent/internal/logging"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

// Config mirrors the logging section of the runtime config.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider hands out go-logger children named after the resolver modules
// (fluent.links, fluent.records, fluent.catalog and so on).
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the root logger. Unknown formats are a validation
// error; unknown levels keep the go-logger default.
func NewProvider(cfg Config) (*Provider, error) {
	options, err := optionsFor(cfg)
	if err != nil {
		return nil, err
	}

	root := glog.NewLogger(options...)
	if focus := normalizeFocus(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

func optionsFor(cfg Config) ([]glog.Option, error) {
	format, err := formatOption(cfg.Format)
	if err != nil {
		return nil, err
	}

	options := []glog.Option{format}
	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}
	return options, nil
}

func formatOption(format string) (glog.Option, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return glog.WithLoggerTypeJSON(), nil
	case "console":
		return glog.WithLoggerTypeConsole(), nil
	case "pretty":
		return glog.WithLoggerTypePretty(), nil
	}
	return nil, goerrors.New(fmt.Sprintf("logging: unsupported go-logger format %q", format), goerrors.CategoryValidation).
		WithTextCode("LOGGER_FORMAT_UNSUPPORTED")
}

// GetLogger returns the child logger for a module name. The empty name maps
// to the root logger.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name != "" {
		return newModuleLogger(p.root.GetLogger(name))
	}
	return newModuleLogger(p.root)
}

// moduleLogger exposes a go-logger logger through interfaces.Logger and
// interfaces.FieldsLogger.
type moduleLogger struct {
	inner glog.Logger
}

func newModuleLogger(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &moduleLogger{inner: inner}
}

func (l *moduleLogger) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *moduleLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *moduleLogger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *moduleLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *moduleLogger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *moduleLogger) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

// WithFields attaches locale, hostname and node fields. Loggers without
// native field support receive them as sorted key/value pairs.
func (l *moduleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if inner, ok := l.inner.(glog.FieldsLogger); ok {
		return newModuleLogger(inner.WithFields(maps.Clone(fields)))
	}
	if inner, ok := l.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return newModuleLogger(inner.With(fieldArgs(fields)...))
	}
	return l
}

func (l *moduleLogger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return newModuleLogger(l.inner.WithContext(ctx))
}

func fieldArgs(fields map[string]any) []any {
	args := make([]any, 0, len(fields)*2)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		args = append(args, key, fields[key])
	}
	return args
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

func normalizeLevel(level string) string {
	return levels[strings.ToLower(strings.TrimSpace(level))]
}

func normalizeFocus(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
