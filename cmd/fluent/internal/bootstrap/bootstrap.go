package bootstrap

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	fluent "github.com/goliatone/go-fluent"
	"github.com/goliatone/go-fluent/internal/catalog"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

// Options captures configuration for CLI bootstraps.
type Options struct {
	ConfigPath     string
	LoggerProvider interfaces.LoggerProvider
}

// BuildModule reads the catalogue file, when given, over the default config
// and constructs a module from it.
func BuildModule(opts Options) (*fluent.Module, error) {
	cfg := fluent.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := catalog.LoadFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("load catalogue %s: %w", path, err)
		}
		cfg = loaded
	}

	var moduleOpts []fluent.Option
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, fluent.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := fluent.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise fluent module: %w", err)
	}
	return module, nil
}

// NodeOptions describes a page node given on the command line.
type NodeOptions struct {
	ID        string
	ParentID  string
	Segment   string
	Root      bool
	Transient bool
}

// BuildNode converts opts into a page node. Persisted nodes without an
// explicit id get a random one.
func BuildNode(opts NodeOptions) (fluent.PageNode, error) {
	id, err := ParseUUID(opts.ID)
	if err != nil {
		return fluent.PageNode{}, fmt.Errorf("parse id: %w", err)
	}
	if id == uuid.Nil && !opts.Transient {
		id = uuid.New()
	}
	if opts.Transient {
		id = uuid.Nil
	}

	parent, err := ParseUUIDPointer(opts.ParentID)
	if err != nil {
		return fluent.PageNode{}, fmt.Errorf("parse parent: %w", err)
	}

	return fluent.PageNode{
		ID:         id,
		ParentID:   parent,
		URLSegment: strings.TrimSpace(opts.Segment),
		IsRoot:     opts.Root,
	}, nil
}

// SplitLocales parses a comma separated locale list into a trimmed slice.
func SplitLocales(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	locales := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			locales = append(locales, trimmed)
		}
	}
	return locales
}

// ParseUUID converts the supplied string into a UUID, returning uuid.Nil when the input is empty.
func ParseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(trimmed)
}

// ParseUUIDPointer returns a pointer to the parsed UUID, or nil when the value is empty.
func ParseUUIDPointer(value string) (*uuid.UUID, error) {
	id, err := ParseUUID(value)
	if err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, nil
	}
	return &id, nil
}
