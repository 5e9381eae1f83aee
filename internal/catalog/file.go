package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fluent/internal/locales"
	"github.com/goliatone/go-fluent/internal/runtimeconfig"
)

// Format names a catalogue file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the encoding from the file extension. Unknown
// extensions are read as YAML, which also accepts JSON documents.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// LoadFile reads a catalogue file and merges it over base.
func LoadFile(path string, base runtimeconfig.Config) (runtimeconfig.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return runtimeconfig.Config{}, goerrors.Wrap(err, goerrors.CategoryNotFound, "catalog: read file").
			WithTextCode(TextCodeCatalogReadFail).
			WithMetadata(map[string]any{"path": path})
	}
	return Decode(raw, FormatFromPath(path), base)
}

// Decode parses raw as a catalogue document, validates it against the
// embedded schema and merges it over base. Sections absent from the document
// keep the values of base.
func Decode(raw []byte, format Format, base runtimeconfig.Config) (runtimeconfig.Config, error) {
	doc, err := decodeGeneric(raw, format)
	if err != nil {
		return runtimeconfig.Config{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "catalog: decode document").
			WithTextCode(TextCodeCatalogInvalid)
	}
	if err := validateDocument(doc); err != nil {
		return runtimeconfig.Config{}, err
	}

	ttl, err := extractTTL(doc)
	if err != nil {
		return runtimeconfig.Config{}, goerrors.Wrap(err, goerrors.CategoryValidation, "catalog: invalid cache ttl").
			WithTextCode(TextCodeCatalogInvalid)
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return runtimeconfig.Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "catalog: encode document").
			WithTextCode(TextCodeCatalogInvalid)
	}

	cfg := base
	cfg.Locales = nil
	cfg.Domains = nil
	if err := json.Unmarshal(encoded, &cfg); err != nil {
		return runtimeconfig.Config{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "catalog: decode configuration").
			WithTextCode(TextCodeCatalogInvalid)
	}
	if ttl > 0 {
		cfg.Cache.TTL = ttl
	}
	return cfg, nil
}

// decodeGeneric returns the document as JSON values so the schema validator
// sees numbers and maps the way a JSON decoder would produce them.
func decodeGeneric(raw []byte, format Format) (any, error) {
	var doc any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("empty document")
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var normalized any
	if err := decoder.Decode(&normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// extractTTL removes cache.ttl from doc and returns it as a duration. String
// values use time.ParseDuration; integers are seconds.
func extractTTL(doc any) (time.Duration, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return 0, nil
	}
	section, ok := root["cache"].(map[string]any)
	if !ok {
		return 0, nil
	}
	value, ok := section["ttl"]
	if !ok {
		return 0, nil
	}
	delete(section, "ttl")

	switch typed := value.(type) {
	case string:
		return time.ParseDuration(strings.TrimSpace(typed))
	case json.Number:
		seconds, err := typed.Int64()
		if err != nil {
			return 0, err
		}
		return time.Duration(seconds) * time.Second, nil
	default:
		return 0, fmt.Errorf("unsupported ttl %v", value)
	}
}

// FileSource reloads the catalogue from a file on every Load.
type FileSource struct {
	path string
	base runtimeconfig.Config
}

func NewFileSource(path string, base runtimeconfig.Config) *FileSource {
	return &FileSource{path: path, base: base}
}

func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) Load(ctx context.Context) (locales.Definition, error) {
	if err := ctx.Err(); err != nil {
		return locales.Definition{}, err
	}
	cfg, err := LoadFile(s.path, s.base)
	if err != nil {
		return locales.Definition{}, err
	}
	return cfg.LocaleDefinition(), nil
}
