package settings

import (
	"context"
	"errors"

	"github.com/goliatone/go-fluent/internal/flags"
	"github.com/goliatone/go-fluent/internal/runtimeconfig"
)

// ErrSettingsNotFound indicates that no runtime settings were persisted yet.
var ErrSettingsNotFound = errors.New("settings: localisation settings not found")

// Settings are the localisation switches editors may change at runtime
// without reloading the catalogue.
type Settings struct {
	DisableDefaultPrefix    bool `json:"disable_default_prefix"`
	NestedURLs              bool `json:"nested_urls"`
	FrontendPublishRequired bool `json:"frontend_publish_required"`
	CMSLocalisationRequired bool `json:"cms_localisation_required"`
	StatusMessages          bool `json:"status_messages"`
}

// FromConfig seeds settings from the static runtime configuration.
func FromConfig(cfg runtimeconfig.Config) Settings {
	return Settings{
		DisableDefaultPrefix:    cfg.Routing.DisableDefaultPrefix,
		NestedURLs:              cfg.Routing.NestedURLs,
		FrontendPublishRequired: cfg.Publishing.FrontendPublishRequired,
		CMSLocalisationRequired: cfg.Publishing.CMSLocalisationRequired,
		StatusMessages:          cfg.Publishing.StatusMessages,
	}
}

// Policy returns the publishing rules consumed by the flag helpers.
func (s Settings) Policy() flags.Policy {
	return flags.Policy{
		FrontendPublishRequired: s.FrontendPublishRequired,
		CMSLocalisationRequired: s.CMSLocalisationRequired,
		StatusMessages:          s.StatusMessages,
	}
}

// Repository persists settings and emits change notifications.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, settings Settings) (Settings, error)
	Delete(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ChangeType enumerates settings change events.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports a settings mutation.
type ChangeEvent struct {
	Type     ChangeType
	Settings Settings
}
