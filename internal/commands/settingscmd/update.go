package settingscmd

import (
	"context"
	"errors"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-fluent/internal/commands"
	"github.com/goliatone/go-fluent/internal/settings"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

const (
	updateSettingsMessageType = "fluent.settings.update"
	resetSettingsMessageType  = "fluent.settings.reset"
)

// UpdateSettingsCommand patches the persisted localisation settings. Nil
// fields keep their current value.
type UpdateSettingsCommand struct {
	DisableDefaultPrefix    *bool `json:"disable_default_prefix,omitempty"`
	NestedURLs              *bool `json:"nested_urls,omitempty"`
	FrontendPublishRequired *bool `json:"frontend_publish_required,omitempty"`
	CMSLocalisationRequired *bool `json:"cms_localisation_required,omitempty"`
	StatusMessages          *bool `json:"status_messages,omitempty"`
}

// Type implements command.Message.
func (UpdateSettingsCommand) Type() string { return updateSettingsMessageType }

// Validate rejects empty patches.
func (m UpdateSettingsCommand) Validate() error {
	if m.empty() {
		return validation.Errors{
			"settings": validation.NewError("fluent.settings.update.empty", "at least one setting must be provided"),
		}
	}
	return nil
}

func (m UpdateSettingsCommand) empty() bool {
	return m.DisableDefaultPrefix == nil &&
		m.NestedURLs == nil &&
		m.FrontendPublishRequired == nil &&
		m.CMSLocalisationRequired == nil &&
		m.StatusMessages == nil
}

// Apply returns current with the patch applied.
func (m UpdateSettingsCommand) Apply(current settings.Settings) settings.Settings {
	assign(&current.DisableDefaultPrefix, m.DisableDefaultPrefix)
	assign(&current.NestedURLs, m.NestedURLs)
	assign(&current.FrontendPublishRequired, m.FrontendPublishRequired)
	assign(&current.CMSLocalisationRequired, m.CMSLocalisationRequired)
	assign(&current.StatusMessages, m.StatusMessages)
	return current
}

func assign(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}

// ResetSettingsCommand removes persisted settings so the configured defaults
// apply again.
type ResetSettingsCommand struct{}

// Type implements command.Message.
func (ResetSettingsCommand) Type() string { return resetSettingsMessageType }

// Validate implements command.Message.
func (ResetSettingsCommand) Validate() error { return nil }

// UpdateSettingsHandler persists settings patches. Defaults seed the patch
// when nothing was stored yet.
type UpdateSettingsHandler struct {
	inner *commands.Handler[UpdateSettingsCommand]
}

func NewUpdateSettingsHandler(repo settings.Repository, defaults settings.Settings, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateSettingsCommand]) *UpdateSettingsHandler {
	// Patches are merged over the stored value, so concurrent updates run
	// one at a time.
	var mu sync.Mutex
	exec := func(ctx context.Context, msg UpdateSettingsCommand) error {
		mu.Lock()
		defer mu.Unlock()

		current, err := repo.Get(ctx)
		if errors.Is(err, settings.ErrSettingsNotFound) {
			current, err = defaults, nil
		}
		if err != nil {
			return err
		}
		_, err = repo.Upsert(ctx, msg.Apply(current))
		return err
	}

	handlerOpts := []commands.HandlerOption[UpdateSettingsCommand]{
		commands.WithLogger[UpdateSettingsCommand](logger),
		commands.WithOperation[UpdateSettingsCommand]("settings.update"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateSettingsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UpdateSettingsCommand].
func (h *UpdateSettingsHandler) Execute(ctx context.Context, msg UpdateSettingsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ResetSettingsHandler deletes persisted settings.
type ResetSettingsHandler struct {
	inner *commands.Handler[ResetSettingsCommand]
}

func NewResetSettingsHandler(repo settings.Repository, logger interfaces.Logger, opts ...commands.HandlerOption[ResetSettingsCommand]) *ResetSettingsHandler {
	exec := func(ctx context.Context, _ ResetSettingsCommand) error {
		err := repo.Delete(ctx)
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return nil
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[ResetSettingsCommand]{
		commands.WithLogger[ResetSettingsCommand](logger),
		commands.WithOperation[ResetSettingsCommand]("settings.reset"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ResetSettingsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ResetSettingsCommand].
func (h *ResetSettingsHandler) Execute(ctx context.Context, msg ResetSettingsCommand) error {
	return h.inner.Execute(ctx, msg)
}
