package catalogcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-fluent/internal/commands"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

const reloadCatalogMessageType = "fluent.catalog.reload"

// Reloader rebuilds the locale catalogue from its configured source.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadCatalogCommand asks the module to rebuild its locale registry and
// drop every cached domain link.
type ReloadCatalogCommand struct {
	Reason string `json:"reason,omitempty"`
}

// Type implements command.Message.
func (ReloadCatalogCommand) Type() string { return reloadCatalogMessageType }

// Validate implements command.Message.
func (m ReloadCatalogCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Reason, validation.Length(0, 256)),
	)
}

// ReloadCatalogHandler executes catalogue reloads.
type ReloadCatalogHandler struct {
	inner *commands.Handler[ReloadCatalogCommand]
}

func NewReloadCatalogHandler(reloader Reloader, logger interfaces.Logger, opts ...commands.HandlerOption[ReloadCatalogCommand]) *ReloadCatalogHandler {
	exec := func(ctx context.Context, _ ReloadCatalogCommand) error {
		return reloader.Reload(ctx)
	}

	handlerOpts := []commands.HandlerOption[ReloadCatalogCommand]{
		commands.WithLogger[ReloadCatalogCommand](logger),
		commands.WithOperation[ReloadCatalogCommand]("catalog.reload"),
		commands.WithMessageFields(func(msg ReloadCatalogCommand) map[string]any {
			if reason := strings.TrimSpace(msg.Reason); reason != "" {
				return map[string]any{"reason": reason}
			}
			return nil
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReloadCatalogHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ReloadCatalogCommand].
func (h *ReloadCatalogHandler) Execute(ctx context.Context, msg ReloadCatalogCommand) error {
	return h.inner.Execute(ctx, msg)
}
