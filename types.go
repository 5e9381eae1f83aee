package fluent

import (
	"context"

	"github.com/goliatone/go-fluent/internal/commands/catalogcmd"
	"github.com/goliatone/go-fluent/internal/commands/settingscmd"
	"github.com/goliatone/go-fluent/internal/existence"
	"github.com/goliatone/go-fluent/internal/flags"
	"github.com/goliatone/go-fluent/internal/links"
	"github.com/goliatone/go-fluent/internal/locales"
	"github.com/goliatone/go-fluent/internal/records"
	"github.com/goliatone/go-fluent/internal/settings"
	"github.com/goliatone/go-fluent/internal/state"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

type (
	// Locale is a catalogue entry.
	Locale = locales.Locale
	// Domain groups the locales served from one hostname.
	Domain = locales.Domain

	ExecutionContext = state.ExecutionContext
	Overrides        = state.Overrides
	Stack            = state.Stack

	PageNode          = interfaces.PageNode
	ExistenceProvider = interfaces.ExistenceProvider

	RecordLocale   = records.RecordLocale
	Flags          = flags.Flags
	FlagDescriptor = flags.Descriptor
	StatusMessage  = flags.Message

	Settings = settings.Settings
	// SettingsPatch updates a subset of the runtime settings.
	SettingsPatch = settingscmd.UpdateSettingsCommand

	// ParentLinkFunc yields a parent's relative link under a given context.
	ParentLinkFunc = links.ParentLinkFunc
)

// Status flag keys.
const (
	FlagModified  = flags.Modified
	FlagArchived  = flags.Archived
	FlagNoSource  = flags.NoSource
	FlagInvisible = flags.Invisible
)

// Status message codes.
const (
	MessageNotVisibleUntilPublished = flags.MessageNotVisibleUntilPublished
	MessageInherited                = flags.MessageInherited
	MessageNoContent                = flags.MessageNoContent
	MessageDraftOnly                = flags.MessageDraftOnly
)

// NewStack returns a context stack whose base frame is base.
func NewStack(base ExecutionContext) *Stack {
	return state.NewStack(base)
}

// WithScope runs body with overrides pushed onto stack and restores the
// previous frame afterwards, even when body panics.
func WithScope[T any](stack *Stack, overrides Overrides, body func(ExecutionContext) (T, error)) (T, error) {
	return state.WithScope(stack, overrides, body)
}

// ContextWithStack stores stack on ctx.
func ContextWithStack(ctx context.Context, stack *Stack) context.Context {
	return state.ContextWithStack(ctx, stack)
}

// StackFromContext returns the stack stored on ctx.
func StackFromContext(ctx context.Context) (*Stack, bool) {
	return state.StackFromContext(ctx)
}

// IsLocaleNotFound reports whether err signals an unregistered locale code.
func IsLocaleNotFound(err error) bool {
	return locales.IsNotFound(err)
}

// IsInvalidCatalogue reports whether err signals a catalogue that could not
// be built.
func IsInvalidCatalogue(err error) bool {
	return locales.IsInvalidConfiguration(err)
}

type (
	// ContentStateSource answers existence questions and reports whether a
	// node has content in any locale.
	ContentStateSource = interfaces.ContentStateSource

	// ExistenceIndex is an in-memory ContentStateSource.
	ExistenceIndex = existence.Index
	// Stage names the version table a localisation row belongs to.
	Stage = existence.Stage

	ReloadCatalogCommand = catalogcmd.ReloadCatalogCommand
)

const (
	StageDraft    = existence.StageDraft
	StageLive     = existence.StageLive
	StageArchived = existence.StageArchived
)

// NewExistenceIndex returns an empty in-memory existence index.
func NewExistenceIndex() *ExistenceIndex {
	return existence.NewIndex()
}
