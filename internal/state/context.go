package state

import "strings"

// ExecutionContext is the ambient routing state consulted by the resolvers.
type ExecutionContext struct {
	Locale         string
	IsDomainMode   bool
	IsFrontend     bool
	ActiveHostname string
}

// HasLocale reports whether a locale is active.
func (c ExecutionContext) HasLocale() bool {
	return strings.TrimSpace(c.Locale) != ""
}

// Overrides lists the fields replaced when a scope is pushed. Nil fields keep
// the value from the enclosing frame.
type Overrides struct {
	Locale         *string
	IsDomainMode   *bool
	IsFrontend     *bool
	ActiveHostname *string
}

// WithLocale returns a copy of o overriding the locale.
func (o Overrides) WithLocale(code string) Overrides {
	o.Locale = &code
	return o
}

// WithDomainMode returns a copy of o overriding domain mode.
func (o Overrides) WithDomainMode(enabled bool) Overrides {
	o.IsDomainMode = &enabled
	return o
}

// WithFrontend returns a copy of o overriding the frontend flag.
func (o Overrides) WithFrontend(enabled bool) Overrides {
	o.IsFrontend = &enabled
	return o
}

// WithHostname returns a copy of o overriding the active hostname.
func (o Overrides) WithHostname(hostname string) Overrides {
	o.ActiveHostname = &hostname
	return o
}

// Apply returns ctx with the overrides applied.
func (o Overrides) Apply(ctx ExecutionContext) ExecutionContext {
	if o.Locale != nil {
		ctx.Locale = strings.TrimSpace(*o.Locale)
	}
	if o.IsDomainMode != nil {
		ctx.IsDomainMode = *o.IsDomainMode
	}
	if o.IsFrontend != nil {
		ctx.IsFrontend = *o.IsFrontend
	}
	if o.ActiveHostname != nil {
		ctx.ActiveHostname = strings.ToLower(strings.TrimSpace(*o.ActiveHostname))
	}
	return ctx
}
