package locales

import "slices"

// Locale is an immutable catalogue entry. Domain is nil when the locale is
// not bound to a hostname. IsDefault reports whether the locale is the
// default of its own domain; unbound locales are default when they match the
// registry's global default.
type Locale struct {
	Code           string
	RFC1766        string
	Title          string
	LanguageCode   string
	LanguageNative string
	URLSegment     string
	Domain         *Domain
	IsDefault      bool
}

// HrefLang returns the value used for alternate link annotations.
func (l Locale) HrefLang() string {
	return l.RFC1766
}

// HasDomain reports whether the locale is bound to a domain.
func (l Locale) HasDomain() bool {
	return l.Domain != nil
}

// Domain groups the locales served from a single hostname.
type Domain struct {
	Hostname      string
	Locales       []string
	DefaultLocale string
}

// Contains reports whether code is served from the domain.
func (d Domain) Contains(code string) bool {
	return slices.Contains(d.Locales, code)
}

func (d Domain) clone() Domain {
	d.Locales = slices.Clone(d.Locales)
	return d
}

// Definition is the already-parsed catalogue configuration used to build a
// Registry.
type Definition struct {
	DefaultLocale string
	Locales       []LocaleDefinition
	Domains       []DomainDefinition
}

// LocaleDefinition describes one locale. Empty optional fields are derived
// from the locale code.
type LocaleDefinition struct {
	Code           string
	Title          string
	URLSegment     string
	LanguageCode   string
	LanguageNative string
	Domain         string
	IsDefault      bool
	Fallbacks      []string
}

// DomainDefinition describes a hostname. DefaultLocale is optional; locales
// can also flag themselves as IsDefault.
type DomainDefinition struct {
	Hostname      string
	DefaultLocale string
}
