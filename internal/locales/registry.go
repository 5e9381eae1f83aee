package locales

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// Registry is an immutable snapshot of the locale and domain catalogue.
// Lookups are pure; a configuration reload builds a new Registry.
type Registry struct {
	defaultLocale string
	order         []string
	locales       map[string]*Locale
	domainOrder   []string
	domains       map[string]*Domain
	fallbacks     map[string][]string
}

// NewRegistry validates the definition and builds the catalogue.
func NewRegistry(def Definition) (*Registry, error) {
	if len(def.Locales) == 0 {
		return nil, invalidConfiguration("at least one locale is required")
	}

	r := &Registry{
		locales:   make(map[string]*Locale, len(def.Locales)),
		domains:   make(map[string]*Domain, len(def.Domains)),
		fallbacks: make(map[string][]string, len(def.Locales)),
	}

	for _, dd := range def.Domains {
		host := normalizeHost(dd.Hostname)
		if host == "" {
			return nil, invalidConfiguration("domain hostname is required")
		}
		if _, exists := r.domains[host]; exists {
			return nil, invalidConfiguration("duplicate domain %q", host)
		}
		r.domains[host] = &Domain{
			Hostname:      host,
			DefaultLocale: strings.TrimSpace(dd.DefaultLocale),
		}
		r.domainOrder = append(r.domainOrder, host)
	}

	for _, ld := range def.Locales {
		code := strings.TrimSpace(ld.Code)
		if code == "" {
			return nil, invalidConfiguration("locale code is required")
		}
		key := normalizeCode(code)
		if _, exists := r.locales[key]; exists {
			return nil, invalidConfiguration("duplicate locale %q", code)
		}

		locale, err := buildLocale(code, ld)
		if err != nil {
			return nil, err
		}

		if host := normalizeHost(ld.Domain); host != "" {
			domain, ok := r.domains[host]
			if !ok {
				return nil, invalidConfiguration("locale %q references unknown domain %q", code, host)
			}
			domain.Locales = append(domain.Locales, code)
			locale.Domain = domain
		}

		r.locales[key] = locale
		r.order = append(r.order, key)
	}

	if err := r.resolveDomainDefaults(def); err != nil {
		return nil, err
	}
	if err := r.resolveGlobalDefault(def.DefaultLocale); err != nil {
		return nil, err
	}
	if err := r.resolveFallbacks(def); err != nil {
		return nil, err
	}

	return r, nil
}

func buildLocale(code string, ld LocaleDefinition) (*Locale, error) {
	info := describe(code)

	segment := strings.Trim(strings.TrimSpace(ld.URLSegment), "/")
	if segment == "" {
		segment = code
	} else if !slug.IsValid(segment) {
		return nil, invalidConfiguration("locale %q has invalid url segment %q", code, segment)
	}

	locale := &Locale{
		Code:           code,
		RFC1766:        info.rfc1766,
		Title:          firstNonEmpty(ld.Title, info.title, code),
		LanguageCode:   firstNonEmpty(ld.LanguageCode, info.code),
		LanguageNative: firstNonEmpty(ld.LanguageNative, info.native),
		URLSegment:     segment,
		IsDefault:      ld.IsDefault,
	}
	return locale, nil
}

func (r *Registry) resolveDomainDefaults(def Definition) error {
	for _, host := range r.domainOrder {
		domain := r.domains[host]
		if len(domain.Locales) == 0 {
			return invalidConfiguration("domain %q has no locales", host)
		}

		flagged := ""
		for _, code := range domain.Locales {
			locale := r.locales[normalizeCode(code)]
			if !locale.IsDefault {
				continue
			}
			if flagged != "" {
				return invalidConfiguration("domain %q has two default locales (%s, %s)", host, flagged, code)
			}
			flagged = code
		}

		if domain.DefaultLocale != "" {
			configured, ok := r.locales[normalizeCode(domain.DefaultLocale)]
			if !ok || !domain.Contains(configured.Code) {
				return invalidConfiguration("domain %q default locale %q is not served by the domain", host, domain.DefaultLocale)
			}
			if flagged != "" && flagged != configured.Code {
				return invalidConfiguration("domain %q has two default locales (%s, %s)", host, configured.Code, flagged)
			}
			flagged = configured.Code
		}

		if flagged == "" {
			flagged = domain.Locales[0]
		}
		domain.DefaultLocale = flagged
	}

	for _, key := range r.order {
		locale := r.locales[key]
		if locale.Domain != nil {
			locale.IsDefault = locale.Domain.DefaultLocale == locale.Code
		}
	}
	return nil
}

func (r *Registry) resolveGlobalDefault(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		r.defaultLocale = r.locales[r.order[0]].Code
		for _, key := range r.order {
			if locale := r.locales[key]; locale.Domain == nil && locale.IsDefault {
				r.defaultLocale = locale.Code
				break
			}
		}
	} else {
		locale, ok := r.locales[normalizeCode(code)]
		if !ok {
			return invalidConfiguration("default locale %q is not registered", code)
		}
		r.defaultLocale = locale.Code
	}

	for _, key := range r.order {
		locale := r.locales[key]
		if locale.Domain == nil {
			locale.IsDefault = locale.Code == r.defaultLocale
		}
	}
	return nil
}

func (r *Registry) resolveFallbacks(def Definition) error {
	for _, ld := range def.Locales {
		code := strings.TrimSpace(ld.Code)
		seen := map[string]struct{}{normalizeCode(code): {}}
		chain := make([]string, 0, len(ld.Fallbacks))
		for _, candidate := range ld.Fallbacks {
			key := normalizeCode(candidate)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			target, ok := r.locales[key]
			if !ok {
				return invalidConfiguration("locale %q references undefined fallback %q", code, candidate)
			}
			seen[key] = struct{}{}
			chain = append(chain, target.Code)
		}
		if len(chain) > 0 {
			r.fallbacks[normalizeCode(code)] = chain
		}
	}
	return nil
}

// Locale returns the locale registered under code.
func (r *Registry) Locale(code string) (Locale, error) {
	locale, ok := r.lookup(code)
	if !ok {
		return Locale{}, NotFoundError(strings.TrimSpace(code))
	}
	return snapshot(locale), nil
}

// Has reports whether code is registered.
func (r *Registry) Has(code string) bool {
	_, ok := r.lookup(code)
	return ok
}

// DefaultLocale returns the global default locale.
func (r *Registry) DefaultLocale() Locale {
	if r == nil {
		return Locale{}
	}
	return snapshot(r.locales[normalizeCode(r.defaultLocale)])
}

// Locales returns every locale in configuration order.
func (r *Registry) Locales() []Locale {
	if r == nil {
		return nil
	}
	out := make([]Locale, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, snapshot(r.locales[key]))
	}
	return out
}

// Domains returns copies of every registered domain in configuration order.
func (r *Registry) Domains() []Domain {
	if r == nil {
		return nil
	}
	out := make([]Domain, 0, len(r.domainOrder))
	for _, host := range r.domainOrder {
		out = append(out, r.domains[host].clone())
	}
	return out
}

// Domain returns the domain registered for hostname.
func (r *Registry) Domain(hostname string) (Domain, bool) {
	if r == nil {
		return Domain{}, false
	}
	domain, ok := r.domains[normalizeHost(hostname)]
	if !ok {
		return Domain{}, false
	}
	return domain.clone(), true
}

// DefaultLocaleForDomain returns the default locale served by hostname.
func (r *Registry) DefaultLocaleForDomain(hostname string) (Locale, bool) {
	domain, ok := r.Domain(hostname)
	if !ok {
		return Locale{}, false
	}
	locale, ok := r.lookup(domain.DefaultLocale)
	if !ok {
		return Locale{}, false
	}
	return snapshot(locale), true
}

// IsOnlyLocaleOnDomain reports whether the locale's domain serves exactly
// one locale. Unbound locales always report false.
func (r *Registry) IsOnlyLocaleOnDomain(code string) bool {
	locale, ok := r.lookup(code)
	if !ok || locale.Domain == nil {
		return false
	}
	return len(locale.Domain.Locales) == 1
}

// FallbackOrder returns the configured fallback chain for code, excluding the
// code itself. Locales without configuration have no fallback.
func (r *Registry) FallbackOrder(code string) []string {
	if r == nil {
		return nil
	}
	chain := r.fallbacks[normalizeCode(code)]
	if len(chain) == 0 {
		return nil
	}
	out := make([]string, len(chain))
	copy(out, chain)
	return out
}

// DomainFor returns the domain bound to code. Outside domain mode locales
// behave as if unbound.
func (r *Registry) DomainFor(code string, domainMode bool) (Domain, bool) {
	if !domainMode {
		return Domain{}, false
	}
	locale, ok := r.lookup(code)
	if !ok || locale.Domain == nil {
		return Domain{}, false
	}
	return locale.Domain.clone(), true
}

// IsDefault reports whether code is the default locale in the given routing
// mode: the domain default in domain mode, the global default otherwise.
func (r *Registry) IsDefault(code string, domainMode bool) bool {
	locale, ok := r.lookup(code)
	if !ok {
		return false
	}
	if domainMode && locale.Domain != nil {
		return locale.IsDefault
	}
	return locale.Code == r.defaultLocale
}

// IsOnlyLocale reports whether code has no sibling locales in the given
// routing mode.
func (r *Registry) IsOnlyLocale(code string, domainMode bool) bool {
	if !r.Has(code) {
		return false
	}
	return len(r.SiblingLocales(code, domainMode)) == 1
}

// SiblingLocales lists the locales sharing code's routing scope: its domain's
// locales in domain mode, every registered locale otherwise.
func (r *Registry) SiblingLocales(code string, domainMode bool) []Locale {
	locale, ok := r.lookup(code)
	if !ok {
		return nil
	}
	if !domainMode || locale.Domain == nil {
		return r.Locales()
	}
	out := make([]Locale, 0, len(locale.Domain.Locales))
	for _, sibling := range locale.Domain.Locales {
		out = append(out, snapshot(r.locales[normalizeCode(sibling)]))
	}
	return out
}

func (r *Registry) lookup(code string) (*Locale, bool) {
	if r == nil {
		return nil, false
	}
	key := normalizeCode(code)
	if key == "" {
		return nil, false
	}
	locale, ok := r.locales[key]
	return locale, ok
}

// snapshot copies a locale so callers cannot reach the registry's domains.
func snapshot(locale *Locale) Locale {
	out := *locale
	if locale.Domain != nil {
		domain := locale.Domain.clone()
		out.Domain = &domain
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
