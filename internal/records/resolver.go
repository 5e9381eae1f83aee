package records

import (
	"github.com/goliatone/go-fluent/internal/locales"
	"github.com/goliatone/go-fluent/internal/logging"
	"github.com/goliatone/go-fluent/pkg/interfaces"
	"github.com/google/uuid"
)

// Catalogue is the slice of the locale registry the resolver depends on.
type Catalogue interface {
	Locale(code string) (locales.Locale, error)
	Locales() []locales.Locale
	FallbackOrder(code string) []string
}

// Resolver computes RecordLocale values from storage existence answers.
type Resolver struct {
	catalogue Catalogue
	logger    interfaces.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger overrides the resolver logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver returns a resolver bound to catalogue.
func NewResolver(catalogue Catalogue, opts ...Option) *Resolver {
	r := &Resolver{
		catalogue: catalogue,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve returns the state of nodeID in code. Unknown locales return the
// registry's NotFound error; nodes without rows simply report no existence.
func (r *Resolver) Resolve(provider interfaces.ExistenceProvider, nodeID uuid.UUID, code string) (RecordLocale, error) {
	return r.NewPass(provider).Resolve(nodeID, code)
}

// ResolveAll returns one RecordLocale per registered locale in registry order.
func (r *Resolver) ResolveAll(provider interfaces.ExistenceProvider, nodeID uuid.UUID) []RecordLocale {
	pass := r.NewPass(provider)
	all := r.catalogue.Locales()
	out := make([]RecordLocale, 0, len(all))
	for _, locale := range all {
		record, err := pass.Resolve(nodeID, locale.Code)
		if err != nil {
			continue
		}
		out = append(out, record)
	}
	return out
}

// HasAnyLocaleInstance reports whether nodeID has content in any locale.
// Providers that cannot answer are treated as having none.
func (r *Resolver) HasAnyLocaleInstance(provider interfaces.ExistenceProvider, nodeID uuid.UUID) bool {
	checker, ok := provider.(interfaces.LocaleInstanceChecker)
	if !ok {
		return false
	}
	return checker.HasAnyLocaleInstance(nodeID)
}

// NewPass starts a resolution pass that memoises results per node and locale.
// A pass is not safe for concurrent use.
func (r *Resolver) NewPass(provider interfaces.ExistenceProvider) *Pass {
	return &Pass{
		resolver: r,
		provider: provider,
		memo:     make(map[passKey]RecordLocale),
	}
}

type passKey struct {
	node   uuid.UUID
	locale string
}

// Pass memoises RecordLocale lookups for the duration of one resolution.
type Pass struct {
	resolver *Resolver
	provider interfaces.ExistenceProvider
	memo     map[passKey]RecordLocale
}

// Resolve returns the memoised record for (nodeID, code).
func (p *Pass) Resolve(nodeID uuid.UUID, code string) (RecordLocale, error) {
	locale, err := p.resolver.catalogue.Locale(code)
	if err != nil {
		return RecordLocale{}, err
	}

	key := passKey{node: nodeID, locale: locale.Code}
	if cached, ok := p.memo[key]; ok {
		return cached, nil
	}

	record := RecordLocale{Locale: locale}
	if p.provider != nil {
		record.ExistsDraft = p.provider.ExistsDraft(nodeID, locale.Code)
		record.ExistsPublished = p.provider.ExistsPublished(nodeID, locale.Code)
		record.ExistsArchived = p.provider.ExistsArchived(nodeID, locale.Code)
	}

	if !record.ExistsInLocale() {
		record.SourceLocale = p.sourceLocale(nodeID, locale.Code)
	}

	p.memo[key] = record
	return record, nil
}

func (p *Pass) sourceLocale(nodeID uuid.UUID, code string) *locales.Locale {
	if p.provider == nil {
		return nil
	}
	for _, candidate := range p.resolver.catalogue.FallbackOrder(code) {
		if !p.provider.ExistsDraft(nodeID, candidate) && !p.provider.ExistsPublished(nodeID, candidate) {
			continue
		}
		fallback, err := p.resolver.catalogue.Locale(candidate)
		if err != nil {
			continue
		}
		p.resolver.logger.Debug("records: inherited content from fallback locale",
			"node_id", nodeID.String(),
			"locale", code,
			"source_locale", fallback.Code,
		)
		return &fallback
	}
	return nil
}
