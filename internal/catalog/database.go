package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-fluent/internal/locales"
	"github.com/goliatone/go-fluent/internal/storage"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

// DatabaseSource reads the catalogue from the fluent_locales and
// fluent_domains tables. When caching is enabled the repositories are wrapped
// with go-repository-cache and Invalidate swaps in a fresh cache.
type DatabaseSource struct {
	db     *bun.DB
	logger interfaces.Logger

	cacheEnabled bool
	cacheTTL     time.Duration

	mu      sync.RWMutex
	locales repository.Repository[*storage.LocaleRecord]
	domains repository.Repository[*storage.DomainRecord]
}

// DatabaseOption customises a DatabaseSource.
type DatabaseOption func(*DatabaseSource)

// WithCacheTTL enables the repository cache with the given ttl.
func WithCacheTTL(ttl time.Duration) DatabaseOption {
	return func(s *DatabaseSource) {
		s.cacheEnabled = true
		s.cacheTTL = ttl
	}
}

// WithDatabaseLogger sets the logger used to report cache failures.
func WithDatabaseLogger(logger interfaces.Logger) DatabaseOption {
	return func(s *DatabaseSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewDatabaseSource(db *bun.DB, opts ...DatabaseOption) *DatabaseSource {
	s := &DatabaseSource{db: db}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.buildRepositories()
	return s
}

// Invalidate drops cached catalogue rows.
func (s *DatabaseSource) Invalidate() {
	s.buildRepositories()
}

func (s *DatabaseSource) buildRepositories() {
	localeRepo := storage.NewLocaleRepository(s.db)
	domainRepo := storage.NewDomainRepository(s.db)

	if s.cacheEnabled {
		cfg := cache.DefaultConfig()
		if s.cacheTTL > 0 {
			cfg.TTL = s.cacheTTL
		}
		service, err := cache.NewCacheService(cfg)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("catalog.cache.disabled", "error", err)
			}
		} else {
			serializer := cache.NewDefaultKeySerializer()
			localeRepo = storage.WithCache(localeRepo, service, serializer)
			domainRepo = storage.WithCache(domainRepo, service, serializer)
		}
	}

	s.mu.Lock()
	s.locales = localeRepo
	s.domains = domainRepo
	s.mu.Unlock()
}

func (s *DatabaseSource) repositories() (repository.Repository[*storage.LocaleRecord], repository.Repository[*storage.DomainRecord]) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locales, s.domains
}

func (s *DatabaseSource) Load(ctx context.Context) (locales.Definition, error) {
	localeRepo, domainRepo := s.repositories()

	localeRecords, _, err := localeRepo.List(ctx, repository.SelectRawProcessor(orderByPosition("code")))
	if err != nil {
		return locales.Definition{}, fmt.Errorf("catalog: list locales: %w", err)
	}
	domainRecords, _, err := domainRepo.List(ctx, repository.SelectRawProcessor(orderByPosition("hostname")))
	if err != nil {
		return locales.Definition{}, fmt.Errorf("catalog: list domains: %w", err)
	}

	def := locales.Definition{
		Locales: make([]locales.LocaleDefinition, 0, len(localeRecords)),
		Domains: make([]locales.DomainDefinition, 0, len(domainRecords)),
	}
	for _, record := range localeRecords {
		def.Locales = append(def.Locales, locales.LocaleDefinition{
			Code:           record.Code,
			Title:          record.Title,
			URLSegment:     record.URLSegment,
			LanguageCode:   record.LanguageCode,
			LanguageNative: record.LanguageNative,
			Domain:         record.Domain,
			IsDefault:      record.IsDefault,
			Fallbacks:      record.FallbackCodes(),
		})
		if record.IsGlobalDefault && def.DefaultLocale == "" {
			def.DefaultLocale = record.Code
		}
	}
	for _, record := range domainRecords {
		def.Domains = append(def.Domains, locales.DomainDefinition{
			Hostname:      record.Hostname,
			DefaultLocale: record.DefaultLocale,
		})
	}
	return def, nil
}

// Seed writes def to the catalogue tables in definition order. The global
// default locale is flagged on its row whether or not it is bound to a domain.
func (s *DatabaseSource) Seed(ctx context.Context, def locales.Definition) error {
	localeRepo, domainRepo := s.repositories()

	for i, dd := range def.Domains {
		record := &storage.DomainRecord{
			ID:            uuid.New(),
			Hostname:      strings.ToLower(strings.TrimSpace(dd.Hostname)),
			DefaultLocale: strings.TrimSpace(dd.DefaultLocale),
			Position:      i,
		}
		if _, err := domainRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("catalog: seed domain %s: %w", record.Hostname, err)
		}
	}

	for i, ld := range def.Locales {
		record := &storage.LocaleRecord{
			ID:             uuid.New(),
			Code:           strings.TrimSpace(ld.Code),
			Title:          ld.Title,
			URLSegment:     ld.URLSegment,
			LanguageCode:   ld.LanguageCode,
			LanguageNative: ld.LanguageNative,
			Domain:         strings.TrimSpace(ld.Domain),
			IsDefault:      ld.IsDefault,
			Position:       i,
		}
		record.IsGlobalDefault = def.DefaultLocale != "" && strings.EqualFold(record.Code, strings.TrimSpace(def.DefaultLocale))
		record.SetFallbackCodes(ld.Fallbacks)
		if _, err := localeRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("catalog: seed locale %s: %w", record.Code, err)
		}
	}

	s.Invalidate()
	return nil
}

func orderByPosition(tiebreak string) func(*bun.SelectQuery) *bun.SelectQuery {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.position ASC").OrderExpr("?TableAlias.? ASC", bun.Ident(tiebreak))
	}
}
