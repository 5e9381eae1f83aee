package storage

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewLocalisationRepository(db *bun.DB) repository.Repository[*LocalisedRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LocalisedRecord]{
		NewRecord: func() *LocalisedRecord { return &LocalisedRecord{} },
		GetID: func(r *LocalisedRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *LocalisedRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *LocalisedRecord) string {
			return r.ID.String()
		},
	})
}

func NewLocaleRepository(db *bun.DB) repository.Repository[*LocaleRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LocaleRecord]{
		NewRecord: func() *LocaleRecord { return &LocaleRecord{} },
		GetID: func(r *LocaleRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *LocaleRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(r *LocaleRecord) string {
			return r.Code
		},
	})
}

func NewDomainRepository(db *bun.DB) repository.Repository[*DomainRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*DomainRecord]{
		NewRecord: func() *DomainRecord { return &DomainRecord{} },
		GetID: func(r *DomainRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *DomainRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "hostname"
		},
		GetIdentifierValue: func(r *DomainRecord) string {
			return r.Hostname
		},
	})
}

// WithCache wraps base with the repository cache when both collaborators are
// supplied.
func WithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
