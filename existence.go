package fluent

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrDatabaseRequired is returned by storage helpers when no database was
// wired into the module.
var ErrDatabaseRequired = errors.New("fluent: database is not configured")

// LoadExistence reads the localisation rows of pageIDs, or of every page when
// none is given, into an existence index.
func (m *Module) LoadExistence(ctx context.Context, pageIDs ...uuid.UUID) (*ExistenceIndex, error) {
	loader := m.container.ExistenceLoader()
	if loader == nil {
		return nil, ErrDatabaseRequired
	}
	return loader.Load(ctx, pageIDs...)
}

// RecordExistence stores a localisation row for pageID in locale.
func (m *Module) RecordExistence(ctx context.Context, pageID uuid.UUID, locale string, stage Stage) error {
	loader := m.container.ExistenceLoader()
	if loader == nil {
		return ErrDatabaseRequired
	}
	return loader.Record(ctx, pageID, locale, stage)
}
