package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-fluent/internal/existence"
)

// ExistenceLoader reads localisation rows into an existence index.
type ExistenceLoader struct {
	repo repository.Repository[*LocalisedRecord]
}

// NewExistenceLoader returns a loader backed by db.
func NewExistenceLoader(db *bun.DB) *ExistenceLoader {
	return &ExistenceLoader{repo: NewLocalisationRepository(db)}
}

// Load returns the existence snapshot for pageIDs, or for every page when no
// id is given.
func (l *ExistenceLoader) Load(ctx context.Context, pageIDs ...uuid.UUID) (*existence.Index, error) {
	filter := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if len(pageIDs) == 0 {
			return q
		}
		return q.Where("?TableAlias.page_id IN (?)", bun.In(pageIDs))
	})

	records, _, err := l.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("storage: list localisations: %w", err)
	}

	idx := existence.NewIndex()
	for _, record := range records {
		stage := existence.Stage(strings.ToLower(record.Stage))
		if !stage.Valid() {
			continue
		}
		idx.Mark(record.PageID, record.Locale, stage)
	}
	return idx, nil
}

// Record stores a localisation row for pageID.
func (l *ExistenceLoader) Record(ctx context.Context, pageID uuid.UUID, locale string, stage existence.Stage) error {
	if !stage.Valid() {
		return fmt.Errorf("storage: unknown stage %q", stage)
	}
	_, err := l.repo.Create(ctx, &LocalisedRecord{
		ID:        uuid.New(),
		PageID:    pageID,
		Locale:    strings.TrimSpace(locale),
		Stage:     string(stage),
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("storage: record localisation: %w", err)
	}
	return nil
}
