package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

const settingsRowID = 1

var errNoDatabase = errors.New("settings: bun repository requires a database")

// BunRepository persists settings as a single row.
type BunRepository struct {
	db          *bun.DB
	broadcaster *changeBroadcaster
	now         func() time.Time
}

// NewBunRepository returns a repository bound to db.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:          db,
		broadcaster: newChangeBroadcaster(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// EnsureSchema creates the settings table when missing.
func (r *BunRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return errNoDatabase
	}
	if _, err := r.db.NewCreateTable().Model((*settingsRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("settings: create table: %w", err)
	}
	return nil
}

func (r *BunRepository) Get(ctx context.Context) (Settings, error) {
	record, err := r.load(ctx)
	if err != nil {
		return Settings{}, err
	}
	return record.toSettings(), nil
}

func (r *BunRepository) Upsert(ctx context.Context, settings Settings) (Settings, error) {
	existing, err := r.load(ctx)
	created := errors.Is(err, ErrSettingsNotFound)
	if err != nil && !created {
		return Settings{}, err
	}

	record := newSettingsRecord(settings, r.now())
	if created {
		if _, err := r.db.NewInsert().Model(&record).Exec(ctx); err != nil {
			return Settings{}, fmt.Errorf("settings: insert: %w", err)
		}
	} else {
		if existing.toSettings() == settings {
			return settings, nil
		}
		if _, err := r.db.NewUpdate().
			Model(&record).
			Column("disable_default_prefix", "nested_urls", "frontend_publish_required", "cms_localisation_required", "status_messages", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return Settings{}, fmt.Errorf("settings: update: %w", err)
		}
	}

	stored, err := r.Get(ctx)
	if err != nil {
		return Settings{}, err
	}
	changeType := ChangeUpdated
	if created {
		changeType = ChangeCreated
	}
	r.broadcaster.Broadcast(changeType, stored)
	return stored, nil
}

func (r *BunRepository) Delete(ctx context.Context) error {
	record, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, err := r.db.NewDelete().Model(&record).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("settings: delete: %w", err)
	}
	r.broadcaster.Broadcast(ChangeDeleted, Settings{})
	return nil
}

func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

func (r *BunRepository) load(ctx context.Context) (settingsRecord, error) {
	if r.db == nil {
		return settingsRecord{}, errNoDatabase
	}
	var record settingsRecord
	if err := r.db.NewSelect().Model(&record).Where("id = ?", settingsRowID).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return settingsRecord{}, ErrSettingsNotFound
		}
		return settingsRecord{}, fmt.Errorf("settings: select: %w", err)
	}
	return record, nil
}

type settingsRecord struct {
	bun.BaseModel `bun:"table:fluent_settings"`

	ID                      int       `bun:",pk"`
	DisableDefaultPrefix    bool      `bun:"disable_default_prefix,notnull"`
	NestedURLs              bool      `bun:"nested_urls,notnull"`
	FrontendPublishRequired bool      `bun:"frontend_publish_required,notnull"`
	CMSLocalisationRequired bool      `bun:"cms_localisation_required,notnull"`
	StatusMessages          bool      `bun:"status_messages,notnull"`
	UpdatedAt               time.Time `bun:"updated_at,notnull"`
}

func newSettingsRecord(settings Settings, now time.Time) settingsRecord {
	return settingsRecord{
		ID:                      settingsRowID,
		DisableDefaultPrefix:    settings.DisableDefaultPrefix,
		NestedURLs:              settings.NestedURLs,
		FrontendPublishRequired: settings.FrontendPublishRequired,
		CMSLocalisationRequired: settings.CMSLocalisationRequired,
		StatusMessages:          settings.StatusMessages,
		UpdatedAt:               now,
	}
}

func (r settingsRecord) toSettings() Settings {
	return Settings{
		DisableDefaultPrefix:    r.DisableDefaultPrefix,
		NestedURLs:              r.NestedURLs,
		FrontendPublishRequired: r.FrontendPublishRequired,
		CMSLocalisationRequired: r.CMSLocalisationRequired,
		StatusMessages:          r.StatusMessages,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrSettingsNotFound)
}
