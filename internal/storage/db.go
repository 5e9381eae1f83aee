package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Supported dialect names.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// NewDB wraps sqldb in a bun.DB for the named dialect.
func NewDB(sqldb *sql.DB, dialect string) (*bun.DB, error) {
	if sqldb == nil {
		return nil, fmt.Errorf("storage: sql database is required")
	}
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "", DialectSQLite, "sqlite3":
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case DialectPostgres, "postgresql", "pg":
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("storage: unsupported dialect %q", dialect)
	}
}

// RegisterModels creates the localisation and catalogue tables when missing.
func RegisterModels(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*LocalisedRecord)(nil),
		(*LocaleRecord)(nil),
		(*DomainRecord)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table for %T: %w", model, err)
		}
	}
	return nil
}
