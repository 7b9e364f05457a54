package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PresetNameConstraint is the unique constraint on (table_key, name).
const PresetNameConstraint = "layout_presets_table_name_unique"

const schema = `
CREATE TABLE IF NOT EXISTS layout_presets (
    id           UUID PRIMARY KEY,
    table_key    TEXT NOT NULL,
    name         TEXT NOT NULL,
    parent_width TEXT NOT NULL DEFAULT '',
    columns      JSONB NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT ` + PresetNameConstraint + ` UNIQUE (table_key, name)
);

CREATE INDEX IF NOT EXISTS layout_presets_table_key_idx ON layout_presets (table_key);
`

// EnsureSchema creates the preset table and its index when missing.
func (q *Queries) EnsureSchema(ctx context.Context) error {
	if _, err := q.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is pgx's no-rows error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a unique violation on constraint.
// An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
