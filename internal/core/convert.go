package core

// convert.go moves preset values between API types and pgtype columns.

import (
	"encoding/json"
	"fmt"
	"time"

	db "github.com/JonMunkholm/vtable/internal/database"
	"github.com/JonMunkholm/vtable/internal/layout"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ToPgUUID parses a string ID into pgtype.UUID.
func ToPgUUID(id string) (pgtype.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: uid, Valid: true}, nil
}

// FromPgUUID returns the canonical string form, or "" if invalid.
func FromPgUUID(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

// FromPgTimestamptz returns the time, or the zero time if invalid.
func FromPgTimestamptz(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return ts.Time
}

// dbPresetToPreset converts a database row to our API type.
func dbPresetToPreset(p db.LayoutPreset) (*Preset, error) {
	var columns []layout.ColumnSpec
	if err := json.Unmarshal(p.Columns, &columns); err != nil {
		return nil, fmt.Errorf("unmarshal columns: %w", err)
	}

	return &Preset{
		ID:          FromPgUUID(p.ID),
		TableKey:    p.TableKey,
		Name:        p.Name,
		ParentWidth: p.ParentWidth,
		Columns:     columns,
		CreatedAt:   FromPgTimestamptz(p.CreatedAt),
		UpdatedAt:   FromPgTimestamptz(p.UpdatedAt),
	}, nil
}
