package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type LayoutPreset struct {
	ID          pgtype.UUID
	TableKey    string
	Name        string
	ParentWidth string
	Columns     []byte
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}
