package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createLayoutPreset = `-- name: CreateLayoutPreset :one
INSERT INTO layout_presets (id, table_key, name, parent_width, columns)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, table_key, name, parent_width, columns, created_at, updated_at
`

type CreateLayoutPresetParams struct {
	ID          pgtype.UUID
	TableKey    string
	Name        string
	ParentWidth string
	Columns     []byte
}

func (q *Queries) CreateLayoutPreset(ctx context.Context, arg CreateLayoutPresetParams) (LayoutPreset, error) {
	row := q.db.QueryRow(ctx, createLayoutPreset,
		arg.ID,
		arg.TableKey,
		arg.Name,
		arg.ParentWidth,
		arg.Columns,
	)
	var i LayoutPreset
	err := row.Scan(
		&i.ID,
		&i.TableKey,
		&i.Name,
		&i.ParentWidth,
		&i.Columns,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteLayoutPreset = `-- name: DeleteLayoutPreset :execrows
DELETE FROM layout_presets WHERE id = $1
`

func (q *Queries) DeleteLayoutPreset(ctx context.Context, id pgtype.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteLayoutPreset, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getLayoutPreset = `-- name: GetLayoutPreset :one
SELECT id, table_key, name, parent_width, columns, created_at, updated_at
FROM layout_presets
WHERE id = $1
`

func (q *Queries) GetLayoutPreset(ctx context.Context, id pgtype.UUID) (LayoutPreset, error) {
	row := q.db.QueryRow(ctx, getLayoutPreset, id)
	var i LayoutPreset
	err := row.Scan(
		&i.ID,
		&i.TableKey,
		&i.Name,
		&i.ParentWidth,
		&i.Columns,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listLayoutPresets = `-- name: ListLayoutPresets :many
SELECT id, table_key, name, parent_width, columns, created_at, updated_at
FROM layout_presets
WHERE table_key = $1
ORDER BY name
`

func (q *Queries) ListLayoutPresets(ctx context.Context, tableKey string) ([]LayoutPreset, error) {
	rows, err := q.db.Query(ctx, listLayoutPresets, tableKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LayoutPreset
	for rows.Next() {
		var i LayoutPreset
		if err := rows.Scan(
			&i.ID,
			&i.TableKey,
			&i.Name,
			&i.ParentWidth,
			&i.Columns,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
