// Package core provides the business logic for table layouts.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"context"
	"time"

	db "github.com/JonMunkholm/vtable/internal/database"
	"github.com/JonMunkholm/vtable/internal/layout"
	"github.com/jackc/pgx/v5/pgtype"
)

// TableInfo contains display information about a table view.
type TableInfo struct {
	Key         string `json:"key"`         // Unique identifier: "sfdc_customers"
	Group       string `json:"group"`       // Data source: "SFDC", "NS", "Anrok"
	Label       string `json:"label"`       // Display name: "Customers"
	Description string `json:"description,omitempty"`
	Selectable  bool   `json:"selectable"` // Leading checkbox column present
}

// TableView is a registered table with its declared column widths.
type TableView struct {
	Info    TableInfo
	Columns []layout.ColumnSpec
}

// LayoutResult is the outcome of resolving one set of columns.
type LayoutResult struct {
	TableKey    string              `json:"tableKey,omitempty"`
	PresetID    string              `json:"presetId,omitempty"`
	ParentWidth string              `json:"parentWidth"`
	Family      string              `json:"family"` // "percent" or "px"
	Columns     []layout.ColumnSpec `json:"columns"`
	Diagnostics []layout.Diagnostic `json:"diagnostics"`
}

// Preset is a saved column layout for a table view.
type Preset struct {
	ID          string              `json:"id"`
	TableKey    string              `json:"tableKey"`
	Name        string              `json:"name"`
	ParentWidth string              `json:"parentWidth,omitempty"`
	Columns     []layout.ColumnSpec `json:"columns"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// PresetInput is the caller-supplied part of a new preset.
type PresetInput struct {
	TableKey    string              `json:"tableKey"`
	Name        string              `json:"name"`
	ParentWidth string              `json:"parentWidth,omitempty"`
	Columns     []layout.ColumnSpec `json:"columns"`
}

// PresetStore is the persistence used for presets.
// Satisfied by *database.Queries.
type PresetStore interface {
	CreateLayoutPreset(ctx context.Context, arg db.CreateLayoutPresetParams) (db.LayoutPreset, error)
	GetLayoutPreset(ctx context.Context, id pgtype.UUID) (db.LayoutPreset, error)
	ListLayoutPresets(ctx context.Context, tableKey string) ([]db.LayoutPreset, error)
	DeleteLayoutPreset(ctx context.Context, id pgtype.UUID) (int64, error)
}

// SelectionState is a snapshot of a selection session.
type SelectionState struct {
	ID         string    `json:"id"`
	TableKey   string    `json:"tableKey,omitempty"`
	Keys       []string  `json:"keys"`
	Status     []bool    `json:"status"`
	Checked    []string  `json:"checked"`
	AllChecked bool      `json:"allChecked"`
	Count      int       `json:"count"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
