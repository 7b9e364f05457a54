package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	db "github.com/JonMunkholm/vtable/internal/database"
	"github.com/JonMunkholm/vtable/internal/layout"
	"github.com/JonMunkholm/vtable/internal/logging"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CreatePreset saves a named column layout for a registered table.
// Column widths must parse; a parent width, when given, must be usable.
func (s *Service) CreatePreset(ctx context.Context, in PresetInput) (*Preset, error) {
	if s.presets == nil {
		return nil, ErrPresetsDisabled
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrPresetNameRequired
	}
	if _, ok := Get(in.TableKey); !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, in.TableKey)
	}
	if len(in.Columns) == 0 || len(in.Columns) > s.layoutCfg.MaxColumns {
		return nil, fmt.Errorf("%w: preset needs 1-%d columns, got %d", ErrInvalidColumns, s.layoutCfg.MaxColumns, len(in.Columns))
	}
	for i, col := range in.Columns {
		if _, err := col.Width.Parse(); err != nil {
			return nil, fmt.Errorf("column %d (%s): %w", i, col.Key, err)
		}
	}
	if in.ParentWidth != "" {
		if _, _, err := layout.ParentFamily(in.ParentWidth); err != nil {
			return nil, err
		}
	}

	columnsJSON, err := json.Marshal(in.Columns)
	if err != nil {
		return nil, fmt.Errorf("marshal columns: %w", err)
	}

	result, err := s.presets.CreateLayoutPreset(ctx, db.CreateLayoutPresetParams{
		ID:          pgtype.UUID{Bytes: uuid.New(), Valid: true},
		TableKey:    in.TableKey,
		Name:        name,
		ParentWidth: in.ParentWidth,
		Columns:     columnsJSON,
	})
	if err != nil {
		if db.IsUniqueViolation(err, db.PresetNameConstraint) {
			return nil, fmt.Errorf("%w: %q for %s", ErrPresetExists, name, in.TableKey)
		}
		return nil, fmt.Errorf("create preset: %w", err)
	}

	preset, err := dbPresetToPreset(result)
	if err != nil {
		return nil, err
	}
	logging.WithFields(ctx, "table", preset.TableKey, "preset_id", preset.ID).
		Info("layout preset created",
			"name", preset.Name,
			"columns", len(preset.Columns),
			"client_ip", ClientIPFromContext(ctx),
		)
	return preset, nil
}

// GetPreset retrieves a preset by ID.
func (s *Service) GetPreset(ctx context.Context, id string) (*Preset, error) {
	if s.presets == nil {
		return nil, ErrPresetsDisabled
	}

	uid, err := ToPgUUID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid preset ID %q", ErrPresetNotFound, id)
	}

	result, err := s.presets.GetLayoutPreset(ctx, uid)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
		}
		return nil, fmt.Errorf("get preset: %w", err)
	}

	return dbPresetToPreset(result)
}

// ListPresets returns all presets for a table, ordered by name.
func (s *Service) ListPresets(ctx context.Context, tableKey string) ([]Preset, error) {
	if s.presets == nil {
		return nil, ErrPresetsDisabled
	}

	results, err := s.presets.ListLayoutPresets(ctx, tableKey)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}

	presets := make([]Preset, 0, len(results))
	for _, r := range results {
		p, err := dbPresetToPreset(r)
		if err != nil {
			logging.FromContext(ctx).Warn("skipping unreadable preset",
				"preset_id", FromPgUUID(r.ID), "error", err)
			continue
		}
		presets = append(presets, *p)
	}

	return presets, nil
}

// DeletePreset removes a preset.
func (s *Service) DeletePreset(ctx context.Context, id string) error {
	if s.presets == nil {
		return ErrPresetsDisabled
	}

	uid, err := ToPgUUID(id)
	if err != nil {
		return fmt.Errorf("%w: invalid preset ID %q", ErrPresetNotFound, id)
	}

	n, err := s.presets.DeleteLayoutPreset(ctx, uid)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, id)
	}

	logging.WithFields(ctx, "preset_id", id).
		Info("layout preset deleted", "client_ip", ClientIPFromContext(ctx))
	return nil
}

// ResolvePreset resolves a saved layout. An empty parentWidth falls back to
// the preset's own parent width, then to the configured default.
func (s *Service) ResolvePreset(ctx context.Context, id, parentWidth string) (*LayoutResult, error) {
	preset, err := s.GetPreset(ctx, id)
	if err != nil {
		return nil, err
	}

	if parentWidth == "" {
		parentWidth = preset.ParentWidth
	}

	result, err := s.ResolveColumns(ctx, preset.Columns, parentWidth)
	if err != nil {
		return nil, fmt.Errorf("resolve preset %s: %w", id, err)
	}
	result.TableKey = preset.TableKey
	result.PresetID = preset.ID
	return result, nil
}
