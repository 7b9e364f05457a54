package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/vtable/internal/config"
	"github.com/JonMunkholm/vtable/internal/layout"
	"github.com/JonMunkholm/vtable/internal/logging"
)

// Service provides the core business logic for table layouts.
type Service struct {
	layoutCfg    config.LayoutConfig
	selectionCfg config.SelectionConfig
	presets      PresetStore // nil when presets are disabled

	now func() time.Time

	mu         sync.RWMutex
	selections map[string]*selectionSession
}

// NewService creates a new Service. store may be nil, in which case preset
// operations return ErrPresetsDisabled.
func NewService(cfg *config.Config, store PresetStore) *Service {
	return &Service{
		layoutCfg:    cfg.Layout,
		selectionCfg: cfg.Selection,
		presets:      store,
		now:          time.Now,
		selections:   make(map[string]*selectionSession),
	}
}

// PresetsEnabled reports whether a preset store is configured.
func (s *Service) PresetsEnabled() bool {
	return s.presets != nil
}

// DefaultParentWidth returns the parent width used when a request omits one.
func (s *Service) DefaultParentWidth() string {
	return s.layoutCfg.DefaultParentWidth
}

// ListTables returns information about all registered tables.
func (s *Service) ListTables() []TableInfo {
	views := All()
	infos := make([]TableInfo, len(views))
	for i, v := range views {
		infos[i] = v.Info
	}
	return infos
}

// ListTablesByGroup returns tables organized by group.
func (s *Service) ListTablesByGroup() map[string][]TableInfo {
	result := make(map[string][]TableInfo)
	for _, group := range Groups() {
		for _, v := range ByGroup(group) {
			result[group] = append(result[group], v.Info)
		}
	}
	return result
}

// ResolveColumns resolves every column width against parentWidth using the
// configured reserves. An empty parentWidth uses the configured default.
// Malformed column widths are resolved as auto and returned as diagnostics.
// No columns yield an empty result once the parent width is known to be usable.
func (s *Service) ResolveColumns(ctx context.Context, columns []layout.ColumnSpec, parentWidth string) (*LayoutResult, error) {
	if len(columns) > s.layoutCfg.MaxColumns {
		return nil, fmt.Errorf("%w: %d columns exceeds limit of %d", ErrInvalidColumns, len(columns), s.layoutCfg.MaxColumns)
	}
	if parentWidth == "" {
		parentWidth = s.layoutCfg.DefaultParentWidth
	}

	family, _, err := layout.ParentFamily(parentWidth)
	if err != nil {
		return nil, err
	}

	logger := logging.WithFields(ctx, "parent_width", parentWidth)
	resolved, diags, err := layout.Resolve(columns, parentWidth,
		layout.WithPercentReserve(s.layoutCfg.PercentReserve),
		layout.WithPixelReserve(s.layoutCfg.PixelReserve),
		layout.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	if diags == nil {
		diags = []layout.Diagnostic{}
	}

	logger.Debug("layout resolved",
		"columns", len(resolved),
		"family", family.String(),
		"diagnostics", len(diags),
	)

	return &LayoutResult{
		ParentWidth: parentWidth,
		Family:      family.String(),
		Columns:     resolved,
		Diagnostics: diags,
	}, nil
}

// ResolveTable resolves the declared columns of a registered table view.
func (s *Service) ResolveTable(ctx context.Context, tableKey, parentWidth string) (*LayoutResult, error) {
	view, ok := Get(tableKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableKey)
	}

	result, err := s.ResolveColumns(ctx, view.Columns, parentWidth)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", tableKey, err)
	}
	result.TableKey = tableKey
	return result, nil
}
