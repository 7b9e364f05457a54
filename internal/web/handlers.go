package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/vtable/internal/core"
	"github.com/JonMunkholm/vtable/internal/logging"
	"github.com/JonMunkholm/vtable/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// handleDashboard renders the list of registered table views.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var groups []templates.TableGroup
	for _, groupName := range core.Groups() {
		views := core.ByGroup(groupName)
		infos := make([]core.TableInfo, len(views))
		for i, v := range views {
			infos[i] = v.Info
		}
		groups = append(groups, templates.TableGroup{Name: groupName, Tables: infos})
	}

	s.render(w, r, templates.Dashboard(groups, s.service.DefaultParentWidth()))
}

// handleTableView renders one table's header at ?width=, optionally using
// the saved preset in ?preset=.
func (s *Server) handleTableView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tableKey := chi.URLParam(r, "tableKey")
	parentWidth := r.URL.Query().Get("width")
	presetID := r.URL.Query().Get("preset")

	view, ok := core.Get(tableKey)
	if !ok {
		s.respondError(w, r, fmt.Errorf("%w: %s", core.ErrTableNotFound, tableKey))
		return
	}

	var (
		result *core.LayoutResult
		err    error
	)
	if presetID != "" {
		result, err = s.service.ResolvePreset(ctx, presetID, parentWidth)
		if err == nil && result.TableKey != tableKey {
			err = fmt.Errorf("%w: %s has no preset %s", core.ErrPresetNotFound, tableKey, presetID)
		}
	} else {
		result, err = s.service.ResolveTable(ctx, tableKey, parentWidth)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	data := templates.TableViewData{
		Info:           view.Info,
		Layout:         result,
		PresetsEnabled: s.service.PresetsEnabled(),
		ActivePresetID: presetID,
	}
	if data.PresetsEnabled {
		presets, err := s.service.ListPresets(ctx, tableKey)
		if err != nil {
			// The page still renders with the declared layout.
			logging.FromContext(ctx).Warn("list presets for page", "table", tableKey, "error", err)
		}
		data.Presets = presets
	}

	s.render(w, r, templates.TableView(data))
}

// handleListTables returns all tables organized by group.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListTablesByGroup())
}

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status         string `json:"status"`
	Tables         int    `json:"tables"`
	Selections     int    `json:"selections"`
	PresetsEnabled bool   `json:"presetsEnabled"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "ok",
		Tables:         core.TableCount(),
		Selections:     s.service.SelectionCount(),
		PresetsEnabled: s.service.PresetsEnabled(),
	})
}

// render writes a templ component as an HTML page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "path", r.URL.Path, "error", err)
	}
}
