package web

import (
	"net/http"

	"github.com/JonMunkholm/vtable/internal/core"
	"github.com/go-chi/chi/v5"
)

// handleListPresets returns the saved layouts of a table.
func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")
	if _, ok := core.Get(tableKey); !ok {
		s.respondError(w, r, core.ErrTableNotFound)
		return
	}

	presets, err := s.service.ListPresets(r.Context(), tableKey)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, presets)
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := s.service.GetPreset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, preset)
}

// handlePresetLayout resolves a saved layout at ?width=, falling back to the
// width stored with the preset.
func (s *Server) handlePresetLayout(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.ResolvePreset(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("width"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreatePreset(w http.ResponseWriter, r *http.Request) {
	var in core.PresetInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	preset, err := s.service.CreatePreset(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, preset)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeletePreset(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
