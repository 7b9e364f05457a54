package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/vtable/internal/selection"
	"github.com/go-chi/chi/v5"
)

// startSelectionRequest is the body of POST /api/selection.
// Status may be shorter than Keys; missing entries start unchecked.
type startSelectionRequest struct {
	TableKey string   `json:"tableKey"`
	Keys     []string `json:"keys"`
	Status   []bool   `json:"status"`
}

func (s *Server) handleStartSelection(w http.ResponseWriter, r *http.Request) {
	var req startSelectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	state, err := s.service.StartSelection(r.Context(), req.TableKey, req.Keys, req.Status)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.Selection(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// handleToggleSelection flips the row at {index}.
func (s *Server) handleToggleSelection(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %q", selection.ErrIndexOutOfRange, raw))
		return
	}

	state, err := s.service.ToggleSelection(chi.URLParam(r, "id"), index)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleToggleAllSelection(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.ToggleAllSelection(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleEndSelection(w http.ResponseWriter, r *http.Request) {
	if err := s.service.EndSelection(chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
