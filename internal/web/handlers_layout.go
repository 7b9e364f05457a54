package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/vtable/internal/core"
	"github.com/JonMunkholm/vtable/internal/layout"
	"github.com/go-chi/chi/v5"
)

// resolveRequest is the body of POST /api/layout/resolve.
type resolveRequest struct {
	ParentWidth string              `json:"parentWidth"`
	Columns     []layout.ColumnSpec `json:"columns"`
}

// handleResolveLayout resolves an ad-hoc column list.
func (s *Server) handleResolveLayout(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.service.ResolveColumns(r.Context(), req.Columns, req.ParentWidth)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleTableLayout resolves a registered table at ?width=.
func (s *Server) handleTableLayout(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")

	result, err := s.service.ResolveTable(r.Context(), tableKey, r.URL.Query().Get("width"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", core.ErrMalformedRequest, err)
	}
	return nil
}
