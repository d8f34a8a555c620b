package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/opmodel/legacyui/internal/fieldlogic"
	"github.com/opmodel/legacyui/internal/output"
	"github.com/opmodel/legacyui/internal/version"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	StoreVersion  *int64 `json:"storeVersion,omitempty"`
}

// handleHealth reports liveness. A store whose schema version cannot be read
// makes the server unhealthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{Status: "ok", Version: version.Version}
	if s.cfg.Store != nil {
		v, err := s.cfg.Store.MigrationVersion()
		if err != nil {
			output.Warn("store health check failed", "err", err)
			writeError(w, http.StatusServiceUnavailable, codeStoreUnavailable, "field definition store unavailable")
			return
		}
		resp.StoreVersion = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.cfg.Metadata.Reload()
	output.Info("metadata reloaded", "request_id", RequestID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// handleSubpanels translates the subpanels of a module. The path accepts
// either the frontend or the legacy module name. Unknown modules yield an
// empty schema.
func (s *Server) handleSubpanels(w http.ResponseWriter, r *http.Request) {
	module := chi.URLParam(r, "module")
	if s.cfg.Modules != nil {
		module = s.cfg.Modules.ToLegacy(module)
	}
	writeJSON(w, http.StatusOK, s.cfg.Translator.Translate(module))
}

// FieldLogicRequest is the body of POST /v1/field-logic/{mode}.
type FieldLogicRequest struct {
	Field  *fieldlogic.Field  `json:"field"`
	Record *fieldlogic.Record `json:"record,omitempty"`
}

// FieldLogicResponse carries the field after its logic ran.
type FieldLogicResponse struct {
	Field   *fieldlogic.Field `json:"field"`
	Invoked []string          `json:"invoked"`
}

func (s *Server) handleFieldLogic(w http.ResponseWriter, r *http.Request) {
	mode := fieldlogic.ViewMode(strings.ToLower(chi.URLParam(r, "mode")))
	if mode == "" {
		writeError(w, http.StatusBadRequest, codeInvalidMode, "view mode is required")
		return
	}

	var req FieldLogicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body: "+err.Error())
		return
	}
	if req.Field == nil || req.Field.Name == "" {
		writeError(w, http.StatusBadRequest, codeMissing, "field.name is required")
		return
	}

	invoked := s.cfg.Logic.RunLogic(r.Context(), req.Field, mode, req.Record)
	if invoked == nil {
		invoked = []string{}
	}

	writeJSON(w, http.StatusOK, FieldLogicResponse{Field: req.Field, Invoked: invoked})
}
