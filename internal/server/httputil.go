package server

import (
	"encoding/json"
	"net/http"

	"github.com/opmodel/legacyui/internal/output"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Error codes returned in error bodies.
const (
	codeInvalidBody = "INVALID_BODY"
	codeInvalidMode = "INVALID_MODE"
	codeMissing     = "MISSING_FIELD"

	codeStoreUnavailable = "STORE_UNAVAILABLE"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		output.Warn("encoding response", "err", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// decodeJSON decodes the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
