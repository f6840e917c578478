package apiserver

import (
	"encoding/json"
	"net/http"
)

// writeJSONResponse writes payload as JSON with the given status code.
func writeJSONResponse(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeJSONError writes a single error message as JSON.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSONResponse(w, statusCode, map[string]string{"error": message})
}

// writeFieldErrors writes field-level validation messages keyed by form field.
func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSONResponse(w, http.StatusBadRequest, map[string]interface{}{"errors": fields})
}

// writeSuccess writes the generic success reply used by the form-intent
// endpoints.
func writeSuccess(w http.ResponseWriter, statusCode int) {
	writeJSONResponse(w, statusCode, map[string]bool{"success": true})
}
