// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteFieldErrors writes an error envelope of the form
// {"errors": {"field": ["message", ...]}}.
func WriteFieldErrors(w http.ResponseWriter, status int, fields map[string][]string) {
	WriteJSON(w, status, map[string]any{"errors": fields})
}

// WriteFieldError writes an error envelope holding a single field message.
func WriteFieldError(w http.ResponseWriter, status int, field, message string) {
	WriteFieldErrors(w, status, map[string][]string{field: {message}})
}

// WriteOK writes a 200 OK response with data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}
