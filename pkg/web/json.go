// Package web holds the JSON response helpers shared by all handlers.
package web

import (
	"encoding/json"
	"net/http"
)

// WriteJSON serializes v with the given status. Encoding failures are
// unrecoverable at this point (headers already sent) and are ignored.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the fixed {"error": ...} failure shape.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}
