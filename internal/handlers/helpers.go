package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// errorBody mirrors the status/message envelope returned by MCP tools.
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RequireMethod reports whether r uses one of methods (GET also admits HEAD).
// On mismatch it writes a 405 with an Allow header and returns false.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m || (m == http.MethodGet && r.Method == http.MethodHead) {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed. Use "+strings.Join(methods, " or "))
	return false
}

// WriteJSON encodes data as the response body with statusCode.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes {"status":"error","message":...}.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, errorBody{Status: "error", Message: message})
}
