package responses

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every JSON error the console returns. It has
// the same shape as the errors the users API sends back.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteState writes a per-session state document that browsers and proxies
// must not cache.
func WriteState(w http.ResponseWriter, v any) {
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

func WriteNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "no console route for "+r.Method+" "+r.URL.Path)
}

func WriteBadRequest(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusBadRequest, msg)
}

// WriteNoSession answers requests that need a session cookie the console
// never issued or has already expired.
func WriteNoSession(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "no active session")
}
