// Package endpoints implements the docweb HTTP API. Each endpoint doubles
// as a cobra command that calls the running server, so the CLI and the HTTP
// surface never drift apart.
package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ujwalkandi/docweb/internal/session"
	"github.com/ujwalkandi/docweb/internal/svcctx"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// sessionFromRequest resolves the {id} path value to a stored session.
// On failure it writes the error response and reports ok=false.
func sessionFromRequest(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	store := svcctx.SessionsFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "session store not initialized")
		return session.Session{}, false
	}

	s, err := store.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document session not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return session.Session{}, false
	}
	return s, true
}
