package server

import (
	"net/http"
	"strings"

	"evalbank/internal/session"
)

const sessionIDHeader = "X-Session-Id"

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"sessionId": session.NewSessionID(),
	})
}

// handleSelection reads or replaces the caller's remembered hierarchy
// selection. A session with no stored selection reads back as the zero
// selection rather than an error.
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.Header.Get(sessionIDHeader))
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session id header required")
		return
	}
	switch r.Method {
	case http.MethodGet:
		sel, _, err := s.selections.Get(sessionID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, sel)
	case http.MethodPut:
		var sel session.Selection
		if !decodeBody(w, r, &sel) {
			return
		}
		if err := s.selections.Put(sessionID, sel); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
	case http.MethodDelete:
		if err := s.selections.Delete(sessionID); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	default:
		methodNotAllowed(w)
	}
}
