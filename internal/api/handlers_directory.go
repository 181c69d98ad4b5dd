package api

import (
	"errors"
	"net/http"

	"github.com/org/floodgate/internal/fsguard"
)

// DirectoryListHandler handles GET /api/directory-list?path=
func (s *Server) DirectoryListHandler(w http.ResponseWriter, r *http.Request) {
	listing, err := s.guard.List(r.URL.Query().Get("path"))
	if err != nil {
		switch {
		case errors.Is(err, fsguard.ErrEmptyPath):
			writeError(w, http.StatusNotFound, codeNotFound, "path is missing or empty")
		case errors.Is(err, fsguard.ErrDenied):
			writeError(w, http.StatusForbidden, codeAccess, "path is outside allowed directories")
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "directory could not be read")
		}
		return
	}
	writeJSON(w, http.StatusOK, listing)
}
