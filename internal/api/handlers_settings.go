package api

import (
	"errors"
	"net/http"

	"github.com/org/floodgate/internal/storage"
	"github.com/org/floodgate/pkg/models"
)

// SettingsGetHandler handles GET /api/settings[?property=]
func (s *Server) SettingsGetHandler(w http.ResponseWriter, r *http.Request) {
	cred := credentialFromCtx(r.Context())

	result, err := s.settings.Get(r.Context(), cred.Username, r.URL.Query().Get("property"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "unknown settings property")
			return
		}
		writeError(w, http.StatusInternalServerError, codeInternal, "loading settings")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SettingsSetHandler handles PATCH /api/settings
func (s *Server) SettingsSetHandler(w http.ResponseWriter, r *http.Request) {
	cred := credentialFromCtx(r.Context())

	var patch models.Settings
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	saved, err := s.settings.Set(r.Context(), cred.Username, patch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "saving settings")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
