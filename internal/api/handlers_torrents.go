package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/org/floodgate/internal/fsguard"
	"github.com/org/floodgate/internal/torrents"
)

// resolveContent maps the route's (hash, indices) to files via the
// torrent-client adapter and containment-checks every resolved path
// before any of them is served.
func (s *Server) resolveContent(w http.ResponseWriter, r *http.Request) ([]torrents.ContentFile, bool) {
	hash := chi.URLParam(r, "hash")
	indices := chi.URLParam(r, "indices")

	files, err := s.client.ContentFiles(r.Context(), hash, indices)
	if err != nil {
		if errors.Is(err, torrents.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "content not found")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, codeInternal, "resolving content")
		return nil, false
	}

	for _, f := range files {
		if !s.guard.IsAllowed(fsguard.Sanitize(f.Path)) {
			writeError(w, http.StatusForbidden, codeAccess, "content path is outside allowed directories")
			return nil, false
		}
	}
	return files, true
}

// ContentDataHandler handles GET /api/torrents/{hash}/contents/{indices}/data
func (s *Server) ContentDataHandler(w http.ResponseWriter, r *http.Request) {
	files, ok := s.resolveContent(w, r)
	if !ok {
		return
	}

	// A multi-file selection is answered with its manifest; single files
	// are streamed directly.
	if len(files) > 1 {
		writeJSON(w, http.StatusOK, map[string]any{"files": files})
		return
	}

	f := files[0]
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Name+`"`)
	http.ServeFile(w, r, f.Path)
}

// ContentSubtitlesHandler handles GET /api/torrents/{hash}/contents/{indices}/subtitles
func (s *Server) ContentSubtitlesHandler(w http.ResponseWriter, r *http.Request) {
	files, ok := s.resolveContent(w, r)
	if !ok {
		return
	}

	f := files[0]
	switch strings.ToLower(filepath.Ext(f.Name)) {
	case ".vtt":
		w.Header().Set("Content-Type", "text/vtt")
	case ".srt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		writeError(w, http.StatusNotFound, codeNotFound, "no subtitle track at index")
		return
	}
	http.ServeFile(w, r, f.Path)
}
