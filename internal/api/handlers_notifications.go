package api

import (
	"net/http"
	"strconv"
)

// NotificationsHandler handles GET /api/notifications?limit=&start=
func (s *Server) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	cred := credentialFromCtx(r.Context())

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	start, _ := strconv.Atoi(q.Get("start"))

	page, err := s.notify.List(r.Context(), cred.Username, limit, start)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "loading notifications")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// NotificationsClearHandler handles DELETE /api/notifications
func (s *Server) NotificationsClearHandler(w http.ResponseWriter, r *http.Request) {
	cred := credentialFromCtx(r.Context())

	if err := s.notify.Clear(r.Context(), cred.Username); err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "clearing notifications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
