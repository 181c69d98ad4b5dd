package api

import (
	"net/http"
	"strconv"

	"github.com/org/floodgate/pkg/models"
)

// HistoryHandler handles GET /api/history?snapshot=<period>&limit=
func (s *Server) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	period := models.HistoryPeriod(q.Get("snapshot"))
	if period == "" {
		period = models.PeriodFiveMin
	}
	if _, ok := period.Span(); !ok {
		writeError(w, http.StatusBadRequest, codeBadRequest, "unknown snapshot period")
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))

	h, err := s.history.Query(r.Context(), period, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "loading history")
		return
	}
	writeJSON(w, http.StatusOK, h)
}
