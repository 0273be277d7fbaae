package httpapi

import (
	"database/sql"
	"net/http"

	"jobtrack-engine/internal/store"
)

type PracticeHandler struct {
	DB *sql.DB
}

func (h PracticeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.SQLPracticeStats(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, stats)
}

func (h PracticeHandler) Recent(w http.ResponseWriter, r *http.Request) {
	sessions, err := store.RecentPractice(r.Context(), h.DB, 10)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if sessions == nil {
		sessions = []store.PracticeSession{}
	}
	writeJSON(w, sessions)
}
