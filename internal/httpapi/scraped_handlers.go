package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

type ScrapedJobsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h ScrapedJobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	jobs, err := store.ListScraped(r.Context(), h.DB, store.ListScrapedOpts{
		Sort:   q.Get("sort"),
		Window: q.Get("window"),
		Limit:  limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if jobs == nil {
		jobs = []store.ScrapedJob{}
	}
	writeJSON(w, jobs)
}

func (h ScrapedJobsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.ScrapedStats(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, stats)
}

// ByPath routes /api/scraped-jobs/{id}/import and /api/scraped-jobs/{id}.
func (h ScrapedJobsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/import"):
		h.importJob(w, r)
	case r.Method == http.MethodDelete:
		h.delete(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h ScrapedJobsHandler) importJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/scraped-jobs/", "/import")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	oppID, err := store.ImportScraped(r.Context(), h.DB, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, r, http.StatusNotFound, "not_found", "scraped job not found")
			return
		}
		WriteError(w, r, http.StatusConflict, "import_failed", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobImported, 1, map[string]any{
		"id": id, "opportunity_id": oppID,
	}))
	writeJSON(w, map[string]any{"ok": true, "id": id, "opportunity_id": oppID})
}

func (h ScrapedJobsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/scraped-jobs/", "")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	if err := store.DeleteScraped(r.Context(), h.DB, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, r, http.StatusNotFound, "not_found", "scraped job not found")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
