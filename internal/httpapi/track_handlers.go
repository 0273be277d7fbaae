package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

// TrackHandler serves the opportunity pipeline and interview prep views.
type TrackHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h TrackHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := store.DashboardMetrics(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, m)
}

func (h TrackHandler) Pipeline(w http.ResponseWriter, r *http.Request) {
	entries, err := store.Pipeline(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if entries == nil {
		entries = []store.PipelineEntry{}
	}
	writeJSON(w, entries)
}

func (h TrackHandler) TodaysAgenda(w http.ResponseWriter, r *http.Request) {
	items, err := store.TodaysAgenda(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if items == nil {
		items = []store.AgendaItem{}
	}
	writeJSON(w, items)
}

func (h TrackHandler) AddOpportunity(w http.ResponseWriter, r *http.Request) {
	var o domain.Opportunity
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(o.Company) == "" || strings.TrimSpace(o.Role) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_input", "company and role are required")
		return
	}

	id, err := store.AddOpportunity(r.Context(), h.DB, o)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeOpportunityCreated, 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"success": true, "message": "Opportunity added successfully", "id": id})
}

func (h TrackHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var q store.InterviewQuestion
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(q.QuestionText) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_input", "question_text is required")
		return
	}

	id, err := store.AddQuestion(r.Context(), h.DB, q)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"success": true, "message": "Question added successfully", "id": id})
}

func (h TrackHandler) RecentQuestions(w http.ResponseWriter, r *http.Request) {
	qs, err := store.RecentQuestions(r.Context(), h.DB, 20)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if qs == nil {
		qs = []store.InterviewQuestion{}
	}
	writeJSON(w, qs)
}
