package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/rank"
)

// ScoreHandler scores ad-hoc postings without touching storage.
type ScoreHandler struct {
	Scorer rank.Scorer
}

func (h ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var p domain.Posting
	if err := dec.Decode(&p); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	res, err := h.Scorer.ScoreJob(p)
	if err != nil {
		if errors.Is(err, rank.ErrInvalidInput) {
			WriteError(w, r, http.StatusBadRequest, "invalid_input", err.Error())
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "score_failed", err.Error())
		return
	}

	writeJSON(w, res)
}
