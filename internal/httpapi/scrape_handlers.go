package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/scrape/types"
)

type ScrapeHandler struct {
	CfgVal       *atomic.Value // config.Config
	ScrapeStatus *atomic.Value // types.ScrapeStatus
	RunScrape    func(ctx context.Context, cfg config.Config)
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, _ := h.ScrapeStatus.Load().(types.ScrapeStatus)
	writeJSON(w, st)
}

func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	st, _ := h.ScrapeStatus.Load().(types.ScrapeStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	go h.RunScrape(context.Background(), cfg)

	writeJSON(w, map[string]any{"ok": true})
}
