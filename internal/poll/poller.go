package poll

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/rank"
	"jobtrack-engine/internal/scrape"
	"jobtrack-engine/internal/scrape/types"
	"jobtrack-engine/internal/secrets"
)

// StartPoller launches the background scrape loop. The interval is re-read
// from the live config each cycle, so a PUT /config takes effect without a
// restart.
func StartPoller(ctx context.Context, db *sql.DB, cfgVal, scrapeStatus *atomic.Value, scorer rank.Scorer, hub *events.Hub, log *zap.Logger) {
	go func() {
		for {
			interval := 15 * time.Minute
			if cfgAny := cfgVal.Load(); cfgAny != nil {
				cfg := cfgAny.(config.Config)
				if cfg.Polling.ScrapeSeconds > 0 {
					interval = time.Duration(cfg.Polling.ScrapeSeconds) * time.Second
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}

			cfgAny := cfgVal.Load()
			if cfgAny == nil {
				continue
			}
			cfg := cfgAny.(config.Config)
			if !cfg.Source.RemoteOK.Enabled {
				continue
			}

			RunScrape(ctx, db, cfg, scrapeStatus, scorer, hub, log)
		}
	}()
}

// RunScrape executes one scrape cycle and keeps ScrapeStatus current. Shared
// by the poller and the POST /scrape/run handler.
func RunScrape(ctx context.Context, db *sql.DB, cfg config.Config, scrapeStatus *atomic.Value, scorer rank.Scorer, hub *events.Hub, log *zap.Logger) {
	st := loadStatus(scrapeStatus)
	if st.Running {
		return
	}
	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	scrapeStatus.Store(st)

	token, err := secrets.GetBoardToken(cfg.Source.RemoteOK.TokenAccount)
	if err != nil {
		log.Warn("board token lookup failed", zap.Error(err))
	}

	added, err := scrape.RunOnce(ctx, db, cfg, scorer, token, func() {
		hub.Publish(events.MakeEvent("", events.TypeJobCreated, 1, nil))
	}, log)

	st = loadStatus(scrapeStatus)
	st.Running = false
	st.LastAdded = added

	if err != nil {
		st.LastError = err.Error()
		log.Error("scrape cycle failed", zap.Error(err))
	} else {
		st.LastError = ""
		st.LastOkAt = time.Now().Format(time.RFC3339)
		log.Info("scrape cycle done", zap.Int("added", added))
	}
	scrapeStatus.Store(st)

	hub.Publish(events.MakeEvent("", events.TypeScrapeDone, 1, map[string]int{"added": added}))
}

func loadStatus(v *atomic.Value) types.ScrapeStatus {
	if stAny := v.Load(); stAny != nil {
		return stAny.(types.ScrapeStatus)
	}
	return types.ScrapeStatus{}
}
