package scrape

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/rank"
	"jobtrack-engine/internal/scrape/remoteok"
	"jobtrack-engine/internal/scrape/types"
	"jobtrack-engine/internal/scrape/util"
)

// RunOnce fetches from every enabled source, scores the leads, and stores
// them. Fetcher failures are logged, not fatal; the other sources still run.
func RunOnce(ctx context.Context, db *sql.DB, cfg config.Config, scorer rank.Scorer, boardToken string, onNewJob func(), log *zap.Logger) (added int, err error) {
	if log == nil {
		log = zap.NewNop()
	}

	limiter := util.NewHostLimiter(1.0, 2)

	var fetchers []types.Fetcher
	if cfg.Source.RemoteOK.Enabled {
		fetchers = append(fetchers, remoteok.New(remoteok.Config{
			BaseURL: cfg.Source.RemoteOK.BaseURL,
			Limit:   cfg.Source.RemoteOK.Limit,
			Token:   boardToken,
		}, limiter))
	}

	var g errgroup.Group
	results := make(chan types.ScrapeResult, len(fetchers))

	for _, f := range fetchers {
		f := f
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			defer cancel()

			log.Info("fetching", zap.String("source", f.Name()))
			res, err := f.Fetch(fctx)
			if err != nil {
				// best-effort: don't cancel siblings
				log.Warn("fetch failed", zap.String("source", f.Name()), zap.Error(err))
				return nil
			}
			results <- res
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	insertCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	total := 0
	for res := range results {
		log.Info("source done",
			zap.String("source", res.Source),
			zap.Int("leads", len(res.Leads)))
		if len(res.Leads) > 0 {
			total += ProcessLeads(insertCtx, db, scorer, cfg.Relevance.Keywords, res.Source, res.Leads, onNewJob, log)
		}
	}

	return total, nil
}
