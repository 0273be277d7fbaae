package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"go.uber.org/zap"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/rank"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	Scorer rank.Scorer

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ScrapeStatus *atomic.Value // stores types.ScrapeStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Scrape entrypoint (inject for testability)
	RunScrape func(ctx context.Context, cfg config.Config)

	Log *zap.Logger
}
