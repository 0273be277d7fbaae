package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/httpapi"
	"jobtrack-engine/internal/logger"
	"jobtrack-engine/internal/poll"
	"jobtrack-engine/internal/profile"
	"jobtrack-engine/internal/rank"
	"jobtrack-engine/internal/scheduler"
	"jobtrack-engine/internal/scrape/types"
	"jobtrack-engine/internal/store"
)

func main() {
	debug := flag.Bool("debug", false, "verbose console logging")
	flag.Parse()

	log, err := logger.New(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log); err != nil {
		log.Fatal("engine exited", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	// Data dir: env if provided, else local folder.
	dataDir := os.Getenv("JOBTRACK_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// One engine per data dir; a second instance would fight over the db.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		return fmt.Errorf("config bootstrap: %w", err)
	}

	// Load config and keep it reloadable.
	var cfgVal atomic.Value
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, wmsg := range vr.Warnings {
			log.Warn("config warning", zap.String("warning", wmsg))
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("config invalid: %v", vr.Errors)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load (%s): %w", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	doc, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		return fmt.Errorf("profile load (%s): %w", cfg.ProfilePath, err)
	}
	engine := rank.NewEngine(doc, log.Named("rank"))

	db, err := store.Open(filepath.Join(dataDir, "jobtrack.db"))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	hub := events.NewHub()

	var scrapeStatus atomic.Value
	scrapeStatus.Store(types.ScrapeStatus{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runScrape := func(runCtx context.Context, runCfg config.Config) {
		poll.RunScrape(runCtx, db.Pool, runCfg, &scrapeStatus, engine, hub, log.Named("scrape"))
	}

	poll.StartPoller(ctx, db.Pool, &cfgVal, &scrapeStatus, engine, hub, log.Named("poll"))

	go scheduler.Every(ctx, 24*time.Hour, "cleanup", func(context.Context) error {
		cur := cfgVal.Load().(config.Config)
		n, err := store.CleanupScraped(db.Pool, cur.Polling.CleanupHours)
		if err == nil && n > 0 {
			log.Info("cleanup removed stale scraped jobs", zap.Int64("deleted", n))
		}
		return err
	}, log.Named("scheduler"))

	mux := httpapi.NewMux(httpapi.Deps{
		DB:           db.Pool,
		Hub:          hub,
		Scorer:       engine,
		CfgVal:       &cfgVal,
		ScrapeStatus: &scrapeStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		RunScrape:    runScrape,
		Log:          log,
	})

	if cfg.Dashboard.Dir != "" {
		fs := http.FileServer(http.Dir(cfg.Dashboard.Dir))
		mux.Handle("/dashboard/", http.StripPrefix("/dashboard/", fs))
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.Cors,
			httpapi.Recover(log),
			httpapi.AccessLog(log.Named("http")),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		return err
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	log.Info("engine listening",
		zap.String("addr", "http://"+addr),
		zap.String("config", userCfgPath),
		zap.String("shutdown_token", token))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}
	return nil
}
