package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown and the
// dashboard file server.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Ad-hoc scoring
	sc := ScoreHandler{Scorer: d.Scorer}
	mux.HandleFunc("/api/score-job", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sc.Score,
	}))

	// Scraped jobs
	sjh := ScrapedJobsHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/api/scraped-jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sjh.List,
	}))
	mux.HandleFunc("/api/scraped-jobs/", sjh.ByPath) // {id}/import, {id}
	mux.HandleFunc("/api/scrape-stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sjh.Stats,
	}))

	// Pipeline + interview prep
	th := TrackHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/api/metrics", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: th.Metrics,
	}))
	mux.HandleFunc("/api/pipeline", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: th.Pipeline,
	}))
	mux.HandleFunc("/api/todays-agenda", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: th.TodaysAgenda,
	}))
	mux.HandleFunc("/api/add-opportunity", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: th.AddOpportunity,
	}))
	mux.HandleFunc("/api/add-question", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: th.AddQuestion,
	}))
	mux.HandleFunc("/api/recent-questions", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: th.RecentQuestions,
	}))

	// SQL practice
	ph := PracticeHandler{DB: d.DB}
	mux.HandleFunc("/api/sql-practice-stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Stats,
	}))
	mux.HandleFunc("/api/recent-practice", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Recent,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/board", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetBoardToken,
	}))

	// Scrape control
	sch := ScrapeHandler{
		CfgVal:       d.CfgVal,
		ScrapeStatus: d.ScrapeStatus,
		RunScrape:    d.RunScrape,
	}
	mux.HandleFunc("/scrape/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.Status,
	}))
	mux.HandleFunc("/scrape/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Run,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Maintenance
	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dbh.Checkpoint,
	}))

	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
