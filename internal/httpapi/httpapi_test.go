package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/profile"
	"jobtrack-engine/internal/rank"
	"jobtrack-engine/internal/scrape/types"
	"jobtrack-engine/internal/store"
)

func testEngine(t *testing.T) *rank.Engine {
	t.Helper()
	threshold := 75.0
	doc := &profile.Document{
		Profile: &profile.Person{Name: "T", YearsExperience: 6},
		Skills: &profile.SkillTiers{
			Critical:  profile.Tier{Items: map[string]float64{"sql": 10, "python": 10, "etl": 10}},
			HighValue: profile.Tier{Items: map[string]float64{"aws": 8}},
		},
		RedFlags: &profile.RedFlagCats{
			DealBreakers: profile.Tier{Items: map[string]float64{"bench sales": -25}},
		},
		Domains: &profile.Tier{Items: map[string]float64{"Analytics": 6}},
		ScoringWeights: map[string]float64{
			"skills_match": 0.4, "experience_match": 0.2, "domain_match": 0.2,
			"location_match": 0.1, "red_flags": 0.1,
		},
		AutoImportThreshold: &threshold,
	}
	return rank.NewEngine(doc, zap.NewNop())
}

func testDeps(t *testing.T) Deps {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	cfgVal := &atomic.Value{}
	var cfg config.Config
	cfg.App.Port = 8095
	cfg.ProfilePath = "profile.yml"
	cfg.Polling.ScrapeSeconds = 900
	cfg.Polling.CleanupHours = 24
	cfgVal.Store(cfg)

	statusVal := &atomic.Value{}
	statusVal.Store(types.ScrapeStatus{})

	return Deps{
		DB:           db.Pool,
		Hub:          events.NewHub(),
		Scorer:       testEngine(t),
		CfgVal:       cfgVal,
		ScrapeStatus: statusVal,
		UserCfgPath:  filepath.Join(t.TempDir(), "config.yml"),
		LoadCfg:      func() (config.Config, error) { return cfg, nil },
		RunScrape:    func(ctx context.Context, cfg config.Config) {},
		Log:          zap.NewNop(),
	}
}

func TestScoreJobEndpoint(t *testing.T) {
	mux := NewMux(testDeps(t))

	body := `{"title":"Data Engineer","description":"SQL and Python ETL work","location":"Remote","company":"Acme"}`
	req := httptest.NewRequest(http.MethodPost, "/api/score-job", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res rank.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Classification)
	assert.NotEmpty(t, res.Recommendation)
	assert.GreaterOrEqual(t, res.FinalScore, 0.0)
	assert.LessOrEqual(t, res.FinalScore, 100.0)
	assert.Equal(t, "Data Engineer", res.JobInfo.Title)
}

func TestScoreJobEndpointRejectsEmptyTitle(t *testing.T) {
	mux := NewMux(testDeps(t))

	req := httptest.NewRequest(http.MethodPost, "/api/score-job",
		strings.NewReader(`{"title":"  ","description":"x","company":"Acme"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var e APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "invalid_input", e.Error.Code)
}

func TestScoreJobEndpointMethodNotAllowed(t *testing.T) {
	mux := NewMux(testDeps(t))
	req := httptest.NewRequest(http.MethodGet, "/api/score-job", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestScrapedJobsLifecycle(t *testing.T) {
	deps := testDeps(t)
	mux := NewMux(deps)
	ctx := context.Background()

	_, err := store.InsertScrapedIgnore(ctx, deps.DB, store.ScrapedJob{
		ExternalID:     "rok-1",
		Source:         "RemoteOK",
		Title:          "Data Engineer",
		Company:        "Acme",
		URL:            "https://example.com/j/1",
		Location:       "Remote",
		MatchScore:     82.5,
		Classification: "HIGH_FIT",
		MatchedSkills:  json.RawMessage(`[]`),
		MatchedDomains: json.RawMessage(`[]`),
		RedFlags:       json.RawMessage(`[]`),
	})
	require.NoError(t, err)

	// list
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scraped-jobs?window=all", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var jobs []store.ScrapedJob
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	require.Len(t, jobs, 1)
	id := jobs[0].ID

	// import
	ch := deps.Hub.Subscribe()
	defer deps.Hub.Unsubscribe(ch)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/scraped-jobs/"+itoa(id)+"/import", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var evt events.Event
	require.NoError(t, json.Unmarshal([]byte(<-ch), &evt))
	assert.Equal(t, events.TypeJobImported, evt.Type)

	// second import conflicts
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/scraped-jobs/"+itoa(id)+"/import", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// pipeline now has the opportunity
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pipeline", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var pipeline []store.PipelineEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pipeline))
	require.Len(t, pipeline, 1)
	assert.Equal(t, "Acme", pipeline[0].Company)

	// delete
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/scraped-jobs/"+itoa(id), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/scraped-jobs/"+itoa(id), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddOpportunityAndMetrics(t *testing.T) {
	deps := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/add-opportunity",
		strings.NewReader(`{"company":"Acme","role":"Data Engineer","is_remote":true,"priority":"High"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	// missing company rejected
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/add-opportunity",
		strings.NewReader(`{"role":"Data Engineer"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var m store.Metrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 1, m.ActiveCount)
	assert.Equal(t, 1, m.RemoteCount)
	assert.Equal(t, 1, m.PriorityCount)
}

func TestQuestionsEndpoints(t *testing.T) {
	mux := NewMux(testDeps(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/add-question",
		strings.NewReader(`{"question_text":"Explain window functions","question_type":"Technical"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recent-questions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var qs []store.InterviewQuestion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &qs))
	require.Len(t, qs, 1)
	assert.Equal(t, "Explain window functions", qs[0].QuestionText)
}

func TestScrapeStatusAndRun(t *testing.T) {
	deps := testDeps(t)
	ran := make(chan struct{})
	deps.RunScrape = func(ctx context.Context, cfg config.Config) { close(ran) }
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scrape/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var st types.ScrapeStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.False(t, st.Running)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scrape/run", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	<-ran
}

func TestConfigRoundTrip(t *testing.T) {
	deps := testDeps(t)
	mux := NewMux(deps)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg config.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, 8095, cfg.App.Port)

	// invalid config gets structured validation errors back
	cfg.App.Port = 0
	b, _ := json.Marshal(cfg)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/config", strings.NewReader(string(b))))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var vr config.Validation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vr))
	assert.NotEmpty(t, vr.Errors)
}

func TestHealthAndMiddleware(t *testing.T) {
	deps := testDeps(t)
	h := Chain(NewMux(deps), RequestID, Cors, Recover(deps.Log), AccessLog(deps.Log))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	// preflight short-circuits
	req = httptest.NewRequest(http.MethodOptions, "/api/metrics", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
