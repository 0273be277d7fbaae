package remoteok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiPayload = `[
  {"legal": "API terms apply", "last_updated": 1700000000},
  {
    "id": 123456,
    "slug": "data-engineer-acme-123456",
    "position": "Data Engineer",
    "company": "Acme",
    "description": "<p>Build <b>ETL</b> pipelines with SQL.</p>",
    "location": "Worldwide",
    "tags": ["sql", "python", "etl"],
    "url": "https://remoteok.com/remote-jobs/data-engineer-acme-123456",
    "date": "2026-08-20T10:00:00+00:00",
    "salary_min": 70000,
    "salary_max": 110000
  },
  {
    "id": 123457,
    "slug": "qa-lead-beta-123457",
    "position": "QA Lead",
    "company": "",
    "description": "Manual testing only role",
    "location": "",
    "tags": [],
    "url": "",
    "date": "2026-08-21T10:00:00+00:00"
  },
  {
    "id": 123458,
    "slug": "extra-one",
    "position": "Extra",
    "company": "Gamma",
    "description": "x",
    "location": "Remote",
    "url": "https://remoteok.com/remote-jobs/extra-one",
    "date": "2026-08-22T10:00:00+00:00"
  }
]`

func TestFetch(t *testing.T) {
	var gotUA, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(apiPayload))
	}))
	defer srv.Close()

	f := New(Config{BaseURL: srv.URL, Limit: 2, Token: "tok-1"}, nil)
	res, err := f.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "remoteok", res.Source)
	assert.Equal(t, userAgent, gotUA)
	assert.Equal(t, "Bearer tok-1", gotAuth)

	// legal element skipped, limit applied
	require.Len(t, res.Leads, 2)

	first := res.Leads[0]
	assert.Equal(t, "123456", first.ExternalID)
	assert.Equal(t, "Data Engineer", first.Posting.Title)
	assert.Equal(t, "Acme", first.Posting.Company)
	assert.Equal(t, "Build ETL pipelines with SQL.", first.Posting.Description)
	assert.Equal(t, "sql, python, etl", first.Posting.Tags)
	assert.Equal(t, "$70000 - $110000", first.SalaryRange)

	second := res.Leads[1]
	assert.Equal(t, "Unknown Company", second.Posting.Company)
	assert.Equal(t, "Remote", second.Posting.Location)
	assert.Equal(t, "https://remoteok.com/remote-jobs/qa-lead-beta-123457", second.URL)
	assert.Equal(t, "", second.SalaryRange)
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := New(Config{BaseURL: srv.URL}, nil)
	_, err := f.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestFetchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	f := New(Config{BaseURL: srv.URL}, nil)
	_, err := f.Fetch(context.Background())
	require.Error(t, err)
}
