package types

import (
	"context"

	"jobtrack-engine/internal/domain"
)

// Lead is one fetched posting plus the source metadata that never feeds the
// scorer but lands in storage.
type Lead struct {
	ExternalID  string
	URL         string
	SalaryRange string
	PostedDate  string
	TagList     []string
	Posting     domain.Posting
}

type ScrapeResult struct {
	Source string
	Leads  []Lead
}

type ScrapeStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastAdded int    `json:"last_added"`
	Running   bool   `json:"running"`
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (ScrapeResult, error)
}
