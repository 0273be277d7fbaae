package remoteok

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/scrape/types"
	"jobtrack-engine/internal/scrape/util"
)

const userAgent = "Mozilla/5.0 (compatible; JobTracker/1.0)"

type Config struct {
	BaseURL string
	Limit   int
	// Token is attached as a bearer header when present.
	Token string
}

type Fetcher struct {
	cfg     Config
	limiter *util.HostLimiter
	client  *http.Client
}

func New(cfg Config, limiter *util.HostLimiter) *Fetcher {
	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	return &Fetcher{
		cfg:     cfg,
		limiter: limiter,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *Fetcher) Name() string { return "remoteok" }

// apiJob mirrors the RemoteOK API element. The first array element carries
// only a `legal` notice and is skipped.
type apiJob struct {
	ID          json.Number `json:"id"`
	Legal       string      `json:"legal"`
	Slug        string      `json:"slug"`
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Tags        []string    `json:"tags"`
	URL         string      `json:"url"`
	Date        string      `json:"date"`
	SalaryMin   int         `json:"salary_min"`
	SalaryMax   int         `json:"salary_max"`
}

func (f *Fetcher) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	out := types.ScrapeResult{Source: f.Name()}

	if f.limiter != nil {
		if err := f.limiter.WaitURL(ctx, f.cfg.BaseURL); err != nil {
			return out, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.BaseURL, nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if f.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.cfg.Token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return out, fmt.Errorf("remoteok fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return out, fmt.Errorf("remoteok fetch: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var jobs []apiJob
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return out, fmt.Errorf("remoteok decode: %w", err)
	}

	// leading element is API metadata, not a job
	if len(jobs) > 0 && jobs[0].Legal != "" {
		jobs = jobs[1:]
	}
	if len(jobs) > f.cfg.Limit {
		jobs = jobs[:f.cfg.Limit]
	}

	for _, j := range jobs {
		out.Leads = append(out.Leads, f.lead(j))
	}
	return out, nil
}

func (f *Fetcher) lead(j apiJob) types.Lead {
	title := util.CleanText(j.Position)
	if title == "" {
		title = "Unknown Position"
	}
	company := util.CleanText(j.Company)
	if company == "" {
		company = "Unknown Company"
	}
	location := util.CleanText(j.Location)
	if location == "" {
		location = "Remote"
	}

	jobURL := strings.TrimSpace(j.URL)
	if jobURL == "" {
		jobURL = "https://remoteok.com/remote-jobs/" + j.Slug
	}

	description := util.HTMLText(j.Description)
	if len(description) > 2000 {
		description = description[:2000]
	}

	return types.Lead{
		ExternalID:  j.ID.String(),
		URL:         jobURL,
		SalaryRange: salaryRange(j.SalaryMin, j.SalaryMax),
		PostedDate:  j.Date,
		TagList:     j.Tags,
		Posting: domain.Posting{
			Title:       title,
			Company:     company,
			Location:    location,
			Description: description,
			Tags:        util.JoinTags(j.Tags),
		},
	}
}

func salaryRange(min, max int) string {
	switch {
	case min > 0 && max > 0:
		return fmt.Sprintf("$%d - $%d", min, max)
	case min > 0:
		return fmt.Sprintf("$%d+", min)
	default:
		return ""
	}
}
