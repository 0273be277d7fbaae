package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("store: row not found")

type ScrapedJob struct {
	ID             int64           `json:"id"`
	ExternalID     string          `json:"external_id"`
	Source         string          `json:"source"`
	Title          string          `json:"job_title"`
	Company        string          `json:"company"`
	URL            string          `json:"job_url"`
	Location       string          `json:"location"`
	Description    string          `json:"description"`
	Tags           string          `json:"tags"`
	SalaryRange    string          `json:"salary_range"`
	PostedDate     string          `json:"posted_date"`
	MatchScore     float64         `json:"match_score"`
	Classification string          `json:"classification"`
	MatchedSkills  json.RawMessage `json:"matched_skills"`
	MatchedDomains json.RawMessage `json:"matched_domains"`
	RedFlags       json.RawMessage `json:"red_flags"`
	Recommendation string          `json:"recommendation"`
	ScrapedAt      string          `json:"scraped_at"`
	Imported       bool            `json:"imported_to_opportunities"`
}

type ListScrapedOpts struct {
	Sort   string // score | scraped_at | company | title
	Window string // 24h | 7d | all
	Limit  int
}

// InsertScrapedIgnore stores one scored posting, silently skipping rows whose
// external_id is already present. Returns whether a new row was added.
func InsertScrapedIgnore(ctx context.Context, db *sql.DB, j ScrapedJob) (added bool, err error) {
	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO scraped_jobs (
  external_id, source, job_title, company, job_url, location,
  description, tags, salary_range, posted_date,
  match_score, classification, matched_skills, matched_domains,
  red_flags, recommendation
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		j.ExternalID, j.Source, j.Title, j.Company, j.URL, j.Location,
		j.Description, j.Tags, j.SalaryRange, j.PostedDate,
		j.MatchScore, j.Classification, string(j.MatchedSkills), string(j.MatchedDomains),
		string(j.RedFlags), j.Recommendation,
	)
	if err != nil {
		return false, fmt.Errorf("insert scraped job: %w", err)
	}

	var changes int
	if e := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

func ListScraped(ctx context.Context, db *sql.DB, opts ListScrapedOpts) ([]ScrapedJob, error) {
	if opts.Sort == "" {
		opts.Sort = "score"
	}
	if opts.Window == "" {
		opts.Window = "7d"
	}
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 200
	}

	// whitelist sort columns (prevents SQL injection)
	sortCol, order := "match_score", "DESC"
	switch opts.Sort {
	case "scraped_at":
		sortCol, order = "scraped_at", "DESC"
	case "company":
		sortCol, order = "company", "ASC"
	case "title":
		sortCol, order = "job_title", "ASC"
	}

	where := ""
	switch opts.Window {
	case "24h":
		where = "WHERE scraped_at >= datetime('now','-24 hours')"
	case "all":
	default:
		where = "WHERE scraped_at >= datetime('now','-7 days')"
	}

	query := fmt.Sprintf(`
SELECT id, external_id, source, job_title, company, job_url, location,
       description, tags, salary_range, posted_date, match_score,
       classification, matched_skills, matched_domains, red_flags,
       recommendation, scraped_at, imported_to_opportunities
FROM scraped_jobs
%s
ORDER BY %s %s
LIMIT ?;`, where, sortCol, order)

	rows, err := db.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScrapedJob
	for rows.Next() {
		var j ScrapedJob
		var skills, domains, flags string
		if err := rows.Scan(
			&j.ID, &j.ExternalID, &j.Source, &j.Title, &j.Company, &j.URL,
			&j.Location, &j.Description, &j.Tags, &j.SalaryRange, &j.PostedDate,
			&j.MatchScore, &j.Classification, &skills, &domains, &flags,
			&j.Recommendation, &j.ScrapedAt, &j.Imported,
		); err != nil {
			return nil, err
		}
		j.MatchedSkills = json.RawMessage(skills)
		j.MatchedDomains = json.RawMessage(domains)
		j.RedFlags = json.RawMessage(flags)
		out = append(out, j)
	}
	return out, rows.Err()
}

// SummaryStats buckets scraped jobs by score tier.
type SummaryStats struct {
	TotalJobs int        `json:"total_jobs"`
	Excellent int        `json:"excellent"`
	HighFit   int        `json:"high_fit"`
	MediumFit int        `json:"medium_fit"`
	LowFit    int        `json:"low_fit"`
	NoFit     int        `json:"no_fit"`
	Imported  int        `json:"imported"`
	Top       []TopMatch `json:"top_matches"`
}

type TopMatch struct {
	Company string  `json:"company"`
	Title   string  `json:"job_title"`
	Score   float64 `json:"match_score"`
}

func ScrapedStats(ctx context.Context, db *sql.DB) (SummaryStats, error) {
	var s SummaryStats
	err := db.QueryRowContext(ctx, `
SELECT
  COUNT(*),
  COUNT(CASE WHEN match_score >= 85 THEN 1 END),
  COUNT(CASE WHEN match_score >= 75 AND match_score < 85 THEN 1 END),
  COUNT(CASE WHEN match_score >= 65 AND match_score < 75 THEN 1 END),
  COUNT(CASE WHEN match_score >= 40 AND match_score < 65 THEN 1 END),
  COUNT(CASE WHEN match_score < 40 THEN 1 END),
  COUNT(CASE WHEN imported_to_opportunities = 1 THEN 1 END)
FROM scraped_jobs;`).Scan(
		&s.TotalJobs, &s.Excellent, &s.HighFit, &s.MediumFit, &s.LowFit, &s.NoFit, &s.Imported,
	)
	if err != nil {
		return s, err
	}

	rows, err := db.QueryContext(ctx, `
SELECT company, job_title, match_score
FROM scraped_jobs
ORDER BY match_score DESC
LIMIT 5;`)
	if err != nil {
		return s, err
	}
	defer rows.Close()
	for rows.Next() {
		var t TopMatch
		if err := rows.Scan(&t.Company, &t.Title, &t.Score); err != nil {
			return s, err
		}
		s.Top = append(s.Top, t)
	}
	return s, rows.Err()
}

// ImportScraped promotes a scraped job into the opportunities pipeline and
// marks the source row. Both writes happen in one transaction.
func ImportScraped(ctx context.Context, db *sql.DB, id int64) (opportunityID int64, err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var j ScrapedJob
	err = tx.QueryRowContext(ctx, `
SELECT job_title, company, location, tags, salary_range, recommendation, imported_to_opportunities
FROM scraped_jobs WHERE id = ?;`, id).Scan(
		&j.Title, &j.Company, &j.Location, &j.Tags, &j.SalaryRange, &j.Recommendation, &j.Imported,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if j.Imported {
		return 0, fmt.Errorf("scraped job %d already imported", id)
	}

	isRemote := 0
	if looksRemote(j.Location) {
		isRemote = 1
	}

	res, err := tx.ExecContext(ctx, `
INSERT INTO opportunities (company, role, source, is_remote, tech_stack, salary_range, notes, status, priority)
VALUES (?, ?, 'RemoteOK', ?, ?, ?, ?, 'Lead', 'Medium');`,
		j.Company, j.Title, isRemote, j.Tags, j.SalaryRange, j.Recommendation,
	)
	if err != nil {
		return 0, fmt.Errorf("import scraped job: %w", err)
	}
	opportunityID, _ = res.LastInsertId()

	if _, err := tx.ExecContext(ctx, `
UPDATE scraped_jobs SET imported_to_opportunities = 1 WHERE id = ?;`, id); err != nil {
		return 0, err
	}

	return opportunityID, tx.Commit()
}

func DeleteScraped(ctx context.Context, db *sql.DB, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM scraped_jobs WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func looksRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.Contains(l, "remote") || strings.Contains(l, "anywhere")
}

// CleanupScraped drops stale unimported rows; imported rows survive forever.
func CleanupScraped(db *sql.DB, olderThanHours int) (deleted int64, err error) {
	res, err := db.Exec(fmt.Sprintf(`
DELETE FROM scraped_jobs
WHERE imported_to_opportunities = 0
  AND scraped_at < datetime('now', '-%d hours');`, olderThanHours))
	if err != nil {
		return 0, fmt.Errorf("cleanup scraped jobs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
