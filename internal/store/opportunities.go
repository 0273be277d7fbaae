package store

import (
	"context"
	"database/sql"
	"fmt"

	"jobtrack-engine/internal/domain"
)

// closedStatuses are excluded from every pipeline view.
const closedStatuses = `('Rejected', 'Declined', 'Ghosted', 'Accepted')`

type Metrics struct {
	ActiveCount    int `json:"active_count"`
	InterviewCount int `json:"interview_count"`
	RemoteCount    int `json:"remote_count"`
	PriorityCount  int `json:"priority_count"`
}

func DashboardMetrics(ctx context.Context, db *sql.DB) (Metrics, error) {
	var m Metrics
	err := db.QueryRowContext(ctx, fmt.Sprintf(`
SELECT
  (SELECT COUNT(*) FROM opportunities WHERE status NOT IN %[1]s),
  (SELECT COUNT(*) FROM interactions WHERE date BETWEEN DATE('now') AND DATE('now', '+7 days') AND type = 'Interview'),
  (SELECT COUNT(*) FROM opportunities WHERE is_remote = 1 AND status NOT IN %[1]s),
  (SELECT COUNT(*) FROM opportunities WHERE priority = 'High' AND status NOT IN %[1]s);`,
		closedStatuses)).Scan(&m.ActiveCount, &m.InterviewCount, &m.RemoteCount, &m.PriorityCount)
	return m, err
}

type PipelineEntry struct {
	ID                  int64  `json:"id"`
	Company             string `json:"company"`
	Role                string `json:"role"`
	Status              string `json:"status"`
	IsRemote            bool   `json:"is_remote"`
	Priority            string `json:"priority"`
	TechStack           string `json:"tech_stack"`
	SalaryRange         string `json:"salary_range"`
	RecruiterName       string `json:"recruiter_name"`
	RecruiterPhone      string `json:"recruiter_phone"`
	Notes               string `json:"notes"`
	DiscoveredDate      string `json:"discovered_date"`
	LastInteractionDate string `json:"last_interaction_date"`
	UpdatedAt           string `json:"updated_at"`
}

// Pipeline lists open opportunities, high priority first, recently touched
// first within a priority.
func Pipeline(ctx context.Context, db *sql.DB) ([]PipelineEntry, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`
SELECT id, company, role, status, is_remote, priority,
       tech_stack, salary_range, recruiter_name, recruiter_phone,
       notes, discovered_date, last_interaction_date, updated_at
FROM opportunities
WHERE status NOT IN %s
ORDER BY
  CASE priority WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 WHEN 'Low' THEN 3 END,
  updated_at DESC
LIMIT 50;`, closedStatuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PipelineEntry
	for rows.Next() {
		var e PipelineEntry
		if err := rows.Scan(
			&e.ID, &e.Company, &e.Role, &e.Status, &e.IsRemote, &e.Priority,
			&e.TechStack, &e.SalaryRange, &e.RecruiterName, &e.RecruiterPhone,
			&e.Notes, &e.DiscoveredDate, &e.LastInteractionDate, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type AgendaItem struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	MeetLink     string `json:"meet_link"`
	Company      string `json:"company"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	Participants string `json:"participants"`
	Summary      string `json:"summary"`
}

// TodaysAgenda lists interviews scheduled in the next seven days.
func TodaysAgenda(ctx context.Context, db *sql.DB) ([]AgendaItem, error) {
	rows, err := db.QueryContext(ctx, `
SELECT i.id, i.type, i.date, i.time, i.meet_link,
       o.company, o.role, o.status, i.participants, i.summary
FROM interactions i
JOIN opportunities o ON i.opportunity_id = o.id
WHERE i.date BETWEEN DATE('now') AND DATE('now', '+7 days')
  AND i.type = 'Interview'
ORDER BY i.date, i.time ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AgendaItem
	for rows.Next() {
		var a AgendaItem
		if err := rows.Scan(
			&a.ID, &a.Type, &a.Date, &a.Time, &a.MeetLink,
			&a.Company, &a.Role, &a.Status, &a.Participants, &a.Summary,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func AddOpportunity(ctx context.Context, db *sql.DB, o domain.Opportunity) (int64, error) {
	if o.Source == "" {
		o.Source = "Other"
	}
	if o.Status == "" {
		o.Status = "Lead"
	}
	if o.Priority == "" {
		o.Priority = "Medium"
	}

	isRemote := 0
	if o.IsRemote {
		isRemote = 1
	}

	res, err := db.ExecContext(ctx, `
INSERT INTO opportunities (
  company, role, source, is_remote, tech_stack, salary_range,
  recruiter_name, recruiter_phone, notes, status, priority
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		o.Company, o.Role, o.Source, isRemote, o.TechStack, o.SalaryRange,
		o.RecruiterName, o.RecruiterPhone, o.Notes, o.Status, o.Priority,
	)
	if err != nil {
		return 0, fmt.Errorf("insert opportunity: %w", err)
	}
	return res.LastInsertId()
}
