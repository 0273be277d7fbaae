package store

import (
	"context"
	"database/sql"
	"fmt"
)

type PracticeSession struct {
	ID               int64  `json:"id"`
	PracticeDate     string `json:"practice_date"`
	Platform         string `json:"platform"`
	DatabaseUsed     string `json:"database_used"`
	QuestionText     string `json:"question_text"`
	MyQuery          string `json:"my_query"`
	CorrectQuery     string `json:"correct_query"`
	IsCorrect        bool   `json:"is_correct"`
	TimeSpentMinutes int    `json:"time_spent_minutes"`
	Difficulty       string `json:"difficulty"`
	ErrorMade        string `json:"error_made"`
	LessonLearned    string `json:"lesson_learned"`
	KeywordsUsed     string `json:"keywords_used"`
	Notes            string `json:"notes"`
	CreatedAt        string `json:"created_at"`
}

func AddPracticeSession(ctx context.Context, db *sql.DB, s PracticeSession) (int64, error) {
	isCorrect := 0
	if s.IsCorrect {
		isCorrect = 1
	}
	res, err := db.ExecContext(ctx, `
INSERT INTO sql_practice_sessions (
  practice_date, platform, database_used, question_text, my_query,
  correct_query, is_correct, time_spent_minutes, difficulty,
  error_made, lesson_learned, keywords_used, notes
) VALUES (COALESCE(NULLIF(?, ''), date('now')), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		s.PracticeDate, s.Platform, s.DatabaseUsed, s.QuestionText, s.MyQuery,
		s.CorrectQuery, isCorrect, s.TimeSpentMinutes, s.Difficulty,
		s.ErrorMade, s.LessonLearned, s.KeywordsUsed, s.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("insert practice session: %w", err)
	}
	return res.LastInsertId()
}

type PracticeStats struct {
	TotalSessions      int     `json:"total_sessions"`
	CorrectCount       int     `json:"correct_count"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
	TotalMinutes       int     `json:"total_minutes"`
	PlatformsUsed      int     `json:"platforms_used"`
	EasyCount          int     `json:"easy_count"`
	MediumCount        int     `json:"medium_count"`
	HardCount          int     `json:"hard_count"`
}

func SQLPracticeStats(ctx context.Context, db *sql.DB) (PracticeStats, error) {
	var s PracticeStats
	err := db.QueryRowContext(ctx, `
SELECT
  COUNT(*),
  COALESCE(SUM(CASE WHEN is_correct = 1 THEN 1 ELSE 0 END), 0),
  COALESCE(ROUND(100.0 * SUM(CASE WHEN is_correct = 1 THEN 1 ELSE 0 END) / COUNT(*), 1), 0),
  COALESCE(SUM(time_spent_minutes), 0),
  COUNT(DISTINCT platform),
  COUNT(CASE WHEN difficulty = 'Easy' THEN 1 END),
  COUNT(CASE WHEN difficulty = 'Medium' THEN 1 END),
  COUNT(CASE WHEN difficulty = 'Hard' THEN 1 END)
FROM sql_practice_sessions;`).Scan(
		&s.TotalSessions, &s.CorrectCount, &s.AccuracyPercentage, &s.TotalMinutes,
		&s.PlatformsUsed, &s.EasyCount, &s.MediumCount, &s.HardCount,
	)
	return s, err
}

func RecentPractice(ctx context.Context, db *sql.DB, limit int) ([]PracticeSession, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, practice_date, platform, database_used, question_text, my_query,
       correct_query, is_correct, time_spent_minutes, difficulty,
       error_made, lesson_learned, keywords_used, notes, created_at
FROM sql_practice_sessions
ORDER BY created_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PracticeSession
	for rows.Next() {
		var s PracticeSession
		if err := rows.Scan(
			&s.ID, &s.PracticeDate, &s.Platform, &s.DatabaseUsed, &s.QuestionText,
			&s.MyQuery, &s.CorrectQuery, &s.IsCorrect, &s.TimeSpentMinutes,
			&s.Difficulty, &s.ErrorMade, &s.LessonLearned, &s.KeywordsUsed,
			&s.Notes, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
