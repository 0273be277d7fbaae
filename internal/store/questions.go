package store

import (
	"context"
	"database/sql"
	"fmt"
)

type InterviewQuestion struct {
	ID            int64  `json:"id"`
	OpportunityID *int64 `json:"opportunity_id"`
	QuestionText  string `json:"question_text"`
	QuestionType  string `json:"question_type"`
	Difficulty    string `json:"difficulty"`
	MyResponse    string `json:"my_response"`
	IdealResponse string `json:"ideal_response"`
	MyRating      int    `json:"my_rating"`
	Tags          string `json:"tags"`
	CreatedAt     string `json:"created_at"`
	Company       string `json:"company,omitempty"`
}

func AddQuestion(ctx context.Context, db *sql.DB, q InterviewQuestion) (int64, error) {
	if q.Difficulty == "" {
		q.Difficulty = "Medium"
	}
	if q.MyRating == 0 {
		q.MyRating = 3
	}
	res, err := db.ExecContext(ctx, `
INSERT INTO interview_questions (
  opportunity_id, question_text, question_type, difficulty,
  my_response, ideal_response, my_rating, tags
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		q.OpportunityID, q.QuestionText, q.QuestionType, q.Difficulty,
		q.MyResponse, q.IdealResponse, q.MyRating, q.Tags,
	)
	if err != nil {
		return 0, fmt.Errorf("insert interview question: %w", err)
	}
	return res.LastInsertId()
}

// RecentQuestions joins in the company name when the question is tied to an
// opportunity.
func RecentQuestions(ctx context.Context, db *sql.DB, limit int) ([]InterviewQuestion, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, `
SELECT iq.id, iq.opportunity_id, iq.question_text, iq.question_type,
       iq.difficulty, iq.my_response, iq.ideal_response, iq.my_rating,
       iq.tags, iq.created_at, COALESCE(o.company, '')
FROM interview_questions iq
LEFT JOIN opportunities o ON iq.opportunity_id = o.id
ORDER BY iq.created_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InterviewQuestion
	for rows.Next() {
		var q InterviewQuestion
		if err := rows.Scan(
			&q.ID, &q.OpportunityID, &q.QuestionText, &q.QuestionType,
			&q.Difficulty, &q.MyResponse, &q.IdealResponse, &q.MyRating,
			&q.Tags, &q.CreatedAt, &q.Company,
		); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
