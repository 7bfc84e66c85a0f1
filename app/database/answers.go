package database

import (
	"database/sql"
	"fmt"

	"github.com/sandrello1971/newassessment/app/models"
	"github.com/sandrello1971/newassessment/app/scoring"
)

// GetSessionResults fetches the flat answer records of one session. Rows come
// back in identity order; the results route re-sorts them by the template's
// question order.
func GetSessionResults(db *sql.DB, sessionID string) ([]*models.AssessmentResult, error) {
	query := `
		SELECT id, session_id, process, activity, category, dimension,
		       score, note, is_not_applicable, created_at, updated_at
		FROM assessment_results
		WHERE session_id = $1
		ORDER BY process, activity, category, dimension
	`
	rows, err := db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer rows.Close()

	var results []*models.AssessmentResult
	for rows.Next() {
		r := &models.AssessmentResult{}
		err := rows.Scan(
			&r.ID, &r.SessionID, &r.Process, &r.Activity, &r.Category, &r.Dimension,
			&r.Score, &r.Note, &r.IsNotApplicable, &r.CreatedAt, &r.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// UpsertResults saves a full submission in one transaction. Each record is an
// upsert on the identity tuple, so resubmitting the same payload converges to
// the same stored state with no duplication.
func UpsertResults(db *sql.DB, sessionID string, results []*models.AssessmentResult) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO assessment_results
			(session_id, process, activity, category, dimension, score, note, is_not_applicable)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id, process, activity, category, dimension)
		DO UPDATE SET score = EXCLUDED.score,
		              note = EXCLUDED.note,
		              is_not_applicable = EXCLUDED.is_not_applicable,
		              updated_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		_, err := stmt.Exec(
			sessionID, r.Process, r.Activity, r.Category, r.Dimension,
			r.Score, r.Note, r.IsNotApplicable,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert result %s/%s/%s/%s: %w",
				r.Process, r.Activity, r.Category, r.Dimension, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}
	return nil
}

// PrepopulateAnswers creates the default answer set for a freshly created
// session: one row per active question with score 3, applicable, empty note.
func PrepopulateAnswers(db *sql.DB, sessionID string, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO assessment_results
			(session_id, process, activity, category, dimension, score, note, is_not_applicable)
		VALUES ($1, $2, $3, $4, $5, $6, '', false)
		ON CONFLICT (session_id, process, activity, category, dimension) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, q := range questions {
		_, err := stmt.Exec(sessionID, q.Process, q.Activity, q.Category, q.Dimension, scoring.DefaultScore)
		if err != nil {
			return fmt.Errorf("failed to prepopulate answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit prepopulated answers: %w", err)
	}
	return nil
}
