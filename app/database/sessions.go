package database

import (
	"database/sql"
	"fmt"

	"github.com/sandrello1971/newassessment/app/models"
)

const sessionColumns = `id, user_id, company_name, sector, company_size, contact_person,
		performed_by, email, template_version_id, recommendations, pareto_recommendations,
		logo_path, created_at, closed_at`

func scanSession(row interface{ Scan(...interface{}) error }) (*models.AssessmentSession, error) {
	s := &models.AssessmentSession{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.CompanyName, &s.Sector, &s.CompanySize, &s.ContactPerson,
		&s.PerformedBy, &s.Email, &s.TemplateVersionID, &s.Recommendations,
		&s.ParetoRecommendations, &s.LogoPath, &s.CreatedAt, &s.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func CreateSession(db *sql.DB, s *models.AssessmentSession) error {
	query := `
		INSERT INTO assessment_sessions
			(user_id, company_name, sector, company_size, contact_person, performed_by, email, template_version_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := db.QueryRow(
		query,
		s.UserID, s.CompanyName, s.Sector, s.CompanySize,
		s.ContactPerson, s.PerformedBy, s.Email, s.TemplateVersionID,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func GetSessionByID(db *sql.DB, sessionID string) (*models.AssessmentSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM assessment_sessions WHERE id = $1`
	s, err := scanSession(db.QueryRow(query, sessionID))
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	return s, nil
}

func ListSessions(db *sql.DB, userID string) ([]*models.AssessmentSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM assessment_sessions`
	args := []interface{}{}
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.AssessmentSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CloseSession stamps the completion time. Closing twice keeps the original
// timestamp.
func CloseSession(db *sql.DB, sessionID string) error {
	query := `
		UPDATE assessment_sessions
		SET closed_at = NOW()
		WHERE id = $1 AND closed_at IS NULL
	`
	_, err := db.Exec(query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	return nil
}

// DeleteSession removes a session and all of its results. This is the only
// hard-delete path and is restricted to admins at the route layer.
func DeleteSession(db *sql.DB, sessionID string) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM assessment_results WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete results: %w", err)
	}
	deleted, _ := result.RowsAffected()

	if _, err := tx.Exec(`DELETE FROM assessment_sessions WHERE id = $1`, sessionID); err != nil {
		return 0, fmt.Errorf("failed to delete session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}
	return deleted, nil
}

func UpdateSessionLogo(db *sql.DB, sessionID, logoPath string) error {
	_, err := db.Exec(`UPDATE assessment_sessions SET logo_path = $1 WHERE id = $2`, logoPath, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update logo path: %w", err)
	}
	return nil
}

func UpdateRecommendations(db *sql.DB, sessionID, text string) error {
	_, err := db.Exec(`UPDATE assessment_sessions SET recommendations = $1 WHERE id = $2`, text, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update recommendations: %w", err)
	}
	return nil
}

func UpdateParetoRecommendations(db *sql.DB, sessionID, text string) error {
	_, err := db.Exec(`UPDATE assessment_sessions SET pareto_recommendations = $1 WHERE id = $2`, text, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update pareto recommendations: %w", err)
	}
	return nil
}
