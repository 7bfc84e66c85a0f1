package database

import (
	"database/sql"
	"fmt"

	"github.com/sandrello1971/newassessment/app/models"
)

func CreateTemplate(db *sql.DB, t *models.AssessmentTemplate) error {
	query := `
		INSERT INTO assessment_templates (code, name, description, sector, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(query, t.Code, t.Name, t.Description, t.Sector, t.IsActive).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func ListTemplates(db *sql.DB) ([]*models.AssessmentTemplate, error) {
	query := `
		SELECT id, code, name, description, sector, is_active, created_at, updated_at
		FROM assessment_templates
		ORDER BY created_at DESC
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.AssessmentTemplate
	for rows.Next() {
		t := &models.AssessmentTemplate{}
		err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.Description, &t.Sector,
			&t.IsActive, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func GetTemplateByID(db *sql.DB, templateID string) (*models.AssessmentTemplate, error) {
	t := &models.AssessmentTemplate{}
	query := `
		SELECT id, code, name, description, sector, is_active, created_at, updated_at
		FROM assessment_templates WHERE id = $1
	`
	err := db.QueryRow(query, templateID).Scan(&t.ID, &t.Code, &t.Name, &t.Description,
		&t.Sector, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}
	return t, nil
}

func GetTemplateByCode(db *sql.DB, code string) (*models.AssessmentTemplate, error) {
	t := &models.AssessmentTemplate{}
	query := `
		SELECT id, code, name, description, sector, is_active, created_at, updated_at
		FROM assessment_templates WHERE code = $1
	`
	err := db.QueryRow(query, code).Scan(&t.ID, &t.Code, &t.Name, &t.Description,
		&t.Sector, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}
	return t, nil
}

// CreateTemplateVersion adds the next version of a template. The version
// number is assigned inside the transaction so concurrent creates cannot
// collide on it.
func CreateTemplateVersion(db *sql.DB, templateID string) (*models.TemplateVersion, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	v := &models.TemplateVersion{TemplateID: templateID, IsActive: true}
	query := `
		INSERT INTO template_versions (template_id, version)
		SELECT $1, COALESCE(MAX(version), 0) + 1
		FROM template_versions WHERE template_id = $1
		RETURNING id, version, created_at
	`
	if err := tx.QueryRow(query, templateID).Scan(&v.ID, &v.Version, &v.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create template version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit version: %w", err)
	}
	return v, nil
}

func ListTemplateVersions(db *sql.DB, templateID string) ([]*models.TemplateVersion, error) {
	query := `
		SELECT id, template_id, version, is_active, is_deprecated, created_at
		FROM template_versions
		WHERE template_id = $1
		ORDER BY version DESC
	`
	rows, err := db.Query(query, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch versions: %w", err)
	}
	defer rows.Close()

	var versions []*models.TemplateVersion
	for rows.Next() {
		v := &models.TemplateVersion{}
		if err := rows.Scan(&v.ID, &v.TemplateID, &v.Version, &v.IsActive, &v.IsDeprecated, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func GetTemplateVersion(db *sql.DB, versionID string) (*models.TemplateVersion, error) {
	v := &models.TemplateVersion{}
	query := `
		SELECT id, template_id, version, is_active, is_deprecated, created_at
		FROM template_versions WHERE id = $1
	`
	err := db.QueryRow(query, versionID).Scan(&v.ID, &v.TemplateID, &v.Version,
		&v.IsActive, &v.IsDeprecated, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch version: %w", err)
	}
	return v, nil
}

// GetActiveTemplateVersion returns the newest active, non-deprecated version
// of a template, or nil when none exists.
func GetActiveTemplateVersion(db *sql.DB, templateID string) (*models.TemplateVersion, error) {
	v := &models.TemplateVersion{}
	query := `
		SELECT id, template_id, version, is_active, is_deprecated, created_at
		FROM template_versions
		WHERE template_id = $1 AND is_active = true AND is_deprecated = false
		ORDER BY version DESC
		LIMIT 1
	`
	err := db.QueryRow(query, templateID).Scan(&v.ID, &v.TemplateID, &v.Version,
		&v.IsActive, &v.IsDeprecated, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active version: %w", err)
	}
	return v, nil
}

func DeprecateTemplateVersion(db *sql.DB, versionID string) error {
	result, err := db.Exec(`UPDATE template_versions SET is_deprecated = true WHERE id = $1`, versionID)
	if err != nil {
		return fmt.Errorf("failed to deprecate version: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("version not found")
	}
	return nil
}

// GetVersionQuestions returns the active questions of a version in template
// order; this order drives results ordering and session prepopulation.
func GetVersionQuestions(db *sql.DB, versionID string) ([]*models.Question, error) {
	query := `
		SELECT id, version_id, process, activity, category, dimension,
		       help_text, sort_order, weight, is_active
		FROM questions
		WHERE version_id = $1 AND is_active = true
		ORDER BY sort_order, process, activity, category, dimension
	`
	rows, err := db.Query(query, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q := &models.Question{}
		err := rows.Scan(&q.ID, &q.VersionID, &q.Process, &q.Activity, &q.Category,
			&q.Dimension, &q.HelpText, &q.SortOrder, &q.Weight, &q.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func AddQuestion(db *sql.DB, q *models.Question) error {
	query := `
		INSERT INTO questions (version_id, process, activity, category, dimension, help_text, sort_order, weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := db.QueryRow(query, q.VersionID, q.Process, q.Activity, q.Category,
		q.Dimension, q.HelpText, q.SortOrder, q.Weight).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("failed to add question: %w", err)
	}
	q.IsActive = true
	return nil
}

// AddQuestions bulk-inserts the question set of a freshly imported version.
func AddQuestions(db *sql.DB, questions []*models.Question) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO questions (version_id, process, activity, category, dimension, help_text, sort_order, weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, q := range questions {
		err := stmt.QueryRow(q.VersionID, q.Process, q.Activity, q.Category,
			q.Dimension, q.HelpText, q.SortOrder, q.Weight).Scan(&q.ID)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
		q.IsActive = true
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit questions: %w", err)
	}
	return nil
}

func DeactivateQuestion(db *sql.DB, questionID string) error {
	result, err := db.Exec(`UPDATE questions SET is_active = false WHERE id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("failed to deactivate question: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("question not found")
	}
	return nil
}
