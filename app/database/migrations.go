package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates missing tables and applies incremental schema updates.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS local_users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			must_change_password BOOLEAN NOT NULL DEFAULT true,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS assessment_templates (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			sector TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS template_versions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			template_id UUID NOT NULL REFERENCES assessment_templates(id),
			version INTEGER NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			is_deprecated BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (template_id, version)
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			version_id UUID NOT NULL REFERENCES template_versions(id),
			process TEXT NOT NULL,
			activity TEXT NOT NULL,
			category TEXT NOT NULL,
			dimension TEXT NOT NULL,
			help_text TEXT,
			sort_order INTEGER NOT NULL DEFAULT 0,
			weight DOUBLE PRECISION NOT NULL DEFAULT 1.0,
			is_active BOOLEAN NOT NULL DEFAULT true
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_version ON questions(version_id)`,
		`CREATE TABLE IF NOT EXISTS assessment_sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID,
			company_name TEXT NOT NULL,
			sector TEXT,
			company_size TEXT,
			contact_person TEXT,
			performed_by TEXT,
			email TEXT,
			recommendations TEXT,
			pareto_recommendations TEXT,
			logo_path TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			closed_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS assessment_results (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			session_id UUID NOT NULL REFERENCES assessment_sessions(id),
			process TEXT NOT NULL,
			activity TEXT NOT NULL,
			category TEXT NOT NULL,
			dimension TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 3 CHECK (score >= 0 AND score <= 5),
			note TEXT NOT NULL DEFAULT '',
			is_not_applicable BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_results_identity
			ON assessment_results(session_id, process, activity, category, dimension)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration statement failed: %v", err)
			return err
		}
	}

	if err := addTemplateVersionColumn(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// addTemplateVersionColumn links sessions to versioned templates. Older
// deployments predate template versioning, so the column is added in place.
func addTemplateVersionColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'assessment_sessions'
				AND column_name = 'template_version_id'
			) THEN
				ALTER TABLE assessment_sessions ADD COLUMN template_version_id UUID REFERENCES template_versions(id);
				RAISE NOTICE 'Added template_version_id column to assessment_sessions';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for template_version_id column: %v", err)
		return err
	}
	return nil
}
