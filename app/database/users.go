package database

import (
	"database/sql"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/sandrello1971/newassessment/app/models"
)

const userColumns = `id, email, password, role, must_change_password, is_active, created_at, updated_at`

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + `
			  FROM local_users WHERE email = $1 AND is_active = true AND deleted_at IS NULL`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.Role,
		&user.MustChangePassword, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + `
			  FROM local_users WHERE id = $1 AND is_active = true AND deleted_at IS NULL`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.Role,
		&user.MustChangePassword, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func CreateUser(db *sql.DB, email, password, role string) (*models.User, error) {
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: email, Role: role, MustChangePassword: true, IsActive: true}
	query := `
		INSERT INTO local_users (email, password, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err = db.QueryRow(query, email, hashed, role).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func UpdateUserPassword(db *sql.DB, userID, hashedPassword string) error {
	query := `
		UPDATE local_users
		SET password = $1, must_change_password = false, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := db.Exec(query, hashedPassword, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// EnsureAdminUser seeds the initial admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no such user exists yet.
func EnsureAdminUser(db *sql.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM local_users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := CreateUser(db, email, password, string(models.AdminRole)); err != nil {
		return err
	}
	log.Printf("Seeded admin user %s", email)
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}
