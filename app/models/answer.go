package models

import "time"

// AssessmentResult stores one answer of a session, identified by the
// (process, activity, category, dimension) tuple, which is unique per session.
// Score is meaningless when IsNotApplicable is true; not-applicable rows are
// still stored and displayed but excluded from every average.
type AssessmentResult struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SessionID       string    `json:"session_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Process         string    `json:"process" gorm:"not null" validate:"required"`
	Activity        string    `json:"activity" gorm:"not null" validate:"required"`
	Category        string    `json:"category" gorm:"not null" validate:"required"`
	Dimension       string    `json:"dimension" gorm:"not null" validate:"required"`
	Score           int       `json:"score" gorm:"not null;default:3" validate:"gte=0,lte=5"`
	Note            string    `json:"note"`
	IsNotApplicable bool      `json:"is_not_applicable" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
