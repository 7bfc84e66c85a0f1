package models

import "time"

// AssessmentSession is one company's assessment instance. It owns the answer
// rows and the generated recommendation texts; it is only ever hard-deleted by
// an explicit admin action.
type AssessmentSession struct {
	ID                    string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	UserID                *string    `json:"user_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	CompanyName           string     `json:"company_name" gorm:"not null" validate:"required"`
	Sector                *string    `json:"sector,omitempty"`
	CompanySize           *string    `json:"company_size,omitempty"`
	ContactPerson         *string    `json:"contact_person,omitempty"`
	PerformedBy           *string    `json:"performed_by,omitempty"`
	Email                 *string    `json:"email,omitempty" validate:"omitempty,email"`
	TemplateVersionID     *string    `json:"template_version_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	Recommendations       *string    `json:"recommendations,omitempty"`
	ParetoRecommendations *string    `json:"pareto_recommendations,omitempty"`
	LogoPath              *string    `json:"logo_path,omitempty"`
	CreatedAt             time.Time  `json:"created_at" gorm:"autoCreateTime"`
	ClosedAt              *time.Time `json:"closed_at,omitempty"`
}

// IsClosed reports whether the assessment has been submitted and closed.
func (s *AssessmentSession) IsClosed() bool {
	return s.ClosedAt != nil
}
