package models

import "time"

// AssessmentTemplate is a questionnaire definition. Actual questions hang off
// versions so that running sessions keep pointing at the exact question set
// they were created with.
type AssessmentTemplate struct {
	ID          string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Code        string             `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Name        string             `json:"name" gorm:"not null" validate:"required"`
	Description *string            `json:"description,omitempty"`
	Sector      *string            `json:"sector,omitempty"`
	IsActive    bool               `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
	Versions    []*TemplateVersion `json:"versions,omitempty" gorm:"foreignKey:TemplateID"`
}

type TemplateVersion struct {
	ID           string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	TemplateID   string      `json:"template_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Version      int         `json:"version" gorm:"not null" validate:"gte=1"`
	IsActive     bool        `json:"is_active" gorm:"default:true"`
	IsDeprecated bool        `json:"is_deprecated" gorm:"default:false"`
	CreatedAt    time.Time   `json:"created_at" gorm:"autoCreateTime"`
	Questions    []*Question `json:"questions,omitempty" gorm:"foreignKey:VersionID"`
}

// Question identifies one evaluable item of a template version. Weight is kept
// for historical imports but is not consumed by score aggregation.
type Question struct {
	ID        string  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	VersionID string  `json:"version_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Process   string  `json:"process" gorm:"not null" validate:"required"`
	Activity  string  `json:"activity" gorm:"not null" validate:"required"`
	Category  string  `json:"category" gorm:"not null" validate:"required"`
	Dimension string  `json:"dimension" gorm:"not null" validate:"required"`
	HelpText  *string `json:"help_text,omitempty"`
	SortOrder int     `json:"sort_order" gorm:"not null;default:0"`
	Weight    float64 `json:"weight" gorm:"default:1.0"`
	IsActive  bool    `json:"is_active" gorm:"default:true"`
}
