package models

import "time"

type User struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Email              string     `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Password           string     `json:"-" gorm:"not null" validate:"required,min=8"`
	Role               string     `json:"role" gorm:"default:'user'" validate:"oneof=admin user"`
	MustChangePassword bool       `json:"must_change_password" gorm:"default:true"`
	IsActive           bool       `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
