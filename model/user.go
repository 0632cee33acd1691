package model

import "time"

// User is an administrative account. There is no public registration; rows
// are provisioned out of band or by another admin.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;type:text;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	Name         string     `json:"name" gorm:"size:100"`
	Role         string     `json:"role" gorm:"not null;size:20;default:'editor'"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"not null"`
}
