package model

import "time"

// Subscriber is a newsletter signup. Email uniqueness is owned by the
// database constraint; the service treats duplicate signups as idempotent.
type Subscriber struct {
	ID             string     `json:"id" gorm:"primaryKey;type:text;not null"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Locale         string     `json:"locale" gorm:"size:2;default:'ar'"`
	Confirmed      bool       `json:"confirmed" gorm:"not null;default:false"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"not null"`
}
