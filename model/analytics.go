package model

import "time"

// AnalyticsEvent is the persisted form of a forwarded analytics event. Writes
// are fire-and-forget from the caller's point of view.
type AnalyticsEvent struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Action    string    `json:"action" gorm:"not null;size:100;index"`
	Category  string    `json:"category" gorm:"not null;size:100;index"`
	Label     string    `json:"label" gorm:"size:255"`
	Value     int64     `json:"value" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}
