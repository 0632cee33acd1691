package model

import "time"

// Ad is a purchasable placement on the site. The serving path treats ads as
// read-only apart from the denormalized counters, which are incremented with
// atomic column expressions by the storage layer.
type Ad struct {
	ID        string `json:"id" gorm:"primaryKey;type:text;not null"`
	Title     string `json:"title" gorm:"not null;size:255"`
	TitleAr   string `json:"title_ar" gorm:"size:255"`
	ImageURL  string `json:"image_url" gorm:"size:500"`
	HTML      string `json:"html" gorm:"type:text"`
	TargetURL string `json:"target_url" gorm:"not null;size:500"`
	Placement string `json:"placement" gorm:"not null;index;size:20"`
	Type      string `json:"type" gorm:"not null;size:20;default:'banner'"`

	// Priority orders ads within a placement, lower wins.
	Priority int  `json:"priority" gorm:"not null;default:0"`
	IsActive bool `json:"is_active" gorm:"not null;default:true;index"`

	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`

	ClickCount int64 `json:"click_count" gorm:"not null;default:0"`
	ViewCount  int64 `json:"view_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// EligibleAt reports whether the ad may be shown at the given instant. The
// placement match is handled by the query; this covers the active flag and the
// optional validity window.
func (a *Ad) EligibleAt(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartsAt != nil && now.Before(*a.StartsAt) {
		return false
	}
	if a.EndsAt != nil && now.After(*a.EndsAt) {
		return false
	}
	return true
}

// AdClick is an immutable log record. The ad id is a reference, not ownership;
// the ad may be deleted later without touching its click history.
type AdClick struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	AdID      string    `json:"ad_id" gorm:"not null;index"`
	Placement string    `json:"placement" gorm:"size:20"`
	ClientIP  string    `json:"client_ip" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"size:500"`
	Referer   string    `json:"referer" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}

// AdImpression mirrors AdClick for views.
type AdImpression struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	AdID      string    `json:"ad_id" gorm:"not null;index"`
	Placement string    `json:"placement" gorm:"size:20"`
	ClientIP  string    `json:"client_ip" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}
