package model

import "time"

// AITool is a directory entry for the AI tools listing.
type AITool struct {
	ID            string `json:"id" gorm:"primaryKey;type:text;not null"`
	Slug          string `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Name          string `json:"name" gorm:"not null;size:255"`
	Description   string `json:"description" gorm:"type:text"`
	DescriptionEn string `json:"description_en" gorm:"type:text"`
	WebsiteURL    string `json:"website_url" gorm:"size:500"`
	LogoURL       string `json:"logo_url" gorm:"size:500"`
	Category      string `json:"category" gorm:"index;size:100"`
	Pricing       string `json:"pricing" gorm:"size:20;default:'free'"`

	Featured bool `json:"featured" gorm:"not null;default:false"`
	IsActive bool `json:"is_active" gorm:"not null;default:true;index"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}
