package model

import "time"

// Article is the site's primary content unit. Arabic is the first-class
// language; the English fields are optional translations.
type Article struct {
	ID         string `json:"id" gorm:"primaryKey;type:text;not null"`
	Slug       string `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Title      string `json:"title" gorm:"not null;size:255"`
	TitleEn    string `json:"title_en" gorm:"size:255"`
	Excerpt    string `json:"excerpt" gorm:"type:text"`
	Body       string `json:"body" gorm:"type:text"`
	CoverImage string `json:"cover_image" gorm:"size:500"`
	Category   string `json:"category" gorm:"index;size:100"`
	Language   string `json:"language" gorm:"not null;size:2;default:'ar'"`
	AuthorID   string `json:"author_id" gorm:"size:64"`

	Published   bool       `json:"published" gorm:"not null;default:false;index"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ViewCount   int64      `json:"view_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null;size:100"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	NameEn    string    `json:"name_en" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}
