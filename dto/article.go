package dto

import (
	"time"

	"github.com/almaqal-media/almaqal_api/model"
)

type CreateArticleRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	TitleEn    string `json:"title_en" validate:"omitempty,max=255"`
	Slug       string `json:"slug" validate:"omitempty,max=255"`
	Excerpt    string `json:"excerpt"`
	Body       string `json:"body" validate:"required"`
	CoverImage string `json:"cover_image" validate:"omitempty,url,max=500"`
	Category   string `json:"category" validate:"omitempty,max=100"`
	Language   string `json:"language" validate:"omitempty,oneof=ar en"`
	Published  bool   `json:"published"`
}

func (r CreateArticleRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateArticleRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=255"`
	TitleEn    *string `json:"title_en" validate:"omitempty,max=255"`
	Excerpt    *string `json:"excerpt"`
	Body       *string `json:"body"`
	CoverImage *string `json:"cover_image" validate:"omitempty,url,max=500"`
	Category   *string `json:"category" validate:"omitempty,max=100"`
	Language   *string `json:"language" validate:"omitempty,oneof=ar en"`
	Published  *bool   `json:"published"`
}

func (r UpdateArticleRequest) Validate() error {
	return validate.Struct(r)
}

type ListArticlesRequest struct {
	Category string `query:"category" validate:"omitempty,max=100"`
	Language string `query:"language" validate:"omitempty,oneof=ar en"`
	Page     int    `query:"page" validate:"omitempty,gt=0"`
	Limit    int    `query:"limit" validate:"omitempty,gt=0"`
}

func (r ListArticlesRequest) Validate() error {
	return validate.Struct(r)
}

type ArticleListResponse struct {
	Articles []model.Article `json:"articles"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

type ArticleResponse struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	TitleEn     string     `json:"title_en,omitempty"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Category    string     `json:"category,omitempty"`
	Language    string     `json:"language"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ViewCount   int64      `json:"view_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
