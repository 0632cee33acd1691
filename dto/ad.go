package dto

import (
	"time"

	"github.com/almaqal-media/almaqal_api/model"
)

type CreateAdRequest struct {
	Title     string     `json:"title" validate:"required,max=255"`
	TitleAr   string     `json:"title_ar" validate:"max=255"`
	ImageURL  string     `json:"image_url" validate:"omitempty,url,max=500"`
	HTML      string     `json:"html"`
	TargetURL string     `json:"target_url" validate:"required,url,max=500"`
	Placement string     `json:"placement" validate:"required,oneof=header footer sidebar in_content banner"`
	Type      string     `json:"type" validate:"omitempty,oneof=banner html video"`
	Priority  int        `json:"priority"`
	IsActive  *bool      `json:"is_active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

func (r CreateAdRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateAdRequest struct {
	Title     *string    `json:"title" validate:"omitempty,max=255"`
	TitleAr   *string    `json:"title_ar" validate:"omitempty,max=255"`
	ImageURL  *string    `json:"image_url" validate:"omitempty,url,max=500"`
	HTML      *string    `json:"html"`
	TargetURL *string    `json:"target_url" validate:"omitempty,url,max=500"`
	Placement *string    `json:"placement" validate:"omitempty,oneof=header footer sidebar in_content banner"`
	Type      *string    `json:"type" validate:"omitempty,oneof=banner html video"`
	Priority  *int       `json:"priority"`
	IsActive  *bool      `json:"is_active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

func (r UpdateAdRequest) Validate() error {
	return validate.Struct(r)
}

// ListAdsRequest mirrors the admin listing query string.
type ListAdsRequest struct {
	Placement string `query:"placement" validate:"omitempty,oneof=header footer sidebar in_content banner"`
	Type      string `query:"type" validate:"omitempty,oneof=banner html video"`
	Status    string `query:"status" validate:"omitempty,oneof=active inactive scheduled expired"`
	IsActive  *bool  `query:"is_active"`
	Limit     int    `query:"limit" validate:"omitempty,gt=0"`
}

func (r ListAdsRequest) Validate() error {
	return validate.Struct(r)
}

type ServeAdsRequest struct {
	Placement string `query:"placement" validate:"required,oneof=header footer sidebar in_content banner"`
	Type      string `query:"type" validate:"omitempty,oneof=banner html video"`
	Limit     int    `query:"limit" validate:"omitempty,gt=0"`
	Rotate    bool   `query:"rotate"`
}

func (r ServeAdsRequest) Validate() error {
	return validate.Struct(r)
}

type AdListResponse struct {
	Ads   []model.Ad `json:"ads"`
	Count int        `json:"count"`
}

type AdResponse struct {
	Ad *model.Ad `json:"ad"`
}

type ClickResponse struct {
	Message string `json:"message"`
}
