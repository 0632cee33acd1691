package dto

import "github.com/almaqal-media/almaqal_api/model"

type CreateToolRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Slug          string `json:"slug" validate:"omitempty,max=255"`
	Description   string `json:"description"`
	DescriptionEn string `json:"description_en"`
	WebsiteURL    string `json:"website_url" validate:"required,url,max=500"`
	LogoURL       string `json:"logo_url" validate:"omitempty,url,max=500"`
	Category      string `json:"category" validate:"omitempty,max=100"`
	Pricing       string `json:"pricing" validate:"omitempty,oneof=free freemium paid"`
	Featured      bool   `json:"featured"`
}

func (r CreateToolRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateToolRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=255"`
	Description   *string `json:"description"`
	DescriptionEn *string `json:"description_en"`
	WebsiteURL    *string `json:"website_url" validate:"omitempty,url,max=500"`
	LogoURL       *string `json:"logo_url" validate:"omitempty,url,max=500"`
	Category      *string `json:"category" validate:"omitempty,max=100"`
	Pricing       *string `json:"pricing" validate:"omitempty,oneof=free freemium paid"`
	Featured      *bool   `json:"featured"`
	IsActive      *bool   `json:"is_active"`
}

func (r UpdateToolRequest) Validate() error {
	return validate.Struct(r)
}

type ListToolsRequest struct {
	Category string `query:"category" validate:"omitempty,max=100"`
	Pricing  string `query:"pricing" validate:"omitempty,oneof=free freemium paid"`
	Featured *bool  `query:"featured"`
	Limit    int    `query:"limit" validate:"omitempty,gt=0"`
}

func (r ListToolsRequest) Validate() error {
	return validate.Struct(r)
}

type ToolListResponse struct {
	Tools []model.AITool `json:"tools"`
	Count int            `json:"count"`
}
