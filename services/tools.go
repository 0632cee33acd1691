package services

import (
	"context"
	"fmt"
	"time"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/model"
	"github.com/almaqal-media/almaqal_api/services/repositories"
	"github.com/almaqal-media/almaqal_api/shared"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
)

type ToolsService struct {
	appContext.DefaultService

	sqlSvc *PostgresService

	storeTimeout time.Duration
}

const TOOLS_SVC = "tools_svc"

func (svc ToolsService) Id() string {
	return TOOLS_SVC
}

func (svc *ToolsService) Configure(ctx *appContext.Context) error {
	svc.storeTimeout = 5 * time.Second
	return svc.DefaultService.Configure(ctx)
}

func (svc *ToolsService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

func (svc *ToolsService) ListTools(req dto.ListToolsRequest) (*dto.ToolListResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	tools, err := svc.sqlSvc.Tools().List(ctx, repositories.ToolFilters{
		Category:   req.Category,
		Pricing:    req.Pricing,
		Featured:   req.Featured,
		ActiveOnly: true,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ToolListResponse{Tools: tools, Count: len(tools)}, nil
}

func (svc *ToolsService) GetTool(slug string) (*model.AITool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	tool, err := svc.sqlSvc.Tools().GetBySlug(ctx, slug)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Tool not found")
	}
	if !tool.IsActive {
		return nil, shared.NewNotFoundError(fmt.Errorf("tool %s inactive", slug), "Tool not found")
	}
	return tool, nil
}

func (svc *ToolsService) CreateTool(req dto.CreateToolRequest) (*model.AITool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	exists, err := svc.sqlSvc.Tools().SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		slug = fmt.Sprintf("%s-%s", slug, uuid.NewString()[:8])
	}

	pricing := req.Pricing
	if pricing == "" {
		pricing = shared.PricingFree
	}

	now := time.Now()
	tool := &model.AITool{
		ID:            uuid.NewString(),
		Slug:          slug,
		Name:          req.Name,
		Description:   req.Description,
		DescriptionEn: req.DescriptionEn,
		WebsiteURL:    req.WebsiteURL,
		LogoURL:       req.LogoURL,
		Category:      req.Category,
		Pricing:       pricing,
		Featured:      req.Featured,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := svc.sqlSvc.Tools().Create(ctx, tool); err != nil {
		return nil, err
	}

	return tool, nil
}

func (svc *ToolsService) UpdateTool(id string, req dto.UpdateToolRequest) (*model.AITool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	tool, err := svc.sqlSvc.Tools().Get(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Tool not found")
	}

	if req.Name != nil {
		tool.Name = *req.Name
	}
	if req.Description != nil {
		tool.Description = *req.Description
	}
	if req.DescriptionEn != nil {
		tool.DescriptionEn = *req.DescriptionEn
	}
	if req.WebsiteURL != nil {
		tool.WebsiteURL = *req.WebsiteURL
	}
	if req.LogoURL != nil {
		tool.LogoURL = *req.LogoURL
	}
	if req.Category != nil {
		tool.Category = *req.Category
	}
	if req.Pricing != nil {
		tool.Pricing = *req.Pricing
	}
	if req.Featured != nil {
		tool.Featured = *req.Featured
	}
	if req.IsActive != nil {
		tool.IsActive = *req.IsActive
	}

	tool.UpdatedAt = time.Now()

	if err := svc.sqlSvc.Tools().Update(ctx, tool); err != nil {
		return nil, err
	}

	return tool, nil
}

func (svc *ToolsService) DeleteTool(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	if _, err := svc.sqlSvc.Tools().Get(ctx, id); err != nil {
		return shared.NewNotFoundError(err, "Tool not found")
	}

	return svc.sqlSvc.Tools().Delete(ctx, id)
}
