package repositories

import (
	"context"

	"github.com/almaqal-media/almaqal_api/model"
	"gorm.io/gorm"
)

type ToolFilters struct {
	Category   string
	Pricing    string
	Featured   *bool
	ActiveOnly bool
	Limit      int
}

type ToolRepository struct {
	BaseRepository
}

func NewToolRepository(db *gorm.DB) *ToolRepository {
	return &ToolRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *ToolRepository) List(ctx context.Context, filters ToolFilters) ([]model.AITool, error) {
	var tools []model.AITool

	q := r.db.WithContext(ctx).Model(&model.AITool{})

	if filters.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.Pricing != "" {
		q = q.Where("pricing = ?", filters.Pricing)
	}
	if filters.Featured != nil {
		q = q.Where("featured = ?", *filters.Featured)
	}
	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}

	err := q.Order("featured DESC, name ASC").Find(&tools).Error
	return tools, err
}

func (r *ToolRepository) GetBySlug(ctx context.Context, slug string) (*model.AITool, error) {
	var tool model.AITool
	if err := r.db.WithContext(ctx).First(&tool, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &tool, nil
}

func (r *ToolRepository) Get(ctx context.Context, id string) (*model.AITool, error) {
	var tool model.AITool
	if err := r.db.WithContext(ctx).First(&tool, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tool, nil
}

func (r *ToolRepository) Create(ctx context.Context, tool *model.AITool) error {
	return r.db.WithContext(ctx).Create(tool).Error
}

func (r *ToolRepository) Update(ctx context.Context, tool *model.AITool) error {
	return r.db.WithContext(ctx).Save(tool).Error
}

func (r *ToolRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.AITool{}, "id = ?", id).Error
}

func (r *ToolRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AITool{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
