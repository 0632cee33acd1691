package repositories

import (
	"context"

	"github.com/almaqal-media/almaqal_api/model"
	"gorm.io/gorm"
)

type ArticleFilters struct {
	Category      string
	Language      string
	PublishedOnly bool
	Page          int
	Limit         int
}

type ArticleRepository struct {
	BaseRepository
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *ArticleRepository) List(ctx context.Context, filters ArticleFilters) ([]model.Article, int64, error) {
	var articles []model.Article
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Article{})

	if filters.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.Language != "" {
		q = q.Where("language = ?", filters.Language)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
		if filters.Page > 1 {
			q = q.Offset((filters.Page - 1) * filters.Limit)
		}
	}

	err := q.Order("published_at DESC NULLS LAST, created_at DESC").Find(&articles).Error
	return articles, total, err
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).First(&article, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepository) Get(ctx context.Context, id string) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *ArticleRepository) Update(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Article{}, "id = ?", id).Error
}

func (r *ArticleRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Article{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *ArticleRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}
