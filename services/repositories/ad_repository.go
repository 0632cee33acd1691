package repositories

import (
	"context"
	"time"

	"github.com/almaqal-media/almaqal_api/model"
	"gorm.io/gorm"
)

// AdFilters narrows admin listings. Zero values mean "no constraint".
type AdFilters struct {
	Placement string
	Type      string
	IsActive  *bool
	Status    string
	Limit     int
}

type AdRepository struct {
	BaseRepository
}

func NewAdRepository(db *gorm.DB) *AdRepository {
	return &AdRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ListEligible returns ads servable for the placement right now, ordered by
// priority ascending then creation time descending. The ordering is the
// rotation order clients cycle through, so it must be stable.
func (r *AdRepository) ListEligible(ctx context.Context, placement, adType string, limit int, now time.Time) ([]model.Ad, error) {
	var ads []model.Ad

	q := r.db.WithContext(ctx).
		Where("placement = ? AND is_active = ?", placement, true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now)

	if adType != "" {
		q = q.Where("type = ?", adType)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	err := q.Order("priority ASC, created_at DESC").Find(&ads).Error
	return ads, err
}

func (r *AdRepository) List(ctx context.Context, filters AdFilters) ([]model.Ad, error) {
	var ads []model.Ad
	now := time.Now()

	q := r.db.WithContext(ctx).Model(&model.Ad{})

	if filters.Placement != "" {
		q = q.Where("placement = ?", filters.Placement)
	}
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}
	if filters.IsActive != nil {
		q = q.Where("is_active = ?", *filters.IsActive)
	}

	switch filters.Status {
	case "active":
		q = q.Where("is_active = ?", true).
			Where("starts_at IS NULL OR starts_at <= ?", now).
			Where("ends_at IS NULL OR ends_at >= ?", now)
	case "inactive":
		q = q.Where("is_active = ?", false)
	case "scheduled":
		q = q.Where("starts_at > ?", now)
	case "expired":
		q = q.Where("ends_at < ?", now)
	}

	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}

	err := q.Order("priority ASC, created_at DESC").Find(&ads).Error
	return ads, err
}

func (r *AdRepository) Get(ctx context.Context, id string) (*model.Ad, error) {
	var ad model.Ad
	if err := r.db.WithContext(ctx).First(&ad, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *AdRepository) Create(ctx context.Context, ad *model.Ad) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *AdRepository) Update(ctx context.Context, ad *model.Ad) error {
	return r.db.WithContext(ctx).Save(ad).Error
}

func (r *AdRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Ad{}, "id = ?", id).Error
}

func (r *AdRepository) InsertClick(ctx context.Context, click *model.AdClick) error {
	return r.db.WithContext(ctx).Create(click).Error
}

func (r *AdRepository) InsertImpression(ctx context.Context, impression *model.AdImpression) error {
	return r.db.WithContext(ctx).Create(impression).Error
}

// IncrementClickCount bumps the denormalized counter with a column expression
// so concurrent clicks never lose updates.
func (r *AdRepository) IncrementClickCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Ad{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
}

func (r *AdRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Ad{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
