package repositories

import (
	"context"
	"errors"

	"github.com/almaqal-media/almaqal_api/model"
	"gorm.io/gorm"
)

type NewsletterRepository struct {
	BaseRepository
}

func NewNewsletterRepository(db *gorm.DB) *NewsletterRepository {
	return &NewsletterRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *NewsletterRepository) GetByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	var subscriber model.Subscriber
	err := r.db.WithContext(ctx).First(&subscriber, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (r *NewsletterRepository) Create(ctx context.Context, subscriber *model.Subscriber) error {
	return r.db.WithContext(ctx).Create(subscriber).Error
}

func (r *NewsletterRepository) Update(ctx context.Context, subscriber *model.Subscriber) error {
	return r.db.WithContext(ctx).Save(subscriber).Error
}

func (r *NewsletterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscriber{}).
		Where("unsubscribed_at IS NULL").Count(&count).Error
	return count, err
}
