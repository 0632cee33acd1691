package repositories

import (
	"context"
	"time"

	"github.com/almaqal-media/almaqal_api/model"
	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	BaseRepository
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *AnalyticsRepository) Insert(ctx context.Context, event *model.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// DeleteOlderThan trims the event log; called from the daily cleanup job.
func (r *AnalyticsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) error {
	return r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.AnalyticsEvent{}).Error
}
