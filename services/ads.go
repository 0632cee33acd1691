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
	log "github.com/sirupsen/logrus"
)

// AdStore is the storage collaborator of the serving path. AdRepository is
// the production implementation; tests substitute fakes.
type AdStore interface {
	ListEligible(ctx context.Context, placement, adType string, limit int, now time.Time) ([]model.Ad, error)
	List(ctx context.Context, filters repositories.AdFilters) ([]model.Ad, error)
	Get(ctx context.Context, id string) (*model.Ad, error)
	Create(ctx context.Context, ad *model.Ad) error
	Update(ctx context.Context, ad *model.Ad) error
	Delete(ctx context.Context, id string) error
	InsertClick(ctx context.Context, click *model.AdClick) error
	InsertImpression(ctx context.Context, impression *model.AdImpression) error
	IncrementClickCount(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error
}

type eventSender interface {
	SendEvent(event Event)
}

// AdsService implements ad selection, delivery and click/impression
// recording. Selection is read-only; every write it triggers is best-effort
// and must never fail or slow down the render path.
type AdsService struct {
	appContext.DefaultService

	store        AdStore
	cache        *RedisService
	analyticsSvc eventSender
	sqlSvc       *PostgresService

	storeTimeout time.Duration
	cacheTTL     time.Duration
}

const ADS_SVC = "ads_svc"

const adServeCachePrefix = "ads:serve:"

func (svc AdsService) Id() string {
	return ADS_SVC
}

func (svc *AdsService) Configure(ctx *appContext.Context) error {
	svc.storeTimeout = 3 * time.Second
	svc.cacheTTL = 10 * time.Second
	return svc.DefaultService.Configure(ctx)
}

func (svc *AdsService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.cache = svc.Service(REDIS_SVC).(*RedisService)
	svc.analyticsSvc = svc.Service(ANALYTICS_SVC).(*AnalyticsService)
	svc.store = svc.sqlSvc.Ads()
	return nil
}

// ==================== AD SELECTION ====================

// SelectAds returns the eligible ads for a placement, ordered by priority
// then recency. Zero eligible ads is a valid, silent outcome. Store errors
// are logged and degrade to the same empty result; the page renders without
// an ad rather than with an error.
func (svc *AdsService) SelectAds(placement, adType string, limit int) []model.Ad {
	if !shared.IsValidPlacement(placement) {
		return nil
	}

	cacheKey := fmt.Sprintf("%s%s:%s:%d", adServeCachePrefix, placement, adType, limit)
	if svc.cache != nil {
		var cached []model.Ad
		ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
		hit, err := svc.cache.GetJSON(ctx, cacheKey, &cached)
		cancel()
		if err == nil && hit {
			// A validity window can lapse inside the cache TTL, so the
			// cached set is re-checked before serving.
			return filterEligible(cached, time.Now())
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	ads, err := svc.store.ListEligible(ctx, placement, adType, limit, time.Now())
	if err != nil {
		log.WithError(err).WithField("placement", placement).Warn("Ad selection failed, serving no ad")
		return nil
	}

	if svc.cache != nil && len(ads) > 0 {
		cacheCtx, cacheCancel := context.WithTimeout(context.Background(), svc.storeTimeout)
		if err := svc.cache.Set(cacheCtx, cacheKey, ads, svc.cacheTTL); err != nil {
			log.WithError(err).Debug("Failed to cache ad selection")
		}
		cacheCancel()
	}

	return ads
}

// filterEligible drops ads that are no longer servable, keeping order.
func filterEligible(ads []model.Ad, now time.Time) []model.Ad {
	eligible := make([]model.Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.EligibleAt(now) {
			eligible = append(eligible, ad)
		}
	}
	return eligible
}

// ServeAds resolves the serving request for one slot. With rotation the
// client cycles through the full eligible set on a timer instead of
// re-querying, so rotate=true returns every eligible ad in rotation order.
func (svc *AdsService) ServeAds(req dto.ServeAdsRequest, clientIP, userAgent string) *dto.AdListResponse {
	limit := req.Limit
	if limit <= 0 {
		limit = 1
	}
	if req.Rotate {
		limit = 0 // all eligible ads, client rotates
	}

	ads := svc.SelectAds(req.Placement, req.Type, limit)

	if len(ads) > 0 {
		adsServedTotal.WithLabelValues(req.Placement).Add(float64(len(ads)))
		go svc.recordImpressions(ads, req.Placement, clientIP, userAgent)
	}

	return &dto.AdListResponse{Ads: ads, Count: len(ads)}
}

// recordImpressions logs a view per served ad. Fire-and-forget: runs off the
// request goroutine with its own timeout, failures are logged and dropped.
func (svc *AdsService) recordImpressions(ads []model.Ad, placement, clientIP, userAgent string) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	now := time.Now()
	for _, ad := range ads {
		impression := &model.AdImpression{
			ID:        uuid.NewString(),
			AdID:      ad.ID,
			Placement: placement,
			ClientIP:  clientIP,
			UserAgent: userAgent,
			CreatedAt: now,
		}

		if err := svc.store.InsertImpression(ctx, impression); err != nil {
			log.WithError(err).WithField("ad_id", ad.ID).Warn("Failed to record impression")
			continue
		}

		if err := svc.store.IncrementViewCount(ctx, ad.ID); err != nil {
			log.WithError(err).WithField("ad_id", ad.ID).Warn("Failed to increment view count")
		}

		adImpressionsRecordedTotal.WithLabelValues(placement).Inc()
	}
}

// ==================== CLICK RECORDING ====================

// RecordClick persists a click event, bumps the denormalized counter and
// forwards an analytics event. Every step is best-effort: the user's
// navigation to the target URL must proceed whether or not logging worked,
// so failures are logged and swallowed.
func (svc *AdsService) RecordClick(adID, placement, clientIP, userAgent, referer string) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	label := adID
	ad, err := svc.store.Get(ctx, adID)
	if err != nil {
		log.WithError(err).WithField("ad_id", adID).Warn("Click recorded for unknown ad")
	} else {
		label = fmt.Sprintf("%s - %s", ad.Title, placement)
		if placement == "" {
			placement = ad.Placement
			label = fmt.Sprintf("%s - %s", ad.Title, ad.Placement)
		}
	}

	click := &model.AdClick{
		ID:        uuid.NewString(),
		AdID:      adID,
		Placement: placement,
		ClientIP:  clientIP,
		UserAgent: userAgent,
		Referer:   referer,
		CreatedAt: time.Now(),
	}

	if err := svc.store.InsertClick(ctx, click); err != nil {
		log.WithError(err).WithField("ad_id", adID).Warn("Failed to insert click record")
	} else {
		adClicksRecordedTotal.WithLabelValues(placement).Inc()
	}

	if err := svc.store.IncrementClickCount(ctx, adID); err != nil {
		log.WithError(err).WithField("ad_id", adID).Warn("Failed to increment click count")
	}

	if svc.analyticsSvc != nil {
		svc.analyticsSvc.SendEvent(Event{
			Action:   "click",
			Category: "ads",
			Label:    label,
		})
	}
}

// ==================== ADMIN CRUD ====================

func (svc *AdsService) ListAds(req dto.ListAdsRequest) (*dto.AdListResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	ads, err := svc.store.List(ctx, repositories.AdFilters{
		Placement: req.Placement,
		Type:      req.Type,
		IsActive:  req.IsActive,
		Status:    req.Status,
		Limit:     req.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &dto.AdListResponse{Ads: ads, Count: len(ads)}, nil
}

func (svc *AdsService) GetAd(id string) (*model.Ad, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	ad, err := svc.store.Get(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Ad not found")
	}
	return ad, nil
}

func (svc *AdsService) CreateAd(req dto.CreateAdRequest) (*model.Ad, error) {
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, shared.NewBadRequestError(fmt.Errorf("ends_at before starts_at"), "Validity window end must be after its start")
	}

	adType := req.Type
	if adType == "" {
		adType = shared.AdTypeBanner
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	ad := &model.Ad{
		ID:        uuid.NewString(),
		Title:     req.Title,
		TitleAr:   req.TitleAr,
		ImageURL:  req.ImageURL,
		HTML:      req.HTML,
		TargetURL: req.TargetURL,
		Placement: req.Placement,
		Type:      adType,
		Priority:  req.Priority,
		IsActive:  isActive,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	if err := svc.store.Create(ctx, ad); err != nil {
		return nil, err
	}

	svc.invalidateServeCache()
	return ad, nil
}

func (svc *AdsService) UpdateAd(id string, req dto.UpdateAdRequest) (*model.Ad, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	ad, err := svc.store.Get(ctx, id)
	if err != nil {
		return nil, shared.NewNotFoundError(err, "Ad not found")
	}

	if req.Title != nil {
		ad.Title = *req.Title
	}
	if req.TitleAr != nil {
		ad.TitleAr = *req.TitleAr
	}
	if req.ImageURL != nil {
		ad.ImageURL = *req.ImageURL
	}
	if req.HTML != nil {
		ad.HTML = *req.HTML
	}
	if req.TargetURL != nil {
		ad.TargetURL = *req.TargetURL
	}
	if req.Placement != nil {
		ad.Placement = *req.Placement
	}
	if req.Type != nil {
		ad.Type = *req.Type
	}
	if req.Priority != nil {
		ad.Priority = *req.Priority
	}
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}
	if req.StartsAt != nil {
		ad.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		ad.EndsAt = req.EndsAt
	}

	if ad.StartsAt != nil && ad.EndsAt != nil && ad.EndsAt.Before(*ad.StartsAt) {
		return nil, shared.NewBadRequestError(fmt.Errorf("ends_at before starts_at"), "Validity window end must be after its start")
	}

	ad.UpdatedAt = time.Now()

	if err := svc.store.Update(ctx, ad); err != nil {
		return nil, err
	}

	svc.invalidateServeCache()
	return ad, nil
}

func (svc *AdsService) DeleteAd(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	if _, err := svc.store.Get(ctx, id); err != nil {
		return shared.NewNotFoundError(err, "Ad not found")
	}

	if err := svc.store.Delete(ctx, id); err != nil {
		return err
	}

	svc.invalidateServeCache()
	return nil
}

func (svc *AdsService) invalidateServeCache() {
	if svc.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	if err := svc.cache.DeleteByPattern(ctx, adServeCachePrefix+"*"); err != nil {
		log.WithError(err).Debug("Failed to invalidate ad serve cache")
	}
}
