package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/model"
	"github.com/almaqal-media/almaqal_api/services/repositories"
	"github.com/almaqal-media/almaqal_api/shared"
)

type fakeAdStore struct {
	mu sync.Mutex

	ads         map[string]*model.Ad
	eligible    []model.Ad
	listErr     error
	getErr      error
	clickErr    error
	clicks      []*model.AdClick
	impressions []*model.AdImpression
	clickIncs   int
	viewIncs    int
}

func newFakeAdStore() *fakeAdStore {
	return &fakeAdStore{ads: make(map[string]*model.Ad)}
}

func (f *fakeAdStore) ListEligible(ctx context.Context, placement, adType string, limit int, now time.Time) ([]model.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.eligible
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAdStore) List(ctx context.Context, filters repositories.AdFilters) ([]model.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Ad
	for _, ad := range f.ads {
		out = append(out, *ad)
	}
	return out, nil
}

func (f *fakeAdStore) Get(ctx context.Context, id string) (*model.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	ad, ok := f.ads[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *ad
	return &copied, nil
}

func (f *fakeAdStore) Create(ctx context.Context, ad *model.Ad) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ads[ad.ID] = ad
	return nil
}

func (f *fakeAdStore) Update(ctx context.Context, ad *model.Ad) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ads[ad.ID] = ad
	return nil
}

func (f *fakeAdStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ads, id)
	return nil
}

func (f *fakeAdStore) InsertClick(ctx context.Context, click *model.AdClick) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clickErr != nil {
		return f.clickErr
	}
	f.clicks = append(f.clicks, click)
	return nil
}

func (f *fakeAdStore) InsertImpression(ctx context.Context, impression *model.AdImpression) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.impressions = append(f.impressions, impression)
	return nil
}

func (f *fakeAdStore) IncrementClickCount(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clickIncs++
	return nil
}

func (f *fakeAdStore) IncrementViewCount(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.viewIncs++
	return nil
}

type fakeEventSender struct {
	mu     sync.Mutex
	events []Event
}

func (f *fakeEventSender) SendEvent(event Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeEventSender) captured() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

func newTestAdsService(store AdStore, sender eventSender) *AdsService {
	return &AdsService{
		store:        store,
		analyticsSvc: sender,
		storeTimeout: time.Second,
		cacheTTL:     time.Second,
	}
}

// ==================== SELECTION ====================

func TestSelectAdsInvalidPlacement(t *testing.T) {
	svc := newTestAdsService(newFakeAdStore(), nil)

	assert.Nil(t, svc.SelectAds("popup", "", 1))
}

func TestSelectAdsEmptyIsNotAnError(t *testing.T) {
	svc := newTestAdsService(newFakeAdStore(), nil)

	ads := svc.SelectAds(shared.PlacementHeader, "", 1)
	assert.Empty(t, ads)
}

func TestSelectAdsStoreErrorDegradesToEmpty(t *testing.T) {
	store := newFakeAdStore()
	store.listErr = errors.New("connection refused")
	svc := newTestAdsService(store, nil)

	assert.NotPanics(t, func() {
		ads := svc.SelectAds(shared.PlacementHeader, "", 1)
		assert.Empty(t, ads)
	})
}

func TestSelectAdsHonorsLimit(t *testing.T) {
	store := newFakeAdStore()
	store.eligible = []model.Ad{
		{ID: "a", Priority: 1},
		{ID: "b", Priority: 2},
		{ID: "c", Priority: 3},
	}
	svc := newTestAdsService(store, nil)

	ads := svc.SelectAds(shared.PlacementSidebar, "", 2)
	require.Len(t, ads, 2)
	assert.Equal(t, "a", ads[0].ID)
	assert.Equal(t, "b", ads[1].ID)
}

func TestFilterEligibleDropsLapsedWindows(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	ads := []model.Ad{
		{ID: "live", IsActive: true},
		{ID: "expired", IsActive: true, EndsAt: &past},
		{ID: "upcoming", IsActive: true, StartsAt: &future},
		{ID: "disabled", IsActive: false},
		{ID: "windowed", IsActive: true, StartsAt: &past, EndsAt: &future},
	}

	eligible := filterEligible(ads, now)
	require.Len(t, eligible, 2)
	assert.Equal(t, "live", eligible[0].ID)
	assert.Equal(t, "windowed", eligible[1].ID)
}

func TestServeAdsDefaultsToOneAd(t *testing.T) {
	store := newFakeAdStore()
	store.eligible = []model.Ad{{ID: "a"}, {ID: "b"}}
	svc := newTestAdsService(store, nil)

	resp := svc.ServeAds(dto.ServeAdsRequest{Placement: shared.PlacementHeader}, "1.2.3.4", "ua")
	require.NotNil(t, resp)
	assert.Equal(t, 1, resp.Count)
	assert.Len(t, resp.Ads, 1)
}

func TestServeAdsRotateReturnsAll(t *testing.T) {
	store := newFakeAdStore()
	store.eligible = []model.Ad{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	svc := newTestAdsService(store, nil)

	resp := svc.ServeAds(dto.ServeAdsRequest{Placement: shared.PlacementHeader, Rotate: true}, "1.2.3.4", "ua")
	assert.Equal(t, 3, resp.Count)
}

func TestServeAdsRecordsImpressions(t *testing.T) {
	store := newFakeAdStore()
	store.eligible = []model.Ad{{ID: "a"}, {ID: "b"}}
	svc := newTestAdsService(store, nil)

	svc.ServeAds(dto.ServeAdsRequest{Placement: shared.PlacementHeader, Limit: 2}, "1.2.3.4", "ua")

	// Impressions are recorded on a background goroutine.
	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.impressions) == 2 && store.viewIncs == 2
	}, time.Second, 10*time.Millisecond)
}

// ==================== CLICK RECORDING ====================

func TestRecordClickPersistsAndForwards(t *testing.T) {
	store := newFakeAdStore()
	store.ads["ad-1"] = &model.Ad{ID: "ad-1", Title: "Spring Sale", Placement: shared.PlacementHeader}
	sender := &fakeEventSender{}
	svc := newTestAdsService(store, sender)

	svc.RecordClick("ad-1", shared.PlacementHeader, "1.2.3.4", "ua", "https://almaqal.net/")

	require.Len(t, store.clicks, 1)
	assert.Equal(t, "ad-1", store.clicks[0].AdID)
	assert.Equal(t, 1, store.clickIncs)

	events := sender.captured()
	require.Len(t, events, 1)
	assert.Equal(t, "click", events[0].Action)
	assert.Equal(t, "ads", events[0].Category)
	assert.Equal(t, "Spring Sale - header", events[0].Label)
}

func TestRecordClickFallsBackToAdPlacement(t *testing.T) {
	store := newFakeAdStore()
	store.ads["ad-1"] = &model.Ad{ID: "ad-1", Title: "Spring Sale", Placement: shared.PlacementSidebar}
	sender := &fakeEventSender{}
	svc := newTestAdsService(store, sender)

	svc.RecordClick("ad-1", "", "1.2.3.4", "ua", "")

	events := sender.captured()
	require.Len(t, events, 1)
	assert.Equal(t, "Spring Sale - sidebar", events[0].Label)

	require.Len(t, store.clicks, 1)
	assert.Equal(t, shared.PlacementSidebar, store.clicks[0].Placement)
}

func TestRecordClickNeverFails(t *testing.T) {
	store := newFakeAdStore()
	store.getErr = errors.New("db down")
	store.clickErr = errors.New("db down")
	sender := &fakeEventSender{}
	svc := newTestAdsService(store, sender)

	assert.NotPanics(t, func() {
		svc.RecordClick("ghost", shared.PlacementHeader, "1.2.3.4", "ua", "")
	})

	// The analytics event still goes out with the ad ID as label.
	events := sender.captured()
	require.Len(t, events, 1)
	assert.Equal(t, "ghost", events[0].Label)
}

// ==================== ADMIN CRUD ====================

func TestCreateAdRejectsInvertedWindow(t *testing.T) {
	svc := newTestAdsService(newFakeAdStore(), nil)

	start := time.Now().Add(time.Hour)
	end := start.Add(-time.Minute)

	_, err := svc.CreateAd(dto.CreateAdRequest{
		Title:     "Bad window",
		TargetURL: "https://example.com",
		Placement: shared.PlacementHeader,
		StartsAt:  &start,
		EndsAt:    &end,
	})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestCreateAdAppliesDefaults(t *testing.T) {
	store := newFakeAdStore()
	svc := newTestAdsService(store, nil)

	ad, err := svc.CreateAd(dto.CreateAdRequest{
		Title:     "Defaults",
		TargetURL: "https://example.com",
		Placement: shared.PlacementFooter,
	})
	require.NoError(t, err)

	assert.Equal(t, shared.AdTypeBanner, ad.Type)
	assert.True(t, ad.IsActive)
	assert.NotEmpty(t, ad.ID)
}

func TestUpdateAdMergesFields(t *testing.T) {
	store := newFakeAdStore()
	store.ads["ad-1"] = &model.Ad{ID: "ad-1", Title: "Old", Placement: shared.PlacementHeader, Priority: 5}
	svc := newTestAdsService(store, nil)

	newTitle := "New"
	ad, err := svc.UpdateAd("ad-1", dto.UpdateAdRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "New", ad.Title)
	assert.Equal(t, 5, ad.Priority)
	assert.Equal(t, shared.PlacementHeader, ad.Placement)
}

func TestGetAdNotFound(t *testing.T) {
	svc := newTestAdsService(newFakeAdStore(), nil)

	_, err := svc.GetAd("nope")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestDeleteAdNotFound(t *testing.T) {
	svc := newTestAdsService(newFakeAdStore(), nil)

	err := svc.DeleteAd("nope")
	require.Error(t, err)
}
