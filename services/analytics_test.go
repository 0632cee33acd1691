package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almaqal-media/almaqal_api/model"
)

type fakeAnalyticsStore struct {
	mu        sync.Mutex
	inserted  []*model.AnalyticsEvent
	insertErr error
}

func (f *fakeAnalyticsStore) Insert(ctx context.Context, event *model.AnalyticsEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, event)
	return nil
}

func (f *fakeAnalyticsStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted)
}

func TestSendEventNeverBlocks(t *testing.T) {
	svc := &AnalyticsService{
		events: make(chan Event, 2),
		closed: make(chan struct{}),
	}

	done := make(chan struct{})
	go func() {
		// No worker is draining the channel; the third send hits a full
		// buffer and must drop instead of blocking.
		for i := 0; i < 5; i++ {
			svc.SendEvent(Event{Action: "click", Category: "ads"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SendEvent blocked on a full buffer")
	}

	assert.Len(t, svc.events, 2)
}

func TestWorkerPersistsEvents(t *testing.T) {
	store := &fakeAnalyticsStore{}
	svc := &AnalyticsService{
		store:  store,
		events: make(chan Event, 16),
		closed: make(chan struct{}),
	}

	go svc.worker()
	defer svc.Shutdown()

	svc.SendEvent(Event{Action: "click", Category: "ads", Label: "Spring Sale - header"})
	svc.SendEvent(Event{Action: "subscribe", Category: "newsletter", Label: "ar"})

	assert.Eventually(t, func() bool {
		return store.count() == 2
	}, time.Second, 10*time.Millisecond)

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.inserted, 2)
	assert.Equal(t, "ads", store.inserted[0].Category)
	assert.Equal(t, "Spring Sale - header", store.inserted[0].Label)
	assert.NotEmpty(t, store.inserted[0].ID)
	assert.False(t, store.inserted[0].CreatedAt.IsZero())
}

func TestWorkerSurvivesStoreErrors(t *testing.T) {
	store := &fakeAnalyticsStore{insertErr: errors.New("db down")}
	svc := &AnalyticsService{
		store:  store,
		events: make(chan Event, 16),
		closed: make(chan struct{}),
	}

	go svc.worker()
	defer svc.Shutdown()

	svc.SendEvent(Event{Action: "click", Category: "ads"})

	// A failed insert must not kill the worker.
	store.mu.Lock()
	store.insertErr = nil
	store.mu.Unlock()

	svc.SendEvent(Event{Action: "click", Category: "ads"})

	assert.Eventually(t, func() bool {
		return store.count() >= 1
	}, time.Second, 10*time.Millisecond)
}
