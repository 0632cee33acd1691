package services

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/shared"
)

func newTestRateLimitService() *RateLimitService {
	svc := &RateLimitService{
		store:         newMemoryCounterStore(),
		sweepInterval: time.Minute,
		closed:        make(chan struct{}),
	}
	svc.initDefaultConfigs()
	return svc
}

func TestCheckCountsDownRemaining(t *testing.T) {
	svc := newTestRateLimitService()

	window := time.Minute

	for i, wantRemaining := range []int{2, 1, 0} {
		info := svc.Check("ip:1.2.3.4", 3, window)
		assert.True(t, info.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, wantRemaining, info.Remaining)
		require.NotNil(t, info.ResetTime)
	}

	info := svc.Check("ip:1.2.3.4", 3, window)
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	require.NotNil(t, info.ResetTime)
	assert.True(t, info.ResetTime.After(time.Now()))
}

func TestRateLimitExceededErrorIs429AppError(t *testing.T) {
	svc := newTestRateLimitService()

	reset := time.Now().Add(time.Minute).UTC()
	err := svc.rateLimitExceededError("ad_click", &dto.RateLimitInfo{
		Allowed:   false,
		Limit:     30,
		ResetTime: &reset,
	})

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok, "rejection must surface as an AppError")
	assert.Equal(t, http.StatusTooManyRequests, appErr.StatusCode)
	assert.Equal(t, "Too many clicks. Please slow down.", appErr.Message)

	data, ok := appErr.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, reset.Format(time.RFC3339), data["reset_time"])
}

func TestCheckKeysAreIndependent(t *testing.T) {
	svc := newTestRateLimitService()

	for i := 0; i < 3; i++ {
		svc.Check("ip:1.1.1.1", 3, time.Minute)
	}

	info := svc.Check("ip:2.2.2.2", 3, time.Minute)
	assert.True(t, info.Allowed)
	assert.Equal(t, 2, info.Remaining)
}

func TestCheckWindowResets(t *testing.T) {
	svc := newTestRateLimitService()

	window := 50 * time.Millisecond

	for i := 0; i < 2; i++ {
		svc.Check("ip:1.2.3.4", 2, window)
	}
	assert.False(t, svc.Check("ip:1.2.3.4", 2, window).Allowed)

	time.Sleep(60 * time.Millisecond)

	info := svc.Check("ip:1.2.3.4", 2, window)
	assert.True(t, info.Allowed)
	assert.Equal(t, 1, info.Remaining)
}

func TestCheckConcurrentNeverOversells(t *testing.T) {
	svc := newTestRateLimitService()

	const limit = 50
	const attempts = 200

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info := svc.Check("shared-key", limit, time.Minute)
			if info.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, allowed)
}

func TestIsAllowedUnknownEndpointType(t *testing.T) {
	svc := newTestRateLimitService()

	for i := 0; i < 100; i++ {
		ok, _ := svc.IsAllowed("1.2.3.4", "no_such_endpoint")
		assert.True(t, ok)
	}
}

func TestIsAllowedUsesEndpointConfig(t *testing.T) {
	svc := newTestRateLimitService()
	svc.SetConfig("tiny", 2, time.Minute)

	ok, info := svc.IsAllowed("1.2.3.4", "tiny")
	assert.True(t, ok)
	assert.Equal(t, 1, info.Remaining)

	ok, _ = svc.IsAllowed("1.2.3.4", "tiny")
	assert.True(t, ok)

	ok, info = svc.IsAllowed("1.2.3.4", "tiny")
	assert.False(t, ok)
	assert.Equal(t, 0, info.Remaining)
}

func TestSweepEvictsExpiredEntries(t *testing.T) {
	svc := newTestRateLimitService()

	for i := 0; i < 10; i++ {
		svc.Check(fmt.Sprintf("stale:%d", i), 5, 10*time.Millisecond)
	}
	svc.Check("fresh", 5, time.Hour)

	assert.Equal(t, 11, svc.TrackedKeys())

	time.Sleep(20 * time.Millisecond)

	evicted := svc.SweepExpired()
	assert.Equal(t, 10, evicted)
	assert.Equal(t, 1, svc.TrackedKeys())
}

func TestResetClearsKey(t *testing.T) {
	svc := newTestRateLimitService()
	svc.SetConfig("tiny", 1, time.Minute)

	ok, _ := svc.IsAllowed("1.2.3.4", "tiny")
	assert.True(t, ok)
	ok, _ = svc.IsAllowed("1.2.3.4", "tiny")
	assert.False(t, ok)

	svc.Reset("1.2.3.4", "tiny")

	ok, _ = svc.IsAllowed("1.2.3.4", "tiny")
	assert.True(t, ok)
}
