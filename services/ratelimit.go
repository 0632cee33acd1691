package services

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/shared"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// WindowCounter is the per-key state of a fixed window. Once ResetTime has
// passed the entry is dead weight; it is evicted lazily on the next lookup or
// by the periodic sweep.
type WindowCounter struct {
	Count     int
	ResetTime time.Time
}

// CounterStore owns rate limit counters. Implementations do not need to be
// safe for concurrent use; RateLimitService serializes access so the
// check-then-increment stays atomic.
type CounterStore interface {
	Get(key string) (*WindowCounter, bool)
	Set(key string, counter *WindowCounter)
	Evict(key string)
	EvictExpired(now time.Time) int
	Len() int
}

type memoryCounterStore struct {
	counters map[string]*WindowCounter
}

func newMemoryCounterStore() *memoryCounterStore {
	return &memoryCounterStore{counters: make(map[string]*WindowCounter)}
}

func (s *memoryCounterStore) Get(key string) (*WindowCounter, bool) {
	c, ok := s.counters[key]
	return c, ok
}

func (s *memoryCounterStore) Set(key string, counter *WindowCounter) {
	s.counters[key] = counter
}

func (s *memoryCounterStore) Evict(key string) {
	delete(s.counters, key)
}

func (s *memoryCounterStore) EvictExpired(now time.Time) int {
	evicted := 0
	for key, counter := range s.counters {
		if now.After(counter.ResetTime) {
			delete(s.counters, key)
			evicted++
		}
	}
	return evicted
}

func (s *memoryCounterStore) Len() int {
	return len(s.counters)
}

// RateLimitConfig is the per-route throttle configuration.
type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	Description  string
	IsActive     bool
}

// RateLimitService is a process-wide fixed-window rate limiter. Windows reset
// at fixed boundaries, so a burst of MaxRequests is possible right at the
// boundary; that is inherent to the algorithm, not a defect.
type RateLimitService struct {
	appContext.DefaultService

	configs map[string]*RateLimitConfig
	store   CounterStore
	mutex   sync.Mutex

	sweepInterval time.Duration
	closed        chan struct{}
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.store = newMemoryCounterStore()
	svc.sweepInterval = 5 * time.Minute
	svc.closed = make(chan struct{})
	svc.initDefaultConfigs()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	go svc.startSweepJob()
	return nil
}

func (svc *RateLimitService) Shutdown() {
	close(svc.closed)
}

func (svc *RateLimitService) initDefaultConfigs() {
	svc.configs = map[string]*RateLimitConfig{
		"newsletter_subscribe": {
			EndpointType: "newsletter_subscribe",
			MaxRequests:  5,
			WindowSize:   15 * time.Minute,
			Description:  "Newsletter signup rate limit",
			IsActive:     true,
		},
		"ad_click": {
			EndpointType: "ad_click",
			MaxRequests:  30,
			WindowSize:   time.Minute,
			Description:  "Ad click recording rate limit",
			IsActive:     true,
		},
		"admin_login": {
			EndpointType: "admin_login",
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			Description:  "Admin login attempts rate limit",
			IsActive:     true,
		},
		"api_general": {
			EndpointType: "api_general",
			MaxRequests:  1000,
			WindowSize:   time.Hour,
			Description:  "General API rate limit per IP",
			IsActive:     true,
		},
	}
}

// ==================== CORE RATE LIMITING LOGIC ====================

// Check runs one fixed-window step for the key. The first call in a window
// initializes count=1; later calls increment until the limit, then fail with
// remaining=0 until the window resets. The whole step runs under the mutex so
// two concurrent checks can never both take the last slot.
func (svc *RateLimitService) Check(key string, limit int, window time.Duration) dto.RateLimitInfo {
	now := time.Now()

	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	counter, exists := svc.store.Get(key)
	if exists && now.After(counter.ResetTime) {
		// Lazy cleanup: expired entries are treated as fresh.
		svc.store.Evict(key)
		exists = false
	}

	if !exists {
		resetTime := now.Add(window)
		svc.store.Set(key, &WindowCounter{Count: 1, ResetTime: resetTime})
		return dto.RateLimitInfo{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - 1,
			ResetTime: &resetTime,
		}
	}

	if counter.Count >= limit {
		resetTime := counter.ResetTime
		return dto.RateLimitInfo{
			Allowed:   false,
			Limit:     limit,
			Remaining: 0,
			ResetTime: &resetTime,
		}
	}

	counter.Count++
	resetTime := counter.ResetTime
	return dto.RateLimitInfo{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - counter.Count,
		ResetTime: &resetTime,
	}
}

// IsAllowed checks the key against a named endpoint configuration. Unknown or
// inactive endpoint types allow the request.
func (svc *RateLimitService) IsAllowed(identifier, endpointType string) (bool, *dto.RateLimitInfo) {
	config, exists := svc.configs[endpointType]
	if !exists || !config.IsActive {
		return true, &dto.RateLimitInfo{Allowed: true, Remaining: -1}
	}

	key := fmt.Sprintf("%s:%s", endpointType, identifier)
	info := svc.Check(key, config.MaxRequests, config.WindowSize)
	return info.Allowed, &info
}

// SetConfig overrides a route configuration; used by tests and the admin
// endpoint.
func (svc *RateLimitService) SetConfig(endpointType string, maxRequests int, window time.Duration) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs[endpointType] = &RateLimitConfig{
		EndpointType: endpointType,
		MaxRequests:  maxRequests,
		WindowSize:   window,
		IsActive:     true,
	}
}

func (svc *RateLimitService) Reset(identifier, endpointType string) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	svc.store.Evict(fmt.Sprintf("%s:%s", endpointType, identifier))
}

// ==================== MIDDLEWARE FUNCTIONS ====================

// RateLimit creates a rate limiting middleware for a named endpoint type.
func (svc *RateLimitService) RateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := shared.GetClientIP(c)

		allowed, info := svc.IsAllowed(identifier, endpointType)

		svc.addRateLimitHeaders(c, info)

		if !allowed {
			rateLimitRejectionsTotal.WithLabelValues(endpointType).Inc()
			return svc.rateLimitExceededError(endpointType, info)
		}

		return c.Next()
	}
}

// IPRateLimit applies the general per-IP limit to everything under it.
func (svc *RateLimitService) IPRateLimit() fiber.Handler {
	return svc.RateLimit("api_general")
}

// ==================== HELPER FUNCTIONS ====================

func (svc *RateLimitService) addRateLimitHeaders(c *fiber.Ctx, info *dto.RateLimitInfo) {
	if info == nil {
		return
	}

	if info.Limit > 0 {
		c.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	}
	if info.Remaining >= 0 {
		c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	}
	if info.ResetTime != nil {
		c.Set("X-RateLimit-Reset", info.ResetTime.UTC().Format(time.RFC3339))

		retryAfter := int(time.Until(*info.ResetTime).Seconds())
		if !info.Allowed && retryAfter > 0 {
			c.Set("Retry-After", strconv.Itoa(retryAfter))
		}
	}
}

func (svc *RateLimitService) rateLimitExceededError(endpointType string, info *dto.RateLimitInfo) error {
	message := svc.getRateLimitMessage(endpointType)

	data := map[string]interface{}{
		"error":   "Rate limit exceeded",
		"message": message,
	}

	if info.ResetTime != nil {
		data["reset_time"] = info.ResetTime.UTC().Format(time.RFC3339)
	}

	return shared.NewTooManyRequestsError(nil, message, data)
}

func (svc *RateLimitService) getRateLimitMessage(endpointType string) string {
	messages := map[string]string{
		"newsletter_subscribe": "Too many subscription attempts. Please try again later.",
		"ad_click":             "Too many clicks. Please slow down.",
		"admin_login":          "Too many login attempts. Please try again later.",
		"api_general":          "Too many requests. Please slow down.",
	}

	if message, exists := messages[endpointType]; exists {
		return message
	}

	return "Too many requests. Please try again later."
}

// ==================== BACKGROUND JOBS ====================

// startSweepJob bounds memory under key churn; without it the counter map
// only shrinks when a stale key happens to be looked up again.
func (svc *RateLimitService) startSweepJob() {
	ticker := time.NewTicker(svc.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			svc.SweepExpired()
		case <-svc.closed:
			return
		}
	}
}

func (svc *RateLimitService) SweepExpired() int {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	evicted := svc.store.EvictExpired(time.Now())
	if evicted > 0 {
		log.Printf("Rate limit sweep evicted %d expired entries", evicted)
	}
	return evicted
}

func (svc *RateLimitService) TrackedKeys() int {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	return svc.store.Len()
}

