package services

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/almaqal-media/almaqal_api/model"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Event is a forwarded analytics event, GA-style.
type Event struct {
	Action   string `json:"action"`
	Category string `json:"category"`
	Label    string `json:"label,omitempty"`
	Value    int64  `json:"value,omitempty"`
}

type analyticsStore interface {
	Insert(ctx context.Context, event *model.AnalyticsEvent) error
}

// AnalyticsService forwards events on a best-effort basis: SendEvent never
// blocks the caller, and a full buffer drops the event with a log line rather
// than applying backpressure to a request path.
type AnalyticsService struct {
	appContext.DefaultService

	store  analyticsStore
	sqlSvc *PostgresService

	events chan Event
	closed chan struct{}
}

const ANALYTICS_SVC = "analytics_svc"

func (svc AnalyticsService) Id() string {
	return ANALYTICS_SVC
}

func (svc *AnalyticsService) Configure(ctx *appContext.Context) error {
	bufferSize := 1024
	if raw := os.Getenv("ANALYTICS_BUFFER_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			bufferSize = n
		}
	}

	svc.events = make(chan Event, bufferSize)
	svc.closed = make(chan struct{})

	return svc.DefaultService.Configure(ctx)
}

func (svc *AnalyticsService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.store = svc.sqlSvc.Analytics()

	go svc.worker()
	return nil
}

func (svc *AnalyticsService) Shutdown() {
	close(svc.closed)
}

// SendEvent enqueues the event without blocking. No return value: the caller
// has nothing useful to do with a delivery failure.
func (svc *AnalyticsService) SendEvent(event Event) {
	select {
	case svc.events <- event:
		analyticsEventsTotal.WithLabelValues(event.Category).Inc()
	default:
		analyticsEventsDroppedTotal.Inc()
		log.WithFields(log.Fields{
			"action":   event.Action,
			"category": event.Category,
		}).Warn("Analytics buffer full, event dropped")
	}
}

func (svc *AnalyticsService) worker() {
	for {
		select {
		case event := <-svc.events:
			svc.persist(event)
		case <-svc.closed:
			return
		}
	}
}

func (svc *AnalyticsService) persist(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	record := &model.AnalyticsEvent{
		ID:        uuid.NewString(),
		Action:    event.Action,
		Category:  event.Category,
		Label:     event.Label,
		Value:     event.Value,
		CreatedAt: time.Now(),
	}

	if err := svc.store.Insert(ctx, record); err != nil {
		log.WithError(err).WithField("category", event.Category).Warn("Failed to persist analytics event")
	}
}
