package services

import (
	"context"
	"strings"
	"time"

	"github.com/almaqal-media/almaqal_api/dto"
	"github.com/almaqal-media/almaqal_api/model"
	"github.com/almaqal-media/almaqal_api/shared"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type NewsletterService struct {
	appContext.DefaultService

	sqlSvc       *PostgresService
	analyticsSvc *AnalyticsService

	storeTimeout time.Duration
}

const NEWSLETTER_SVC = "newsletter_svc"

func (svc NewsletterService) Id() string {
	return NEWSLETTER_SVC
}

func (svc *NewsletterService) Configure(ctx *appContext.Context) error {
	svc.storeTimeout = 5 * time.Second
	return svc.DefaultService.Configure(ctx)
}

func (svc *NewsletterService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.analyticsSvc = svc.Service(ANALYTICS_SVC).(*AnalyticsService)
	return nil
}

// Subscribe registers an email address. Duplicate signups succeed
// idempotently so the form never reveals whether an address is already
// subscribed; re-subscribing clears a previous unsubscribe.
func (svc *NewsletterService) Subscribe(req dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	locale := req.Locale
	if locale == "" {
		locale = shared.LanguageArabic
	}

	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	existing, err := svc.sqlSvc.Newsletter().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.UnsubscribedAt != nil {
			existing.UnsubscribedAt = nil
			existing.UpdatedAt = time.Now()
			if err := svc.sqlSvc.Newsletter().Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return &dto.SubscribeResponse{Message: "You are subscribed to the newsletter"}, nil
	}

	now := time.Now()
	subscriber := &model.Subscriber{
		ID:        uuid.NewString(),
		Email:     email,
		Locale:    locale,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := svc.sqlSvc.Newsletter().Create(ctx, subscriber); err != nil {
		// The unique constraint can still fire under a concurrent signup of
		// the same address; that is the same idempotent success.
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") ||
			strings.Contains(strings.ToLower(err.Error()), "unique") {
			return &dto.SubscribeResponse{Message: "You are subscribed to the newsletter"}, nil
		}
		return nil, err
	}

	log.WithField("locale", locale).Info("New newsletter subscriber")
	svc.analyticsSvc.SendEvent(Event{
		Action:   "subscribe",
		Category: "newsletter",
		Label:    locale,
	})

	return &dto.SubscribeResponse{Message: "You are subscribed to the newsletter"}, nil
}

func (svc *NewsletterService) SubscriberCount() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), svc.storeTimeout)
	defer cancel()

	return svc.sqlSvc.Newsletter().Count(ctx)
}
