package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nichewire/nichewire-backend/internal/common"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"github.com/nichewire/nichewire-backend/internal/repository"
	"github.com/nichewire/nichewire-backend/pkg/mailer"
	pkglogger "github.com/nichewire/nichewire-backend/pkg/logger"
)

// SubscribeResult reports what the subscribe call did
type SubscribeResult string

const (
	SubscribeResultCreated           SubscribeResult = "created"
	SubscribeResultReactivated       SubscribeResult = "reactivated"
	SubscribeResultAlreadySubscribed SubscribeResult = "already_subscribed"
)

// NewsletterService defines the business logic for newsletter subscriptions
type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (SubscribeResult, error)
	Unsubscribe(email string) error
}

type newsletterService struct {
	repo   repository.SubscriberRepository
	mailer mailer.Mailer // nil when email sending is disabled
}

// NewNewsletterService creates a new NewsletterService
func NewNewsletterService(repo repository.SubscriberRepository, m mailer.Mailer) NewsletterService {
	return &newsletterService{repo: repo, mailer: m}
}

// Subscribe adds a new subscriber, reactivates a previously unsubscribed one,
// or reports an already-active subscription. The welcome email is fire and
// forget: a provider failure is logged and never fails the subscription.
func (s *newsletterService) Subscribe(ctx context.Context, email string) (SubscribeResult, error) {
	existing, err := s.repo.FindByEmail(email)
	if err != nil && !errors.Is(err, common.ErrSubscriberNotFound) {
		return "", err
	}

	if existing != nil {
		if existing.Status == domain.SubscriberStatusActive {
			return SubscribeResultAlreadySubscribed, nil
		}

		existing.Status = domain.SubscriberStatusActive
		existing.UnsubscribedAt = nil
		if err := s.repo.Update(existing); err != nil {
			return "", err
		}
		return SubscribeResultReactivated, nil
	}

	subscriber := &domain.Subscriber{
		ID:           uuid.New().String(),
		Email:        email,
		Status:       domain.SubscriberStatusActive,
		SubscribedAt: time.Now(),
	}
	if err := s.repo.Create(subscriber); err != nil {
		return "", err
	}

	if s.mailer != nil {
		if err := s.mailer.Send(ctx, email,
			"Welcome to our newsletter!",
			"<h1>Thanks for subscribing!</h1><p>You'll receive our latest posts and updates.</p>",
		); err != nil {
			pkglogger.GetLogger().Error().Err(err).Str("email", email).Msg("failed to send welcome email")
		}
	}

	return SubscribeResultCreated, nil
}

// Unsubscribe marks a subscriber as unsubscribed
func (s *newsletterService) Unsubscribe(email string) error {
	subscriber, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}

	now := time.Now()
	subscriber.Status = domain.SubscriberStatusUnsubscribed
	subscriber.UnsubscribedAt = &now

	return s.repo.Update(subscriber)
}
