package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nichewire/nichewire-backend/internal/common"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock SubscriberRepository ---

type mockSubscriberRepo struct {
	mock.Mock
}

func (m *mockSubscriberRepo) FindByEmail(email string) (*domain.Subscriber, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscriber), args.Error(1)
}

func (m *mockSubscriberRepo) Create(subscriber *domain.Subscriber) error {
	return m.Called(subscriber).Error(0)
}

func (m *mockSubscriberRepo) Update(subscriber *domain.Subscriber) error {
	return m.Called(subscriber).Error(0)
}

// --- Mock Mailer ---

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, html string) error {
	return m.Called(ctx, to, subject, html).Error(0)
}

func TestSubscribe_NewSubscriber(t *testing.T) {
	repo := new(mockSubscriberRepo)
	mail := new(mockMailer)

	repo.On("FindByEmail", "new@example.com").Return(nil, common.ErrSubscriberNotFound)
	repo.On("Create", mock.MatchedBy(func(s *domain.Subscriber) bool {
		return s.ID != "" && s.Email == "new@example.com" && s.Status == domain.SubscriberStatusActive
	})).Return(nil)
	mail.On("Send", mock.Anything, "new@example.com", mock.Anything, mock.Anything).Return(nil)

	svc := NewNewsletterService(repo, mail)

	result, err := svc.Subscribe(context.Background(), "new@example.com")

	assert.NoError(t, err)
	assert.Equal(t, SubscribeResultCreated, result)
	repo.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestSubscribe_AlreadyActive(t *testing.T) {
	repo := new(mockSubscriberRepo)
	mail := new(mockMailer)

	repo.On("FindByEmail", "active@example.com").Return(&domain.Subscriber{
		ID:     "s1",
		Email:  "active@example.com",
		Status: domain.SubscriberStatusActive,
	}, nil)

	svc := NewNewsletterService(repo, mail)

	result, err := svc.Subscribe(context.Background(), "active@example.com")

	assert.NoError(t, err)
	assert.Equal(t, SubscribeResultAlreadySubscribed, result)
	repo.AssertNotCalled(t, "Create", mock.Anything)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscribe_ReactivatesUnsubscribed(t *testing.T) {
	repo := new(mockSubscriberRepo)
	mail := new(mockMailer)

	repo.On("FindByEmail", "back@example.com").Return(&domain.Subscriber{
		ID:     "s1",
		Email:  "back@example.com",
		Status: domain.SubscriberStatusUnsubscribed,
	}, nil)
	repo.On("Update", mock.MatchedBy(func(s *domain.Subscriber) bool {
		return s.Status == domain.SubscriberStatusActive && s.UnsubscribedAt == nil
	})).Return(nil)

	svc := NewNewsletterService(repo, mail)

	result, err := svc.Subscribe(context.Background(), "back@example.com")

	assert.NoError(t, err)
	assert.Equal(t, SubscribeResultReactivated, result)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscribe_MailFailureStillSubscribes(t *testing.T) {
	repo := new(mockSubscriberRepo)
	mail := new(mockMailer)

	repo.On("FindByEmail", "new@example.com").Return(nil, common.ErrSubscriberNotFound)
	repo.On("Create", mock.Anything).Return(nil)
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("provider down"))

	svc := NewNewsletterService(repo, mail)

	result, err := svc.Subscribe(context.Background(), "new@example.com")

	assert.NoError(t, err)
	assert.Equal(t, SubscribeResultCreated, result)
}

func TestSubscribe_NilMailer(t *testing.T) {
	repo := new(mockSubscriberRepo)

	repo.On("FindByEmail", "new@example.com").Return(nil, common.ErrSubscriberNotFound)
	repo.On("Create", mock.Anything).Return(nil)

	svc := NewNewsletterService(repo, nil)

	result, err := svc.Subscribe(context.Background(), "new@example.com")

	assert.NoError(t, err)
	assert.Equal(t, SubscribeResultCreated, result)
}

func TestUnsubscribe(t *testing.T) {
	repo := new(mockSubscriberRepo)

	repo.On("FindByEmail", "bye@example.com").Return(&domain.Subscriber{
		ID:     "s1",
		Email:  "bye@example.com",
		Status: domain.SubscriberStatusActive,
	}, nil)
	repo.On("Update", mock.MatchedBy(func(s *domain.Subscriber) bool {
		return s.Status == domain.SubscriberStatusUnsubscribed && s.UnsubscribedAt != nil
	})).Return(nil)

	svc := NewNewsletterService(repo, nil)

	err := svc.Unsubscribe("bye@example.com")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUnsubscribe_UnknownEmail(t *testing.T) {
	repo := new(mockSubscriberRepo)
	repo.On("FindByEmail", "ghost@example.com").Return(nil, common.ErrSubscriberNotFound)

	svc := NewNewsletterService(repo, nil)

	err := svc.Unsubscribe("ghost@example.com")

	assert.ErrorIs(t, err, common.ErrSubscriberNotFound)
}
