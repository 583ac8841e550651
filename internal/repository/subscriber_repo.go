package repository

import (
	"errors"

	"github.com/nichewire/nichewire-backend/internal/common"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"gorm.io/gorm"
)

// SubscriberRepository defines the interface for newsletter subscriber access
type SubscriberRepository interface {
	FindByEmail(email string) (*domain.Subscriber, error)
	Create(subscriber *domain.Subscriber) error
	Update(subscriber *domain.Subscriber) error
}

// subscriberRepository implements SubscriberRepository with GORM
type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new SubscriberRepository
func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

// FindByEmail finds a subscriber by email
func (r *subscriberRepository) FindByEmail(email string) (*domain.Subscriber, error) {
	var subscriber domain.Subscriber

	err := r.db.
		Where("email = ?", email).
		First(&subscriber).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrSubscriberNotFound
	}
	if err != nil {
		return nil, err
	}

	return &subscriber, nil
}

// Create inserts a new subscriber
func (r *subscriberRepository) Create(subscriber *domain.Subscriber) error {
	return r.db.Create(subscriber).Error
}

// Update saves all fields of a subscriber
func (r *subscriberRepository) Update(subscriber *domain.Subscriber) error {
	return r.db.Save(subscriber).Error
}
