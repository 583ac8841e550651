package repository

import (
	"errors"

	"github.com/nichewire/nichewire-backend/internal/common"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"gorm.io/gorm"
)

// LinkRepository defines the interface for affiliate link data access
type LinkRepository interface {
	FindByID(id string) (*domain.AffiliateLink, error)
	List() ([]*domain.AffiliateLink, error)
	Create(link *domain.AffiliateLink) error
	Delete(id string) error

	// Click event methods. click_events rows are append-only and are the
	// exact ground truth for a link's click count.
	CreateClickEvent(event *domain.ClickEvent) error
	CountClickEvents(linkID string) (int64, error)
}

// linkRepository implements LinkRepository with GORM
type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository creates a new LinkRepository
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

// FindByID finds an affiliate link by ID
func (r *linkRepository) FindByID(id string) (*domain.AffiliateLink, error) {
	var link domain.AffiliateLink

	err := r.db.
		Where("id = ?", id).
		First(&link).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}

	return &link, nil
}

// List retrieves all affiliate links, newest first
func (r *linkRepository) List() ([]*domain.AffiliateLink, error) {
	var links []*domain.AffiliateLink

	err := r.db.
		Order("created_at DESC").
		Find(&links).Error

	if err != nil {
		return nil, err
	}

	return links, nil
}

// Create inserts a new affiliate link
func (r *linkRepository) Create(link *domain.AffiliateLink) error {
	return r.db.Create(link).Error
}

// Delete removes an affiliate link by ID
func (r *linkRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.AffiliateLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrLinkNotFound
	}
	return nil
}

// CreateClickEvent inserts one click event row
func (r *linkRepository) CreateClickEvent(event *domain.ClickEvent) error {
	return r.db.Create(event).Error
}

// CountClickEvents counts the click events referencing a link
func (r *linkRepository) CountClickEvents(linkID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.ClickEvent{}).
		Where("link_id = ?", linkID).
		Count(&count).Error
	return count, err
}
