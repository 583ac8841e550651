package repository

import (
	"errors"

	"github.com/nichewire/nichewire-backend/internal/common"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	ListPublished(page, limit int) ([]*domain.Post, int64, error)
	FindBySlug(slug string) (*domain.Post, error)
	FindByID(id string) (*domain.Post, error)
	ExistsBySlug(slug string) (bool, error)
	Create(post *domain.Post) error
	Update(post *domain.Post) error
	Delete(id string) error
}

// postRepository implements PostRepository with GORM
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// ListPublished retrieves published posts, newest published first
func (r *postRepository) ListPublished(page, limit int) ([]*domain.Post, int64, error) {
	var posts []*domain.Post
	var total int64

	query := r.db.Model(&domain.Post{}).
		Where("status = ?", domain.PostStatusPublished)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error

	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// FindBySlug finds a post by slug
func (r *postRepository) FindBySlug(slug string) (*domain.Post, error) {
	var post domain.Post

	err := r.db.
		Where("slug = ?", slug).
		First(&post).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// FindByID finds a post by ID
func (r *postRepository) FindByID(id string) (*domain.Post, error) {
	var post domain.Post

	err := r.db.
		Where("id = ?", id).
		First(&post).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// ExistsBySlug reports whether a post with the slug exists
func (r *postRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a new post
func (r *postRepository) Create(post *domain.Post) error {
	return r.db.Create(post).Error
}

// Update saves all fields of a post
func (r *postRepository) Update(post *domain.Post) error {
	return r.db.Save(post).Error
}

// Delete removes a post by ID
func (r *postRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrPostNotFound
	}
	return nil
}
