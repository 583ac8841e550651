package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"github.com/nichewire/nichewire-backend/internal/repository"
	"github.com/nichewire/nichewire-backend/pkg/cache"
	pkglogger "github.com/nichewire/nichewire-backend/pkg/logger"
)

// PostService defines the business logic for blog posts
type PostService interface {
	ListPublished(ctx context.Context, page, limit int) (*domain.PostListResponse, error)
	GetBySlug(ctx context.Context, slugStr string) (*domain.Post, error)
	Create(ctx context.Context, req *domain.CreatePostRequest) (*domain.Post, error)
	Update(ctx context.Context, id string, req *domain.UpdatePostRequest) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

type postService struct {
	repo  repository.PostRepository
	cache cache.Service
}

// NewPostService creates a new PostService
func NewPostService(repo repository.PostRepository, cacheService cache.Service) PostService {
	return &postService{repo: repo, cache: cacheService}
}

// publishedListKey is the cache key for a page of the published post list
func publishedListKey(page, limit int) string {
	return fmt.Sprintf("%spublished:%d:%d", cache.PrefixPosts, page, limit)
}

// ListPublished retrieves a page of published posts, served from the cache
// when a fresh copy exists
func (s *postService) ListPublished(ctx context.Context, page, limit int) (*domain.PostListResponse, error) {
	cacheKey := publishedListKey(page, limit)
	if s.cache != nil && s.cache.IsAvailable() {
		var cached domain.PostListResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	posts, total, err := s.repo.ListPublished(page, limit)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Post, len(posts))
	for i, p := range posts {
		result[i] = *p
	}

	response := &domain.PostListResponse{
		Posts: result,
		Total: total,
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.Set(ctx, cacheKey, response, cache.TTLPosts); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Msg("failed to cache post list")
		}
	}

	return response, nil
}

// GetBySlug retrieves a single post by slug
func (s *postService) GetBySlug(ctx context.Context, slugStr string) (*domain.Post, error) {
	return s.repo.FindBySlug(slugStr)
}

// Create builds and stores a new post. The slug is derived from the title
// and suffixed when already taken.
func (s *postService) Create(ctx context.Context, req *domain.CreatePostRequest) (*domain.Post, error) {
	now := time.Now()

	status := req.Status
	if status == "" {
		status = domain.PostStatusDraft
	}

	postSlug, err := s.uniqueSlug(req.Title)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		ID:             uuid.New().String(),
		Slug:           postSlug,
		Title:          req.Title,
		Content:        req.Content,
		Excerpt:        req.Excerpt,
		CoverImage:     req.CoverImage,
		Status:         status,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		Keywords:       req.Keywords,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if post.Keywords == nil {
		post.Keywords = []string{}
	}
	if status == domain.PostStatusPublished {
		post.PublishedAt = &now
	}

	if err := s.repo.Create(post); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	return post, nil
}

// Update applies a partial update to a post
func (s *postService) Update(ctx context.Context, id string, req *domain.UpdatePostRequest) (*domain.Post, error) {
	post, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = req.Excerpt
	}
	if req.CoverImage != nil {
		post.CoverImage = req.CoverImage
	}
	if req.SEOTitle != nil {
		post.SEOTitle = req.SEOTitle
	}
	if req.SEODescription != nil {
		post.SEODescription = req.SEODescription
	}
	if req.Keywords != nil {
		post.Keywords = req.Keywords
	}
	if req.Status != nil {
		// published_at is set on the first transition to published and
		// never cleared afterwards
		if *req.Status == domain.PostStatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = *req.Status
	}

	post.UpdatedAt = time.Now()

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	return post, nil
}

// Delete removes a post
func (s *postService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)

	return nil
}

// invalidateListCache drops the cached first pages of the published list.
// Deeper pages age out on their own within the TTL.
func (s *postService) invalidateListCache(ctx context.Context) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.Delete(ctx, publishedListKey(1, 20), publishedListKey(1, 10)); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("failed to invalidate post list cache")
	}
}

// uniqueSlug slugifies the title and appends a numeric suffix on collision
func (s *postService) uniqueSlug(title string) (string, error) {
	base := slug.Make(title)

	candidate := base
	for i := 2; ; i++ {
		taken, err := s.repo.ExistsBySlug(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
