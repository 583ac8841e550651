package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nichewire/nichewire-backend/internal/common"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"github.com/nichewire/nichewire-backend/internal/repository"
	"github.com/nichewire/nichewire-backend/pkg/analytics"
	"github.com/nichewire/nichewire-backend/pkg/cache"
	pkglogger "github.com/nichewire/nichewire-backend/pkg/logger"
)

// LinkService defines the business logic for affiliate links
type LinkService interface {
	// Resolve performs the click-tracking pipeline for a visit and returns
	// the redirect target URL.
	Resolve(ctx context.Context, linkID string, click domain.ClickContext) (string, error)

	// GetStats returns the link with clicks resolved against the fast counter
	GetStats(ctx context.Context, linkID string) (*domain.LinkStatsResponse, error)

	// Admin CRUD
	CreateLink(req *domain.CreateLinkRequest) (*domain.AffiliateLink, error)
	ListLinks() ([]*domain.LinkSummary, error)
	DeleteLink(id string) error
}

type linkService struct {
	repo      repository.LinkRepository
	cache     cache.Service
	analytics analytics.Sink
}

// NewLinkService creates a new LinkService
func NewLinkService(repo repository.LinkRepository, cacheService cache.Service, sink analytics.Sink) LinkService {
	return &linkService{
		repo:      repo,
		cache:     cacheService,
		analytics: sink,
	}
}

// Resolve looks the link up, records the visit, and returns the vendor URL.
//
// Only the initial lookup failure is surfaced to the caller. The three
// tracking writes (click event row, Redis counter, analytics point) are best
// effort: a dependency outage is logged and must never block the redirect.
func (s *linkService) Resolve(ctx context.Context, linkID string, click domain.ClickContext) (string, error) {
	link, err := s.repo.FindByID(linkID)
	if err != nil {
		return "", err
	}

	event := &domain.ClickEvent{
		ID:        uuid.New().String(),
		LinkID:    link.ID,
		Referrer:  click.Referrer,
		UserAgent: click.UserAgent,
		Country:   click.Country,
		Timestamp: time.Now(),
	}
	if err := s.repo.CreateClickEvent(event); err != nil {
		pkglogger.GetLogger().Error().Err(err).Str("link_id", linkID).Msg("failed to record click event")
	}

	if err := s.cache.IncrementClickCount(ctx, linkID); err != nil {
		pkglogger.GetLogger().Error().Err(err).Str("link_id", linkID).Msg("failed to bump click counter")
	}

	postID := ""
	if link.PostID != nil {
		postID = *link.PostID
	}
	point := analytics.ClickPoint{
		LinkID:      link.ID,
		ProductName: link.ProductName,
		Provider:    link.Provider,
		Value:       1,
		PostID:      postID,
		Timestamp:   event.Timestamp,
	}
	if err := s.analytics.WriteClick(ctx, point); err != nil {
		pkglogger.GetLogger().Error().Err(err).Str("link_id", linkID).Msg("failed to write analytics point")
	}

	return link.URL, nil
}

// GetStats reads the link and prefers the fast counter over the durable
// clicks column. The counters are not reconciled: Redis is the low-latency
// approximation, the column is a stale fallback.
func (s *linkService) GetStats(ctx context.Context, linkID string) (*domain.LinkStatsResponse, error) {
	link, err := s.repo.FindByID(linkID)
	if err != nil {
		return nil, err
	}

	clicks := link.Clicks
	if cached, ok, err := s.cache.GetClickCount(ctx, linkID); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("link_id", linkID).Msg("click counter read failed, using stored count")
	} else if ok {
		clicks = cached
	}

	return &domain.LinkStatsResponse{
		ID:          link.ID,
		PostID:      link.PostID,
		URL:         link.URL,
		ProductName: link.ProductName,
		Provider:    link.Provider,
		Clicks:      clicks,
		Conversions: link.Conversions,
		CreatedAt:   link.CreatedAt,
	}, nil
}

// CreateLink creates a new affiliate link
func (s *linkService) CreateLink(req *domain.CreateLinkRequest) (*domain.AffiliateLink, error) {
	if err := common.ValidateDestinationURL(req.URL); err != nil {
		return nil, err
	}

	link := &domain.AffiliateLink{
		ID:          uuid.New().String(),
		PostID:      req.PostID,
		URL:         req.URL,
		ProductName: req.ProductName,
		Provider:    req.Provider,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(link); err != nil {
		return nil, err
	}

	return link, nil
}

// ListLinks retrieves all links with their exact event counts for the admin
// dashboard. The event log is the precise (slower) counter.
func (s *linkService) ListLinks() ([]*domain.LinkSummary, error) {
	links, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.LinkSummary, len(links))
	for i, link := range links {
		eventCount, err := s.repo.CountClickEvents(link.ID)
		if err != nil {
			return nil, err
		}
		summaries[i] = &domain.LinkSummary{
			AffiliateLink: *link,
			EventCount:    eventCount,
		}
	}

	return summaries, nil
}

// DeleteLink removes an affiliate link
func (s *linkService) DeleteLink(id string) error {
	return s.repo.Delete(id)
}
