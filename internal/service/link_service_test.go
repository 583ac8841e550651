package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/nichewire/nichewire-backend/internal/common"
	"github.com/nichewire/nichewire-backend/internal/domain"
	"github.com/nichewire/nichewire-backend/pkg/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock LinkRepository ---

type mockLinkRepo struct {
	mock.Mock
}

func (m *mockLinkRepo) FindByID(id string) (*domain.AffiliateLink, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AffiliateLink), args.Error(1)
}

func (m *mockLinkRepo) List() ([]*domain.AffiliateLink, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AffiliateLink), args.Error(1)
}

func (m *mockLinkRepo) Create(link *domain.AffiliateLink) error {
	return m.Called(link).Error(0)
}

func (m *mockLinkRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockLinkRepo) CreateClickEvent(event *domain.ClickEvent) error {
	return m.Called(event).Error(0)
}

func (m *mockLinkRepo) CountClickEvents(linkID string) (int64, error) {
	args := m.Called(linkID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock analytics sink ---

type mockSink struct {
	mock.Mock
}

func (m *mockSink) WriteClick(ctx context.Context, point analytics.ClickPoint) error {
	return m.Called(ctx, point).Error(0)
}

// --- In-memory cache with the same read-then-write counter semantics ---

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	val, exists := f.values[key]
	f.mu.Unlock()
	if !exists {
		return errors.New("cache miss")
	}
	return json.Unmarshal([]byte(val), dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.values[key] = string(data)
	f.mu.Unlock()
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	for _, key := range keys {
		delete(f.values, key)
	}
	f.mu.Unlock()
	return nil
}

func (f *fakeCache) IsAvailable() bool              { return true }
func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func (f *fakeCache) GetClickCount(ctx context.Context, linkID string) (int, bool, error) {
	f.mu.Lock()
	val, exists := f.values["link:"+linkID+":clicks"]
	f.mu.Unlock()
	if !exists {
		return 0, false, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (f *fakeCache) IncrementClickCount(ctx context.Context, linkID string) error {
	// Same unsynchronized read-then-write the Redis implementation does
	count, _, _ := f.GetClickCount(ctx, linkID)
	f.mu.Lock()
	f.values["link:"+linkID+":clicks"] = strconv.Itoa(count + 1)
	f.mu.Unlock()
	return nil
}

func (f *fakeCache) set(linkID, val string) {
	f.mu.Lock()
	f.values["link:"+linkID+":clicks"] = val
	f.mu.Unlock()
}

func (f *fakeCache) get(linkID string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values["link:"+linkID+":clicks"]
	return v, ok
}

// --- Failing cache ---

type failingCache struct {
	fakeCache
}

func (f *failingCache) IncrementClickCount(ctx context.Context, linkID string) error {
	return errors.New("redis down")
}

func (f *failingCache) GetClickCount(ctx context.Context, linkID string) (int, bool, error) {
	return 0, false, errors.New("redis down")
}

func testLink() *domain.AffiliateLink {
	postID := "post-1"
	return &domain.AffiliateLink{
		ID:          "abc123",
		PostID:      &postID,
		URL:         "https://vendor.example/x",
		ProductName: "Vendor Pro",
		Provider:    "vendor",
		Clicks:      5,
		CreatedAt:   time.Now(),
	}
}

func strPtr(s string) *string { return &s }

func TestResolve_Success(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)
	cacheSvc := newFakeCache()

	link := testLink()
	repo.On("FindByID", "abc123").Return(link, nil)
	repo.On("CreateClickEvent", mock.MatchedBy(func(e *domain.ClickEvent) bool {
		return e.LinkID == "abc123" &&
			e.ID != "" &&
			e.Referrer != nil && *e.Referrer == "https://google.com" &&
			e.UserAgent != nil && *e.UserAgent == "test-agent" &&
			e.Country != nil && *e.Country == "DE"
	})).Return(nil)
	sink.On("WriteClick", mock.Anything, mock.MatchedBy(func(p analytics.ClickPoint) bool {
		return p.LinkID == "abc123" && p.ProductName == "Vendor Pro" &&
			p.Provider == "vendor" && p.Value == 1 && p.PostID == "post-1"
	})).Return(nil)

	svc := NewLinkService(repo, cacheSvc, sink)

	url, err := svc.Resolve(context.Background(), "abc123", domain.ClickContext{
		Referrer:  strPtr("https://google.com"),
		UserAgent: strPtr("test-agent"),
		Country:   strPtr("DE"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://vendor.example/x", url)

	// Counter started absent, treated as 0, now "1"
	val, ok := cacheSvc.get("abc123")
	assert.True(t, ok)
	assert.Equal(t, "1", val)

	repo.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestResolve_LinkNotFound(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)
	cacheSvc := newFakeCache()

	repo.On("FindByID", "zzz").Return(nil, common.ErrLinkNotFound)

	svc := NewLinkService(repo, cacheSvc, sink)

	_, err := svc.Resolve(context.Background(), "zzz", domain.ClickContext{})

	assert.ErrorIs(t, err, common.ErrLinkNotFound)

	// No click event, no counter, no analytics point
	repo.AssertNotCalled(t, "CreateClickEvent", mock.Anything)
	sink.AssertNotCalled(t, "WriteClick", mock.Anything, mock.Anything)
	_, ok := cacheSvc.get("zzz")
	assert.False(t, ok)
}

func TestResolve_ClickEventFailureDoesNotBlockRedirect(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)
	cacheSvc := newFakeCache()

	repo.On("FindByID", "abc123").Return(testLink(), nil)
	repo.On("CreateClickEvent", mock.Anything).Return(errors.New("db down"))
	sink.On("WriteClick", mock.Anything, mock.Anything).Return(nil)

	svc := NewLinkService(repo, cacheSvc, sink)

	url, err := svc.Resolve(context.Background(), "abc123", domain.ClickContext{})

	assert.NoError(t, err)
	assert.Equal(t, "https://vendor.example/x", url)
}

func TestResolve_CacheAndAnalyticsFailuresDoNotBlockRedirect(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)

	repo.On("FindByID", "abc123").Return(testLink(), nil)
	repo.On("CreateClickEvent", mock.Anything).Return(nil)
	sink.On("WriteClick", mock.Anything, mock.Anything).Return(errors.New("sink down"))

	svc := NewLinkService(repo, &failingCache{}, sink)

	url, err := svc.Resolve(context.Background(), "abc123", domain.ClickContext{})

	assert.NoError(t, err)
	assert.Equal(t, "https://vendor.example/x", url)
}

func TestResolve_ConcurrentCounterNeverOvercounts(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)
	cacheSvc := newFakeCache()

	repo.On("FindByID", "abc123").Return(testLink(), nil)
	repo.On("CreateClickEvent", mock.Anything).Return(nil)
	sink.On("WriteClick", mock.Anything, mock.Anything).Return(nil)

	svc := NewLinkService(repo, cacheSvc, sink)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Resolve(context.Background(), "abc123", domain.ClickContext{})
		}()
	}
	wg.Wait()

	// The read-then-write counter may undercount under concurrency but can
	// never exceed the true visit count.
	val, ok := cacheSvc.get("abc123")
	assert.True(t, ok)
	count, err := strconv.Atoi(val)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, count, 1)
	assert.LessOrEqual(t, count, n)
}

func TestGetStats_CacheValueWins(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)
	cacheSvc := newFakeCache()

	// Durable column says 5, the fast counter says 1: the counter wins
	repo.On("FindByID", "abc123").Return(testLink(), nil)
	cacheSvc.set("abc123", "1")

	svc := NewLinkService(repo, cacheSvc, sink)

	stats, err := svc.GetStats(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Clicks)
	assert.Equal(t, "https://vendor.example/x", stats.URL)
	assert.Equal(t, "Vendor Pro", stats.ProductName)
}

func TestGetStats_FallsBackToStoredCount(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)
	cacheSvc := newFakeCache()

	repo.On("FindByID", "abc123").Return(testLink(), nil)

	svc := NewLinkService(repo, cacheSvc, sink)

	stats, err := svc.GetStats(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.Equal(t, 5, stats.Clicks)
}

func TestGetStats_UnparseableCounterFallsBack(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)
	cacheSvc := newFakeCache()

	repo.On("FindByID", "abc123").Return(testLink(), nil)
	cacheSvc.set("abc123", "not-a-number")

	svc := NewLinkService(repo, cacheSvc, sink)

	stats, err := svc.GetStats(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.Equal(t, 5, stats.Clicks)
}

func TestGetStats_NotFound(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)

	repo.On("FindByID", "zzz").Return(nil, common.ErrLinkNotFound)

	svc := NewLinkService(repo, newFakeCache(), sink)

	_, err := svc.GetStats(context.Background(), "zzz")

	assert.ErrorIs(t, err, common.ErrLinkNotFound)
}

func TestGetStats_CacheErrorFallsBackToStoredCount(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)

	repo.On("FindByID", "abc123").Return(testLink(), nil)

	svc := NewLinkService(repo, &failingCache{}, sink)

	stats, err := svc.GetStats(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.Equal(t, 5, stats.Clicks)
}

func TestListLinks_IncludesEventCounts(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)

	link := testLink()
	repo.On("List").Return([]*domain.AffiliateLink{link}, nil)
	repo.On("CountClickEvents", "abc123").Return(int64(42), nil)

	svc := NewLinkService(repo, newFakeCache(), sink)

	summaries, err := svc.ListLinks()

	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, int64(42), summaries[0].EventCount)
	assert.Equal(t, "abc123", summaries[0].ID)
}

func TestCreateLink_GeneratesID(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)

	repo.On("Create", mock.MatchedBy(func(l *domain.AffiliateLink) bool {
		return l.ID != "" && l.URL == "https://vendor.example/y" && l.Provider == "vendor"
	})).Return(nil)

	svc := NewLinkService(repo, newFakeCache(), sink)

	link, err := svc.CreateLink(&domain.CreateLinkRequest{
		URL:         "https://vendor.example/y",
		ProductName: "Vendor Max",
		Provider:    "vendor",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, link.ID)
	assert.Equal(t, 0, link.Clicks)
	repo.AssertExpectations(t)
}

func TestCreateLink_RejectsShortener(t *testing.T) {
	repo := new(mockLinkRepo)
	sink := new(mockSink)
	svc := NewLinkService(repo, newFakeCache(), sink)

	link, err := svc.CreateLink(&domain.CreateLinkRequest{
		URL:         "https://bit.ly/3abcDEF",
		ProductName: "Vendor Max",
		Provider:    "vendor",
	})

	assert.ErrorIs(t, err, common.ErrShortenedURL)
	assert.Nil(t, link)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}
