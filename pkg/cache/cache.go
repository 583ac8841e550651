package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLPosts bounds staleness of cached post lists
const TTLPosts = 30 * time.Second

// Cache key prefixes
const (
	PrefixLink  = "link:"
	PrefixPosts = "posts:"
)

// SuffixClicks is appended to link keys holding the fast click counter
const SuffixClicks = ":clicks"

// Service is the Redis cache interface
type Service interface {
	// Generic cache operations
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Click counter operations. The counter is a plain string value with no
	// expiry; GetClickCount reports ok=false when the key is absent or does
	// not parse as an integer.
	GetClickCount(ctx context.Context, linkID string) (int, bool, error)
	IncrementClickCount(ctx context.Context, linkID string) error

	// Utilities
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache is the Redis-backed implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// ClickCountKey returns the counter key for a link, e.g. "link:abc123:clicks"
func ClickCountKey(linkID string) string {
	return PrefixLink + linkID + SuffixClicks
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get fetches a JSON value from the cache
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set stores a JSON value in the cache
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, skip silently
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from the cache
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// GetClickCount reads the fast click counter for a link
func (c *redisCache) GetClickCount(ctx context.Context, linkID string) (int, bool, error) {
	if c.client == nil {
		return 0, false, fmt.Errorf("redis not available")
	}

	val, err := c.client.Get(ctx, ClickCountKey(linkID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		// Garbage in the key counts as absent
		return 0, false, nil
	}
	return n, true, nil
}

// IncrementClickCount bumps the fast click counter for a link.
// Read-then-write with no compare-and-swap: concurrent visits may race and
// undercount. That is accepted; the click_events table keeps the exact count.
func (c *redisCache) IncrementClickCount(ctx context.Context, linkID string) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	count, _, err := c.GetClickCount(ctx, linkID)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, ClickCountKey(linkID), strconv.Itoa(count+1), 0).Err()
}
