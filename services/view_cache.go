package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"keeper/model"
	"keeper/utils"

	"github.com/redis/go-redis/v9"
)

// The four cached list views. Every mutation against an owner's notes
// invalidates all of them, because a flag toggle moves a note between
// views (pinning touches both "all" and "pinned").
var CachedViews = []string{"all", "archived", "trash", "pinned"}

// RedisViewCache caches per-user, per-view note list snapshots. It is an
// optimization, never a dependency: any backend failure degrades to a
// cache miss and is logged, not returned.
type RedisViewCache struct {
	client *redis.Client
	ttls   map[string]time.Duration
}

// NewRedisViewCache creates the cache client. An unreachable Redis is
// reported but not fatal - the service runs uncached until it recovers.
func NewRedisViewCache(redisURL string, ttls map[string]time.Duration) (*RedisViewCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("View cache unavailable at startup, running uncached: %v", err)
	}

	return &RedisViewCache{client: client, ttls: ttls}, nil
}

func viewKey(userID, view string) string {
	return fmt.Sprintf("notes:%s:%s", userID, view)
}

// Get returns the cached snapshot for (user, view). The second return is
// false on a miss, on a stale/corrupt entry, and on any backend error.
func (c *RedisViewCache) Get(ctx context.Context, userID, view string) ([]*model.Note, bool) {
	data, err := c.client.Get(ctx, viewKey(userID, view)).Bytes()
	if err == redis.Nil {
		utils.TrackCacheResult("miss")
		return nil, false
	}
	if err != nil {
		utils.TrackCacheResult("error")
		log.Printf("View cache get failed for %s/%s: %v", userID, view, err)
		return nil, false
	}

	var notes []*model.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		utils.TrackCacheResult("error")
		log.Printf("View cache entry corrupt for %s/%s: %v", userID, view, err)
		return nil, false
	}

	utils.TrackCacheResult("hit")
	return notes, true
}

// Put stores a snapshot with the view's TTL. Best effort: failures are
// logged and swallowed.
func (c *RedisViewCache) Put(ctx context.Context, userID, view string, notes []*model.Note) {
	ttl, ok := c.ttls[view]
	if !ok {
		return
	}

	data, err := json.Marshal(notes)
	if err != nil {
		log.Printf("View cache marshal failed for %s/%s: %v", userID, view, err)
		return
	}

	if err := c.client.Set(ctx, viewKey(userID, view), data, ttl).Err(); err != nil {
		log.Printf("View cache put failed for %s/%s: %v", userID, view, err)
	}
}

// InvalidateUser drops all four view snapshots for the user. Called
// synchronously after every successful write against the user's notes;
// a failed delete is logged, the request still succeeds.
func (c *RedisViewCache) InvalidateUser(ctx context.Context, userID string) {
	keys := make([]string, 0, len(CachedViews))
	for _, view := range CachedViews {
		keys = append(keys, viewKey(userID, view))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		utils.TrackError("cache")
		log.Printf("View cache invalidation failed for %s: %v", userID, err)
	}
}

func (c *RedisViewCache) IsConnected() bool {
	if c == nil || c.client == nil {
		return false
	}
	return c.client.Ping(context.Background()).Err() == nil
}

func (c *RedisViewCache) Close() error {
	return c.client.Close()
}
