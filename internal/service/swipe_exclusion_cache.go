package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SwipeExclusionCache keeps the set of listing ids a student has already
// swiped, so feed generation can exclude them without a swipe-table scan on
// every request. Redis is an accelerator only: on a miss or error the caller
// falls back to the repository, so a cold or unreachable cache never changes
// feed correctness.
type SwipeExclusionCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

func NewSwipeExclusionCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SwipeExclusionCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SwipeExclusionCache{
		client: client,
		ttl:    ttl,
		prefix: "feed:swiped:",
		logger: logger,
	}
}

// Add records a swiped listing in the student's exclusion set.
func (c *SwipeExclusionCache) Add(ctx context.Context, studentID, listingID string) {
	if c == nil || c.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	key := c.prefix + studentID
	pipe := c.client.TxPipeline()
	pipe.SAdd(ctx, key, listingID)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("swipe exclusion cache add failed",
			zap.String("student_id", studentID),
			zap.Error(err),
		)
	}
}

// Members returns the cached exclusion set. ok is false when the set is absent
// or redis failed; the caller must then load from the repository.
func (c *SwipeExclusionCache) Members(ctx context.Context, studentID string) ([]string, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	key := c.prefix + studentID
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return nil, false
	}
	ids, err := c.client.SMembers(ctx, key).Result()
	if err != nil {
		c.logger.Warn("swipe exclusion cache read failed",
			zap.String("student_id", studentID),
			zap.Error(err),
		)
		return nil, false
	}
	return ids, true
}

// Warm seeds the exclusion set from repository state after a cache miss.
func (c *SwipeExclusionCache) Warm(ctx context.Context, studentID string, listingIDs []string) {
	if c == nil || c.client == nil || len(listingIDs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	key := c.prefix + studentID
	members := make([]any, len(listingIDs))
	for i, id := range listingIDs {
		members[i] = id
	}
	pipe := c.client.TxPipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("swipe exclusion cache warm failed",
			zap.String("student_id", studentID),
			zap.Error(err),
		)
	}
}
