package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devopscompass/waitlist-api/internal/ratelimit"
)

// redisRateLimitStore is a fixed-window counter shared across replicas. The
// key's TTL is set only when the key is created, so the window starts at the
// first hit and the count resets when it expires.
type redisRateLimitStore struct {
	client *redis.Client
}

func NewRedisRateLimitStore(client *redis.Client) ratelimit.Store {
	return &redisRateLimitStore{client: client}
}

func (s *redisRateLimitStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
