package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/freshcart/freshcart-api/internal/entity"
	"github.com/freshcart/freshcart-api/internal/usecase"
)

// RedisStatusCache mirrors order status for cheap polling reads. Entries
// expire on their own; the source of truth stays in MySQL. Keys carry the
// owning user so a lookup with the wrong user misses.
type RedisStatusCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStatusCache(rdb *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{rdb: rdb, ttl: ttl}
}

func (c *RedisStatusCache) SetStatus(ctx context.Context, userID, orderID string, status domain.Status) error {
	return c.rdb.Set(ctx, "order:status:"+userID+":"+orderID, string(status), c.ttl).Err()
}

func (c *RedisStatusCache) GetStatus(ctx context.Context, userID, orderID string) (domain.Status, bool, error) {
	val, err := c.rdb.Get(ctx, "order:status:"+userID+":"+orderID).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return domain.Status(val), true, nil
}

var _ usecase.StatusCache = (*RedisStatusCache)(nil)
