package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/circlet-app/backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

const (
	unreadCountKeyPrefix = "circlet:unread:"
	unreadCountTTL       = 24 * time.Hour
)

// NewClient connects to Redis and verifies the connection.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

// UnreadCache caches per-user unread notification counts. The database
// stays the source of truth; every mutation of a notification row
// invalidates the key and the next read repopulates it.
type UnreadCache struct {
	client *redis.Client
	ctx    context.Context
}

// NewUnreadCache creates a new UnreadCache over an established client
func NewUnreadCache(client *redis.Client) *UnreadCache {
	return &UnreadCache{client: client, ctx: context.Background()}
}

func (c *UnreadCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", unreadCountKeyPrefix, userID)
}

// Get returns the cached count and whether the key was present.
func (c *UnreadCache) Get(userID uint) (int64, bool, error) {
	count, err := c.client.Get(c.ctx, c.key(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading unread count: %w", err)
	}
	return count, true, nil
}

// Set stores the count with a TTL so stale entries age out.
func (c *UnreadCache) Set(userID uint, count int64) error {
	if err := c.client.Set(c.ctx, c.key(userID), count, unreadCountTTL).Err(); err != nil {
		return fmt.Errorf("writing unread count: %w", err)
	}
	return nil
}

// Invalidate drops the cached count after a notification row changes.
func (c *UnreadCache) Invalidate(userID uint) error {
	if err := c.client.Del(c.ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("invalidating unread count: %w", err)
	}
	return nil
}
