// Package rdx is a small cache-aside wrapper around redis. Every error is
// reported as a miss: when redis is down the storefront just reads Mongo.
package rdx

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	conn *redis.Client
}

// New connects to redis at addr. The connection is verified lazily; a dead
// redis only costs cache hits.
func New(addr string) *Cache {
	return &Cache{
		conn: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Get returns the cached value, or "" on miss or error.
func (c *Cache) Get(ctx context.Context, key string) string {
	val, err := c.conn.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("rdx get error:", err)
		}
		return ""
	}
	return val
}

// Set stores value under key for ttl. Errors are logged, not returned.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.conn.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Println("rdx set error:", err)
	}
}

// Del drops the given keys, used for invalidation after writes.
func (c *Cache) Del(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.conn.Del(ctx, keys...).Err(); err != nil {
		log.Println("rdx del error:", err)
	}
}

// Close releases the client.
func (c *Cache) Close() error {
	return c.conn.Close()
}
