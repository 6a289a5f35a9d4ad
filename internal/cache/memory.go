package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryCache implements Cache in process memory on top of ttlcache.
// Values are stored JSON encoded so reads behave like the Redis cache.
type MemoryCache struct {
	items *ttlcache.Cache[string, []byte]
	once  sync.Once
}

// NewMemoryCache creates an in-memory cache and starts its expiry loop.
func NewMemoryCache() *MemoryCache {
	items := ttlcache.New[string, []byte](
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go items.Start()
	return &MemoryCache{items: items}
}

func (c *MemoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	item := c.items.Get(key)
	if item == nil {
		return false, nil
	}
	if err := json.Unmarshal(item.Value(), dest); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key. A ttl of zero means no expiry.
func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s for cache: %w", key, err)
	}
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	c.items.Set(key, data, ttl)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.items.Delete(key)
	}
	return nil
}

// Len returns the number of stored entries.
func (c *MemoryCache) Len() int {
	return c.items.Len()
}

// Close stops the expiry loop. The cache stays usable.
func (c *MemoryCache) Close() error {
	c.once.Do(c.items.Stop)
	return nil
}
