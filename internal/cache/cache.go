// Package cache provides the read-through cache used by the services.
// Values are stored as JSON so every backend behaves the same.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a JSON value store with per-entry expiry.
type Cache interface {
	// Get decodes the value at key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// ProductKey is the cache key for a single product.
func ProductKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// UserKey is the cache key for a single user.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// CategoriesKey holds the distinct category list.
const CategoriesKey = "product:categories"
