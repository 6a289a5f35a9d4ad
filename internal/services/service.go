package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"catalog/internal/apperrors"
	"catalog/internal/cache"
	"catalog/internal/events"
	"catalog/internal/repositories"
)

const maxSearchLength = 100

// Option configures the optional collaborators of a service.
type Option func(*base)

// WithCache enables read-through caching of single records for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(b *base) {
		b.cache = c
		b.ttl = ttl
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *base) { b.logger = logger }
}

// base holds what every service shares: the event bus, the cache and the logger.
type base struct {
	resource string
	bus      events.Bus
	cache    cache.Cache
	ttl      time.Duration
	logger   *slog.Logger
}

func newBase(resource string, bus events.Bus, opts []Option) base {
	b := base{
		resource: resource,
		bus:      bus,
		cache:    cache.Noop{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// publish notifies subscribers after a successful write. A failure is only
// logged; the write stands.
func (b *base) publish(ctx context.Context, topic events.Topic, payload any) {
	if b.bus == nil {
		return
	}
	if err := b.bus.Publish(ctx, topic, payload); err != nil {
		b.logger.WarnContext(ctx, "failed to publish event", "topic", topic, "error", err)
	}
}

func (b *base) cached(ctx context.Context, key string, dest any) bool {
	found, err := b.cache.Get(ctx, key, dest)
	if err != nil {
		b.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return false
	}
	return found
}

func (b *base) remember(ctx context.Context, key string, value any) {
	if err := b.cache.Set(ctx, key, value, b.ttl); err != nil {
		b.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

func (b *base) forget(ctx context.Context, keys ...string) {
	if err := b.cache.Delete(ctx, keys...); err != nil {
		b.logger.WarnContext(ctx, "cache invalidation failed", "keys", keys, "error", err)
	}
}

// fail maps repository errors onto application errors. Anything unexpected
// is logged and replaced by a generic internal error.
func (b *base) fail(ctx context.Context, op string, id any, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound(b.resource, id)
	}
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	b.logger.ErrorContext(ctx, "operation failed", "resource", b.resource, "op", op, "error", err)
	return apperrors.Internal(err)
}

func noChanges() error {
	return apperrors.Validation([]apperrors.FieldError{{
		Field:      "body",
		Message:    "At least one field must be provided for update",
		Constraint: "atLeastOne",
	}})
}

// searchTerm validates a free text search query.
func searchTerm(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", apperrors.Validation([]apperrors.FieldError{{
			Field:      "query",
			Message:    "query is required",
			Constraint: "required",
		}})
	}
	if len(q) > maxSearchLength {
		return "", apperrors.Validation([]apperrors.FieldError{{
			Field:      "query",
			Message:    fmt.Sprintf("query must not exceed %d characters", maxSearchLength),
			Value:      q,
			Constraint: "max",
		}})
	}
	return q, nil
}
