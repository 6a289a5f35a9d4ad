// Package events is the in-process topic bus behind GraphQL subscriptions.
// Delivery is fire-and-forget: subscribers only see events published after
// they subscribed, and nothing is replayed.
package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Topic names a stream of domain events.
type Topic string

const (
	ProductCreated Topic = "productCreated"
	ProductUpdated Topic = "productUpdated"
	ProductDeleted Topic = "productDeleted"
	UserCreated    Topic = "userCreated"
	UserUpdated    Topic = "userUpdated"
	UserDeleted    Topic = "userDeleted"
)

// Topics lists every topic the application publishes.
var Topics = []Topic{ProductCreated, ProductUpdated, ProductDeleted, UserCreated, UserUpdated, UserDeleted}

// ErrClosed is returned by Publish after the bus was closed.
var ErrClosed = errors.New("event bus closed")

// Bus publishes payloads to topic subscribers.
type Bus interface {
	Publish(ctx context.Context, topic Topic, payload any) error
	Subscribe(ctx context.Context, topic Topic) *Subscription
}

// Forwarder receives a copy of every published event, typically to push it
// to an external broker.
type Forwarder interface {
	Forward(ctx context.Context, topic string, payload any) error
}

// MemoryBus implements Bus with one buffered channel per subscriber. A
// subscriber whose buffer is full misses the event.
type MemoryBus struct {
	mu         sync.RWMutex
	subs       map[Topic]map[uint64]*Subscription
	nextID     uint64
	bufferSize int
	closed     bool

	forwarder Forwarder
	logger    *slog.Logger
}

// Option configures a MemoryBus.
type Option func(*MemoryBus)

// WithForwarder mirrors every published event to f.
func WithForwarder(f Forwarder) Option {
	return func(b *MemoryBus) { b.forwarder = f }
}

// WithLogger sets the logger used for dropped events and forward failures.
func WithLogger(logger *slog.Logger) Option {
	return func(b *MemoryBus) { b.logger = logger }
}

// NewMemoryBus creates a bus whose subscribers buffer up to bufferSize events.
func NewMemoryBus(bufferSize int, opts ...Option) *MemoryBus {
	if bufferSize < 1 {
		bufferSize = 1
	}
	b := &MemoryBus{
		subs:       make(map[Topic]map[uint64]*Subscription),
		bufferSize: bufferSize,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish delivers payload to the current subscribers of topic without
// blocking, then hands it to the forwarder if one is set.
func (b *MemoryBus) Publish(ctx context.Context, topic Topic, payload any) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrClosed
	}
	for _, sub := range b.subs[topic] {
		select {
		case sub.ch <- payload:
		default:
			b.logger.Warn("dropping event for slow subscriber", "topic", topic, "subscription", sub.id)
		}
	}
	b.mu.RUnlock()

	if b.forwarder != nil {
		if err := b.forwarder.Forward(ctx, string(topic), payload); err != nil {
			b.logger.Error("failed to forward event", "topic", topic, "error", err)
		}
	}
	return nil
}

// Subscribe registers a new subscriber on topic. The subscription ends when
// ctx is done or Close is called. On a closed bus the returned subscription
// is already closed.
func (b *MemoryBus) Subscribe(ctx context.Context, topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan any, b.bufferSize),
		done:  make(chan struct{}),
		bus:   b,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.closeLocked()
		return sub
	}
	b.nextID++
	sub.id = b.nextID
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[uint64]*Subscription)
	}
	b.subs[topic][sub.id] = sub
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.done:
		}
	}()

	return sub
}

// SubscriberCount returns the number of live subscriptions on topic.
func (b *MemoryBus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// Close ends every subscription and rejects further publishes.
func (b *MemoryBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for topic, subs := range b.subs {
		for _, sub := range subs {
			sub.closeLocked()
		}
		delete(b.subs, topic)
	}
}

func (b *MemoryBus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if subs, ok := b.subs[sub.topic]; ok {
		delete(subs, sub.id)
		if len(subs) == 0 {
			delete(b.subs, sub.topic)
		}
	}
	sub.closeLocked()
}
