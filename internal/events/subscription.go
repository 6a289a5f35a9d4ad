package events

import "sync"

// Subscription is one subscriber's view of a topic.
type Subscription struct {
	id    uint64
	topic Topic
	ch    chan any
	done  chan struct{}
	once  sync.Once
	bus   *MemoryBus
}

// C yields the published payloads. It is closed when the subscription ends.
func (s *Subscription) C() <-chan any {
	return s.ch
}

// Done is closed when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) Topic() Topic {
	return s.topic
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	if s.bus == nil {
		s.closeLocked()
		return
	}
	s.bus.remove(s)
}

// closeLocked closes the channels; the caller holds the bus write lock so no
// publisher is sending on ch.
func (s *Subscription) closeLocked() {
	s.once.Do(func() {
		close(s.done)
		close(s.ch)
	})
}
