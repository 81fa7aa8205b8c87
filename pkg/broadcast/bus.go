package broadcast

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Bus routes values to listeners by topic. Each topic is backed by its own
// Broadcaster built with the Bus options, so all topics share one strategy
// and error handler.
type Bus[T any] struct {
	opts   []Option
	topics map[string]*Broadcaster[T]
	mu     sync.RWMutex
	closed bool
}

// NewBus creates an empty Bus.
func NewBus[T any](opts ...Option) *Bus[T] {
	return &Bus[T]{
		opts:   opts,
		topics: make(map[string]*Broadcaster[T]),
	}
}

// Subscribe registers fn for topic, creating the topic on first use.
// On a closed Bus, or for a nil fn, the returned Subscription is inactive.
func (b *Bus[T]) Subscribe(topic string, fn func(T)) *Subscription {
	if fn == nil {
		return inertSubscription(uuid.NewString())
	}
	return b.SubscribeWithError(topic, func(v T) error {
		fn(v)
		return nil
	})
}

// SubscribeWithError is Subscribe for listeners that report failures.
//
// The listener is registered while the Bus lock is held, so Prune and
// UnsubscribeAll never drop a topic between lookup and registration.
func (b *Bus[T]) SubscribeWithError(topic string, fn func(T) error) *Subscription {
	if fn == nil {
		return inertSubscription(uuid.NewString())
	}

	b.mu.RLock()
	if t, ok := b.topics[topic]; ok && !b.closed {
		defer b.mu.RUnlock()
		return t.SubscribeWithError(fn)
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return inertSubscription(uuid.NewString())
	}
	t, ok := b.topics[topic]
	if !ok {
		t = New[T](b.opts...)
		b.topics[topic] = t
	}
	return t.SubscribeWithError(fn)
}

// Publish notifies the listeners of topic. Publishing to a topic nobody
// subscribed to is not an error.
func (b *Bus[T]) Publish(topic string, v T) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	t, ok := b.topics[topic]
	b.mu.RUnlock()

	if !ok {
		return nil
	}
	return t.Notify(v)
}

// UnsubscribeAll deregisters every listener of topic and forgets the topic.
func (b *Bus[T]) UnsubscribeAll(topic string) {
	b.mu.Lock()
	t, ok := b.topics[topic]
	delete(b.topics, topic)
	b.mu.Unlock()

	if ok {
		_ = t.Close()
	}
}

// Prune forgets topics without live listeners and returns how many were
// removed. Dropped topics are closed, so a handle still pointing at one is
// inert rather than silently unreachable.
func (b *Bus[T]) Prune() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for name, t := range b.topics {
		if t.Len() == 0 {
			delete(b.topics, name)
			_ = t.Close()
			n++
		}
	}
	return n
}

// Topics returns the known topic names, sorted.
func (b *Bus[T]) Topics() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.topics))
	for name := range b.topics {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of live listeners of topic.
func (b *Bus[T]) Len(topic string) int {
	b.mu.RLock()
	t, ok := b.topics[topic]
	b.mu.RUnlock()

	if !ok {
		return 0
	}
	return t.Len()
}

// Close deregisters all listeners of all topics. Later Publish calls return
// ErrBusClosed. Safe to call more than once.
func (b *Bus[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	topics := b.topics
	b.topics = make(map[string]*Broadcaster[T])
	b.mu.Unlock()

	for _, t := range topics {
		_ = t.Close()
	}
	return nil
}
