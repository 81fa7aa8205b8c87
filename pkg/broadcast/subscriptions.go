package broadcast

import "sync"

// Subscriptions owns a group of Subscriptions and releases them together.
// The zero value is ready to use. Dropping the set drops its handles, which
// deregisters them once collected; call Clear to deregister immediately.
type Subscriptions struct {
	mu   sync.Mutex
	subs []*Subscription
}

// Add takes ownership of sub. Nil is ignored.
func (s *Subscriptions) Add(sub *Subscription) {
	if sub == nil {
		return
	}
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
}

// Clear unsubscribes and drops every owned Subscription. No lock of the set is
// held while the broadcasters are being updated.
func (s *Subscriptions) Clear() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// Len returns the number of owned Subscriptions, active or not.
func (s *Subscriptions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Collect subscribes fn to src and adds the handle to set.
func Collect[T any](set *Subscriptions, src Subscribable[T], fn func(T)) *Subscription {
	sub := src.Subscribe(fn)
	set.Add(sub)
	return sub
}
