package broadcast

import (
	"runtime"
	"weak"
)

// Subscription is the subscriber-owned handle for one listener registration.
//
// The listener stays registered while the Subscription is reachable and
// Unsubscribe has not been called. Dropping the last reference deregisters
// the listener once the garbage collector reclaims the handle; call
// Unsubscribe for a deterministic stop. A Subscription never keeps its
// Broadcaster alive.
//
// A listener that captures its own Subscription, as self-unsubscribing
// listeners do, keeps the handle reachable through the Broadcaster. Such a
// handle is not collected while the Broadcaster lives, so it must be
// released with Unsubscribe, Broadcaster.Clear or Broadcaster.Close.
//
// Always pass Subscriptions by pointer.
type Subscription struct {
	id      string
	link    releaser
	cleanup runtime.Cleanup
}

// releaser detaches one registration from its broadcaster.
type releaser interface {
	release() bool
	live() bool
}

// link is kept apart from Subscription so the GC cleanup can use it without
// resurrecting the handle.
type link[T any] struct {
	rec *record[T]
	reg weak.Pointer[registry[T]]
}

// release deactivates the record and removes it from the broadcaster, if the
// broadcaster still exists. Only the first call has an effect.
func (l *link[T]) release() bool {
	if !l.rec.active.CompareAndSwap(true, false) {
		return false
	}
	if reg := l.reg.Value(); reg != nil {
		reg.remove(l.rec)
	}
	return true
}

func (l *link[T]) live() bool {
	return l.rec.active.Load() && l.reg.Value() != nil
}

func newSubscription(id string, l releaser) *Subscription {
	s := &Subscription{id: id, link: l}
	s.cleanup = runtime.AddCleanup(s, func(l releaser) { l.release() }, l)
	return s
}

type inert struct{}

func (inert) release() bool { return false }
func (inert) live() bool    { return false }

// inertSubscription is handed out when a registration could not be made,
// for instance on a closed Broadcaster.
func inertSubscription(id string) *Subscription {
	return &Subscription{id: id, link: inert{}}
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Active reports whether the listener can still be invoked.
func (s *Subscription) Active() bool {
	return s != nil && s.link.live()
}

// Unsubscribe deregisters the listener. It is idempotent, safe to call from
// any goroutine and from inside the listener itself. Deliveries already
// scheduled but not yet started are skipped; a listener call that is already
// running is not interrupted.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	if s.link.release() {
		s.cleanup.Stop()
	}
}
