package broadcast

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"weak"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notify/pkg/invoke"
	"github.com/dmitrymomot/notify/pkg/logger"
)

// Subscribable is the consumer-facing half of a Broadcaster. Producers can
// expose it to let callers listen without being able to notify.
type Subscribable[T any] interface {
	Subscribe(fn func(T)) *Subscription
	SubscribeWithError(fn func(T) error) *Subscription
}

// record is one listener registration. active is the liveness flag checked
// both when the snapshot is taken and right before the listener is called.
type record[T any] struct {
	id     string
	fn     func(T) error
	active atomic.Bool
}

// call runs the listener and turns a panic into an error.
func (r *record[T]) call(v T) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanic, p)
		}
	}()
	return r.fn(v)
}

// registry is the ordered listener collection. Subscriptions reference it
// weakly; only the Broadcaster holds it strongly.
type registry[T any] struct {
	mu      sync.RWMutex
	records []*record[T]
	closed  bool
}

func (r *registry[T]) add(rec *record[T]) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}
	// Lazy pruning of registrations deactivated without removal.
	r.records = deleteInactive(r.records, nil)
	rec.active.Store(true)
	r.records = append(r.records, rec)
	return true
}

func (r *registry[T]) remove(rec *record[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = deleteInactive(r.records, rec)
}

func deleteInactive[T any](records []*record[T], target *record[T]) []*record[T] {
	kept := records[:0]
	for _, rec := range records {
		if rec != target && rec.active.Load() {
			kept = append(kept, rec)
		}
	}
	clear(records[len(kept):])
	return kept
}

// snapshot copies the live records in subscription order.
func (r *registry[T]) snapshot() []*record[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*record[T], 0, len(r.records))
	for _, rec := range r.records {
		if rec.active.Load() {
			out = append(out, rec)
		}
	}
	return out
}

func (r *registry[T]) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, rec := range r.records {
		if rec.active.Load() {
			n++
		}
	}
	return n
}

func (r *registry[T]) reset(closing bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		rec.active.Store(false)
	}
	r.records = nil
	if closing {
		r.closed = true
	}
}

func (r *registry[T]) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// Broadcaster delivers values of type T to a dynamic set of listeners.
// Multiple values per notification are bundled into a struct type T.
// All methods are safe for concurrent use, including from inside listeners.
type Broadcaster[T any] struct {
	reg      *registry[T]
	strategy invoke.Strategy
	onError  func(error)
	logger   *slog.Logger
}

// New creates a Broadcaster. Without WithStrategy, Notify delivers inline.
func New[T any](opts ...Option) *Broadcaster[T] {
	o := newOptions(opts)
	return &Broadcaster[T]{
		reg:      &registry[T]{},
		strategy: o.strategy,
		onError:  o.onError,
		logger:   o.logger,
	}
}

// Subscribe registers fn and returns the handle controlling its membership.
// It never fails: on a closed Broadcaster, or for a nil fn, the returned
// Subscription is already inactive.
func (b *Broadcaster[T]) Subscribe(fn func(T)) *Subscription {
	if fn == nil {
		return b.SubscribeWithError(nil)
	}
	return b.SubscribeWithError(func(v T) error {
		fn(v)
		return nil
	})
}

// SubscribeWithError is Subscribe for listeners that report failures.
// A returned error is passed to the error handler as a *ListenerError.
func (b *Broadcaster[T]) SubscribeWithError(fn func(T) error) *Subscription {
	rec := &record[T]{id: uuid.NewString(), fn: fn}
	if fn == nil || !b.reg.add(rec) {
		return inertSubscription(rec.id)
	}
	return newSubscription(rec.id, &link[T]{rec: rec, reg: weak.Make(b.reg)})
}

// Unsubscribe is equivalent to sub.Unsubscribe().
func (b *Broadcaster[T]) Unsubscribe(sub *Subscription) {
	sub.Unsubscribe()
}

// Notify delivers v to every live listener through the configured strategy.
func (b *Broadcaster[T]) Notify(v T) error {
	return b.NotifyVia(b.strategy, v)
}

// NotifySync delivers v to every live listener on the calling goroutine,
// in subscription order, before returning.
func (b *Broadcaster[T]) NotifySync(v T) {
	for _, rec := range b.reg.snapshot() {
		b.deliver(rec, v)
	}
}

// NotifyVia delivers v through s, one task per listener. A nil s delivers
// inline. When s refuses a task, the remaining listeners are skipped and the
// refusal is returned wrapped in ErrDeliveryRejected.
//
// No lock is held while listeners run, so they may subscribe and unsubscribe
// freely. A listener unsubscribed after the snapshot but before its task runs
// is skipped.
func (b *Broadcaster[T]) NotifyVia(s invoke.Strategy, v T) error {
	s = invoke.Or(s)
	for _, rec := range b.reg.snapshot() {
		if err := s.Invoke(func() { b.deliver(rec, v) }); err != nil {
			return errors.Join(ErrDeliveryRejected, err)
		}
	}
	return nil
}

func (b *Broadcaster[T]) deliver(rec *record[T], v T) {
	if !rec.active.Load() {
		return
	}
	if err := rec.call(v); err != nil {
		b.report(&ListenerError{SubscriptionID: rec.id, Err: err})
	}
}

func (b *Broadcaster[T]) report(err error) {
	if b.onError == nil {
		attrs := []any{logger.Component("broadcast"), logger.Error(err)}
		var le *ListenerError
		if errors.As(err, &le) {
			attrs = append(attrs, logger.SubscriptionID(le.SubscriptionID))
		}
		b.logger.Error("notification delivery failed", attrs...)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("error handler panicked",
				logger.Component("broadcast"),
				slog.Any("panic", r))
		}
	}()
	b.onError(err)
}

// Len returns the number of live listeners.
func (b *Broadcaster[T]) Len() int {
	return b.reg.len()
}

// Clear deregisters every listener. Their Subscriptions become inactive.
func (b *Broadcaster[T]) Clear() {
	b.reg.reset(false)
}

// Close deregisters every listener and turns the Broadcaster off: later
// Subscribe calls return inactive Subscriptions and Notify delivers nothing.
// Safe to call more than once.
func (b *Broadcaster[T]) Close() error {
	b.reg.reset(true)
	return nil
}

// Closed reports whether Close has been called.
func (b *Broadcaster[T]) Closed() bool {
	return b.reg.isClosed()
}
