package broadcast

import "sync"

// Attribute holds a value and notifies listeners when it changes.
type Attribute[T comparable] struct {
	mu           sync.RWMutex
	value        T
	alwaysNotify bool
	b            *Broadcaster[T]
}

// NewAttribute creates an Attribute holding initial. Notifications use the
// strategy from WithStrategy (inline by default); WithAlwaysNotify disables
// the change check.
func NewAttribute[T comparable](initial T, opts ...Option) *Attribute[T] {
	o := newOptions(opts)
	return &Attribute[T]{
		value:        initial,
		alwaysNotify: o.alwaysNotify,
		b:            New[T](opts...),
	}
}

// Value returns the current value.
func (a *Attribute[T]) Value() T {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value
}

// SetValue stores v and notifies listeners with it. When v equals the current
// value nothing happens unless the Attribute was built WithAlwaysNotify.
// Reports whether a notification was sent. If the strategy refuses the
// delivery, the error wrapping ErrDeliveryRejected goes to the error handler.
func (a *Attribute[T]) SetValue(v T) bool {
	a.mu.Lock()
	if a.value == v && !a.alwaysNotify {
		a.mu.Unlock()
		return false
	}
	a.value = v
	a.mu.Unlock()

	if err := a.b.Notify(v); err != nil {
		a.b.report(err)
	}
	return true
}

// Subscribe registers fn to receive every new value.
func (a *Attribute[T]) Subscribe(fn func(T)) *Subscription {
	return a.b.Subscribe(fn)
}

// SubscribeWithError is Subscribe for listeners that report failures.
func (a *Attribute[T]) SubscribeWithError(fn func(T) error) *Subscription {
	return a.b.SubscribeWithError(fn)
}

// Len returns the number of live listeners.
func (a *Attribute[T]) Len() int {
	return a.b.Len()
}

// Close deregisters every listener; the value stays readable.
func (a *Attribute[T]) Close() error {
	return a.b.Close()
}
