package broadcast

// Event is a stateless broadcaster: every Notify reaches the current
// listeners, nothing is remembered.
type Event[T any] struct {
	b *Broadcaster[T]
}

// NewEvent creates an Event. Options are those of New.
func NewEvent[T any](opts ...Option) *Event[T] {
	return &Event[T]{b: New[T](opts...)}
}

// Subscribe registers fn for every later Notify.
func (e *Event[T]) Subscribe(fn func(T)) *Subscription {
	return e.b.Subscribe(fn)
}

// SubscribeWithError is Subscribe for listeners that report failures.
func (e *Event[T]) SubscribeWithError(fn func(T) error) *Subscription {
	return e.b.SubscribeWithError(fn)
}

// Notify delivers v through the configured strategy.
func (e *Event[T]) Notify(v T) error {
	return e.b.Notify(v)
}

// Len returns the number of live listeners.
func (e *Event[T]) Len() int {
	return e.b.Len()
}

// Close deregisters every listener.
func (e *Event[T]) Close() error {
	return e.b.Close()
}
