// Package broadcast provides type-safe publish/subscribe with subscriber-owned
// listener lifetimes.
//
// A Broadcaster[T] keeps an ordered set of listeners. Subscribe returns a
// *Subscription; the listener stays registered while the subscriber keeps the
// handle and has not called Unsubscribe. Notify delivers a value to every
// listener registered at the moment of the call, either inline or through an
// invoke.Strategy such as a workerpool.Pool.
//
// Basic usage:
//
//	type Reading struct {
//		Sensor string
//		Value  float64
//	}
//
//	b := broadcast.New[Reading]()
//	sub := b.Subscribe(func(r Reading) {
//		fmt.Println(r.Sensor, r.Value)
//	})
//	defer sub.Unsubscribe()
//
//	b.NotifySync(Reading{Sensor: "t1", Value: 21.5})
//
// Asynchronous delivery:
//
//	pool := workerpool.New(4)
//	defer pool.Close()
//
//	b := broadcast.New[Reading](broadcast.WithStrategy(pool))
//	_ = b.Notify(Reading{Sensor: "t1", Value: 22})
//
// # Lifetimes
//
// The Broadcaster does not keep a Subscription alive and a Subscription never
// keeps its Broadcaster alive: the handle points back weakly and only to
// request deregistration. A handle that is dropped without Unsubscribe is
// deregistered when the garbage collector reclaims it. When the Broadcaster is
// closed or collected, outstanding Subscriptions become inactive and
// Unsubscribe turns into a no-op. The one exception is a listener closure
// that captures its own handle: the Broadcaster then reaches the handle
// through the listener, and only an explicit release frees it.
//
// # Delivery guarantees
//
//   - A listener registered before a notification's snapshot, and not
//     unsubscribed before it, is called exactly once for that notification.
//   - Listeners are visited in subscription order. Concurrent notifications,
//     and asynchronous deliveries of the same notification, are not ordered.
//   - No lock is held while a listener runs. Listeners may subscribe,
//     unsubscribe (themselves included) and notify.
//   - Liveness is checked again right before each call, so a listener removed
//     between the snapshot and its turn is skipped.
//
// # Failures
//
// Every listener call is isolated. A listener that panics, or one registered
// with SubscribeWithError that returns an error, is reported as a
// *ListenerError to the handler set by WithErrorHandler (or logged), and the
// remaining listeners still receive the value.
//
// # Wrappers
//
// Attribute[T] stores a value and notifies on change, Event[T] is a stateless
// notifier, Bus[T] routes values by topic, and Subscriptions releases a group
// of handles at once.
package broadcast
