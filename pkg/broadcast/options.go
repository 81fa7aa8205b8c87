package broadcast

import (
	"log/slog"

	"github.com/dmitrymomot/notify/pkg/invoke"
)

// Option configures a Broadcaster and the wrappers built on it.
type Option func(*options)

type options struct {
	strategy     invoke.Strategy
	onError      func(error)
	logger       *slog.Logger
	alwaysNotify bool
}

func newOptions(opts []Option) options {
	o := options{
		strategy: invoke.Inline{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithStrategy sets the strategy used by Notify. Defaults to invoke.Inline.
// Nil is ignored.
func WithStrategy(s invoke.Strategy) Option {
	return func(o *options) {
		if s != nil {
			o.strategy = s
		}
	}
}

// WithErrorHandler registers the reporting hook for delivery failures.
// Listener errors and panics arrive as a *ListenerError on the goroutine
// that delivered the notification. Attribute.SetValue, which has no error
// return, also passes refused deliveries here as an error matching
// ErrDeliveryRejected. Without a hook, failures are logged.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithLogger sets the logger used when no error handler is configured.
// Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAlwaysNotify makes Attribute.SetValue notify even when the value does
// not change. Other types ignore it.
func WithAlwaysNotify() Option {
	return func(o *options) {
		o.alwaysNotify = true
	}
}
