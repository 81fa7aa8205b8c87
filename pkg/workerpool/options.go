package workerpool

import "log/slog"

// Option configures a Pool.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	onError func(error)
}

// WithLogger sets the logger used for lifecycle messages and, when no error
// handler is configured, for task failures. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithErrorHandler registers the side channel receiving every task failure as
// a *TaskError. It is called on the worker goroutine that ran the task.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
