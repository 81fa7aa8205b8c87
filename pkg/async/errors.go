package async

import "errors"

var (
	// ErrTimeout is returned by AwaitWithTimeout when the future is still pending.
	ErrTimeout = errors.New("async: timed out waiting for future")
	// ErrNoFutures is returned by WaitAny without arguments.
	ErrNoFutures = errors.New("async: no futures to wait on")
	// ErrPanic wraps a panic recovered from the submitted function.
	ErrPanic = errors.New("async: function panicked")
)
