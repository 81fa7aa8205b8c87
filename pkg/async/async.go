package async

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/notify/pkg/invoke"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// complete must be called exactly once.
func (f *Future[U]) complete(result U, err error) {
	f.result = result
	f.err = err
	close(f.done)
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for completion at most timeout and returns
// ErrTimeout if the function is still running.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the function has finished, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done is closed when the future completes.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Async executes fn on a new goroutine and returns a Future.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()
	go run(f, ctx, param, fn)
	return f
}

// Submit executes fn through strategy and returns a Future. With
// invoke.Inline the future is already complete on return; with a worker pool
// fn runs on a pool goroutine. If the strategy refuses the task, the future
// completes immediately with the refusal error.
func Submit[T any, U any](strategy invoke.Strategy, ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()
	err := invoke.Or(strategy).Invoke(func() {
		run(f, ctx, param, fn)
	})
	if err != nil {
		var zero U
		f.complete(zero, err)
	}
	return f
}

func run[T any, U any](f *Future[U], ctx context.Context, param T, fn func(context.Context, T) (U, error)) {
	var (
		res U
		err error
	)
	defer func() {
		if r := recover(); r != nil {
			var zero U
			res, err = zero, fmt.Errorf("%w: %v", ErrPanic, r)
		}
		f.complete(res, err)
	}()

	// Skip the work when the context was cancelled while the task was queued.
	if err = ctx.Err(); err != nil {
		return
	}
	res, err = fn(ctx, param)
}

// WaitAll waits for all futures to complete and returns their results in
// order, stopping at the first error.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// WaitAny returns the index, result and error of the first future to complete.
func WaitAny[U any](futures ...*Future[U]) (int, U, error) {
	if len(futures) == 0 {
		var zero U
		return -1, zero, ErrNoFutures
	}

	type outcome struct {
		index  int
		result U
		err    error
	}
	done := make(chan outcome, len(futures))

	for i, future := range futures {
		go func() {
			result, err := future.Await()
			done <- outcome{i, result, err}
		}()
	}

	res := <-done
	return res.index, res.result, res.err
}
