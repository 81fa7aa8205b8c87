// Package async provides generic futures for computations that run elsewhere:
// on their own goroutine (Async) or on any invoke.Strategy such as a
// workerpool.Pool (Submit).
//
// A Future is completed exactly once. Callers wait with Await, bound the wait
// with AwaitWithTimeout, or poll with IsComplete. WaitAll and WaitAny
// coordinate several futures.
//
// # Usage
//
//	pool := workerpool.New(4)
//	defer pool.Close()
//
//	f := async.Submit(pool, ctx, 21, func(_ context.Context, v int) (int, error) {
//	    return v * 2, nil
//	})
//	res, err := f.Await()
//
// # Error Handling
//
// The future carries the error returned by the function, ctx.Err() when the
// context was cancelled before the function started, ErrPanic (wrapped) when
// the function panicked, or the strategy error (for example
// workerpool.ErrPoolClosed) when the task was refused. AwaitWithTimeout
// returns ErrTimeout.
package async
