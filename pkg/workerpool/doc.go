// Package workerpool provides a fixed-size goroutine pool with an unbounded
// FIFO task queue.
//
// A Pool starts its workers in New and keeps them until Shutdown. Submitting
// never blocks beyond a short mutex acquisition, so publishers are never held
// back by slow tasks. Pool implements invoke.Strategy and can be plugged into
// a broadcast.Broadcaster to deliver notifications asynchronously.
//
// # Usage
//
//	pool := workerpool.New(4, workerpool.WithLogger(log))
//	defer pool.Close()
//
//	if err := pool.Invoke(func() { process() }); err != nil {
//	    // workerpool.ErrPoolClosed: the pool is shutting down
//	}
//
// # Shutdown
//
// Shutdown drains the queue: every task accepted before Shutdown was called
// runs to completion before the workers exit. Tasks submitted after Shutdown
// began are refused with ErrPoolClosed. Shutdown blocks until all workers have
// returned or the context expires; an expired context does not abandon queued
// tasks, the workers keep draining in the background.
//
// Shutdown must not be called from inside a task of the same pool.
//
// # Failures
//
// A task that returns an error or panics never takes down its worker. The
// failure is wrapped in *TaskError (panics additionally in *PanicError) and
// passed to the error handler configured with WithErrorHandler, or logged
// through the pool logger when no handler is set.
//
// # Observability
//
// QueueDepth, ActiveWorkers, IdleWorkers and Stats read atomic counters and
// are cheap enough to poll.
package workerpool
