package workerpool

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/notify/pkg/logger"
)

type task struct {
	id uint64
	fn func() error
}

// Pool runs submitted tasks on a fixed set of worker goroutines.
// All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []task
	seq     uint64
	closing bool
	wg      sync.WaitGroup
	done    chan struct{}

	workers int
	logger  *slog.Logger
	onError func(error)

	// Observability counters, read without the queue lock.
	queued    atomic.Int64
	active    atomic.Int64
	idle      atomic.Int64
	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64

	timing timing
}

// New starts a pool with the given number of workers.
// A non-positive count defaults to runtime.NumCPU().
func New(workers int, opts ...Option) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	p := &Pool{
		workers: workers,
		logger:  o.logger,
		onError: o.onError,
		done:    make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)

	p.idle.Store(int64(workers))
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	go func() {
		p.wg.Wait()
		close(p.done)
	}()

	p.logger.Debug("worker pool started",
		logger.Component("workerpool"),
		logger.Workers(workers))

	return p
}

// Invoke enqueues task and returns immediately.
// It implements invoke.Strategy.
func (p *Pool) Invoke(fn func()) error {
	if fn == nil {
		return ErrNilTask
	}
	return p.Submit(func() error {
		fn()
		return nil
	})
}

// Submit enqueues an error-returning task. A non-nil error returned by fn is
// reported through the error handler.
func (p *Pool) Submit(fn func() error) error {
	if fn == nil {
		return ErrNilTask
	}

	p.mu.Lock()
	if p.closing {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.seq++
	p.queue = append(p.queue, task{id: p.seq, fn: fn})
	p.queued.Add(1)
	p.submitted.Add(1)
	p.mu.Unlock()

	p.cond.Signal()
	return nil
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closing {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			// closing and drained
			p.mu.Unlock()
			p.idle.Add(-1)
			return
		}
		t := p.queue[0]
		p.queue[0] = task{}
		p.queue = p.queue[1:]
		p.queued.Add(-1)
		p.mu.Unlock()

		p.run(t)
	}
}

func (p *Pool) run(t task) {
	p.idle.Add(-1)
	p.active.Add(1)

	start := time.Now()
	err := call(t.fn)
	elapsed := time.Since(start)

	p.active.Add(-1)
	p.idle.Add(1)
	p.completed.Add(1)
	p.timing.record(elapsed)

	if err != nil {
		p.failed.Add(1)
		p.report(&TaskError{TaskID: t.id, Err: err})
	}
}

func call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()
	return fn()
}

func (p *Pool) report(err *TaskError) {
	if p.onError == nil {
		p.logger.Error("task failed",
			logger.Component("workerpool"),
			logger.TaskID(err.TaskID),
			logger.Error(err.Err))
		return
	}

	// A panicking handler must not kill the worker.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("error handler panicked",
				logger.Component("workerpool"),
				logger.TaskID(err.TaskID),
				slog.Any("panic", r))
		}
	}()
	p.onError(err)
}

// Shutdown stops accepting tasks, lets the workers drain the queue and waits
// for them to exit. It returns ctx.Err() if ctx expires first; the workers
// keep draining in that case. Calling Shutdown more than once is safe.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	first := !p.closing
	p.closing = true
	pending := len(p.queue)
	p.mu.Unlock()
	p.cond.Broadcast()

	if first {
		p.logger.Debug("worker pool shutting down",
			logger.Component("workerpool"),
			slog.Int("pending", pending))
	}

	select {
	case <-p.done:
		if first {
			p.logger.Debug("worker pool stopped", logger.Component("workerpool"))
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the pool down and blocks until every queued task has run.
func (p *Pool) Close() error {
	return p.Shutdown(context.Background())
}

// Done is closed once every worker has exited.
func (p *Pool) Done() <-chan struct{} {
	return p.done
}

// Workers returns the fixed worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// QueueDepth returns the number of tasks waiting for a worker.
func (p *Pool) QueueDepth() int {
	return int(p.queued.Load())
}

// ActiveWorkers returns the number of workers currently running a task.
func (p *Pool) ActiveWorkers() int {
	return int(p.active.Load())
}

// IdleWorkers returns the number of live workers not running a task.
func (p *Pool) IdleWorkers() int {
	return int(p.idle.Load())
}
