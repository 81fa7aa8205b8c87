package workerpool

import (
	"sync"
	"time"
)

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	Workers   int    `json:"workers"`
	Queued    int    `json:"queued"`
	Active    int    `json:"active"`
	Idle      int    `json:"idle"`
	Submitted uint64 `json:"submitted"`
	Completed uint64 `json:"completed"` // success and failure
	Failed    uint64 `json:"failed"`

	// Task run times since creation or the last ResetStats.
	MinTaskTime time.Duration `json:"min_task_time"`
	MaxTaskTime time.Duration `json:"max_task_time"`
	AvgTaskTime time.Duration `json:"avg_task_time"`
}

// Stats returns a snapshot of the pool counters. Individual fields are read
// independently and may be mutually inconsistent under load.
func (p *Pool) Stats() Stats {
	s := Stats{
		Workers:   p.workers,
		Queued:    p.QueueDepth(),
		Active:    p.ActiveWorkers(),
		Idle:      p.IdleWorkers(),
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
	}
	s.MinTaskTime, s.MaxTaskTime, s.AvgTaskTime = p.timing.snapshot()
	return s
}

// ResetStats clears the task timing figures. Counters are left untouched.
func (p *Pool) ResetStats() {
	p.timing.reset()
}

type timing struct {
	mu    sync.Mutex
	count uint64
	total time.Duration
	min   time.Duration
	max   time.Duration
}

func (t *timing) record(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.count++
	t.total += d
	if t.count == 1 || d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
}

func (t *timing) snapshot() (minimum, maximum, avg time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.count == 0 {
		return 0, 0, 0
	}
	return t.min, t.max, t.total / time.Duration(t.count)
}

func (t *timing) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.count = 0
	t.total = 0
	t.min = 0
	t.max = 0
}
