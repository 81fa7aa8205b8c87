package invoke

// Strategy schedules a task for execution.
// Implementations must be safe for concurrent use.
type Strategy interface {
	// Invoke runs or schedules task. A non-nil error means the task was
	// refused and will never run.
	Invoke(task func()) error
}

// Func adapts an ordinary function to the Strategy interface.
type Func func(task func()) error

// Invoke calls f(task).
func (f Func) Invoke(task func()) error {
	return f(task)
}

// Inline runs every task synchronously on the calling goroutine.
// Panics raised by the task propagate to the caller of Invoke.
type Inline struct{}

// Invoke runs task before returning. A nil task is a no-op.
func (Inline) Invoke(task func()) error {
	if task != nil {
		task()
	}
	return nil
}

// Or returns s, or Inline when s is nil.
func Or(s Strategy) Strategy {
	if s == nil {
		return Inline{}
	}
	return s
}
