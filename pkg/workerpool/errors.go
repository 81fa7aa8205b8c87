package workerpool

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrPoolClosed is returned when a task is submitted after Shutdown began.
	ErrPoolClosed = errors.New("workerpool: pool is shut down")

	// ErrNilTask is returned when a nil task is submitted.
	ErrNilTask = errors.New("workerpool: task is nil")
)

// TaskError reports a task that failed on a worker.
type TaskError struct {
	TaskID uint64
	Err    error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("workerpool: task %d failed: %v", e.TaskID, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking task together with the
// stack of the worker goroutine at that point.
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func newPanicError(v any) *PanicError {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{Value: v, Stack: string(buf[:n])}
}
