// Package invoke defines how a unit of work gets executed.
//
// A Strategy receives a zero-argument task and decides where and when it runs.
// The package ships the Inline strategy, which runs the task on the caller's
// goroutine before Invoke returns. Asynchronous execution is provided by
// workerpool.Pool, which satisfies the same interface.
//
// # Usage
//
//	var s invoke.Strategy = invoke.Inline{}
//	_ = s.Invoke(func() { fmt.Println("runs now") })
//
//	pool := workerpool.New(4)
//	defer pool.Close()
//	s = pool
//	_ = s.Invoke(func() { fmt.Println("runs later, on a worker") })
//
// Any function with the right shape can be adapted with Func, which is handy in
// tests or to decorate another strategy:
//
//	counted := invoke.Func(func(task func()) error {
//	    calls.Add(1)
//	    return pool.Invoke(task)
//	})
package invoke
