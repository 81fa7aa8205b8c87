package async_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notify/pkg/async"
	"github.com/dmitrymomot/notify/pkg/invoke"
	"github.com/dmitrymomot/notify/pkg/logger"
	"github.com/dmitrymomot/notify/pkg/workerpool"
)

func double(_ context.Context, v int) (int, error) {
	return v * 2, nil
}

func TestAsync(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 42, func(_ context.Context, n int) (string, error) {
		time.Sleep(10 * time.Millisecond)
		return fmt.Sprintf("Number: %d", n), nil
	})

	res, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "Number: 42", res)
	assert.True(t, f.IsComplete())
}

func TestAsync_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	f := async.Async(ctx, 1, func(_ context.Context, n int) (int, error) {
		called = true
		return n, nil
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestAsync_Panic(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		panic("boom")
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, async.ErrPanic)
	assert.Contains(t, err.Error(), "boom")
}

func TestSubmit_Inline(t *testing.T) {
	t.Parallel()

	f := async.Submit(invoke.Inline{}, context.Background(), 21, double)
	require.True(t, f.IsComplete(), "inline strategy completes before Submit returns")

	res, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, res)
}

func TestSubmit_NilStrategyRunsInline(t *testing.T) {
	t.Parallel()

	f := async.Submit(nil, context.Background(), 5, double)
	assert.True(t, f.IsComplete())
}

func TestSubmit_Pool(t *testing.T) {
	t.Parallel()

	pool := workerpool.New(4, workerpool.WithLogger(logger.Discard()))
	defer pool.Close()

	futures := make([]*async.Future[int], 0, 20)
	for i := range 20 {
		futures = append(futures, async.Submit(pool, context.Background(), i, double))
	}

	results, err := async.WaitAll(futures...)
	require.NoError(t, err)
	for i, r := range results {
		assert.Equal(t, i*2, r)
	}
}

func TestSubmit_PoolClosed(t *testing.T) {
	t.Parallel()

	pool := workerpool.New(1, workerpool.WithLogger(logger.Discard()))
	require.NoError(t, pool.Close())

	f := async.Submit(pool, context.Background(), 1, double)
	require.True(t, f.IsComplete())

	_, err := f.Await()
	assert.ErrorIs(t, err, workerpool.ErrPoolClosed)
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		<-release
		return 1, nil
	})

	_, err := f.AwaitWithTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)

	close(release)
	res, err := f.AwaitWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, res)
}

func TestWaitAll_StopsAtFirstError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	ctx := context.Background()
	f1 := async.Async(ctx, 1, double)
	f2 := async.Async(ctx, 2, func(context.Context, int) (int, error) { return 0, errBoom })
	f3 := async.Async(ctx, 3, double)

	results, err := async.WaitAll(f1, f2, f3)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, results[0])
	assert.Zero(t, results[2])
}

func TestWaitAny(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	release := make(chan struct{})
	defer close(release)

	slow := async.Async(ctx, 1, func(context.Context, int) (int, error) {
		<-release
		return 1, nil
	})
	fast := async.Async(ctx, 2, double)

	idx, res, err := async.WaitAny(slow, fast)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 4, res)

	_, _, err = async.WaitAny[int]()
	assert.ErrorIs(t, err, async.ErrNoFutures)
}
