package broadcast_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/notify/pkg/broadcast"
)

func TestSubscriptions(t *testing.T) {
	t.Parallel()

	numbers := broadcast.New[int]()
	names := broadcast.NewAttribute("")

	var set broadcast.Subscriptions
	var numberCalls, nameCalls int
	broadcast.Collect(&set, numbers, func(int) { numberCalls++ })
	broadcast.Collect(&set, numbers, func(int) { numberCalls++ })
	broadcast.Collect[string](&set, names, func(string) { nameCalls++ })
	set.Add(nil)
	assert.Equal(t, 3, set.Len())

	numbers.NotifySync(1)
	names.SetValue("x")
	assert.Equal(t, 2, numberCalls)
	assert.Equal(t, 1, nameCalls)

	set.Clear()
	assert.Zero(t, set.Len())
	assert.Zero(t, numbers.Len())
	assert.Zero(t, names.Len())

	numbers.NotifySync(2)
	names.SetValue("y")
	assert.Equal(t, 2, numberCalls)
	assert.Equal(t, 1, nameCalls)

	set.Clear()
}

func TestSubscriptions_ConcurrentAddClear(t *testing.T) {
	t.Parallel()

	b := broadcast.New[int]()
	var set broadcast.Subscriptions

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				set.Add(b.Subscribe(func(int) {}))
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 20 {
			set.Clear()
		}
	}()
	wg.Wait()

	assert.Equal(t, set.Len(), b.Len())
	set.Clear()
	assert.Zero(t, b.Len())
}
