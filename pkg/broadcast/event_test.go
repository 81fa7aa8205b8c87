package broadcast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notify/pkg/broadcast"
)

func TestEvent(t *testing.T) {
	t.Parallel()

	ev := broadcast.NewEvent[string]()

	var src broadcast.Subscribable[string] = ev
	var got []string
	sub := src.Subscribe(func(s string) { got = append(got, s) })
	assert.Equal(t, 1, ev.Len())

	require.NoError(t, ev.Notify("a"))
	require.NoError(t, ev.Notify("a"))
	assert.Equal(t, []string{"a", "a"}, got, "events do not deduplicate")

	sub.Unsubscribe()
	require.NoError(t, ev.Notify("b"))
	assert.Len(t, got, 2)

	require.NoError(t, ev.Close())
	assert.False(t, ev.SubscribeWithError(func(string) error { return nil }).Active())
}
