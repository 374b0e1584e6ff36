package events_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/conversation-signaling/pkg/events"
)

func TestEventEmitter(t *testing.T) {
	t.Run("listeners run in registration order", func(t *testing.T) {
		e := events.NewEventEmitter()
		var order []int
		e.On("e", func(args ...interface{}) { order = append(order, 1) })
		e.On("e", func(args ...interface{}) { order = append(order, 2) })

		require.True(t, e.Emit("e"))
		require.Equal(t, []int{1, 2}, order)
	})

	t.Run("once listener fires once", func(t *testing.T) {
		e := events.NewEventEmitter()
		calls := 0
		e.Once("e", func(args ...interface{}) { calls++ })

		require.True(t, e.Emit("e"))
		require.False(t, e.Emit("e"))
		require.Equal(t, 1, calls)
	})

	t.Run("remove stops delivery", func(t *testing.T) {
		e := events.NewEventEmitter()
		calls := 0
		remove := e.On("e", func(args ...interface{}) { calls++ })
		remove()

		require.False(t, e.Emit("e"))
		require.Zero(t, e.ListenerCount("e"))
		require.Zero(t, calls)
	})
}

func TestQueueingEventEmitter(t *testing.T) {
	t.Run("queue without listener buffers and dequeue delivers once", func(t *testing.T) {
		q := events.NewQueueingEventEmitter()
		require.False(t, q.Queue("e", 1))
		require.Equal(t, 1, q.QueuedCount("e"))

		var got []interface{}
		q.On("e", func(args ...interface{}) { got = append(got, args...) })

		require.True(t, q.Dequeue("e"))
		require.Equal(t, []interface{}{1}, got)

		require.True(t, q.Dequeue("e"))
		require.Equal(t, []interface{}{1}, got)
	})

	t.Run("queue with listener emits immediately", func(t *testing.T) {
		q := events.NewQueueingEventEmitter()
		calls := 0
		q.On("e", func(args ...interface{}) { calls++ })

		require.True(t, q.Queue("e", "x"))
		require.Equal(t, 1, calls)
		require.Zero(t, q.QueuedCount("e"))
	})

	t.Run("dequeue with nothing buffered returns true", func(t *testing.T) {
		q := events.NewQueueingEventEmitter()
		require.True(t, q.Dequeue())
	})

	t.Run("dequeue all replays names in insertion order", func(t *testing.T) {
		q := events.NewQueueingEventEmitter()
		q.Queue("b", 1)
		q.Queue("a", 2)
		q.Queue("b", 3)

		var order []interface{}
		record := func(args ...interface{}) { order = append(order, args[0]) }
		q.On("a", record)
		q.On("b", record)

		require.True(t, q.Dequeue())
		require.Equal(t, []interface{}{1, 3, 2}, order)
	})

	t.Run("dequeue without listener reports false and drops the events", func(t *testing.T) {
		q := events.NewQueueingEventEmitter()
		q.Queue("a", 1)
		q.Queue("b", 2)
		q.On("b", func(args ...interface{}) {})

		require.False(t, q.Dequeue())
		require.Zero(t, q.QueuedCount("a"))
	})
}
