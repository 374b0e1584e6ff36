package utils

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/protocol/logger"
)

func TestIDGenerators(t *testing.T) {
	id := GuidGenerator.NewID(RoomPrefix)
	require.True(t, strings.HasPrefix(id, RoomPrefix))
	require.NotEqual(t, id, GuidGenerator.NewID(RoomPrefix))

	seq := &SequentialIDGenerator{}
	require.Equal(t, "PC_1", seq.NewID(PeerConnectionPrefix))
	require.Equal(t, "DG_2", seq.NewID(DialogPrefix))
}

func TestOpsQueue(t *testing.T) {
	t.Run("runs operations in order", func(t *testing.T) {
		oq := NewOpsQueue(logger.GetLogger(), "test", 10)
		oq.Start()
		defer oq.Stop()

		var order []int
		for i := 0; i < 5; i++ {
			i := i
			require.True(t, oq.Enqueue(func() { order = append(order, i) }))
		}
		require.NoError(t, oq.Flush(context.Background()))
		require.Equal(t, []int{0, 1, 2, 3, 4}, order)
	})

	t.Run("keeps operations beyond size while blocked", func(t *testing.T) {
		oq := NewOpsQueue(logger.GetLogger(), "test", 4)
		oq.Start()
		defer oq.Stop()

		release := make(chan struct{})
		require.True(t, oq.Enqueue(func() { <-release }))

		ran := 0
		for i := 0; i < 100; i++ {
			require.True(t, oq.Enqueue(func() { ran++ }))
		}
		require.GreaterOrEqual(t, oq.Backlog(), 100)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		require.ErrorIs(t, oq.Flush(ctx), context.DeadlineExceeded)
		cancel()

		close(release)
		ctx, cancel = context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, oq.Flush(ctx))
		require.Equal(t, 100, ran)
		require.Zero(t, oq.Backlog())
	})

	t.Run("rejects after stop", func(t *testing.T) {
		oq := NewOpsQueue(logger.GetLogger(), "test", 10)
		oq.Start()
		oq.Stop()

		require.False(t, oq.Enqueue(func() {}))
		select {
		case <-oq.Done():
		case <-time.After(time.Second):
			t.Fatal("queue did not drain")
		}
		require.NoError(t, oq.Flush(context.Background()))
	})
}

func TestDeferred(t *testing.T) {
	d := NewDeferred[int]()
	require.False(t, d.IsSettled())

	go func() {
		d.Resolve(42)
	}()

	v, err := d.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.True(t, d.IsSettled())

	require.False(t, d.Reject(errors.New("late")))
	v, err = d.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, v)

	rejected := NewDeferred[string]()
	boom := errors.New("boom")
	require.True(t, rejected.Reject(boom))
	_, err = rejected.Wait(context.Background())
	require.ErrorIs(t, err, boom)

	pending := NewDeferred[string]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = pending.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
