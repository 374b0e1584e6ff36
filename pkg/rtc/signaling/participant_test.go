package signaling_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	"github.com/livekit/conversation-signaling/pkg/rtc/signaling"
	"github.com/livekit/conversation-signaling/pkg/rtc/transport"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/statemachine"
)

func TestTrackSignaling(t *testing.T) {
	tr := signaling.NewTrackSignaling("TR_1", conversationinfo.TrackKindVideo, nil)
	require.Equal(t, conversationinfo.Track{ID: "TR_1", Kind: conversationinfo.TrackKindVideo}, tr.Descriptor())

	updates := 0
	tr.On(signaling.EventTrackUpdated, func(args ...interface{}) {
		updates++
	})
	require.False(t, tr.SetEnabled(true))
	require.True(t, tr.SetEnabled(false))
	require.False(t, tr.SetEnabled(false))
	require.Equal(t, signaling.TrackStateDisabled, tr.State())
	require.Equal(t, 1, updates)

	media := types.RemoteTrack{ID: "TR_1", Kind: conversationinfo.TrackKindVideo, PeerConnectionID: "PC_1"}
	tr.SetMediaTrack(&media)
	require.Equal(t, 1, tr.QueuedCount(signaling.EventTrackMediaAttached))

	require.True(t, tr.End())
	require.False(t, tr.End())
	require.False(t, tr.SetEnabled(true))
	_, ok := tr.MediaTrack()
	require.False(t, ok)

	tr.SetMediaTrack(&media)
	_, ok = tr.MediaTrack()
	require.False(t, ok)
}

func TestParticipantSignaling(t *testing.T) {
	t.Run("connects once", func(t *testing.T) {
		p := signaling.NewParticipantSignaling(nil)
		require.Equal(t, signaling.ParticipantStateConnecting, p.State())
		require.NoError(t, p.Connect("PA_1", "bob"))
		require.ErrorIs(t, p.Connect("PA_2", "eve"), statemachine.ErrInvalidTransition)
		require.Equal(t, "PA_1", p.SID())
		require.Equal(t, "bob", p.Identity())
	})

	t.Run("queues track events until listened", func(t *testing.T) {
		p := signaling.NewParticipantSignaling(nil)
		require.NoError(t, p.Connect("PA_1", "bob"))

		t1, err := p.GetOrCreateTrack("TR_1", conversationinfo.TrackKindAudio)
		require.NoError(t, err)
		again, err := p.GetOrCreateTrack("TR_1", conversationinfo.TrackKindAudio)
		require.NoError(t, err)
		require.Same(t, t1, again)
		require.Equal(t, 1, p.QueuedCount(signaling.EventTrackAdded))

		var added []string
		p.On(signaling.EventTrackAdded, func(args ...interface{}) {
			added = append(added, args[0].(*signaling.TrackSignaling).ID())
		})
		p.Dequeue(signaling.EventTrackAdded)
		require.Equal(t, []string{"TR_1"}, added)
	})

	t.Run("ends tracks on disconnect", func(t *testing.T) {
		p := signaling.NewParticipantSignaling(nil)
		require.NoError(t, p.Connect("PA_1", "bob"))
		t1, _ := p.GetOrCreateTrack("TR_1", conversationinfo.TrackKindAudio)

		require.True(t, p.Disconnect(nil))
		require.False(t, p.Disconnect(nil))
		require.True(t, t1.IsEnded())
		require.Empty(t, p.Tracks())
		require.Equal(t, 1, p.QueuedCount(signaling.EventTrackRemoved))

		_, err := p.GetOrCreateTrack("TR_2", conversationinfo.TrackKindAudio)
		require.ErrorIs(t, err, signaling.ErrParticipantDisconnected)
	})
}

func TestLocalParticipantSignaling(t *testing.T) {
	p := signaling.NewLocalParticipantSignaling(nil)
	require.NoError(t, p.Connect("PA_local", "alice"))

	mic := transport.NewLocalTrack("TR_mic", conversationinfo.TrackKindAudio, nil)
	t1, err := p.PublishTrack(mic)
	require.NoError(t, err)
	t2, err := p.PublishTrack(mic)
	require.NoError(t, err)
	require.Same(t, t1, t2)
	require.Equal(t, 1, p.QueuedCount(signaling.EventPublicationsChanged))
	require.Len(t, p.Stream().Tracks(), 1)

	require.NoError(t, p.SetTrackEnabled("TR_mic", false))
	require.NoError(t, p.SetTrackEnabled("TR_mic", false))
	require.Equal(t, 1, p.QueuedCount(signaling.EventTrackStateChanged))

	require.True(t, p.UnpublishTrack("TR_mic"))
	require.False(t, p.UnpublishTrack("TR_mic"))
	require.Empty(t, p.Stream().Tracks())
	require.True(t, t1.IsEnded())
	require.ErrorIs(t, p.SetTrackEnabled("TR_mic", true), signaling.ErrTrackNotFound)
}
