package signaling_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	"github.com/livekit/conversation-signaling/pkg/rtc/signaling"
	"github.com/livekit/conversation-signaling/pkg/rtc/transport"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/testutils"
	"github.com/livekit/conversation-signaling/pkg/utils"
)

func sentMessages(t *testing.T, d *testutils.Dialog) []*conversationinfo.Message {
	var messages []*conversationinfo.Message
	for i := 0; i < d.SendCallCount(); i++ {
		_, contentType, body := d.SendArgsForCall(i)
		require.Equal(t, conversationinfo.ContentType, contentType)
		msg, err := conversationinfo.ParseMessage(body)
		require.NoError(t, err)
		messages = append(messages, msg)
	}
	return messages
}

func TestRoomV2(t *testing.T) {
	factory := &testutils.PeerConnectionFactory{}
	d := testutils.NewDialog("DG_1", roomSID, localSID)
	r, err := signaling.NewRoomV2(signaling.RoomV2Params{
		RoomParams:            signaling.RoomParams{Identity: "alice"},
		PeerConnectionFactory: factory.New,
		IDGenerator:           &utils.SequentialIDGenerator{},
		DescriptionDebounce:   time.Millisecond,
	}, d)
	require.NoError(t, err)
	t.Cleanup(func() { r.Disconnect(nil) })

	// initial offer
	testutils.WithTimeout(t, func() string {
		if n := d.SendCallCount(); n != 1 {
			return fmt.Sprintf("expected initial offer, sent %d messages", n)
		}
		return ""
	})
	msg := sentMessages(t, d)[0]
	require.Nil(t, msg.Notification)
	require.Equal(t, []conversationinfo.PeerConnection{{
		ID: "PC_1",
		Description: conversationinfo.Description{
			Type:     conversationinfo.DescriptionOffer,
			SDP:      "offer-PC_1-1",
			Revision: 1,
		},
	}}, msg.PeerConnections)

	// notification and answer in one message
	body, err := conversationinfo.Marshal(&conversationinfo.Message{
		Notification: partial(event(conversationinfo.EventParticipantConnected, "PA_1", "TR_1")),
		PeerConnections: []conversationinfo.PeerConnection{{
			ID: "PC_1",
			Description: conversationinfo.Description{
				Type:     conversationinfo.DescriptionAnswer,
				SDP:      "remote-answer",
				Revision: 1,
			},
		}},
	})
	require.NoError(t, err)
	require.True(t, d.Deliver(conversationinfo.ContentType, body))
	require.Eventually(t, func() bool {
		_, ok := r.Participant("PA_1")
		return ok && len(factory.Get("PC_1").RemoteDescriptions()) == 1
	}, time.Second, 5*time.Millisecond)
	pc := factory.Get("PC_1")
	require.Equal(t, "remote-answer", pc.RemoteDescriptions()[0].SDP)

	// received media attaches to the signaled track
	p, _ := r.Participant("PA_1")
	tr, ok := p.Track("TR_1")
	require.True(t, ok)
	pc.SetRemoteTracks(types.RemoteTrack{ID: "TR_1", Kind: conversationinfo.TrackKindAudio, StreamID: "MS_1"})
	require.Eventually(t, func() bool {
		media, ok := tr.MediaTrack()
		return ok && media.PeerConnectionID == "PC_1"
	}, time.Second, 5*time.Millisecond)

	// publishing renegotiates
	local := r.LocalParticipant()
	_, err = local.PublishTrack(transport.NewLocalTrack("TR_mic", conversationinfo.TrackKindAudio, nil))
	require.NoError(t, err)
	testutils.WithTimeout(t, func() string {
		if pc.CreateOfferCallCount() != 2 || d.SendCallCount() != 2 {
			return fmt.Sprintf("expected renegotiation, offers %d, sent %d", pc.CreateOfferCallCount(), d.SendCallCount())
		}
		return ""
	})
	require.Len(t, pc.LocalStreams(), 1)
	require.Equal(t, "TR_mic", pc.LocalStreams()[0].Tracks()[0].ID())

	// local track state is announced
	require.NoError(t, local.SetTrackEnabled("TR_mic", false))
	require.Eventually(t, func() bool {
		return d.SendCallCount() == 3
	}, time.Second, 5*time.Millisecond)
	disabled, ok := sentMessages(t, d)[2].Notification.(*conversationinfo.PartialNotification)
	require.True(t, ok)
	require.Len(t, disabled.EventList, 1)
	require.Equal(t, conversationinfo.EventTrackDisabled, disabled.EventList[0].Event)
	require.Equal(t, localSID, disabled.EventList[0].ParticipantSID)
	require.Equal(t, "TR_mic", disabled.EventList[0].Tracks[0].ID)

	require.ErrorIs(t, local.SetTrackEnabled("TR_unknown", false), signaling.ErrTrackNotFound)

	// disconnect closes the transport
	require.True(t, r.Disconnect(nil))
	require.Equal(t, 1, pc.CloseCallCount())
	require.True(t, d.IsEnded())
	require.True(t, r.PeerConnectionManager().IsClosed())
	require.Equal(t, signaling.ParticipantStateDisconnected, p.State())
}

func TestRoomV2DialogEnded(t *testing.T) {
	factory := &testutils.PeerConnectionFactory{}
	d := testutils.NewDialog("DG_1", roomSID, localSID)
	r, err := signaling.NewRoomV2(signaling.RoomV2Params{
		PeerConnectionFactory: factory.New,
		IDGenerator:           &utils.SequentialIDGenerator{},
		DescriptionDebounce:   time.Millisecond,
	}, d)
	require.NoError(t, err)

	var reason error
	r.On(signaling.EventStateChanged, func(args ...interface{}) {
		reason, _ = args[1].(error)
	})

	d.Terminate(nil)
	require.False(t, r.IsConnected())
	require.ErrorIs(t, reason, signaling.ErrDialogEnded)
	require.True(t, r.PeerConnectionManager().IsClosed())
}
