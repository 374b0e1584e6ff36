package pcmanager_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pion/webrtc/v3"
	"github.com/stretchr/testify/require"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	"github.com/livekit/conversation-signaling/pkg/rtc/pcmanager"
	"github.com/livekit/conversation-signaling/pkg/rtc/transport"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/testutils"
	"github.com/livekit/conversation-signaling/pkg/utils"
)

func newTestManager(t *testing.T) (*pcmanager.PeerConnectionManager, *testutils.PeerConnectionFactory) {
	factory := &testutils.PeerConnectionFactory{}
	m := pcmanager.NewPeerConnectionManager(pcmanager.Params{
		Factory:             factory.New,
		IDGenerator:         &utils.SequentialIDGenerator{},
		InitialOffers:       2,
		DescriptionDebounce: time.Millisecond,
	})
	t.Cleanup(m.Close)
	return m, factory
}

func instructions(pcs ...conversationinfo.PeerConnection) *conversationinfo.PeerConnections {
	return conversationinfo.NewPeerConnections(pcs...)
}

func instruction(id string, typ conversationinfo.DescriptionType, sdp string, revision int64) conversationinfo.PeerConnection {
	return conversationinfo.PeerConnection{
		ID: id,
		Description: conversationinfo.Description{
			Type:     typ,
			SDP:      sdp,
			Revision: revision,
		},
	}
}

func TestSetConfiguration(t *testing.T) {
	t.Run("offerer creates initial offers", func(t *testing.T) {
		m, factory := newTestManager(t)
		ctx := context.Background()

		require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{Offerer: true}))
		require.Len(t, factory.Created(), 2)
		require.ElementsMatch(t, []string{"PC_1", "PC_2"}, m.PeerConnectionIDs())

		info := m.GetConversationInfo()
		require.NotNil(t, info)
		require.Len(t, info.PeerConnections, 2)
		for _, pc := range info.PeerConnections {
			require.Equal(t, conversationinfo.DescriptionOffer, pc.Description.Type)
			require.EqualValues(t, 1, pc.Description.Revision)
		}

		// nothing changed since
		require.Nil(t, m.GetConversationInfo())
	})

	t.Run("instructions are queued until configured", func(t *testing.T) {
		m, factory := newTestManager(t)
		ctx := context.Background()

		require.NoError(t, m.Update(ctx, instructions(instruction("PC_remote", conversationinfo.DescriptionOffer, "v=0", 1))))
		require.Empty(t, factory.Created())
		require.Nil(t, m.GetConversationInfo())

		require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{}))
		pc := factory.Get("PC_remote")
		require.NotNil(t, pc)
		require.Equal(t, 1, pc.CreateAnswerCallCount())

		info := m.GetConversationInfo()
		require.Equal(t, []conversationinfo.PeerConnection{
			instruction("PC_remote", conversationinfo.DescriptionAnswer, "answer-PC_remote-1", 1),
		}, info.PeerConnections)
	})

	t.Run("later calls update every peer connection", func(t *testing.T) {
		m, factory := newTestManager(t)
		ctx := context.Background()

		require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{Offerer: true}))
		conf := webrtc.Configuration{ICETransportPolicy: webrtc.ICETransportPolicyRelay}
		require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{Configuration: conf}))

		for _, pc := range factory.Created() {
			require.Equal(t, webrtc.ICETransportPolicyRelay, pc.Configuration().ICETransportPolicy)
		}
		// role is fixed by the first call
		require.Len(t, factory.Created(), 2)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("unknown id errors for answer and close", func(t *testing.T) {
		m, _ := newTestManager(t)
		ctx := context.Background()
		require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{}))

		err := m.Update(ctx, instructions(instruction("PC_x", conversationinfo.DescriptionAnswer, "v=0", 1)))
		require.ErrorIs(t, err, pcmanager.ErrUnknownPeerConnection)

		err = m.Update(ctx, instructions(instruction("PC_y", conversationinfo.DescriptionClose, "", 0)))
		require.ErrorIs(t, err, pcmanager.ErrUnknownPeerConnection)
	})

	t.Run("create offer and answer", func(t *testing.T) {
		m, factory := newTestManager(t)
		ctx := context.Background()
		require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{}))

		require.NoError(t, m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionCreateOffer, "", 0))))
		info := m.GetConversationInfo()
		require.Equal(t, []conversationinfo.PeerConnection{
			instruction("PC_a", conversationinfo.DescriptionOffer, "offer-PC_a-1", 1),
		}, info.PeerConnections)

		require.NoError(t, m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionAnswer, "remote-answer", 1))))
		pc := factory.Get("PC_a")
		require.Len(t, pc.RemoteDescriptions(), 1)
		require.Equal(t, webrtc.SDPTypeAnswer, pc.RemoteDescriptions()[0].Type)

		// answers carry no new local description
		require.Nil(t, m.GetConversationInfo())
	})

	t.Run("stale answer is ignored", func(t *testing.T) {
		m, factory := newTestManager(t)
		ctx := context.Background()
		require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{}))

		require.NoError(t, m.Update(ctx, instructions(
			instruction("PC_a", conversationinfo.DescriptionCreateOffer, "", 0),
			instruction("PC_a", conversationinfo.DescriptionCreateOffer, "", 0),
		)))
		require.NoError(t, m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionAnswer, "old", 1))))
		require.Empty(t, factory.Get("PC_a").RemoteDescriptions())

		require.NoError(t, m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionAnswer, "new", 2))))
		require.Len(t, factory.Get("PC_a").RemoteDescriptions(), 1)
	})

	t.Run("failed offer keeps the revision", func(t *testing.T) {
		m, factory := newTestManager(t)
		ctx := context.Background()
		require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{}))

		require.NoError(t, m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionCreateOffer, "", 0))))
		m.GetConversationInfo()

		pc := factory.Get("PC_a")
		offer := pc.CreateOfferStub
		pc.CreateOfferCalls(func(context.Context) (webrtc.SessionDescription, error) {
			return webrtc.SessionDescription{}, errors.New("ice gathering failed")
		})
		err := m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionCreateOffer, "", 0)))
		require.Error(t, err)
		require.Nil(t, m.GetConversationInfo())

		pc.CreateOfferCalls(offer)
		require.NoError(t, m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionCreateOffer, "", 0))))
		info := m.GetConversationInfo()
		require.Equal(t, []conversationinfo.PeerConnection{
			instruction("PC_a", conversationinfo.DescriptionOffer, "offer-PC_a-2", 2),
		}, info.PeerConnections)

		require.NoError(t, m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionAnswer, "remote-answer", 2))))
		require.Len(t, pc.RemoteDescriptions(), 1)
		require.Equal(t, 3, pc.CreateOfferCallCount())
	})

	t.Run("closed ids are never resurrected", func(t *testing.T) {
		m, factory := newTestManager(t)
		ctx := context.Background()
		require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{}))

		require.NoError(t, m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionOffer, "v=0", 1))))
		require.NoError(t, m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionClose, "", 0))))
		require.Equal(t, 1, factory.Get("PC_a").CloseCallCount())
		require.Empty(t, m.PeerConnectionIDs())

		require.NoError(t, m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionOffer, "v=0", 2))))
		require.Len(t, factory.Created(), 1)
		require.Empty(t, m.PeerConnectionIDs())
	})

	t.Run("local close is described", func(t *testing.T) {
		m, _ := newTestManager(t)
		ctx := context.Background()
		require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{}))

		require.NoError(t, m.Update(ctx, instructions(instruction("PC_a", conversationinfo.DescriptionOffer, "v=0", 1))))
		m.GetConversationInfo()

		require.NoError(t, m.ClosePeerConnection("PC_a"))
		info := m.GetConversationInfo()
		require.Equal(t, []conversationinfo.PeerConnection{
			instruction("PC_a", conversationinfo.DescriptionClose, "", 0),
		}, info.PeerConnections)

		require.ErrorIs(t, m.ClosePeerConnection("PC_a"), pcmanager.ErrUnknownPeerConnection)
	})
}

func TestRemoteTrackDiff(t *testing.T) {
	m, factory := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{Offerer: true}))

	var added, removed []string
	m.On(pcmanager.EventTrackAdded, func(args ...interface{}) {
		added = append(added, args[0].(types.RemoteTrack).ID)
	})
	m.On(pcmanager.EventTrackRemoved, func(args ...interface{}) {
		removed = append(removed, args[0].(types.RemoteTrack).ID)
	})

	pc1 := factory.Get("PC_1")
	pc2 := factory.Get("PC_2")

	pc1.SetRemoteTracks(types.RemoteTrack{ID: "A", Kind: conversationinfo.TrackKindAudio})
	pc2.SetRemoteTracks(types.RemoteTrack{ID: "B", Kind: conversationinfo.TrackKindVideo})
	require.Equal(t, []string{"A", "B"}, added)
	require.Empty(t, removed)

	added, removed = nil, nil
	pc1.SetRemoteTracks(types.RemoteTrack{ID: "C", Kind: conversationinfo.TrackKindAudio})
	require.Equal(t, []string{"C"}, added)
	require.Equal(t, []string{"A"}, removed)

	// a track present on two connections is reported once
	added, removed = nil, nil
	pc2.SetRemoteTracks(
		types.RemoteTrack{ID: "B", Kind: conversationinfo.TrackKindVideo},
		types.RemoteTrack{ID: "C", Kind: conversationinfo.TrackKindAudio},
	)
	require.Empty(t, added)
	require.Empty(t, removed)

	remote := m.RemoteTracks()
	require.Len(t, remote, 2)
	require.Equal(t, "B", remote[0].ID)
	require.Equal(t, "C", remote[1].ID)

	m.Close()
	require.ElementsMatch(t, []string{"B", "C"}, removed)
}

func TestRemoteTrackEventsAreQueued(t *testing.T) {
	m, factory := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{Offerer: true}))

	factory.Get("PC_1").SetRemoteTracks(types.RemoteTrack{ID: "A", Kind: conversationinfo.TrackKindAudio})

	var added []string
	m.On(pcmanager.EventTrackAdded, func(args ...interface{}) {
		added = append(added, args[0].(types.RemoteTrack).ID)
	})
	require.True(t, m.Dequeue(pcmanager.EventTrackAdded))
	require.Equal(t, []string{"A"}, added)
}

func TestRenegotiate(t *testing.T) {
	m, factory := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, m.SetConfiguration(ctx, pcmanager.Configuration{Offerer: true}))
	m.GetConversationInfo()

	ready := make(chan struct{}, 1)
	m.OnDescriptionReady(func() {
		select {
		case ready <- struct{}{}:
		default:
		}
	})

	stream := transport.NewLocalMediaStream("stream-1")
	require.NoError(t, m.AddMediaStream(ctx, stream))

	select {
	case <-ready:
	case <-time.After(time.Second):
		t.Fatal("description ready not fired")
	}

	for _, pc := range factory.Created() {
		require.Len(t, pc.LocalStreams(), 1)
		require.Equal(t, 2, pc.CreateOfferCallCount())
	}

	info := m.GetConversationInfo()
	require.Len(t, info.PeerConnections, 2)
	for _, pc := range info.PeerConnections {
		require.EqualValues(t, 2, pc.Description.Revision)
	}

	// new peer connections get the current streams
	require.NoError(t, m.Update(ctx, instructions(instruction("PC_new", conversationinfo.DescriptionOffer, "v=0", 1))))
	require.Len(t, factory.Get("PC_new").LocalStreams(), 1)

	require.NoError(t, m.RemoveMediaStream(ctx, "stream-1"))
	require.Empty(t, factory.Get("PC_new").LocalStreams())
}

func TestClosedManager(t *testing.T) {
	m, _ := newTestManager(t)
	m.Close()
	require.True(t, m.IsClosed())

	err := m.Update(context.Background(), instructions(instruction("PC_a", conversationinfo.DescriptionOffer, "v=0", 1)))
	require.ErrorIs(t, err, pcmanager.ErrManagerClosed)
	require.ErrorIs(t, m.SetConfiguration(context.Background(), pcmanager.Configuration{}), pcmanager.ErrManagerClosed)
}
