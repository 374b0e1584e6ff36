package conversationinfo_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
)

func TestParseNotification(t *testing.T) {
	t.Run("partial notification filters malformed entries", func(t *testing.T) {
		payload := `{
			"protocol_version": "v1",
			"event_list": [
				{"event": "track_added", "participant_sid": "PA1", "tracks": [{"id": "T1", "kind": "audio"}]},
				{"event": "track_added", "participant_sid": "PA1", "tracks": "nope"},
				{"event": "track_exploded", "participant_sid": "PA1", "tracks": []},
				{"event": "participant_connected", "tracks": []},
				42
			]
		}`

		n, err := conversationinfo.ParseNotification(payload)
		require.NoError(t, err)
		require.False(t, n.IsFull())

		partial := n.(*conversationinfo.PartialNotification)
		require.Len(t, partial.EventList, 1)
		require.Equal(t, conversationinfo.EventTrackAdded, partial.EventList[0].Event)
		require.Equal(t, "PA1", partial.EventList[0].ParticipantSID)
		require.Equal(t, []conversationinfo.Track{{ID: "T1", Kind: conversationinfo.TrackKindAudio}}, partial.EventList[0].Tracks)
	})

	t.Run("tracks without id are dropped", func(t *testing.T) {
		payload := []byte(`{
			"protocol_version": "v1",
			"event_list": [
				{"event": "track_added", "participant_sid": "PA1", "tracks": [{"kind": "video"}, {"id": "T2", "kind": "video"}, {"id": "T3", "kind": "smell"}]}
			]
		}`)

		n, err := conversationinfo.ParseNotification(payload)
		require.NoError(t, err)

		partial := n.(*conversationinfo.PartialNotification)
		require.Len(t, partial.EventList, 1)
		require.Equal(t, []conversationinfo.Track{{ID: "T2", Kind: conversationinfo.TrackKindVideo}}, partial.EventList[0].Tracks)
	})

	t.Run("full notification", func(t *testing.T) {
		payload := map[string]interface{}{
			"protocol_version": "v1",
			"conversation_state": map[string]interface{}{
				"instance_version": 3,
				"sid":              "CV1",
				"participants": []interface{}{
					map[string]interface{}{
						"participant_sid": "PA1",
						"address":         "alice",
						"tracks": []interface{}{
							map[string]interface{}{"id": "T1", "kind": "audio"},
							map[string]interface{}{"id": "T2", "kind": "video"},
						},
					},
					map[string]interface{}{"participant_sid": "PA2", "address": "bob"},
					map[string]interface{}{"address": "nobody"},
				},
			},
		}

		n, err := conversationinfo.ParseNotification(payload)
		require.NoError(t, err)
		require.True(t, n.IsFull())

		full := n.(*conversationinfo.FullNotification)
		require.EqualValues(t, 3, full.ConversationState.InstanceVersion)
		require.Equal(t, "CV1", full.ConversationState.SID)
		require.Len(t, full.ConversationState.Participants, 2)
		require.Len(t, full.ConversationState.Participants[0].Tracks, 2)
		require.Empty(t, full.ConversationState.Participants[1].Tracks)
	})

	t.Run("top level failures", func(t *testing.T) {
		cases := []struct {
			name    string
			payload interface{}
			err     error
		}{
			{"not json", "{", conversationinfo.ErrInvalidPayload},
			{"array", "[]", conversationinfo.ErrInvalidPayload},
			{"unsupported type", 12, conversationinfo.ErrInvalidPayload},
			{"missing version", `{"event_list": []}`, conversationinfo.ErrMissingProtocolVersion},
			{"wrong version", `{"protocol_version": "v2"}`, conversationinfo.ErrUnsupportedProtocolVersion},
			{"numeric version", `{"protocol_version": 1}`, conversationinfo.ErrUnsupportedProtocolVersion},
			{"bad state", `{"protocol_version": "v1", "conversation_state": []}`, conversationinfo.ErrInvalidConversationState},
			{"bad instance version", `{"protocol_version": "v1", "conversation_state": {"sid": "CV1", "instance_version": "1"}}`, conversationinfo.ErrInvalidConversationState},
			{"bad event list", `{"protocol_version": "v1", "event_list": {}}`, conversationinfo.ErrInvalidEventList},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := conversationinfo.ParseNotification(c.payload)
				require.ErrorIs(t, err, c.err)
			})
		}
	})

	t.Run("missing event list is an empty partial", func(t *testing.T) {
		n, err := conversationinfo.ParseNotification(json.RawMessage(`{"protocol_version": "v1"}`))
		require.NoError(t, err)
		require.Empty(t, n.(*conversationinfo.PartialNotification).EventList)
	})
}

func TestParsePeerConnections(t *testing.T) {
	payload := `{
		"protocol_version": "v1",
		"peer_connections": [
			{"id": "PC1", "description": {"type": "create-offer"}},
			{"id": "PC2", "description": {"type": "offer", "sdp": "v=0", "revision": 2}},
			{"id": "PC3", "description": {"type": "answer"}},
			{"id": "PC4", "description": {"type": "rollback"}},
			{"description": {"type": "close"}},
			{"id": "PC5", "description": {"type": "close"}}
		]
	}`

	pcs, err := conversationinfo.ParsePeerConnections(payload)
	require.NoError(t, err)
	require.Equal(t, []conversationinfo.PeerConnection{
		{ID: "PC1", Description: conversationinfo.Description{Type: conversationinfo.DescriptionCreateOffer}},
		{ID: "PC2", Description: conversationinfo.Description{Type: conversationinfo.DescriptionOffer, SDP: "v=0", Revision: 2}},
		{ID: "PC5", Description: conversationinfo.Description{Type: conversationinfo.DescriptionClose}},
	}, pcs.PeerConnections)

	_, err = conversationinfo.ParsePeerConnections(`{"protocol_version": "v1", "peer_connections": "x"}`)
	require.ErrorIs(t, err, conversationinfo.ErrInvalidPeerConnections)
}

func TestParseMessage(t *testing.T) {
	t.Run("instructions only", func(t *testing.T) {
		msg, err := conversationinfo.ParseMessage(`{"protocol_version": "v1", "peer_connections": [{"id": "PC1", "description": {"type": "close"}}]}`)
		require.NoError(t, err)
		require.Nil(t, msg.Notification)
		require.Len(t, msg.PeerConnections, 1)
	})

	t.Run("notification and instructions", func(t *testing.T) {
		msg, err := conversationinfo.ParseMessage(`{
			"protocol_version": "v1",
			"event_list": [{"event": "participant_connected", "participant_sid": "PA1", "tracks": []}],
			"peer_connections": [{"id": "PC1", "description": {"type": "create-offer"}}]
		}`)
		require.NoError(t, err)
		require.NotNil(t, msg.Notification)
		require.Len(t, msg.PeerConnections, 1)
	})

	t.Run("round trip", func(t *testing.T) {
		msg := &conversationinfo.Message{
			Notification: conversationinfo.TrackDisabled("PA1", conversationinfo.Track{ID: "T1", Kind: conversationinfo.TrackKindAudio}),
			PeerConnections: []conversationinfo.PeerConnection{
				{ID: "PC1", Description: conversationinfo.Description{Type: conversationinfo.DescriptionAnswer, SDP: "v=0", Revision: 1}},
			},
		}
		b, err := conversationinfo.Marshal(msg)
		require.NoError(t, err)

		parsed, err := conversationinfo.ParseMessage(b)
		require.NoError(t, err)
		require.Equal(t, msg.PeerConnections, parsed.PeerConnections)

		partial := parsed.Notification.(*conversationinfo.PartialNotification)
		require.Len(t, partial.EventList, 1)
		require.Equal(t, conversationinfo.EventTrackDisabled, partial.EventList[0].Event)
	})
}

func TestTrackEnabled(t *testing.T) {
	track := conversationinfo.Track{ID: "T1", Kind: conversationinfo.TrackKindVideo}
	n := conversationinfo.TrackEnabled("PA1", track)

	require.Equal(t, conversationinfo.ProtocolVersion, n.ProtocolVersion)
	require.Len(t, n.EventList, 1)
	event := n.EventList[0]
	require.Equal(t, conversationinfo.EventTrackEnabled, event.Event)
	require.Equal(t, "PA1", event.ParticipantSID)
	require.Equal(t, []conversationinfo.Track{track}, event.Tracks)
	require.NotZero(t, event.Time)

	b, err := conversationinfo.Marshal(n)
	require.NoError(t, err)

	parsed, err := conversationinfo.ParseNotification(b)
	require.NoError(t, err)
	require.Equal(t, n, parsed)
}
