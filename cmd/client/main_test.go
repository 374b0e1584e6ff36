package main

import (
	"testing"
	"time"

	"github.com/pion/webrtc/v3"
	"github.com/stretchr/testify/require"

	"github.com/livekit/conversation-signaling/pkg/config"
	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
)

func TestRoomV2Params(t *testing.T) {
	conf, err := config.NewConfig(`signaling:
  identity: alice
  disconnected_cache_size: 16
rtc:
  initial_offers: 2
  ice_transport_policy: relay`, true, nil, nil)
	require.NoError(t, err)

	params := roomV2Params(conf)
	require.Equal(t, "alice", params.Identity)
	require.Equal(t, 16, params.DisconnectedCacheSize)
	require.Equal(t, 2, params.InitialOffers)
	require.Equal(t, 3*time.Second, params.IceGatheringTimeout)
	require.Equal(t, webrtc.ICETransportPolicyRelay, params.Configuration.ICETransportPolicy)
	require.NotNil(t, params.PeerConnectionFactory)
}

func TestFormatTracks(t *testing.T) {
	require.Equal(t, "", formatTracks(nil))
	require.Equal(t, "TR_1 (audio), TR_2 (video)", formatTracks([]conversationinfo.Track{
		{ID: "TR_1", Kind: conversationinfo.TrackKindAudio},
		{ID: "TR_2", Kind: conversationinfo.TrackKindVideo},
	}))
}
