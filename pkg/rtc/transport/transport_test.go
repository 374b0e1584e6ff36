package transport

import (
	"context"
	"testing"
	"time"

	"github.com/pion/webrtc/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
)

func newTestTransport(t *testing.T, id string) *PCTransport {
	pc, err := NewPCTransport(TransportParams{
		PeerConnectionParams: types.PeerConnectionParams{
			ID:                  id,
			IceGatheringTimeout: time.Second,
		},
		PionLevel: zapcore.ErrorLevel,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pc.Close()
	})
	return pc
}

func TestOfferAnswer(t *testing.T) {
	ctx := context.Background()
	offerer := newTestTransport(t, "PC_offerer")
	answerer := newTestTransport(t, "PC_answerer")

	audio, err := webrtc.NewTrackLocalStaticSample(webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus}, "audio-1", "stream-1")
	require.NoError(t, err)
	stream := NewLocalMediaStream("stream-1", NewLocalTrack("audio-1", conversationinfo.TrackKindAudio, audio))
	require.NoError(t, offerer.SetLocalStreams([]types.MediaStream{stream}))

	changed := make(chan struct{}, 1)
	answerer.OnRemoteTracksChanged(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	offer, err := offerer.CreateOffer(ctx)
	require.NoError(t, err)
	require.Equal(t, webrtc.SDPTypeOffer, offer.Type)
	require.Equal(t, NegotiationStateRemote, offerer.NegotiationState())

	require.NoError(t, answerer.SetRemoteDescription(ctx, offer))
	require.Equal(t, NegotiationStateLocal, answerer.NegotiationState())

	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("remote tracks did not change")
	}
	require.Equal(t, []types.RemoteTrack{
		{ID: "audio-1", Kind: conversationinfo.TrackKindAudio, StreamID: "stream-1", PeerConnectionID: "PC_answerer"},
	}, answerer.RemoteTracks())

	answer, err := answerer.CreateAnswer(ctx)
	require.NoError(t, err)
	require.Equal(t, webrtc.SDPTypeAnswer, answer.Type)
	require.NoError(t, offerer.SetRemoteDescription(ctx, answer))
	require.Equal(t, NegotiationStateNone, offerer.NegotiationState())
	require.Equal(t, webrtc.SignalingStateStable, offerer.SignalingState())

	// removing the stream drops the track from the next offer
	require.NoError(t, offerer.SetLocalStreams(nil))
	offer, err = offerer.CreateOffer(ctx)
	require.NoError(t, err)
	require.NoError(t, answerer.SetRemoteDescription(ctx, offer))
	require.Empty(t, answerer.RemoteTracks())
}

func TestUnexpectedAnswer(t *testing.T) {
	ctx := context.Background()
	offerer := newTestTransport(t, "PC_offerer")
	pc := newTestTransport(t, "PC_other")

	offer, err := offerer.CreateOffer(ctx)
	require.NoError(t, err)

	err = pc.SetRemoteDescription(ctx, webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: offer.SDP})
	require.ErrorIs(t, err, ErrUnexpectedAnswer)
}

func TestClosed(t *testing.T) {
	pc := newTestTransport(t, "PC_closed")
	require.NoError(t, pc.Close())
	require.NoError(t, pc.Close())

	_, err := pc.CreateOffer(context.Background())
	require.ErrorIs(t, err, ErrTransportClosed)
}

func TestTracksFromSDP(t *testing.T) {
	raw := "v=0\r\n" +
		"o=- 1 1 IN IP4 0.0.0.0\r\n" +
		"s=-\r\n" +
		"t=0 0\r\n" +
		"m=audio 9 UDP/TLS/RTP/SAVPF 111\r\n" +
		"c=IN IP4 0.0.0.0\r\n" +
		"a=sendrecv\r\n" +
		"a=msid:S1 A1\r\n" +
		"m=video 9 UDP/TLS/RTP/SAVPF 96\r\n" +
		"c=IN IP4 0.0.0.0\r\n" +
		"a=recvonly\r\n" +
		"a=msid:S1 V1\r\n" +
		"m=video 9 UDP/TLS/RTP/SAVPF 96\r\n" +
		"c=IN IP4 0.0.0.0\r\n" +
		"a=sendonly\r\n" +
		"a=msid:S2 V2\r\n"

	tracks, hasData, err := tracksFromSDP("PC1", raw)
	require.NoError(t, err)
	require.False(t, hasData)
	require.Equal(t, map[string]types.RemoteTrack{
		"A1": {ID: "A1", Kind: conversationinfo.TrackKindAudio, StreamID: "S1", PeerConnectionID: "PC1"},
		"V2": {ID: "V2", Kind: conversationinfo.TrackKindVideo, StreamID: "S2", PeerConnectionID: "PC1"},
	}, tracks)

	tracks, hasData, err = tracksFromSDP("PC1", sdpHeader+applicationSection)
	require.NoError(t, err)
	require.True(t, hasData)
	require.Empty(t, tracks)

	// a rejected sctp m-line closes every data channel
	_, hasData, err = tracksFromSDP("PC1", sdpHeader+"m=application 0 UDP/DTLS/SCTP webrtc-datachannel\r\n")
	require.NoError(t, err)
	require.False(t, hasData)
}

const (
	sdpHeader = "v=0\r\n" +
		"o=- 1 1 IN IP4 0.0.0.0\r\n" +
		"s=-\r\n" +
		"t=0 0\r\n"
	applicationSection = "m=application 9 UDP/DTLS/SCTP webrtc-datachannel\r\n" +
		"c=IN IP4 0.0.0.0\r\n" +
		"a=sctp-port:5000\r\n"
	audioSection = "m=audio 9 UDP/TLS/RTP/SAVPF 111\r\n" +
		"c=IN IP4 0.0.0.0\r\n" +
		"a=sendrecv\r\n" +
		"a=msid:S1 A1\r\n"
)

func TestRemoteDataTracks(t *testing.T) {
	pc := newTestTransport(t, "PC_data")
	other := newTestTransport(t, "PC_other")
	dc, err := other.pc.CreateDataChannel("TR_chat", nil)
	require.NoError(t, err)

	changed := 0
	pc.OnRemoteTracksChanged(func() {
		changed++
	})

	pc.onDataChannel(dc)
	require.Equal(t, 1, changed)
	chat := types.RemoteTrack{ID: "TR_chat", Kind: conversationinfo.TrackKindData, PeerConnectionID: "PC_data"}
	require.Equal(t, []types.RemoteTrack{chat}, pc.RemoteTracks())

	// renegotiation keeping the sctp m-line keeps the channel
	require.True(t, pc.updateSDPTracks(webrtc.SessionDescription{SDP: sdpHeader + audioSection + applicationSection}))
	require.Equal(t, []types.RemoteTrack{
		{ID: "A1", Kind: conversationinfo.TrackKindAudio, StreamID: "S1", PeerConnectionID: "PC_data"},
		chat,
	}, pc.RemoteTracks())

	// dropping it removes the channel with it
	require.True(t, pc.updateSDPTracks(webrtc.SessionDescription{SDP: sdpHeader + audioSection}))
	require.Equal(t, []types.RemoteTrack{
		{ID: "A1", Kind: conversationinfo.TrackKindAudio, StreamID: "S1", PeerConnectionID: "PC_data"},
	}, pc.RemoteTracks())
}
