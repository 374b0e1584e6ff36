package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/pion/webrtc/v3"

	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/rtc/types/typesfakes"
)

// PeerConnection is a FakePeerConnection producing numbered placeholder descriptions.
type PeerConnection struct {
	*typesfakes.FakePeerConnection

	params types.PeerConnectionParams

	lock         sync.Mutex
	offers       int
	answers      int
	remoteTracks []types.RemoteTrack
}

func NewPeerConnection(params types.PeerConnectionParams) *PeerConnection {
	pc := &PeerConnection{
		FakePeerConnection: &typesfakes.FakePeerConnection{},
		params:             params,
	}
	pc.IDReturns(params.ID)
	pc.CreateOfferStub = func(context.Context) (webrtc.SessionDescription, error) {
		pc.lock.Lock()
		defer pc.lock.Unlock()

		pc.offers++
		return webrtc.SessionDescription{
			Type: webrtc.SDPTypeOffer,
			SDP:  fmt.Sprintf("offer-%s-%d", params.ID, pc.offers),
		}, nil
	}
	pc.CreateAnswerStub = func(context.Context) (webrtc.SessionDescription, error) {
		pc.lock.Lock()
		defer pc.lock.Unlock()

		pc.answers++
		return webrtc.SessionDescription{
			Type: webrtc.SDPTypeAnswer,
			SDP:  fmt.Sprintf("answer-%s-%d", params.ID, pc.answers),
		}, nil
	}
	pc.RemoteTracksStub = func() []types.RemoteTrack {
		pc.lock.Lock()
		defer pc.lock.Unlock()

		return append([]types.RemoteTrack(nil), pc.remoteTracks...)
	}
	return pc
}

// SetRemoteTracks replaces the remote tracks and fires the change callback.
func (pc *PeerConnection) SetRemoteTracks(tracks ...types.RemoteTrack) {
	pc.lock.Lock()
	pc.remoteTracks = tracks
	for i := range pc.remoteTracks {
		pc.remoteTracks[i].PeerConnectionID = pc.params.ID
	}
	pc.lock.Unlock()

	if n := pc.OnRemoteTracksChangedCallCount(); n > 0 {
		pc.OnRemoteTracksChangedArgsForCall(n - 1)()
	}
}

// Configuration is the configuration last applied.
func (pc *PeerConnection) Configuration() webrtc.Configuration {
	if n := pc.SetConfigurationCallCount(); n > 0 {
		return pc.SetConfigurationArgsForCall(n - 1)
	}
	return pc.params.Configuration
}

// LocalStreams are the streams last set.
func (pc *PeerConnection) LocalStreams() []types.MediaStream {
	if n := pc.SetLocalStreamsCallCount(); n > 0 {
		return pc.SetLocalStreamsArgsForCall(n - 1)
	}
	return nil
}

// RemoteDescriptions returns the remote descriptions applied so far, in order.
func (pc *PeerConnection) RemoteDescriptions() []webrtc.SessionDescription {
	descriptions := make([]webrtc.SessionDescription, 0, pc.SetRemoteDescriptionCallCount())
	for i := 0; i < pc.SetRemoteDescriptionCallCount(); i++ {
		_, sd := pc.SetRemoteDescriptionArgsForCall(i)
		descriptions = append(descriptions, sd)
	}
	return descriptions
}

// PeerConnectionFactory creates PeerConnections and keeps them by id.
type PeerConnectionFactory struct {
	lock    sync.Mutex
	created []*PeerConnection
}

func (f *PeerConnectionFactory) New(params types.PeerConnectionParams) (types.PeerConnection, error) {
	pc := NewPeerConnection(params)

	f.lock.Lock()
	f.created = append(f.created, pc)
	f.lock.Unlock()
	return pc, nil
}

func (f *PeerConnectionFactory) Get(id string) *PeerConnection {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, pc := range f.created {
		if pc.params.ID == id {
			return pc
		}
	}
	return nil
}

func (f *PeerConnectionFactory) Created() []*PeerConnection {
	f.lock.Lock()
	defer f.lock.Unlock()

	return append([]*PeerConnection(nil), f.created...)
}
