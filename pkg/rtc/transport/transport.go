// Copyright 2024 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transport

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/pion/interceptor"
	"github.com/pion/sdp/v3"
	"github.com/pion/webrtc/v3"
	"go.uber.org/zap/zapcore"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	serverlogger "github.com/livekit/conversation-signaling/pkg/logger"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
)

const (
	defaultIceGatheringTimeout = 3 * time.Second
)

var (
	ErrTransportClosed  = errors.New("peer connection closed")
	ErrUnexpectedAnswer = errors.New("answer received without a pending offer")
)

type TransportParams struct {
	types.PeerConnectionParams
	PionLevel zapcore.Level
}

// PCTransport is a wrapper around a pion PeerConnection implementing types.PeerConnection
type PCTransport struct {
	params TransportParams
	pc     *webrtc.PeerConnection

	lock                  sync.RWMutex
	negotiationState      NegotiationState
	senders               map[string]*webrtc.RTPSender
	dataChannels          map[string]*webrtc.DataChannel
	sdpTracks             map[string]types.RemoteTrack
	receivedTracks        map[string]types.RemoteTrack
	onRemoteTracksChanged func()

	closed core.Fuse
}

// NewFactory returns a types.PeerConnectionFactory creating pion backed transports.
func NewFactory(pionLevel zapcore.Level) types.PeerConnectionFactory {
	return func(params types.PeerConnectionParams) (types.PeerConnection, error) {
		return NewPCTransport(TransportParams{
			PeerConnectionParams: params,
			PionLevel:            pionLevel,
		})
	}
}

func newPeerConnection(params TransportParams) (*webrtc.PeerConnection, error) {
	me := &webrtc.MediaEngine{}
	if err := me.RegisterDefaultCodecs(); err != nil {
		return nil, err
	}

	ir := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(me, ir); err != nil {
		return nil, err
	}

	se := webrtc.SettingEngine{}
	if lf := serverlogger.NewLoggerFactory(params.Logger, params.PionLevel); lf != nil {
		se.LoggerFactory = lf
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(me),
		webrtc.WithSettingEngine(se),
		webrtc.WithInterceptorRegistry(ir),
	)
	return api.NewPeerConnection(params.Configuration)
}

func NewPCTransport(params TransportParams) (*PCTransport, error) {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	params.Logger = params.Logger.WithValues("pcID", params.ID)
	if params.IceGatheringTimeout <= 0 {
		params.IceGatheringTimeout = defaultIceGatheringTimeout
	}

	pc, err := newPeerConnection(params)
	if err != nil {
		return nil, err
	}

	t := &PCTransport{
		params:         params,
		pc:             pc,
		senders:        make(map[string]*webrtc.RTPSender),
		dataChannels:   make(map[string]*webrtc.DataChannel),
		sdpTracks:      make(map[string]types.RemoteTrack),
		receivedTracks: make(map[string]types.RemoteTrack),
	}
	pc.OnTrack(t.onTrack)
	pc.OnDataChannel(t.onDataChannel)
	pc.OnICEConnectionStateChange(func(state webrtc.ICEConnectionState) {
		t.params.Logger.Debugw("ice connection state change", "state", state.String())
	})
	return t, nil
}

func (t *PCTransport) ID() string {
	return t.params.ID
}

func (t *PCTransport) NegotiationState() NegotiationState {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.negotiationState
}

func (t *PCTransport) setNegotiationState(state NegotiationState) {
	t.lock.Lock()
	t.negotiationState = state
	t.lock.Unlock()
}

func (t *PCTransport) CreateOffer(ctx context.Context) (webrtc.SessionDescription, error) {
	if t.closed.IsBroken() {
		return webrtc.SessionDescription{}, ErrTransportClosed
	}

	offer, err := t.pc.CreateOffer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}
	if err := t.setLocalDescription(ctx, offer); err != nil {
		return webrtc.SessionDescription{}, err
	}
	t.setNegotiationState(NegotiationStateRemote)
	return *t.pc.LocalDescription(), nil
}

func (t *PCTransport) CreateAnswer(ctx context.Context) (webrtc.SessionDescription, error) {
	if t.closed.IsBroken() {
		return webrtc.SessionDescription{}, ErrTransportClosed
	}

	answer, err := t.pc.CreateAnswer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}
	if err := t.setLocalDescription(ctx, answer); err != nil {
		return webrtc.SessionDescription{}, err
	}
	t.setNegotiationState(NegotiationStateNone)
	return *t.pc.LocalDescription(), nil
}

// setLocalDescription applies sd and waits for ICE gathering. Once the timeout expires the
// candidates gathered so far are final.
func (t *PCTransport) setLocalDescription(ctx context.Context, sd webrtc.SessionDescription) error {
	gatherComplete := webrtc.GatheringCompletePromise(t.pc)
	if err := t.pc.SetLocalDescription(sd); err != nil {
		return err
	}

	timer := time.NewTimer(t.params.IceGatheringTimeout)
	defer timer.Stop()

	select {
	case <-gatherComplete:
	case <-timer.C:
		t.params.Logger.Infow("ice gathering timed out, using gathered candidates", "timeout", t.params.IceGatheringTimeout)
	case <-ctx.Done():
		return ctx.Err()
	case <-t.closed.Watch():
		return ErrTransportClosed
	}
	return nil
}

func (t *PCTransport) SetRemoteDescription(ctx context.Context, sd webrtc.SessionDescription) error {
	if t.closed.IsBroken() {
		return ErrTransportClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if sd.Type == webrtc.SDPTypeAnswer && t.NegotiationState() != NegotiationStateRemote {
		return ErrUnexpectedAnswer
	}

	if err := t.pc.SetRemoteDescription(sd); err != nil {
		return err
	}

	switch sd.Type {
	case webrtc.SDPTypeAnswer:
		t.setNegotiationState(NegotiationStateNone)
	case webrtc.SDPTypeOffer:
		t.setNegotiationState(NegotiationStateLocal)
	}

	if t.updateSDPTracks(sd) {
		t.notifyRemoteTracksChanged()
	}
	return nil
}

func (t *PCTransport) LocalDescription() *webrtc.SessionDescription {
	return t.pc.LocalDescription()
}

func (t *PCTransport) SignalingState() webrtc.SignalingState {
	return t.pc.SignalingState()
}

func (t *PCTransport) SetConfiguration(conf webrtc.Configuration) error {
	return t.pc.SetConfiguration(conf)
}

// SetLocalStreams makes the tracks of streams the only local tracks sent on this connection.
// The change takes effect with the next offer.
func (t *PCTransport) SetLocalStreams(streams []types.MediaStream) error {
	if t.closed.IsBroken() {
		return ErrTransportClosed
	}

	desired := make(map[string]types.LocalTrack)
	for _, stream := range streams {
		for _, track := range stream.Tracks() {
			desired[track.ID()] = track
		}
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	for id, sender := range t.senders {
		if _, ok := desired[id]; ok {
			continue
		}
		if err := t.pc.RemoveTrack(sender); err != nil {
			t.params.Logger.Warnw("could not remove track", err, "trackID", id)
		}
		delete(t.senders, id)
	}
	for id, dc := range t.dataChannels {
		if _, ok := desired[id]; ok {
			continue
		}
		if err := dc.Close(); err != nil {
			t.params.Logger.Warnw("could not close data channel", err, "trackID", id)
		}
		delete(t.dataChannels, id)
	}

	for id, track := range desired {
		if track.Kind() == conversationinfo.TrackKindData {
			if _, ok := t.dataChannels[id]; ok {
				continue
			}
			dc, err := t.pc.CreateDataChannel(id, nil)
			if err != nil {
				return err
			}
			t.dataChannels[id] = dc
			continue
		}

		if _, ok := t.senders[id]; ok || track.TrackLocal() == nil {
			continue
		}
		sender, err := t.pc.AddTrack(track.TrackLocal())
		if err != nil {
			return err
		}
		t.senders[id] = sender
	}
	return nil
}

// RemoteTracks returns the tracks announced by the remote description together with the tracks
// pion received media for, ordered by id.
func (t *PCTransport) RemoteTracks() []types.RemoteTrack {
	t.lock.RLock()
	defer t.lock.RUnlock()

	merged := make(map[string]types.RemoteTrack, len(t.sdpTracks)+len(t.receivedTracks))
	for id, track := range t.receivedTracks {
		merged[id] = track
	}
	for id, track := range t.sdpTracks {
		merged[id] = track
	}

	tracks := make([]types.RemoteTrack, 0, len(merged))
	for _, track := range merged {
		tracks = append(tracks, track)
	}
	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].ID < tracks[j].ID
	})
	return tracks
}

func (t *PCTransport) OnRemoteTracksChanged(f func()) {
	t.lock.Lock()
	t.onRemoteTracksChanged = f
	t.lock.Unlock()
}

func (t *PCTransport) Close() error {
	if t.closed.IsBroken() {
		return nil
	}
	t.closed.Break()
	return t.pc.Close()
}

func (t *PCTransport) onTrack(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
	kind, ok := kindFromMedia(track.Kind().String())
	if !ok {
		return
	}

	t.lock.Lock()
	t.receivedTracks[track.ID()] = types.RemoteTrack{
		ID:               track.ID(),
		Kind:             kind,
		StreamID:         track.StreamID(),
		PeerConnectionID: t.params.ID,
	}
	t.lock.Unlock()

	t.params.Logger.Debugw("remote track received", "trackID", track.ID(), "kind", kind)
	t.notifyRemoteTracksChanged()
}

// onDataChannel exposes a data channel opened by the remote side as a data track named by
// the channel label.
func (t *PCTransport) onDataChannel(dc *webrtc.DataChannel) {
	id := dc.Label()
	track := types.RemoteTrack{
		ID:               id,
		Kind:             conversationinfo.TrackKindData,
		PeerConnectionID: t.params.ID,
	}

	t.lock.Lock()
	t.receivedTracks[id] = track
	t.lock.Unlock()

	dc.OnClose(func() {
		t.lock.Lock()
		current, ok := t.receivedTracks[id]
		if ok && current == track {
			delete(t.receivedTracks, id)
		}
		t.lock.Unlock()

		if ok {
			t.params.Logger.Debugw("remote data track closed", "trackID", id)
			t.notifyRemoteTracksChanged()
		}
	})

	t.params.Logger.Debugw("remote data track received", "trackID", id)
	t.notifyRemoteTracksChanged()
}

// updateSDPTracks replaces the remote tracks with the ones sent by the remote side in sd.
// Returns true when the set changed.
func (t *PCTransport) updateSDPTracks(sd webrtc.SessionDescription) bool {
	tracks, hasData, err := tracksFromSDP(t.params.ID, sd.SDP)
	if err != nil {
		t.params.Logger.Warnw("could not parse remote description", err)
		return false
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	changed := len(tracks) != len(t.sdpTracks)
	for id := range tracks {
		if _, ok := t.sdpTracks[id]; !ok {
			changed = true
		}
	}
	for id, track := range t.receivedTracks {
		if _, ok := tracks[id]; ok {
			continue
		}
		// data channels live as long as the sctp m-line
		if track.Kind == conversationinfo.TrackKindData && hasData {
			continue
		}
		delete(t.receivedTracks, id)
		changed = true
	}
	t.sdpTracks = tracks
	return changed
}

func (t *PCTransport) notifyRemoteTracksChanged() {
	t.lock.RLock()
	onRemoteTracksChanged := t.onRemoteTracksChanged
	t.lock.RUnlock()

	if onRemoteTracksChanged != nil {
		onRemoteTracksChanged()
	}
}

// ---------------------------------------------

// tracksFromSDP returns the media tracks the remote side sends, and whether sd carries an
// sctp m-line. Data tracks are not listed in the description, they arrive as data channels.
func tracksFromSDP(pcID string, raw string) (map[string]types.RemoteTrack, bool, error) {
	parsed := &sdp.SessionDescription{}
	if err := parsed.Unmarshal([]byte(raw)); err != nil {
		return nil, false, err
	}

	tracks := make(map[string]types.RemoteTrack)
	hasData := false
	for _, md := range parsed.MediaDescriptions {
		kind, ok := kindFromMedia(md.MediaName.Media)
		if !ok {
			continue
		}
		if kind == conversationinfo.TrackKindData {
			hasData = hasData || md.MediaName.Port.Value != 0
			continue
		}
		if _, recvOnly := md.Attribute(sdp.AttrKeyRecvOnly); recvOnly {
			continue
		}
		if _, inactive := md.Attribute(sdp.AttrKeyInactive); inactive {
			continue
		}

		msid, ok := md.Attribute(sdp.AttrKeyMsid)
		if !ok {
			continue
		}
		parts := strings.Fields(msid)
		if len(parts) != 2 {
			continue
		}
		tracks[parts[1]] = types.RemoteTrack{
			ID:               parts[1],
			Kind:             kind,
			StreamID:         parts[0],
			PeerConnectionID: pcID,
		}
	}
	return tracks, hasData, nil
}

func kindFromMedia(media string) (types.TrackKind, bool) {
	switch media {
	case "audio":
		return conversationinfo.TrackKindAudio, true
	case "video":
		return conversationinfo.TrackKindVideo, true
	case "application":
		return conversationinfo.TrackKindData, true
	}
	return "", false
}
