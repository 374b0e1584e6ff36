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

package pcmanager

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/frostbyte73/core"
	"github.com/pion/webrtc/v3"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	"github.com/livekit/conversation-signaling/pkg/events"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/telemetry/prometheus"
	"github.com/livekit/conversation-signaling/pkg/utils"
)

const (
	EventTrackAdded   = "trackAdded"
	EventTrackRemoved = "trackRemoved"

	defaultInitialOffers       = 1
	defaultDescriptionDebounce = 20 * time.Millisecond
)

var (
	ErrUnknownPeerConnection = errors.New("unknown peer connection")
	ErrManagerClosed         = errors.New("peer connection manager closed")
)

type Params struct {
	Factory             types.PeerConnectionFactory
	IDGenerator         utils.IDGenerator
	InitialOffers       int
	IceGatheringTimeout time.Duration
	DescriptionDebounce time.Duration
	Logger              logger.Logger
}

// Configuration is applied to every peer connection. Offerer only matters on the first call.
type Configuration struct {
	webrtc.Configuration
	Offerer bool
}

type session struct {
	id string
	pc types.PeerConnection

	// serializes operations on pc
	opLock sync.Mutex
	// revision of the latest local offer
	revision int64
}

// PeerConnectionManager maintains a set of independent peer connections driven by
// conversation-info instructions, and the union of the tracks received on them.
type PeerConnectionManager struct {
	*events.QueueingEventEmitter

	params Params

	lock               sync.Mutex
	configured         bool
	offerer            bool
	configuration      webrtc.Configuration
	pending            []conversationinfo.PeerConnection
	sessions           *orderedmap.OrderedMap[string, *session]
	closedIDs          map[string]struct{}
	dirty              *orderedmap.OrderedMap[string, conversationinfo.Description]
	localStreams       []types.MediaStream
	onDescriptionReady func()
	debounced          func(func())

	reconcileLock sync.Mutex
	remoteTracks  map[string]types.RemoteTrack

	closed core.Fuse
}

func NewPeerConnectionManager(params Params) *PeerConnectionManager {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	if params.IDGenerator == nil {
		params.IDGenerator = utils.GuidGenerator
	}
	if params.InitialOffers <= 0 {
		params.InitialOffers = defaultInitialOffers
	}
	if params.DescriptionDebounce <= 0 {
		params.DescriptionDebounce = defaultDescriptionDebounce
	}

	return &PeerConnectionManager{
		QueueingEventEmitter: events.NewQueueingEventEmitter(),
		params:               params,
		sessions:             orderedmap.NewOrderedMap[string, *session](),
		closedIDs:            make(map[string]struct{}),
		dirty:                orderedmap.NewOrderedMap[string, conversationinfo.Description](),
		remoteTracks:         make(map[string]types.RemoteTrack),
		debounced:            debounce.New(params.DescriptionDebounce),
	}
}

// OnDescriptionReady is called, debounced, after local descriptions changed and
// GetConversationInfo has something to report.
func (m *PeerConnectionManager) OnDescriptionReady(f func()) {
	m.lock.Lock()
	m.onDescriptionReady = f
	m.lock.Unlock()
}

// SetConfiguration applies conf to every peer connection. The first call decides whether this
// side creates the initial offers and replays instructions received before it.
func (m *PeerConnectionManager) SetConfiguration(ctx context.Context, conf Configuration) error {
	m.lock.Lock()
	if m.closed.IsBroken() {
		m.lock.Unlock()
		return ErrManagerClosed
	}

	m.configuration = conf.Configuration
	if m.configured {
		sessions := m.sessionsLocked()
		m.lock.Unlock()

		for _, s := range sessions {
			if err := s.pc.SetConfiguration(conf.Configuration); err != nil {
				m.params.Logger.Warnw("could not update configuration", err, "pcID", s.id)
			}
		}
		return nil
	}

	m.configured = true
	m.offerer = conf.Offerer
	pending := m.pending
	m.pending = nil
	m.lock.Unlock()

	m.params.Logger.Debugw("peer connection manager configured", "offerer", conf.Offerer, "pending", len(pending))

	var initial []conversationinfo.PeerConnection
	if conf.Offerer {
		for i := 0; i < m.params.InitialOffers; i++ {
			initial = append(initial, conversationinfo.PeerConnection{
				ID:          m.params.IDGenerator.NewID(utils.PeerConnectionPrefix),
				Description: conversationinfo.Description{Type: conversationinfo.DescriptionCreateOffer},
			})
		}
	}
	return m.apply(ctx, append(pending, initial...))
}

// Update applies incoming instructions. Instructions for different peer connections run
// concurrently, instructions for the same one in order.
func (m *PeerConnectionManager) Update(ctx context.Context, pcs *conversationinfo.PeerConnections) error {
	if pcs == nil || len(pcs.PeerConnections) == 0 {
		return nil
	}

	m.lock.Lock()
	if m.closed.IsBroken() {
		m.lock.Unlock()
		return ErrManagerClosed
	}
	if !m.configured {
		m.pending = append(m.pending, pcs.PeerConnections...)
		m.lock.Unlock()
		return nil
	}
	m.lock.Unlock()

	return m.apply(ctx, pcs.PeerConnections)
}

func (m *PeerConnectionManager) apply(ctx context.Context, instructions []conversationinfo.PeerConnection) error {
	if len(instructions) == 0 {
		return nil
	}

	byID := orderedmap.NewOrderedMap[string, []conversationinfo.PeerConnection]()
	for _, instruction := range instructions {
		list, _ := byID.Get(instruction.ID)
		byID.Set(instruction.ID, append(list, instruction))
	}

	var g errgroup.Group
	for _, id := range byID.Keys() {
		list, _ := byID.Get(id)
		g.Go(func() error {
			var errs []error
			for _, instruction := range list {
				err := m.applyOne(ctx, instruction)
				prometheus.RecordPeerConnectionOp(string(instruction.Description.Type), err)
				if err != nil {
					errs = append(errs, err)
				}
			}
			if len(errs) != 0 {
				return errs[0]
			}
			return nil
		})
	}
	err := g.Wait()

	m.reconcileRemoteTracks()
	return err
}

func (m *PeerConnectionManager) applyOne(ctx context.Context, instruction conversationinfo.PeerConnection) error {
	s, err := m.getOrCreateSession(instruction)
	if err != nil {
		return err
	}
	if s == nil {
		m.params.Logger.Debugw("ignoring instruction for closed peer connection", "pcID", instruction.ID, "type", instruction.Description.Type)
		return nil
	}

	s.opLock.Lock()
	defer s.opLock.Unlock()

	desc := instruction.Description
	switch desc.Type {
	case conversationinfo.DescriptionCreateOffer:
		return m.createOffer(ctx, s)

	case conversationinfo.DescriptionOffer:
		if err := s.pc.SetRemoteDescription(ctx, webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: desc.SDP}); err != nil {
			return errors.Wrapf(err, "%s: set remote offer", s.id)
		}
		answer, err := s.pc.CreateAnswer(ctx)
		if err != nil {
			return errors.Wrapf(err, "%s: create answer", s.id)
		}
		m.markDirty(s.id, conversationinfo.Description{
			Type:     conversationinfo.DescriptionAnswer,
			SDP:      answer.SDP,
			Revision: desc.Revision,
		})
		return nil

	case conversationinfo.DescriptionAnswer:
		if desc.Revision != 0 && desc.Revision < s.revision {
			m.params.Logger.Debugw("ignoring stale answer", "pcID", s.id, "revision", desc.Revision, "current", s.revision)
			return nil
		}
		if err := s.pc.SetRemoteDescription(ctx, webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: desc.SDP}); err != nil {
			return errors.Wrapf(err, "%s: set remote answer", s.id)
		}
		return nil

	case conversationinfo.DescriptionClose:
		m.closeSession(s, false)
		return nil
	}
	return errors.Errorf("%s: unsupported description %s", s.id, desc.Type)
}

// getOrCreateSession returns nil without error for closed ids.
func (m *PeerConnectionManager) getOrCreateSession(instruction conversationinfo.PeerConnection) (*session, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.closedIDs[instruction.ID]; ok {
		return nil, nil
	}
	if s, ok := m.sessions.Get(instruction.ID); ok {
		return s, nil
	}

	switch instruction.Description.Type {
	case conversationinfo.DescriptionCreateOffer, conversationinfo.DescriptionOffer:
	default:
		return nil, errors.Wrapf(ErrUnknownPeerConnection, "%s: %s", instruction.ID, instruction.Description.Type)
	}
	if m.closed.IsBroken() {
		return nil, ErrManagerClosed
	}

	pc, err := m.params.Factory(types.PeerConnectionParams{
		ID:                  instruction.ID,
		Configuration:       m.configuration,
		IceGatheringTimeout: m.params.IceGatheringTimeout,
		Logger:              m.params.Logger,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s: create peer connection", instruction.ID)
	}
	if err := pc.SetLocalStreams(m.localStreams); err != nil {
		_ = pc.Close()
		return nil, errors.Wrapf(err, "%s: set local streams", instruction.ID)
	}
	pc.OnRemoteTracksChanged(m.reconcileRemoteTracks)

	s := &session{
		id: instruction.ID,
		pc: pc,
	}
	m.sessions.Set(s.id, s)
	prometheus.AddPeerConnection()

	m.params.Logger.Debugw("peer connection created", "pcID", s.id, "trigger", instruction.Description.Type)
	return s, nil
}

// createOffer expects s.opLock to be held.
func (m *PeerConnectionManager) createOffer(ctx context.Context, s *session) error {
	offer, err := s.pc.CreateOffer(ctx)
	if err != nil {
		return errors.Wrapf(err, "%s: create offer", s.id)
	}
	s.revision++
	m.markDirty(s.id, conversationinfo.Description{
		Type:     conversationinfo.DescriptionOffer,
		SDP:      offer.SDP,
		Revision: s.revision,
	})
	return nil
}

func (m *PeerConnectionManager) markDirty(id string, desc conversationinfo.Description) {
	m.lock.Lock()
	if _, ok := m.closedIDs[id]; ok && desc.Type != conversationinfo.DescriptionClose {
		m.lock.Unlock()
		return
	}
	m.dirty.Set(id, desc)
	onDescriptionReady := m.onDescriptionReady
	m.lock.Unlock()

	if onDescriptionReady != nil {
		m.debounced(onDescriptionReady)
	}
}

// GetConversationInfo returns the local descriptions that changed since the previous call, or
// nil when nothing changed.
func (m *PeerConnectionManager) GetConversationInfo() *conversationinfo.PeerConnections {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.dirty.Len() == 0 {
		return nil
	}

	pcs := make([]conversationinfo.PeerConnection, 0, m.dirty.Len())
	for _, id := range m.dirty.Keys() {
		desc, _ := m.dirty.Get(id)
		pcs = append(pcs, conversationinfo.PeerConnection{
			ID:          id,
			Description: desc,
		})
	}
	m.dirty = orderedmap.NewOrderedMap[string, conversationinfo.Description]()
	return conversationinfo.NewPeerConnections(pcs...)
}

// Renegotiate replaces the local streams of every peer connection and offers again on each.
func (m *PeerConnectionManager) Renegotiate(ctx context.Context, streams []types.MediaStream) error {
	m.lock.Lock()
	if m.closed.IsBroken() {
		m.lock.Unlock()
		return ErrManagerClosed
	}
	m.localStreams = append([]types.MediaStream(nil), streams...)
	sessions := m.sessionsLocked()
	m.lock.Unlock()

	var g errgroup.Group
	for _, s := range sessions {
		s := s
		g.Go(func() error {
			s.opLock.Lock()
			defer s.opLock.Unlock()

			if err := s.pc.SetLocalStreams(streams); err != nil {
				return errors.Wrapf(err, "%s: set local streams", s.id)
			}
			return m.createOffer(ctx, s)
		})
	}
	return g.Wait()
}

func (m *PeerConnectionManager) AddMediaStream(ctx context.Context, stream types.MediaStream) error {
	m.lock.Lock()
	streams := append([]types.MediaStream(nil), m.localStreams...)
	m.lock.Unlock()

	for _, existing := range streams {
		if existing.ID() == stream.ID() {
			return m.Renegotiate(ctx, streams)
		}
	}
	return m.Renegotiate(ctx, append(streams, stream))
}

func (m *PeerConnectionManager) RemoveMediaStream(ctx context.Context, streamID string) error {
	m.lock.Lock()
	streams := make([]types.MediaStream, 0, len(m.localStreams))
	for _, existing := range m.localStreams {
		if existing.ID() != streamID {
			streams = append(streams, existing)
		}
	}
	m.lock.Unlock()

	return m.Renegotiate(ctx, streams)
}

func (m *PeerConnectionManager) LocalStreams() []types.MediaStream {
	m.lock.Lock()
	defer m.lock.Unlock()

	return append([]types.MediaStream(nil), m.localStreams...)
}

// ClosePeerConnection closes id locally. The next GetConversationInfo reports the close.
func (m *PeerConnectionManager) ClosePeerConnection(id string) error {
	m.lock.Lock()
	s, ok := m.sessions.Get(id)
	m.lock.Unlock()
	if !ok {
		return errors.Wrap(ErrUnknownPeerConnection, id)
	}

	m.closeSession(s, true)
	m.reconcileRemoteTracks()
	return nil
}

func (m *PeerConnectionManager) closeSession(s *session, local bool) {
	m.lock.Lock()
	if _, ok := m.sessions.Get(s.id); !ok {
		m.lock.Unlock()
		return
	}
	m.sessions.Delete(s.id)
	m.closedIDs[s.id] = struct{}{}
	m.dirty.Delete(s.id)
	m.lock.Unlock()

	if err := s.pc.Close(); err != nil {
		m.params.Logger.Warnw("could not close peer connection", err, "pcID", s.id)
	}
	prometheus.SubPeerConnection()
	m.params.Logger.Debugw("peer connection closed", "pcID", s.id, "local", local)

	if local {
		m.markDirty(s.id, conversationinfo.Description{Type: conversationinfo.DescriptionClose})
	}
}

// Close closes every peer connection. Remote tracks are reported removed.
func (m *PeerConnectionManager) Close() {
	m.lock.Lock()
	if m.closed.IsBroken() {
		m.lock.Unlock()
		return
	}
	m.closed.Break()
	sessions := m.sessionsLocked()
	m.pending = nil
	m.lock.Unlock()

	for _, s := range sessions {
		m.closeSession(s, true)
	}
	m.reconcileRemoteTracks()
}

func (m *PeerConnectionManager) IsClosed() bool {
	return m.closed.IsBroken()
}

func (m *PeerConnectionManager) PeerConnectionIDs() []string {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.sessions.Keys()
}

func (m *PeerConnectionManager) RemoteTracks() []types.RemoteTrack {
	m.reconcileLock.Lock()
	defer m.reconcileLock.Unlock()

	return sortedTracks(m.remoteTracks)
}

func (m *PeerConnectionManager) sessionsLocked() []*session {
	sessions := make([]*session, 0, m.sessions.Len())
	for _, id := range m.sessions.Keys() {
		s, _ := m.sessions.Get(id)
		sessions = append(sessions, s)
	}
	return sessions
}

// reconcileRemoteTracks recomputes the union of remote tracks across peer connections and queues
// trackAdded and trackRemoved for the difference with the previous union.
func (m *PeerConnectionManager) reconcileRemoteTracks() {
	m.reconcileLock.Lock()
	defer m.reconcileLock.Unlock()

	m.lock.Lock()
	sessions := m.sessionsLocked()
	m.lock.Unlock()

	current := make(map[string]types.RemoteTrack)
	for _, s := range sessions {
		for _, track := range s.pc.RemoteTracks() {
			if _, ok := current[track.ID]; !ok {
				current[track.ID] = track
			}
		}
	}

	added := make(map[string]types.RemoteTrack)
	removed := make(map[string]types.RemoteTrack)
	for id, track := range current {
		if _, ok := m.remoteTracks[id]; !ok {
			added[id] = track
		}
	}
	for id, track := range m.remoteTracks {
		if _, ok := current[id]; !ok {
			removed[id] = track
		}
	}
	m.remoteTracks = current

	for _, track := range sortedTracks(added) {
		m.params.Logger.Debugw("remote track added", "trackID", track.ID, "pcID", track.PeerConnectionID)
		m.Queue(EventTrackAdded, track)
	}
	for _, track := range sortedTracks(removed) {
		m.params.Logger.Debugw("remote track removed", "trackID", track.ID, "pcID", track.PeerConnectionID)
		m.Queue(EventTrackRemoved, track)
	}
}

func sortedTracks(tracks map[string]types.RemoteTrack) []types.RemoteTrack {
	sorted := make([]types.RemoteTrack, 0, len(tracks))
	for _, track := range tracks {
		sorted = append(sorted, track)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
