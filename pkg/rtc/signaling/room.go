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

package signaling

import (
	"context"
	"sort"
	"sync"

	"github.com/elliotchance/orderedmap/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	"github.com/livekit/conversation-signaling/pkg/events"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/statemachine"
	"github.com/livekit/conversation-signaling/pkg/telemetry/prometheus"
	"github.com/livekit/conversation-signaling/pkg/utils"
)

const (
	RoomStateConnected    statemachine.State = "connected"
	RoomStateDisconnected statemachine.State = "disconnected"

	EventParticipantConnected    = "participantConnected"
	EventParticipantDisconnected = "participantDisconnected"
	EventParticipantFailed       = "participantFailed"

	defaultDisconnectedCacheSize = 256
	defaultOpsQueueSize          = 64
)

var roomTransitions = statemachine.Transitions{
	RoomStateConnected:    {RoomStateDisconnected},
	RoomStateDisconnected: {},
}

type RoomParams struct {
	// Identity of the local participant.
	Identity         string
	LocalParticipant *LocalParticipantSignaling
	// DisconnectedCacheSize bounds how many disconnected participant sids are remembered.
	DisconnectedCacheSize int
	// OpsQueueSize is the backlog of inbound messages above which a warning is logged.
	OpsQueueSize int
	Logger       logger.Logger
}

// RoomSignaling reconciles conversation-info notifications into participants and their tracks,
// and attaches the media received by the transport layer to them.
type RoomSignaling struct {
	*events.QueueingEventEmitter

	params   RoomParams
	logger   logger.Logger
	sm       *statemachine.StateMachine
	opsQueue *utils.OpsQueue

	lock                sync.Mutex
	sid                 string
	participants        *orderedmap.OrderedMap[string, *ParticipantSignaling]
	participantTracks   map[string]map[string]struct{}
	trackOwners         map[string]map[string]struct{}
	media               map[string]types.RemoteTrack
	appliedFull         bool
	lastInstanceVersion int64
	failed              map[string]struct{}
	tombstones          *lru.Cache[string, struct{}]
	dialogs             *orderedmap.OrderedMap[string, types.Dialog]
	teardownHooks       []func(err error)
}

func NewRoomSignaling(sid string, params RoomParams) *RoomSignaling {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	if params.LocalParticipant == nil {
		params.LocalParticipant = NewLocalParticipantSignaling(params.Logger)
	}
	if params.DisconnectedCacheSize <= 0 {
		params.DisconnectedCacheSize = defaultDisconnectedCacheSize
	}
	if params.OpsQueueSize <= 0 {
		params.OpsQueueSize = defaultOpsQueueSize
	}

	l := params.Logger.WithValues("room", sid)
	tombstones, err := lru.New[string, struct{}](params.DisconnectedCacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}

	r := &RoomSignaling{
		QueueingEventEmitter: events.NewQueueingEventEmitter(),
		params:               params,
		logger:               l,
		sm: statemachine.MustNew(statemachine.Params{
			Name:        "room",
			Initial:     RoomStateConnected,
			Transitions: roomTransitions,
			Logger:      l,
		}),
		opsQueue:          utils.NewOpsQueue(l, "room", params.OpsQueueSize),
		sid:               sid,
		participants:      orderedmap.NewOrderedMap[string, *ParticipantSignaling](),
		participantTracks: make(map[string]map[string]struct{}),
		trackOwners:       make(map[string]map[string]struct{}),
		media:             make(map[string]types.RemoteTrack),
		failed:            make(map[string]struct{}),
		tombstones:        tombstones,
		dialogs:           orderedmap.NewOrderedMap[string, types.Dialog](),
	}
	r.sm.OnStateChanged(func(state statemachine.State, err error) {
		if state == RoomStateDisconnected {
			r.teardown(err)
		}
		r.Queue(EventStateChanged, state, err)
	})
	r.opsQueue.Start()
	prometheus.RoomStarted()
	return r
}

func (r *RoomSignaling) SID() string {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.sid
}

func (r *RoomSignaling) State() statemachine.State {
	return r.sm.State()
}

func (r *RoomSignaling) IsConnected() bool {
	return r.sm.State() == RoomStateConnected
}

// WhenDisconnected blocks until the room disconnected or ctx is done.
func (r *RoomSignaling) WhenDisconnected(ctx context.Context) error {
	return r.sm.WhenState(ctx, RoomStateDisconnected)
}

func (r *RoomSignaling) LocalParticipant() *LocalParticipantSignaling {
	return r.params.LocalParticipant
}

func (r *RoomSignaling) Participant(sid string) (*ParticipantSignaling, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.participants.Get(sid)
}

func (r *RoomSignaling) Participants() []*ParticipantSignaling {
	r.lock.Lock()
	defer r.lock.Unlock()

	participants := make([]*ParticipantSignaling, 0, r.participants.Len())
	for _, sid := range r.participants.Keys() {
		p, _ := r.participants.Get(sid)
		participants = append(participants, p)
	}
	return participants
}

// TrackOwners returns the sids of the participants a track id is associated with.
func (r *RoomSignaling) TrackOwners(trackID string) []string {
	r.lock.Lock()
	defer r.lock.Unlock()

	owners := make([]string, 0, len(r.trackOwners[trackID]))
	for sid := range r.trackOwners[trackID] {
		owners = append(owners, sid)
	}
	sort.Strings(owners)
	return owners
}

// Disconnect moves the room to disconnected, ending every dialog and disconnecting every
// participant. Returns false when the room was already disconnected.
func (r *RoomSignaling) Disconnect(err error) bool {
	_, perr := r.sm.Preempt(RoomStateDisconnected, "", err)
	return perr == nil
}

// Invite asks the remote side to add identity to the conversation over the first active dialog.
func (r *RoomSignaling) Invite(ctx context.Context, identity string) error {
	if !r.IsConnected() {
		return ErrRoomDisconnected
	}

	r.lock.Lock()
	var dialog types.Dialog
	if keys := r.dialogs.Keys(); len(keys) > 0 {
		dialog, _ = r.dialogs.Get(keys[0])
	}
	r.lock.Unlock()

	if dialog == nil {
		return ErrNoActiveDialog
	}
	if err := dialog.Refer(ctx, identity); err != nil {
		return errors.Wrapf(err, "invite %s", identity)
	}
	r.logger.Infow("invited participant", "identity", identity, "dialog", dialog.ID())
	return nil
}

// ApplyNotification reconciles a notification. Returns false when it was ignored.
func (r *RoomSignaling) ApplyNotification(n conversationinfo.Notification) bool {
	var (
		applied          bool
		actions          []func()
		notificationType string
	)

	r.lock.Lock()
	if r.sm.State() != RoomStateConnected {
		r.lock.Unlock()
		return false
	}
	switch n := n.(type) {
	case *conversationinfo.FullNotification:
		notificationType = prometheus.NotificationFull
		applied, actions = r.applyFullLocked(n)
	case *conversationinfo.PartialNotification:
		notificationType = prometheus.NotificationPartial
		applied, actions = r.applyPartialLocked(n)
	}
	r.lock.Unlock()

	for _, action := range actions {
		action()
	}

	if applied {
		prometheus.RecordNotification(notificationType, prometheus.StatusApplied)
	} else {
		prometheus.RecordNotification(notificationType, prometheus.StatusIgnored)
	}
	return applied
}

func (r *RoomSignaling) applyFullLocked(n *conversationinfo.FullNotification) (bool, []func()) {
	state := n.ConversationState
	if r.sid != "" && state.SID != r.sid {
		r.logger.Warnw("ignoring notification for another conversation", nil, "sid", state.SID)
		return false, nil
	}
	if r.appliedFull && state.InstanceVersion <= r.lastInstanceVersion {
		r.logger.Debugw("ignoring stale notification",
			"instanceVersion", state.InstanceVersion,
			"lastInstanceVersion", r.lastInstanceVersion,
		)
		return false, nil
	}
	r.sid = state.SID
	r.appliedFull = true
	r.lastInstanceVersion = state.InstanceVersion

	localSID := r.params.LocalParticipant.SID()
	var actions []func()
	for _, participant := range state.Participants {
		sid := participant.ParticipantSID
		if sid == localSID || r.tombstones.Contains(sid) {
			continue
		}
		// snapshots may be truncated, removals only come from events
		actions = append(actions, r.connectLocked(sid, participant.Address, participant.Tracks)...)
	}
	return true, actions
}

func (r *RoomSignaling) applyPartialLocked(n *conversationinfo.PartialNotification) (bool, []func()) {
	localSID := r.params.LocalParticipant.SID()
	var actions []func()
	for _, event := range n.EventList {
		sid := event.ParticipantSID
		if sid == localSID {
			continue
		}

		switch event.Event {
		case conversationinfo.EventParticipantConnected, conversationinfo.EventTrackAdded:
			if r.tombstones.Contains(sid) {
				r.logger.Debugw("ignoring event for disconnected participant", "event", event.Event, "participant", sid)
				continue
			}
			actions = append(actions, r.connectLocked(sid, event.Address, event.Tracks)...)

		case conversationinfo.EventParticipantDisconnected:
			actions = append(actions, r.disconnectLocked(sid)...)

		case conversationinfo.EventParticipantFailed:
			if _, ok := r.failed[sid]; ok {
				continue
			}
			r.failed[sid] = struct{}{}
			actions = append(actions, func() {
				r.Queue(EventParticipantFailed, sid)
			})

		case conversationinfo.EventTrackRemoved:
			ids := make([]string, 0, len(event.Tracks))
			for _, t := range event.Tracks {
				ids = append(ids, t.ID)
			}
			actions = append(actions, r.disassociateLocked(sid, ids)...)

		case conversationinfo.EventTrackEnabled, conversationinfo.EventTrackDisabled:
			if r.tombstones.Contains(sid) {
				continue
			}
			p, ok := r.participants.Get(sid)
			if !ok {
				continue
			}
			actions = append(actions, r.associateLocked(p, sid, event.Tracks)...)
			enabled := event.Event == conversationinfo.EventTrackEnabled
			for _, t := range event.Tracks {
				id := t.ID
				actions = append(actions, func() {
					if ts, ok := p.Track(id); ok {
						ts.SetEnabled(enabled)
					}
				})
			}
		}
	}
	return true, actions
}

// connectLocked creates the participant when unknown and associates tracks with it.
func (r *RoomSignaling) connectLocked(sid, identity string, tracks []conversationinfo.Track) []func() {
	var actions []func()
	p, ok := r.participants.Get(sid)
	if !ok {
		p = NewParticipantSignaling(r.logger)
		r.participants.Set(sid, p)
		actions = append(actions, func() {
			if err := p.Connect(sid, identity); err != nil {
				r.logger.Warnw("could not connect participant", err, "participant", sid)
				return
			}
			prometheus.AddParticipant()
			r.logger.Debugw("participant connected", "participant", sid, "identity", identity)
			r.Queue(EventParticipantConnected, p)
		})
	}
	return append(actions, r.associateLocked(p, sid, tracks)...)
}

func (r *RoomSignaling) disconnectLocked(sid string) []func() {
	r.tombstones.Add(sid, struct{}{})

	p, ok := r.participants.Get(sid)
	if !ok {
		return nil
	}
	r.participants.Delete(sid)
	for id := range r.participantTracks[sid] {
		r.removeOwnerLocked(id, sid)
	}
	delete(r.participantTracks, sid)

	return []func(){func() {
		if p.Disconnect(nil) {
			prometheus.SubParticipant()
		}
		r.logger.Debugw("participant disconnected", "participant", sid)
		r.Queue(EventParticipantDisconnected, p)
	}}
}

func (r *RoomSignaling) associateLocked(p *ParticipantSignaling, sid string, tracks []conversationinfo.Track) []func() {
	actions := make([]func(), 0, len(tracks))
	for _, t := range tracks {
		owners, ok := r.trackOwners[t.ID]
		if !ok {
			owners = make(map[string]struct{})
			r.trackOwners[t.ID] = owners
		}
		owners[sid] = struct{}{}

		owned, ok := r.participantTracks[sid]
		if !ok {
			owned = make(map[string]struct{})
			r.participantTracks[sid] = owned
		}
		owned[t.ID] = struct{}{}

		track := t
		actions = append(actions, func() {
			ts, err := p.GetOrCreateTrack(track.ID, track.Kind)
			if err != nil {
				return
			}
			if media, ok := r.mediaTrack(track.ID); ok {
				ts.SetMediaTrack(&media)
			}
		})
	}
	return actions
}

func (r *RoomSignaling) disassociateLocked(sid string, trackIDs []string) []func() {
	p, ok := r.participants.Get(sid)
	if !ok {
		return nil
	}

	actions := make([]func(), 0, len(trackIDs))
	for _, id := range trackIDs {
		if _, ok := r.participantTracks[sid][id]; !ok {
			continue
		}
		delete(r.participantTracks[sid], id)
		r.removeOwnerLocked(id, sid)

		trackID := id
		actions = append(actions, func() {
			p.RemoveTrack(trackID)
		})
	}
	return actions
}

func (r *RoomSignaling) removeOwnerLocked(trackID, sid string) {
	owners := r.trackOwners[trackID]
	delete(owners, sid)
	if len(owners) == 0 {
		delete(r.trackOwners, trackID)
	}
}

func (r *RoomSignaling) mediaTrack(trackID string) (types.RemoteTrack, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	media, ok := r.media[trackID]
	return media, ok
}

// AddMediaTrack attaches received media to every track associated with its id. Media for an id
// nobody signaled yet is kept until a participant announces it.
func (r *RoomSignaling) AddMediaTrack(media types.RemoteTrack) {
	r.lock.Lock()
	if r.sm.State() != RoomStateConnected {
		r.lock.Unlock()
		return
	}
	r.media[media.ID] = media
	owners := r.ownersLocked(media.ID)
	r.lock.Unlock()

	if len(owners) == 0 {
		r.logger.Debugw("parking media track", "trackID", media.ID)
	}
	for _, p := range owners {
		if ts, ok := p.Track(media.ID); ok {
			ts.SetMediaTrack(&media)
		}
	}
}

func (r *RoomSignaling) RemoveMediaTrack(trackID string) {
	r.lock.Lock()
	if _, ok := r.media[trackID]; !ok {
		r.lock.Unlock()
		return
	}
	delete(r.media, trackID)
	owners := r.ownersLocked(trackID)
	r.lock.Unlock()

	for _, p := range owners {
		if ts, ok := p.Track(trackID); ok {
			ts.SetMediaTrack(nil)
		}
	}
}

func (r *RoomSignaling) ownersLocked(trackID string) []*ParticipantSignaling {
	var owners []*ParticipantSignaling
	for sid := range r.trackOwners[trackID] {
		if p, ok := r.participants.Get(sid); ok {
			owners = append(owners, p)
		}
	}
	return owners
}

// addDialog registers a dialog whose messages are handled, one at a time, by handle. When the
// last dialog ends the room disconnects.
func (r *RoomSignaling) addDialog(dialog types.Dialog, handle func(contentType string, body []byte)) error {
	r.lock.Lock()
	if r.sm.State() != RoomStateConnected {
		r.lock.Unlock()
		_ = dialog.End()
		return ErrRoomDisconnected
	}
	r.dialogs.Set(dialog.ID(), dialog)
	r.lock.Unlock()

	dialog.OnMessage(func(contentType string, body []byte) {
		prometheus.RecordMessage(prometheus.DirectionIncoming, contentType)
		r.enqueue(func() {
			handle(contentType, body)
		})
	})
	dialog.OnEnded(func(err error) {
		r.removeDialog(dialog.ID(), err)
	})
	r.logger.Debugw("dialog added", "dialog", dialog.ID())
	return nil
}

func (r *RoomSignaling) removeDialog(id string, err error) {
	r.lock.Lock()
	if _, ok := r.dialogs.Get(id); !ok {
		r.lock.Unlock()
		return
	}
	r.dialogs.Delete(id)
	remaining := r.dialogs.Len()
	r.lock.Unlock()

	r.logger.Debugw("dialog ended", "dialog", id, "remaining", remaining, "error", err)
	if remaining == 0 {
		if err == nil {
			err = ErrDialogEnded
		}
		r.Disconnect(err)
	}
}

func (r *RoomSignaling) Dialogs() []types.Dialog {
	r.lock.Lock()
	defer r.lock.Unlock()

	dialogs := make([]types.Dialog, 0, r.dialogs.Len())
	for _, id := range r.dialogs.Keys() {
		d, _ := r.dialogs.Get(id)
		dialogs = append(dialogs, d)
	}
	return dialogs
}

func (r *RoomSignaling) enqueue(op func()) {
	if !r.opsQueue.Enqueue(op) {
		r.logger.Debugw("room disconnected, skipping operation")
	}
}

// Flush waits for the operations queued so far to complete.
func (r *RoomSignaling) Flush(ctx context.Context) error {
	return r.opsQueue.Flush(ctx)
}

func (r *RoomSignaling) onTeardown(f func(err error)) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.teardownHooks = append(r.teardownHooks, f)
}

func (r *RoomSignaling) teardown(err error) {
	r.lock.Lock()
	participants := make([]*ParticipantSignaling, 0, r.participants.Len())
	for _, sid := range r.participants.Keys() {
		p, _ := r.participants.Get(sid)
		participants = append(participants, p)
		r.tombstones.Add(sid, struct{}{})
	}
	r.participants = orderedmap.NewOrderedMap[string, *ParticipantSignaling]()
	r.participantTracks = make(map[string]map[string]struct{})
	r.trackOwners = make(map[string]map[string]struct{})
	r.media = make(map[string]types.RemoteTrack)

	dialogs := make([]types.Dialog, 0, r.dialogs.Len())
	for _, id := range r.dialogs.Keys() {
		d, _ := r.dialogs.Get(id)
		dialogs = append(dialogs, d)
	}
	r.dialogs = orderedmap.NewOrderedMap[string, types.Dialog]()
	hooks := r.teardownHooks
	r.teardownHooks = nil
	r.lock.Unlock()

	r.logger.Infow("room disconnected", "error", err)

	for _, hook := range hooks {
		hook(err)
	}
	for _, d := range dialogs {
		if derr := d.End(); derr != nil {
			r.logger.Warnw("could not end dialog", derr, "dialog", d.ID())
		}
	}
	for _, p := range participants {
		if p.Disconnect(err) {
			prometheus.SubParticipant()
		}
		r.Queue(EventParticipantDisconnected, p)
	}
	r.params.LocalParticipant.Disconnect(err)

	r.opsQueue.Stop()
	prometheus.RoomEnded()
}
