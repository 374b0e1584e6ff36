package signaling

import (
	"sync"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	"github.com/livekit/conversation-signaling/pkg/events"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/statemachine"
)

const (
	TrackStateEnabled  statemachine.State = "enabled"
	TrackStateDisabled statemachine.State = "disabled"
	TrackStateEnded    statemachine.State = "ended"

	EventTrackUpdated       = "updated"
	EventTrackMediaAttached = "mediaAttached"
	EventTrackMediaDetached = "mediaDetached"
)

var trackTransitions = statemachine.Transitions{
	TrackStateEnabled:  {TrackStateDisabled, TrackStateEnded},
	TrackStateDisabled: {TrackStateEnabled, TrackStateEnded},
	TrackStateEnded:    {},
}

// TrackSignaling is the signaling side of a track: its id, kind and enabled state, plus the
// received media once the transport reports it.
type TrackSignaling struct {
	*events.QueueingEventEmitter

	id   string
	kind types.TrackKind
	sm   *statemachine.StateMachine

	lock  sync.RWMutex
	media *types.RemoteTrack
}

func NewTrackSignaling(id string, kind types.TrackKind, l logger.Logger) *TrackSignaling {
	if l == nil {
		l = logger.GetLogger()
	}
	t := &TrackSignaling{
		QueueingEventEmitter: events.NewQueueingEventEmitter(),
		id:                   id,
		kind:                 kind,
		sm: statemachine.MustNew(statemachine.Params{
			Name:        "track",
			Initial:     TrackStateEnabled,
			Transitions: trackTransitions,
			Logger:      l.WithValues("trackID", id),
		}),
	}
	t.sm.OnStateChanged(func(state statemachine.State, _ error) {
		t.Queue(EventTrackUpdated, t)
	})
	return t
}

func (t *TrackSignaling) ID() string {
	return t.id
}

func (t *TrackSignaling) Kind() types.TrackKind {
	return t.kind
}

func (t *TrackSignaling) State() statemachine.State {
	return t.sm.State()
}

func (t *TrackSignaling) IsEnabled() bool {
	return t.sm.State() == TrackStateEnabled
}

func (t *TrackSignaling) IsEnded() bool {
	return t.sm.State() == TrackStateEnded
}

// SetEnabled returns true when the state changed.
func (t *TrackSignaling) SetEnabled(enabled bool) bool {
	target := TrackStateDisabled
	if enabled {
		target = TrackStateEnabled
	}
	if t.sm.State() == target {
		return false
	}
	return t.sm.TryTransition(target, nil, nil)
}

// End is terminal. Returns false when the track had already ended.
func (t *TrackSignaling) End() bool {
	if !t.sm.TryTransition(TrackStateEnded, nil, nil) {
		return false
	}
	t.SetMediaTrack(nil)
	return true
}

func (t *TrackSignaling) MediaTrack() (types.RemoteTrack, bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	if t.media == nil {
		return types.RemoteTrack{}, false
	}
	return *t.media, true
}

// SetMediaTrack attaches the received media, or detaches it when media is nil.
func (t *TrackSignaling) SetMediaTrack(media *types.RemoteTrack) {
	t.lock.Lock()
	if media != nil && t.sm.State() == TrackStateEnded {
		t.lock.Unlock()
		return
	}
	previous := t.media
	t.media = media
	t.lock.Unlock()

	switch {
	case media != nil && (previous == nil || *previous != *media):
		t.Queue(EventTrackMediaAttached, t, *media)
	case media == nil && previous != nil:
		t.Queue(EventTrackMediaDetached, t)
	}
}

// Descriptor is the wire form of the track.
func (t *TrackSignaling) Descriptor() conversationinfo.Track {
	return conversationinfo.Track{
		ID:   t.id,
		Kind: t.kind,
	}
}
