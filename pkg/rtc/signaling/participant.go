package signaling

import (
	"sync"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/events"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/statemachine"
)

const (
	ParticipantStateConnecting   statemachine.State = "connecting"
	ParticipantStateConnected    statemachine.State = "connected"
	ParticipantStateDisconnected statemachine.State = "disconnected"

	EventTrackAdded   = "trackAdded"
	EventTrackRemoved = "trackRemoved"
	EventStateChanged = "stateChanged"
)

var participantTransitions = statemachine.Transitions{
	ParticipantStateConnecting:   {ParticipantStateConnected, ParticipantStateDisconnected},
	ParticipantStateConnected:    {ParticipantStateDisconnected},
	ParticipantStateDisconnected: {},
}

// ParticipantSignaling holds one participant's identity and its signaled tracks.
// sid and identity are set exactly once, on connect.
type ParticipantSignaling struct {
	*events.QueueingEventEmitter

	sm     *statemachine.StateMachine
	logger logger.Logger

	lock     sync.RWMutex
	sid      string
	identity string
	tracks   *orderedmap.OrderedMap[string, *TrackSignaling]
}

func NewParticipantSignaling(l logger.Logger) *ParticipantSignaling {
	if l == nil {
		l = logger.GetLogger()
	}
	p := &ParticipantSignaling{
		QueueingEventEmitter: events.NewQueueingEventEmitter(),
		logger:               l,
		sm: statemachine.MustNew(statemachine.Params{
			Name:        "participant",
			Initial:     ParticipantStateConnecting,
			Transitions: participantTransitions,
			Logger:      l,
		}),
		tracks: orderedmap.NewOrderedMap[string, *TrackSignaling](),
	}
	p.sm.OnStateChanged(func(state statemachine.State, err error) {
		p.Queue(EventStateChanged, state, err)
	})
	return p
}

func (p *ParticipantSignaling) SID() string {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.sid
}

func (p *ParticipantSignaling) Identity() string {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.identity
}

func (p *ParticipantSignaling) State() statemachine.State {
	return p.sm.State()
}

func (p *ParticipantSignaling) IsConnected() bool {
	return p.sm.State() == ParticipantStateConnected
}

// Connect assigns sid and identity and moves the participant to connected.
func (p *ParticipantSignaling) Connect(sid, identity string) error {
	p.lock.Lock()
	if p.sm.State() != ParticipantStateConnecting {
		p.lock.Unlock()
		return errors.Wrapf(statemachine.ErrInvalidTransition, "participant %s is %s", p.sid, p.sm.State())
	}
	p.sid = sid
	p.identity = identity
	p.logger = p.logger.WithValues("participant", sid)
	p.lock.Unlock()

	return p.sm.Transition(ParticipantStateConnected, nil, nil)
}

// Disconnect ends and removes every track. Returns false when already disconnected.
func (p *ParticipantSignaling) Disconnect(err error) bool {
	if !p.sm.TryTransition(ParticipantStateDisconnected, nil, err) {
		return false
	}

	p.lock.Lock()
	removed := make([]*TrackSignaling, 0, p.tracks.Len())
	for _, id := range p.tracks.Keys() {
		t, _ := p.tracks.Get(id)
		removed = append(removed, t)
		p.tracks.Delete(id)
	}
	p.lock.Unlock()

	for _, t := range removed {
		t.End()
		p.Queue(EventTrackRemoved, t)
	}
	return true
}

// AddTrack adds t unless a track with the same id exists, in which case the existing one is
// returned and nothing is emitted.
func (p *ParticipantSignaling) AddTrack(t *TrackSignaling) (*TrackSignaling, error) {
	p.lock.Lock()
	if p.sm.State() == ParticipantStateDisconnected {
		p.lock.Unlock()
		return nil, ErrParticipantDisconnected
	}
	if existing, ok := p.tracks.Get(t.ID()); ok {
		p.lock.Unlock()
		return existing, nil
	}
	p.tracks.Set(t.ID(), t)
	p.lock.Unlock()

	p.Queue(EventTrackAdded, t)
	return t, nil
}

// GetOrCreateTrack returns the track with id, creating it when unknown.
func (p *ParticipantSignaling) GetOrCreateTrack(id string, kind types.TrackKind) (*TrackSignaling, error) {
	if t, ok := p.Track(id); ok {
		return t, nil
	}
	return p.AddTrack(NewTrackSignaling(id, kind, p.logger))
}

func (p *ParticipantSignaling) RemoveTrack(id string) (*TrackSignaling, bool) {
	p.lock.Lock()
	t, ok := p.tracks.Get(id)
	if ok {
		p.tracks.Delete(id)
	}
	p.lock.Unlock()

	if !ok {
		return nil, false
	}
	t.End()
	p.Queue(EventTrackRemoved, t)
	return t, true
}

func (p *ParticipantSignaling) Track(id string) (*TrackSignaling, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.tracks.Get(id)
}

func (p *ParticipantSignaling) Tracks() []*TrackSignaling {
	p.lock.RLock()
	defer p.lock.RUnlock()

	tracks := make([]*TrackSignaling, 0, p.tracks.Len())
	for _, id := range p.tracks.Keys() {
		t, _ := p.tracks.Get(id)
		tracks = append(tracks, t)
	}
	return tracks
}

func (p *ParticipantSignaling) TrackIDs() []string {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.tracks.Keys()
}
