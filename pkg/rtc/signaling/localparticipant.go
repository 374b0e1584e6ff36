package signaling

import (
	"sync"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/rtc/transport"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/utils"
)

const (
	EventPublicationsChanged = "publicationsChanged"
	EventTrackStateChanged   = "trackStateChanged"
)

// LocalParticipantSignaling is the local side of a room. Its published tracks are grouped in a
// single media stream shared with every peer connection.
type LocalParticipantSignaling struct {
	*ParticipantSignaling

	stream *transport.LocalMediaStream

	lock   sync.Mutex
	tracks map[string]types.LocalTrack
}

func NewLocalParticipantSignaling(l logger.Logger) *LocalParticipantSignaling {
	return &LocalParticipantSignaling{
		ParticipantSignaling: NewParticipantSignaling(l),
		stream:               transport.NewLocalMediaStream(utils.NewGuid(utils.StreamPrefix)),
		tracks:               make(map[string]types.LocalTrack),
	}
}

func (p *LocalParticipantSignaling) Stream() types.MediaStream {
	return p.stream
}

// PublishTrack adds track to the local stream. Publishing an already published id is a no-op.
func (p *LocalParticipantSignaling) PublishTrack(track types.LocalTrack) (*TrackSignaling, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if _, ok := p.tracks[track.ID()]; ok {
		t, _ := p.Track(track.ID())
		return t, nil
	}

	t, err := p.AddTrack(NewTrackSignaling(track.ID(), track.Kind(), p.logger))
	if err != nil {
		return nil, err
	}
	p.tracks[track.ID()] = track
	p.stream.AddTrack(track)
	p.Queue(EventPublicationsChanged, p.stream)
	return t, nil
}

func (p *LocalParticipantSignaling) UnpublishTrack(trackID string) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if _, ok := p.tracks[trackID]; !ok {
		return false
	}
	delete(p.tracks, trackID)
	p.stream.RemoveTrack(trackID)
	p.RemoveTrack(trackID)
	p.Queue(EventPublicationsChanged, p.stream)
	return true
}

// SetTrackEnabled enables or disables a published track and reports the change.
func (p *LocalParticipantSignaling) SetTrackEnabled(trackID string, enabled bool) error {
	t, ok := p.Track(trackID)
	if !ok {
		return ErrTrackNotFound
	}
	if t.IsEnded() {
		return ErrTrackEnded
	}
	if t.SetEnabled(enabled) {
		p.Queue(EventTrackStateChanged, t)
	}
	return nil
}

func (p *LocalParticipantSignaling) LocalTracks() []types.LocalTrack {
	return p.stream.Tracks()
}
