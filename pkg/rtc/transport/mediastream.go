package transport

import (
	"sync"

	"github.com/pion/webrtc/v3"

	"github.com/livekit/conversation-signaling/pkg/rtc/types"
)

// LocalTrack binds a pion local track, or nothing for data tracks, to a signaling kind.
type LocalTrack struct {
	id    string
	kind  types.TrackKind
	track webrtc.TrackLocal
}

func NewLocalTrack(id string, kind types.TrackKind, track webrtc.TrackLocal) *LocalTrack {
	return &LocalTrack{
		id:    id,
		kind:  kind,
		track: track,
	}
}

func (t *LocalTrack) ID() string                    { return t.id }
func (t *LocalTrack) Kind() types.TrackKind         { return t.kind }
func (t *LocalTrack) TrackLocal() webrtc.TrackLocal { return t.track }

// LocalMediaStream is a mutable group of local tracks shared with every peer connection.
type LocalMediaStream struct {
	id string

	lock   sync.RWMutex
	tracks []types.LocalTrack
}

func NewLocalMediaStream(id string, tracks ...types.LocalTrack) *LocalMediaStream {
	return &LocalMediaStream{
		id:     id,
		tracks: tracks,
	}
}

func (s *LocalMediaStream) ID() string {
	return s.id
}

func (s *LocalMediaStream) Tracks() []types.LocalTrack {
	s.lock.RLock()
	defer s.lock.RUnlock()

	tracks := make([]types.LocalTrack, len(s.tracks))
	copy(tracks, s.tracks)
	return tracks
}

func (s *LocalMediaStream) AddTrack(track types.LocalTrack) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, t := range s.tracks {
		if t.ID() == track.ID() {
			return
		}
	}
	s.tracks = append(s.tracks, track)
}

func (s *LocalMediaStream) RemoveTrack(trackID string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	for i, t := range s.tracks {
		if t.ID() == trackID {
			s.tracks = append(s.tracks[:i], s.tracks[i+1:]...)
			return true
		}
	}
	return false
}
