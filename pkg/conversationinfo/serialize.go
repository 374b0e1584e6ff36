package conversationinfo

import (
	"encoding/json"
	"time"
)

var now = time.Now

// TrackEnabled builds the partial notification announcing that participantSID enabled track.
func TrackEnabled(participantSID string, track Track) *PartialNotification {
	return trackEvent(EventTrackEnabled, participantSID, track)
}

// TrackDisabled builds the partial notification announcing that participantSID disabled track.
func TrackDisabled(participantSID string, track Track) *PartialNotification {
	return trackEvent(EventTrackDisabled, participantSID, track)
}

func trackEvent(event EventType, participantSID string, track Track) *PartialNotification {
	return &PartialNotification{
		ProtocolVersion: ProtocolVersion,
		EventList: []Event{
			{
				Event:          event,
				Time:           now().UnixMilli(),
				ParticipantSID: participantSID,
				Tracks:         []Track{track},
			},
		},
	}
}

// MarshalJSON flattens the notification and the instructions into one object.
func (m *Message) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		fieldProtocolVersion: ProtocolVersion,
	}
	switch n := m.Notification.(type) {
	case *FullNotification:
		out[fieldConversationState] = n.ConversationState
	case *PartialNotification:
		out[fieldEventList] = n.EventList
	}
	if len(m.PeerConnections) != 0 {
		out[fieldPeerConnections] = m.PeerConnections
	}
	return json.Marshal(out)
}

// Marshal serializes a notification, instruction set or message.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
