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

// Package conversationinfo implements the conversation-info notification format exchanged on
// the signaling channel: full state snapshots, partial event lists and peer connection
// instructions.
package conversationinfo

const (
	ContentType     = "application/conversation-info+json"
	ProtocolVersion = "v1"
)

type TrackKind string

const (
	TrackKindAudio TrackKind = "audio"
	TrackKindVideo TrackKind = "video"
	TrackKindData  TrackKind = "data"
)

func (k TrackKind) Valid() bool {
	switch k {
	case TrackKindAudio, TrackKindVideo, TrackKindData:
		return true
	}
	return false
}

type EventType string

const (
	EventParticipantConnected    EventType = "participant_connected"
	EventParticipantDisconnected EventType = "participant_disconnected"
	EventParticipantFailed       EventType = "participant_failed"
	EventTrackAdded              EventType = "track_added"
	EventTrackDisabled           EventType = "track_disabled"
	EventTrackEnabled            EventType = "track_enabled"
	EventTrackRemoved            EventType = "track_removed"
)

func (e EventType) Valid() bool {
	switch e {
	case EventParticipantConnected,
		EventParticipantDisconnected,
		EventParticipantFailed,
		EventTrackAdded,
		EventTrackDisabled,
		EventTrackEnabled,
		EventTrackRemoved:
		return true
	}
	return false
}

type Track struct {
	ID   string    `json:"id"`
	Kind TrackKind `json:"kind"`
}

type Event struct {
	Event          EventType `json:"event"`
	Time           int64     `json:"time,omitempty"`
	ParticipantSID string    `json:"participant_sid"`
	Address        string    `json:"address,omitempty"`
	Tracks         []Track   `json:"tracks"`
}

type Participant struct {
	ParticipantSID string  `json:"participant_sid"`
	Address        string  `json:"address,omitempty"`
	Tracks         []Track `json:"tracks"`
}

type ConversationState struct {
	InstanceVersion int64         `json:"instance_version"`
	SID             string        `json:"sid"`
	Participants    []Participant `json:"participants"`
}

// Notification is either a *FullNotification or a *PartialNotification.
type Notification interface {
	Version() string
	IsFull() bool
}

type FullNotification struct {
	ProtocolVersion   string            `json:"protocol_version"`
	ConversationState ConversationState `json:"conversation_state"`
}

func (n *FullNotification) Version() string { return n.ProtocolVersion }
func (n *FullNotification) IsFull() bool    { return true }

type PartialNotification struct {
	ProtocolVersion string  `json:"protocol_version"`
	EventList       []Event `json:"event_list"`
}

func (n *PartialNotification) Version() string { return n.ProtocolVersion }
func (n *PartialNotification) IsFull() bool    { return false }

type DescriptionType string

const (
	DescriptionCreateOffer DescriptionType = "create-offer"
	DescriptionOffer       DescriptionType = "offer"
	DescriptionAnswer      DescriptionType = "answer"
	DescriptionClose       DescriptionType = "close"
)

func (t DescriptionType) Valid() bool {
	switch t {
	case DescriptionCreateOffer, DescriptionOffer, DescriptionAnswer, DescriptionClose:
		return true
	}
	return false
}

// RequiresSDP is true for descriptions that carry a session description.
func (t DescriptionType) RequiresSDP() bool {
	return t == DescriptionOffer || t == DescriptionAnswer
}

type Description struct {
	Type     DescriptionType `json:"type"`
	SDP      string          `json:"sdp,omitempty"`
	Revision int64           `json:"revision,omitempty"`
}

// PeerConnection is a single instruction for the peer connection identified by ID.
type PeerConnection struct {
	ID          string      `json:"id"`
	Description Description `json:"description"`
}

type PeerConnections struct {
	ProtocolVersion string           `json:"protocol_version"`
	PeerConnections []PeerConnection `json:"peer_connections"`
}

func NewPeerConnections(pcs ...PeerConnection) *PeerConnections {
	return &PeerConnections{
		ProtocolVersion: ProtocolVersion,
		PeerConnections: pcs,
	}
}

// Message is a conversation-info payload as carried on a room channel, where a notification and
// peer connection instructions may share one body. Either part may be empty.
type Message struct {
	Notification    Notification
	PeerConnections []PeerConnection
}

func NewPeerConnectionsMessage(pcs *PeerConnections) *Message {
	if pcs == nil {
		return &Message{}
	}
	return &Message{PeerConnections: pcs.PeerConnections}
}
