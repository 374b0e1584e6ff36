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

package conversationinfo

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"
)

type object map[string]json.RawMessage

const (
	fieldProtocolVersion   = "protocol_version"
	fieldConversationState = "conversation_state"
	fieldEventList         = "event_list"
	fieldPeerConnections   = "peer_connections"
)

// ParseNotification validates payload and returns a *FullNotification when it carries a
// conversation_state, otherwise a *PartialNotification. payload may be a string, []byte,
// json.RawMessage or map[string]interface{}.
//
// Malformed top-level fields fail the parse. Malformed entries of event_list, participants and
// tracks are dropped.
func ParseNotification(payload interface{}) (Notification, error) {
	obj, err := parseEnvelope(payload)
	if err != nil {
		return nil, err
	}
	return parseNotification(obj)
}

// ParsePeerConnections validates payload and returns its peer connection instructions.
// Malformed instructions are dropped.
func ParsePeerConnections(payload interface{}) (*PeerConnections, error) {
	obj, err := parseEnvelope(payload)
	if err != nil {
		return nil, err
	}
	pcs, err := parsePeerConnectionList(obj[fieldPeerConnections])
	if err != nil {
		return nil, err
	}
	return NewPeerConnections(pcs...), nil
}

// ParseMessage parses a payload that may carry a notification, peer connection instructions,
// or both.
func ParseMessage(payload interface{}) (*Message, error) {
	obj, err := parseEnvelope(payload)
	if err != nil {
		return nil, err
	}

	msg := &Message{}
	_, hasState := obj[fieldConversationState]
	_, hasEvents := obj[fieldEventList]
	if hasState || hasEvents {
		if msg.Notification, err = parseNotification(obj); err != nil {
			return nil, err
		}
	}
	if msg.PeerConnections, err = parsePeerConnectionList(obj[fieldPeerConnections]); err != nil {
		return nil, err
	}
	return msg, nil
}

func parseEnvelope(payload interface{}) (object, error) {
	var raw []byte
	switch p := payload.(type) {
	case string:
		raw = []byte(p)
	case []byte:
		raw = p
	case json.RawMessage:
		raw = p
	case map[string]interface{}:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidPayload, err.Error())
		}
		raw = b
	default:
		return nil, errors.Wrapf(ErrInvalidPayload, "unsupported payload type %T", payload)
	}

	obj, ok := asObject(raw)
	if !ok {
		return nil, errors.Wrap(ErrInvalidPayload, "payload is not a JSON object")
	}

	rawVersion, ok := obj[fieldProtocolVersion]
	if !ok || isNull(rawVersion) {
		return nil, ErrMissingProtocolVersion
	}
	version, ok := asString(rawVersion)
	if !ok || version != ProtocolVersion {
		return nil, errors.Wrapf(ErrUnsupportedProtocolVersion, "%s", string(rawVersion))
	}
	return obj, nil
}

func parseNotification(obj object) (Notification, error) {
	if rawState, ok := obj[fieldConversationState]; ok {
		state, err := parseConversationState(rawState)
		if err != nil {
			return nil, err
		}
		return &FullNotification{
			ProtocolVersion:   ProtocolVersion,
			ConversationState: *state,
		}, nil
	}

	events := []Event{}
	if rawEvents, ok := obj[fieldEventList]; ok && !isNull(rawEvents) {
		entries, ok := asArray(rawEvents)
		if !ok {
			return nil, ErrInvalidEventList
		}
		for _, entry := range entries {
			event, err := parseEvent(entry)
			if err != nil {
				logger.Debugw("dropping invalid event", "error", err)
				continue
			}
			events = append(events, *event)
		}
	}
	return &PartialNotification{
		ProtocolVersion: ProtocolVersion,
		EventList:       events,
	}, nil
}

func parseConversationState(raw json.RawMessage) (*ConversationState, error) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, errors.Wrap(ErrInvalidConversationState, "not an object")
	}

	version, ok := asInt(obj["instance_version"])
	if !ok {
		return nil, errors.Wrap(ErrInvalidConversationState, "instance_version")
	}
	sid, ok := asString(obj["sid"])
	if !ok {
		return nil, errors.Wrap(ErrInvalidConversationState, "sid")
	}

	state := &ConversationState{
		InstanceVersion: version,
		SID:             sid,
		Participants:    []Participant{},
	}
	if rawParticipants, ok := obj["participants"]; ok && !isNull(rawParticipants) {
		entries, ok := asArray(rawParticipants)
		if !ok {
			return nil, errors.Wrap(ErrInvalidConversationState, "participants")
		}
		for _, entry := range entries {
			p, err := parseParticipant(entry)
			if err != nil {
				logger.Debugw("dropping invalid participant", "error", err)
				continue
			}
			state.Participants = append(state.Participants, *p)
		}
	}
	return state, nil
}

func parseParticipant(raw json.RawMessage) (*Participant, error) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, errors.New("participant is not an object")
	}
	sid, ok := asNonEmptyString(obj["participant_sid"])
	if !ok {
		return nil, errors.New("participant_sid")
	}
	address, ok := optionalString(obj, "address")
	if !ok {
		return nil, errors.New("address")
	}
	tracks, ok := parseTracks(obj["tracks"])
	if !ok {
		return nil, errors.New("tracks")
	}
	return &Participant{
		ParticipantSID: sid,
		Address:        address,
		Tracks:         tracks,
	}, nil
}

func parseEvent(raw json.RawMessage) (*Event, error) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, errors.New("event is not an object")
	}
	name, ok := asString(obj["event"])
	if !ok || !EventType(name).Valid() {
		return nil, errors.Errorf("unknown event %s", string(obj["event"]))
	}
	sid, ok := asNonEmptyString(obj["participant_sid"])
	if !ok {
		return nil, errors.New("participant_sid")
	}
	address, ok := optionalString(obj, "address")
	if !ok {
		return nil, errors.New("address")
	}

	var ts int64
	if rawTime, ok := obj["time"]; ok && !isNull(rawTime) {
		if ts, ok = asInt(rawTime); !ok {
			return nil, errors.New("time")
		}
	}

	tracks, ok := parseTracks(obj["tracks"])
	if !ok {
		return nil, errors.New("tracks")
	}
	return &Event{
		Event:          EventType(name),
		Time:           ts,
		ParticipantSID: sid,
		Address:        address,
		Tracks:         tracks,
	}, nil
}

// parseTracks returns false only when raw is present and not an array.
func parseTracks(raw json.RawMessage) ([]Track, bool) {
	tracks := []Track{}
	if raw == nil || isNull(raw) {
		return tracks, true
	}
	entries, ok := asArray(raw)
	if !ok {
		return nil, false
	}
	for _, entry := range entries {
		obj, ok := asObject(entry)
		if !ok {
			continue
		}
		id, ok := asNonEmptyString(obj["id"])
		if !ok {
			logger.Debugw("dropping track without id", "track", string(entry))
			continue
		}
		kind, ok := asString(obj["kind"])
		if !ok || !TrackKind(kind).Valid() {
			logger.Debugw("dropping track with invalid kind", "track", string(entry))
			continue
		}
		tracks = append(tracks, Track{ID: id, Kind: TrackKind(kind)})
	}
	return tracks, true
}

func parsePeerConnectionList(raw json.RawMessage) ([]PeerConnection, error) {
	pcs := []PeerConnection{}
	if raw == nil || isNull(raw) {
		return pcs, nil
	}
	entries, ok := asArray(raw)
	if !ok {
		return nil, ErrInvalidPeerConnections
	}
	for _, entry := range entries {
		pc, err := parsePeerConnection(entry)
		if err != nil {
			logger.Debugw("dropping invalid peer connection", "error", err)
			continue
		}
		pcs = append(pcs, *pc)
	}
	return pcs, nil
}

func parsePeerConnection(raw json.RawMessage) (*PeerConnection, error) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, errors.New("peer connection is not an object")
	}
	id, ok := asNonEmptyString(obj["id"])
	if !ok {
		return nil, errors.New("id")
	}
	desc, ok := asObject(obj["description"])
	if !ok {
		return nil, errors.Errorf("%s: description", id)
	}
	typ, ok := asString(desc["type"])
	if !ok || !DescriptionType(typ).Valid() {
		return nil, errors.Errorf("%s: description type %s", id, string(desc["type"]))
	}

	d := Description{Type: DescriptionType(typ)}
	if d.Type.RequiresSDP() {
		if d.SDP, ok = asNonEmptyString(desc["sdp"]); !ok {
			return nil, errors.Errorf("%s: %s without sdp", id, typ)
		}
	}
	if rawRevision, ok := desc["revision"]; ok && !isNull(rawRevision) {
		if d.Revision, ok = asInt(rawRevision); !ok {
			return nil, errors.Errorf("%s: revision", id)
		}
	}
	return &PeerConnection{ID: id, Description: d}, nil
}

func asObject(raw json.RawMessage) (object, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj object
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func asString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

func asNonEmptyString(raw json.RawMessage) (string, bool) {
	s, ok := asString(raw)
	return s, ok && s != ""
}

func optionalString(obj object, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return "", true
	}
	return asString(raw)
}

func asInt(raw json.RawMessage) (int64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return 0, false
	}
	// rejects quoted numbers and fractions
	if trimmed[0] == '"' {
		return 0, false
	}
	v, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return v, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
