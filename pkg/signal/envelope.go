package signal

import (
	"encoding/json"
)

type MessageType string

const (
	TypeRegister MessageType = "register"
	TypeInvite   MessageType = "invite"
	TypeConnect  MessageType = "connect"
	TypeAccept   MessageType = "accept"
	TypeAccepted MessageType = "accepted"
	TypeReject   MessageType = "reject"
	TypeCancel   MessageType = "cancel"
	TypeMessage  MessageType = "message"
	TypeRefer    MessageType = "refer"
	TypeBye      MessageType = "bye"
	TypeError    MessageType = "error"
)

// Envelope is the frame exchanged with the signaling server. Which fields are set depends on
// Type: invites carry Target (outgoing) or From (incoming), messages carry ContentType and Body.
type Envelope struct {
	Type            MessageType `json:"type"`
	DialogID        string      `json:"dialog_id,omitempty"`
	ConversationSID string      `json:"conversation_sid,omitempty"`
	ParticipantSID  string      `json:"participant_sid,omitempty"`
	Target          string      `json:"target,omitempty"`
	From            string      `json:"from,omitempty"`
	ContentType     string      `json:"content_type,omitempty"`
	Body            string      `json:"body,omitempty"`
	Error           string      `json:"error,omitempty"`
}

func (e *Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func UnmarshalEnvelope(data []byte) (*Envelope, error) {
	env := &Envelope{}
	if err := json.Unmarshal(data, env); err != nil {
		return nil, err
	}
	return env, nil
}
