package conversationinfo

import (
	"errors"
)

var (
	ErrInvalidPayload             = errors.New("invalid conversation info payload")
	ErrMissingProtocolVersion     = errors.New("missing protocol_version")
	ErrUnsupportedProtocolVersion = errors.New("unsupported protocol_version")
	ErrInvalidConversationState   = errors.New("invalid conversation_state")
	ErrInvalidEventList           = errors.New("invalid event_list")
	ErrInvalidPeerConnections     = errors.New("invalid peer_connections")
)
