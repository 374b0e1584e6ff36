package types

import (
	"context"
	"errors"
	"time"

	"github.com/pion/webrtc/v3"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

var (
	ErrRejected       = errors.New("request rejected by remote")
	ErrCanceled       = errors.New("request canceled by remote")
	ErrDialogEnded    = errors.New("dialog ended")
	ErrTransportClose = errors.New("transport closed")
)

type TrackKind = conversationinfo.TrackKind

// LocalTrack is a media track published by the local participant.
type LocalTrack interface {
	ID() string
	Kind() TrackKind
	// TrackLocal is nil for data tracks.
	TrackLocal() webrtc.TrackLocal
}

type MediaStream interface {
	ID() string
	Tracks() []LocalTrack
}

// RemoteTrack is a track received on one of the peer connections.
type RemoteTrack struct {
	ID               string
	Kind             TrackKind
	StreamID         string
	PeerConnectionID string
}

type PeerConnectionParams struct {
	ID                  string
	Configuration       webrtc.Configuration
	IceGatheringTimeout time.Duration
	Logger              logger.Logger
}

type PeerConnectionFactory func(params PeerConnectionParams) (PeerConnection, error)

//counterfeiter:generate . PeerConnection
type PeerConnection interface {
	ID() string

	// CreateOffer sets and returns a local offer once ICE gathering finished or timed out.
	CreateOffer(ctx context.Context) (webrtc.SessionDescription, error)
	// CreateAnswer sets and returns a local answer once ICE gathering finished or timed out.
	CreateAnswer(ctx context.Context) (webrtc.SessionDescription, error)
	SetRemoteDescription(ctx context.Context, sd webrtc.SessionDescription) error
	LocalDescription() *webrtc.SessionDescription
	SignalingState() webrtc.SignalingState

	SetConfiguration(conf webrtc.Configuration) error
	SetLocalStreams(streams []MediaStream) error

	RemoteTracks() []RemoteTrack
	OnRemoteTracksChanged(f func())

	Close() error
}

// Dialog is an established signaling session carrying conversation-info messages.
//counterfeiter:generate . Dialog
type Dialog interface {
	ID() string
	ConversationSID() string
	// ParticipantSID is the sid assigned to the local participant in this dialog.
	ParticipantSID() string

	Send(ctx context.Context, contentType string, body []byte) error
	Refer(ctx context.Context, identity string) error
	End() error

	OnMessage(f func(contentType string, body []byte))
	OnEnded(f func(err error))
}

// IncomingRequest is an invitation received from a remote party.
//counterfeiter:generate . IncomingRequest
type IncomingRequest interface {
	ID() string
	From() string
	ConversationSID() string

	Accept(ctx context.Context) (Dialog, error)
	Reject() error
	OnCanceled(f func())
}

//counterfeiter:generate . UserAgent
type UserAgent interface {
	Identity() string

	// Invite sends an invitation to identity. Cancelling ctx cancels the transaction.
	Invite(ctx context.Context, identity string) (Dialog, error)
	// Connect joins the named room.
	Connect(ctx context.Context, room string) (Dialog, error)

	OnIncomingRequest(f func(req IncomingRequest))
	Close() error
}
