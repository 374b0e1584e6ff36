package signaling

import (
	"errors"
)

var (
	ErrNoActiveDialog          = errors.New("no active dialog")
	ErrRoomDisconnected        = errors.New("room disconnected")
	ErrParticipantDisconnected = errors.New("participant disconnected")
	ErrTrackNotFound           = errors.New("track not found")
	ErrTrackEnded              = errors.New("track ended")
	ErrDialogEnded             = errors.New("last dialog ended")
)
