package utils

import (
	"fmt"

	"github.com/lithammer/shortuuid/v3"
	"go.uber.org/atomic"
)

const (
	RoomPrefix           = "RM_"
	ParticipantPrefix    = "PA_"
	PeerConnectionPrefix = "PC_"
	DialogPrefix         = "DG_"
	InvitePrefix         = "IV_"
	TrackPrefix          = "TR_"
	StreamPrefix         = "MS_"
)

func NewGuid(prefix string) string {
	return prefix + shortuuid.New()
}

// IDGenerator hands out unique ids for a prefix.
type IDGenerator interface {
	NewID(prefix string) string
}

type guidGenerator struct{}

func (guidGenerator) NewID(prefix string) string {
	return NewGuid(prefix)
}

// GuidGenerator returns random short uuids.
var GuidGenerator IDGenerator = guidGenerator{}

// SequentialIDGenerator returns prefix followed by an increasing counter, for readable logs and
// deterministic tests.
type SequentialIDGenerator struct {
	counter atomic.Uint64
}

func (g *SequentialIDGenerator) NewID(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, g.counter.Inc())
}
