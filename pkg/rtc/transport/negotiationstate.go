package transport

import "fmt"

type NegotiationState int

const (
	NegotiationStateNone NegotiationState = iota
	// local offer sent, waiting for remote answer
	NegotiationStateRemote
	// remote offer applied, local answer pending
	NegotiationStateLocal
)

func (n NegotiationState) String() string {
	switch n {
	case NegotiationStateNone:
		return "NONE"
	case NegotiationStateRemote:
		return "WAITING_FOR_REMOTE"
	case NegotiationStateLocal:
		return "WAITING_FOR_LOCAL"
	default:
		return fmt.Sprintf("%d", int(n))
	}
}
