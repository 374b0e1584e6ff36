package invite

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/rtc/signaling"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/statemachine"
	"github.com/livekit/conversation-signaling/pkg/telemetry/prometheus"
)

var incomingTransitions = statemachine.Transitions{
	StatePending:   {StateRejected, StateCanceled, StateAccepting},
	StateAccepting: {StateAccepted, StateCanceled, StateFailed},
	StateAccepted:  {},
	StateRejected:  {},
	StateCanceled:  {},
	StateFailed:    {},
}

type IncomingInviteParams struct {
	Request     types.IncomingRequest
	Room        signaling.RoomParams
	CallTimeout time.Duration
	Logger      logger.Logger
}

type IncomingInviteV2Params struct {
	Request     types.IncomingRequest
	Room        signaling.RoomV2Params
	CallTimeout time.Duration
	Logger      logger.Logger
}

// joinable is what an accepted invite produces.
type joinable interface {
	SID() string
	Disconnect(err error) bool
}

// incoming drives an invitation received from a remote party. join turns the accepted
// dialog into a room.
type incoming[T joinable] struct {
	*base[T]

	request     types.IncomingRequest
	callTimeout time.Duration
	join        func(dialog types.Dialog) (T, error)
}

// IncomingInvite is an invitation into a conversation. Accept joins the conversation.
type IncomingInvite struct {
	*incoming[*signaling.ConversationV1]
}

func NewIncomingInvite(params IncomingInviteParams) *IncomingInvite {
	return &IncomingInvite{
		incoming: newIncoming(params.Request, params.CallTimeout, params.Logger, func(dialog types.Dialog) (*signaling.ConversationV1, error) {
			return signaling.NewConversationV1(params.Room, dialog)
		}),
	}
}

// IncomingInviteV2 is an invitation into a room. Accept connects to the room over the
// accepted dialog.
type IncomingInviteV2 struct {
	*incoming[*signaling.RoomV2]
}

func NewIncomingInviteV2(params IncomingInviteV2Params) *IncomingInviteV2 {
	return &IncomingInviteV2{
		incoming: newIncoming(params.Request, params.CallTimeout, params.Logger, func(dialog types.Dialog) (*signaling.RoomV2, error) {
			return signaling.NewRoomV2(params.Room, dialog)
		}),
	}
}

func newIncoming[T joinable](
	request types.IncomingRequest,
	callTimeout time.Duration,
	l logger.Logger,
	join func(dialog types.Dialog) (T, error),
) *incoming[T] {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	if l == nil {
		l = logger.GetLogger()
	}

	inv := &incoming[T]{
		base:        newBase[T](prometheus.DirectionIncoming, incomingTransitions, l),
		request:     request,
		callTimeout: callTimeout,
		join:        join,
	}
	inv.logger = inv.logger.WithValues("from", request.From(), "conversation", request.ConversationSID())
	request.OnCanceled(func() {
		if _, err := inv.sm.Preempt(StateCanceled, "", ErrInviteCanceled); err == nil {
			inv.logger.Infow("invite canceled by caller")
		}
	})
	return inv
}

func (inv *incoming[T]) From() string {
	return inv.request.From()
}

func (inv *incoming[T]) ConversationSID() string {
	return inv.request.ConversationSID()
}

// Accept completes the handshake and returns the joined room. An invite canceled
// while accepting returns ErrInviteCanceled and never reaches accepted.
func (inv *incoming[T]) Accept(ctx context.Context) (T, error) {
	var joined T
	err := inv.sm.Bracket(ctx, "accept", func(ctx context.Context, key *statemachine.Key) error {
		if err := inv.sm.Transition(StateAccepting, key, nil); err != nil {
			if inv.sm.State() == StateCanceled {
				return ErrInviteCanceled
			}
			return err
		}

		callCtx, cancel := context.WithTimeout(ctx, inv.callTimeout)
		defer cancel()

		dialog, err := inv.request.Accept(callCtx)
		if err != nil {
			if key.Err() != nil {
				return ErrInviteCanceled
			}
			if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
				err = ErrInviteTimeout
			}
			inv.fail(key, err)
			return err
		}

		room, err := inv.join(dialog)
		if err != nil {
			inv.fail(key, err)
			return err
		}

		if err := inv.sm.Transition(StateAccepted, key, nil); err != nil {
			room.Disconnect(ErrInviteCanceled)
			if key.Err() != nil {
				return ErrInviteCanceled
			}
			return err
		}
		joined = room
		inv.result.Resolve(room)
		return nil
	})

	var zero T
	switch {
	case err == nil:
		inv.logger.Infow("invite accepted", "sid", joined.SID())
		return joined, nil
	case errors.Is(err, statemachine.ErrPreempted):
		return zero, ErrInviteCanceled
	default:
		return zero, err
	}
}

func (inv *incoming[T]) fail(key *statemachine.Key, err error) {
	if terr := inv.sm.Transition(StateFailed, key, err); terr != nil {
		inv.logger.Debugw("could not fail invite", "error", terr)
	}
	inv.logger.Warnw("could not accept invite", err)
}

// Reject declines a pending invite.
func (inv *incoming[T]) Reject() error {
	if err := inv.sm.Transition(StateRejected, nil, ErrInviteRejected); err != nil {
		return err
	}
	if err := inv.request.Reject(); err != nil {
		inv.logger.Warnw("could not reject request", err)
	}
	return nil
}

// Cancel abandons the invite locally, interrupting an accept in progress. A pending request
// is declined towards the caller.
func (inv *incoming[T]) Cancel() error {
	wasPending := inv.sm.State() == StatePending
	if _, err := inv.sm.Preempt(StateCanceled, "", ErrInviteCanceled); err != nil {
		return err
	}
	if wasPending {
		if err := inv.request.Reject(); err != nil {
			inv.logger.Warnw("could not reject request", err)
		}
	}
	return nil
}
