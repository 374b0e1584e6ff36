package invite

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/rtc/signaling"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/statemachine"
	"github.com/livekit/conversation-signaling/pkg/telemetry/prometheus"
)

var outgoingV1Transitions = statemachine.Transitions{
	StatePending:  {StateAccepted, StateRejected, StateFailed, StateCanceled},
	StateAccepted: {},
	StateRejected: {},
	StateFailed:   {},
	StateCanceled: {},
}

type OutgoingInviteV1Params struct {
	UserAgent   types.UserAgent
	Identities  []string
	Room        signaling.RoomParams
	CallTimeout time.Duration
	Logger      logger.Logger
}

// OutgoingInviteV1 invites several identities at once. The first to accept creates the
// conversation; later acceptors join it.
type OutgoingInviteV1 struct {
	*base[*signaling.ConversationV1]

	params OutgoingInviteV1Params
	ctx    context.Context
	cancel context.CancelFunc

	lock         sync.Mutex
	conversation *signaling.ConversationV1
	answered     int
	rejected     int
	firstErr     error
}

func NewOutgoingInviteV1(params OutgoingInviteV1Params) (*OutgoingInviteV1, error) {
	if len(params.Identities) == 0 {
		return nil, ErrNoRecipients
	}
	if params.CallTimeout <= 0 {
		params.CallTimeout = DefaultCallTimeout
	}
	if params.Room.Identity == "" {
		params.Room.Identity = params.UserAgent.Identity()
	}

	ctx, cancel := context.WithTimeout(context.Background(), params.CallTimeout)
	inv := &OutgoingInviteV1{
		base:   newBase[*signaling.ConversationV1](prometheus.DirectionOutgoing, outgoingV1Transitions, params.Logger),
		params: params,
		ctx:    ctx,
		cancel: cancel,
	}
	inv.logger = inv.logger.WithValues("to", params.Identities)

	for _, identity := range params.Identities {
		go inv.call(identity)
	}
	go inv.watchTimeout()
	return inv, nil
}

func (inv *OutgoingInviteV1) Identities() []string {
	return inv.params.Identities
}

func (inv *OutgoingInviteV1) call(identity string) {
	dialog, err := inv.params.UserAgent.Invite(inv.ctx, identity)

	inv.lock.Lock()
	defer inv.lock.Unlock()

	inv.answered++
	if err == nil {
		inv.acceptedLocked(identity, dialog)
	} else {
		inv.logger.Infow("recipient did not accept", "identity", identity, "error", err)
		if errors.Is(err, types.ErrRejected) {
			inv.rejected++
		} else if inv.firstErr == nil {
			inv.firstErr = err
		}
	}

	if inv.answered < len(inv.params.Identities) {
		return
	}
	inv.cancel()

	if inv.sm.State() != StatePending {
		return
	}
	if inv.rejected == len(inv.params.Identities) {
		inv.sm.TryTransition(StateRejected, nil, ErrInviteRejected)
		return
	}
	failure := inv.firstErr
	if failure == nil {
		failure = ErrInviteFailed
	}
	if errors.Is(failure, context.DeadlineExceeded) {
		failure = ErrInviteTimeout
	}
	inv.sm.TryTransition(StateFailed, nil, failure)
}

func (inv *OutgoingInviteV1) acceptedLocked(identity string, dialog types.Dialog) {
	switch {
	case inv.conversation != nil && inv.conversation.IsConnected():
		if err := inv.conversation.AddDialog(dialog); err != nil {
			inv.logger.Warnw("could not add dialog", err, "identity", identity)
			return
		}
		inv.logger.Infow("recipient joined", "identity", identity)

	case inv.sm.State() == StatePending:
		c, err := signaling.NewConversationV1(inv.params.Room, dialog)
		if err != nil {
			inv.logger.Warnw("could not create conversation", err, "identity", identity)
			if inv.firstErr == nil {
				inv.firstErr = err
			}
			return
		}
		if !inv.sm.TryTransition(StateAccepted, nil, nil) {
			c.Disconnect(ErrInviteCanceled)
			return
		}
		inv.conversation = c
		inv.result.Resolve(c)
		inv.logger.Infow("invite accepted", "identity", identity, "sid", c.SID())

	default:
		_ = dialog.End()
	}
}

func (inv *OutgoingInviteV1) watchTimeout() {
	<-inv.ctx.Done()
	if !errors.Is(inv.ctx.Err(), context.DeadlineExceeded) {
		return
	}

	inv.lock.Lock()
	defer inv.lock.Unlock()

	if inv.sm.TryTransition(StateFailed, nil, ErrInviteTimeout) {
		inv.logger.Infow("invite timed out")
	}
}

// Cancel abandons a pending invite and cancels every outstanding invitation.
func (inv *OutgoingInviteV1) Cancel() error {
	if _, err := inv.sm.Preempt(StateCanceled, "", ErrInviteCanceled); err != nil {
		return err
	}
	inv.cancel()
	return nil
}

var outgoingV2Transitions = statemachine.Transitions{
	StatePending:  {StateAccepted, StateRejected, StateFailed},
	StateAccepted: {},
	StateRejected: {},
	StateFailed:   {},
}

type OutgoingInviteV2Params struct {
	UserAgent   types.UserAgent
	RoomName    string
	Room        signaling.RoomV2Params
	CallTimeout time.Duration
	Logger      logger.Logger
}

// OutgoingInviteV2 connects to a named room.
type OutgoingInviteV2 struct {
	*base[*signaling.RoomV2]

	params OutgoingInviteV2Params
}

func NewOutgoingInviteV2(params OutgoingInviteV2Params) *OutgoingInviteV2 {
	if params.CallTimeout <= 0 {
		params.CallTimeout = DefaultCallTimeout
	}
	if params.Room.Identity == "" {
		params.Room.Identity = params.UserAgent.Identity()
	}

	inv := &OutgoingInviteV2{
		base:   newBase[*signaling.RoomV2](prometheus.DirectionOutgoing, outgoingV2Transitions, params.Logger),
		params: params,
	}
	inv.logger = inv.logger.WithValues("room", params.RoomName)
	go inv.connect()
	return inv
}

func (inv *OutgoingInviteV2) RoomName() string {
	return inv.params.RoomName
}

func (inv *OutgoingInviteV2) connect() {
	ctx, cancel := context.WithTimeout(context.Background(), inv.params.CallTimeout)
	defer cancel()

	dialog, err := inv.params.UserAgent.Connect(ctx, inv.params.RoomName)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrRejected):
			inv.sm.TryTransition(StateRejected, nil, ErrInviteRejected)
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			inv.sm.TryTransition(StateFailed, nil, ErrInviteTimeout)
		default:
			inv.sm.TryTransition(StateFailed, nil, err)
		}
		return
	}

	room, err := signaling.NewRoomV2(inv.params.Room, dialog)
	if err != nil {
		inv.sm.TryTransition(StateFailed, nil, err)
		return
	}
	if !inv.sm.TryTransition(StateAccepted, nil, nil) {
		room.Disconnect(ErrInviteFailed)
		return
	}
	inv.result.Resolve(room)
	inv.logger.Infow("connected to room", "sid", room.SID())
}
