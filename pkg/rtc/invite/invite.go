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

// Package invite implements the lifecycles of invitations to a conversation: incoming ones that
// the local user accepts or rejects, and outgoing ones to identities or to a room.
package invite

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/statemachine"
	"github.com/livekit/conversation-signaling/pkg/telemetry/prometheus"
	"github.com/livekit/conversation-signaling/pkg/utils"
)

const (
	StatePending   statemachine.State = "pending"
	StateAccepting statemachine.State = "accepting"
	StateAccepted  statemachine.State = "accepted"
	StateRejected  statemachine.State = "rejected"
	StateCanceled  statemachine.State = "canceled"
	StateFailed    statemachine.State = "failed"

	DefaultCallTimeout = 50 * time.Second
)

var (
	ErrInviteRejected = errors.New("invite rejected")
	ErrInviteCanceled = errors.New("invite canceled")
	ErrInviteFailed   = errors.New("invite failed")
	ErrInviteTimeout  = errors.New("invite timed out")
	ErrNoRecipients   = errors.New("no recipients")
)

// base carries the state machine and the settled result shared by every invite kind.
type base[T any] struct {
	id        string
	direction string
	logger    logger.Logger
	sm        *statemachine.StateMachine
	result    *utils.Deferred[T]
}

func newBase[T any](direction string, transitions statemachine.Transitions, l logger.Logger) *base[T] {
	if l == nil {
		l = logger.GetLogger()
	}
	id := utils.NewGuid(utils.InvitePrefix)
	l = l.WithValues("invite", id, "direction", direction)

	b := &base[T]{
		id:        id,
		direction: direction,
		logger:    l,
		sm: statemachine.MustNew(statemachine.Params{
			Name:        "invite",
			Initial:     StatePending,
			Transitions: transitions,
			Logger:      l,
		}),
		result: utils.NewDeferred[T](),
	}
	b.sm.OnStateChanged(b.onStateChanged)
	return b
}

func (b *base[T]) onStateChanged(state statemachine.State, err error) {
	b.logger.Debugw("invite state changed", "state", state, "error", err)

	switch state {
	case StateRejected:
		b.settleError(err, ErrInviteRejected)
	case StateCanceled:
		b.settleError(err, ErrInviteCanceled)
	case StateFailed:
		b.settleError(err, ErrInviteFailed)
	case StateAccepted:
	default:
		return
	}
	prometheus.RecordInvite(b.direction, string(state))
}

func (b *base[T]) settleError(err, fallback error) {
	if err == nil {
		err = fallback
	}
	b.result.Reject(err)
}

func (b *base[T]) ID() string {
	return b.id
}

func (b *base[T]) State() statemachine.State {
	return b.sm.State()
}

// Wait blocks until the invite settles and returns its result or the reason it did not succeed.
func (b *base[T]) Wait(ctx context.Context) (T, error) {
	return b.result.Wait(ctx)
}

// Done is closed once the invite settled.
func (b *base[T]) Done() <-chan struct{} {
	return b.result.Done()
}
