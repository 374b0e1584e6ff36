package testutils

import (
	"context"
	"sync"

	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/rtc/types/typesfakes"
)

// Dialog is a FakeDialog that ends like an established dialog: End fires OnEnded once and
// later sends fail.
type Dialog struct {
	*typesfakes.FakeDialog

	lock  sync.Mutex
	ended bool
}

func NewDialog(id, conversationSID, participantSID string) *Dialog {
	d := &Dialog{FakeDialog: &typesfakes.FakeDialog{}}
	d.IDReturns(id)
	d.ConversationSIDReturns(conversationSID)
	d.ParticipantSIDReturns(participantSID)
	d.SendStub = func(context.Context, string, []byte) error {
		if d.IsEnded() {
			return types.ErrDialogEnded
		}
		return nil
	}
	d.EndStub = func() error {
		d.Terminate(nil)
		return nil
	}
	return d
}

// Deliver hands a message to the last registered handler. Returns false when nobody listens.
func (d *Dialog) Deliver(contentType string, body []byte) bool {
	n := d.OnMessageCallCount()
	if n == 0 {
		return false
	}
	d.OnMessageArgsForCall(n - 1)(contentType, body)
	return true
}

// Terminate ends the dialog as if the remote side hung up.
func (d *Dialog) Terminate(err error) {
	d.lock.Lock()
	if d.ended {
		d.lock.Unlock()
		return
	}
	d.ended = true
	d.lock.Unlock()

	if n := d.OnEndedCallCount(); n > 0 {
		d.OnEndedArgsForCall(n - 1)(err)
	}
}

func (d *Dialog) IsEnded() bool {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.ended
}

// Sent returns the bodies of the messages sent so far, in order.
func (d *Dialog) Sent() [][]byte {
	bodies := make([][]byte, 0, d.SendCallCount())
	for i := 0; i < d.SendCallCount(); i++ {
		_, _, body := d.SendArgsForCall(i)
		bodies = append(bodies, body)
	}
	return bodies
}
