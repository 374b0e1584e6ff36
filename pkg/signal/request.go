package signal

import (
	"context"
	"sync"

	"github.com/livekit/conversation-signaling/pkg/rtc/types"
)

// IncomingRequest is an invite relayed by the signaling server.
type IncomingRequest struct {
	ua  *UserAgent
	env *Envelope

	lock       sync.Mutex
	answered   bool
	canceled   bool
	onCanceled func()
}

var _ types.IncomingRequest = (*IncomingRequest)(nil)

func newIncomingRequest(ua *UserAgent, env *Envelope) *IncomingRequest {
	return &IncomingRequest{
		ua:  ua,
		env: env,
	}
}

func (r *IncomingRequest) ID() string {
	return r.env.DialogID
}

func (r *IncomingRequest) From() string {
	return r.env.From
}

func (r *IncomingRequest) ConversationSID() string {
	return r.env.ConversationSID
}

// Accept answers the invite and waits for the server to confirm the dialog.
func (r *IncomingRequest) Accept(ctx context.Context) (types.Dialog, error) {
	if err := r.markAnswered(); err != nil {
		return nil, err
	}

	ch, err := r.ua.addPending(r.ID())
	if err != nil {
		return nil, err
	}
	if err := r.ua.send(ctx, &Envelope{Type: TypeAccept, DialogID: r.ID()}); err != nil {
		r.ua.removePending(r.ID())
		return nil, err
	}

	select {
	case a := <-ch:
		if a.err != nil {
			return nil, a.err
		}
		return r.ua.getDialog(r.ID())

	case <-ctx.Done():
		if r.ua.removePending(r.ID()) {
			_ = r.ua.send(context.Background(), &Envelope{Type: TypeBye, DialogID: r.ID()})
		}
		return nil, ctx.Err()

	case <-r.ua.closed.Watch():
		return nil, types.ErrTransportClose
	}
}

func (r *IncomingRequest) Reject() error {
	if err := r.markAnswered(); err != nil {
		return err
	}
	r.ua.removeRequest(r.ID())
	return r.ua.send(context.Background(), &Envelope{Type: TypeReject, DialogID: r.ID()})
}

func (r *IncomingRequest) OnCanceled(f func()) {
	r.lock.Lock()
	canceled := r.canceled
	r.onCanceled = f
	r.lock.Unlock()

	if canceled {
		f()
	}
}

func (r *IncomingRequest) markAnswered() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.canceled {
		return types.ErrCanceled
	}
	if r.answered {
		return types.ErrDialogEnded
	}
	r.answered = true
	return nil
}

func (r *IncomingRequest) cancel() {
	r.lock.Lock()
	if r.canceled {
		r.lock.Unlock()
		return
	}
	r.canceled = true
	onCanceled := r.onCanceled
	r.lock.Unlock()

	if onCanceled != nil {
		onCanceled()
	}
}
