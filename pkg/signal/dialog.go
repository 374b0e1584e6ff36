package signal

import (
	"context"
	"sync"

	"github.com/livekit/conversation-signaling/pkg/rtc/types"
)

type inbound struct {
	contentType string
	body        []byte
}

// Dialog is an established session multiplexed over the user agent's connection. Messages
// received before a handler is registered are held and replayed to it.
type Dialog struct {
	ua              *UserAgent
	id              string
	conversationSID string
	participantSID  string

	lock      sync.Mutex
	onMessage func(contentType string, body []byte)
	onEnded   func(err error)
	held      []inbound
	ended     bool
}

var _ types.Dialog = (*Dialog)(nil)

func newDialog(ua *UserAgent, id, conversationSID, participantSID string) *Dialog {
	return &Dialog{
		ua:              ua,
		id:              id,
		conversationSID: conversationSID,
		participantSID:  participantSID,
	}
}

func (d *Dialog) ID() string {
	return d.id
}

func (d *Dialog) ConversationSID() string {
	return d.conversationSID
}

func (d *Dialog) ParticipantSID() string {
	return d.participantSID
}

func (d *Dialog) Send(ctx context.Context, contentType string, body []byte) error {
	if d.isEnded() {
		return types.ErrDialogEnded
	}
	return d.ua.send(ctx, &Envelope{
		Type:        TypeMessage,
		DialogID:    d.id,
		ContentType: contentType,
		Body:        string(body),
	})
}

// Refer asks the server to invite identity into this dialog's conversation.
func (d *Dialog) Refer(ctx context.Context, identity string) error {
	if d.isEnded() {
		return types.ErrDialogEnded
	}
	return d.ua.send(ctx, &Envelope{
		Type:     TypeRefer,
		DialogID: d.id,
		Target:   identity,
	})
}

// End hangs up. OnEnded is called with a nil error.
func (d *Dialog) End() error {
	if !d.finish(nil, true) {
		return nil
	}
	return d.ua.send(context.Background(), &Envelope{Type: TypeBye, DialogID: d.id})
}

func (d *Dialog) OnMessage(f func(contentType string, body []byte)) {
	d.lock.Lock()
	d.onMessage = f
	held := d.held
	d.held = nil
	d.lock.Unlock()

	for _, m := range held {
		f(m.contentType, m.body)
	}
}

func (d *Dialog) OnEnded(f func(err error)) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.onEnded = f
}

func (d *Dialog) deliver(contentType string, body []byte) {
	d.lock.Lock()
	if d.ended {
		d.lock.Unlock()
		return
	}
	onMessage := d.onMessage
	if onMessage == nil {
		d.held = append(d.held, inbound{contentType: contentType, body: body})
	}
	d.lock.Unlock()

	if onMessage != nil {
		onMessage(contentType, body)
	}
}

// finish returns false when the dialog had already ended.
func (d *Dialog) finish(err error, local bool) bool {
	d.lock.Lock()
	if d.ended {
		d.lock.Unlock()
		return false
	}
	d.ended = true
	d.held = nil
	onEnded := d.onEnded
	d.lock.Unlock()

	d.ua.removeDialog(d.id)
	d.ua.logger.Debugw("dialog ended", "dialog", d.id, "local", local, "error", err)
	if onEnded != nil {
		onEnded(err)
	}
	return true
}

func (d *Dialog) isEnded() bool {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.ended
}
