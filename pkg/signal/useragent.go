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

package signal

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/gammazero/workerpool"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/utils"
)

const (
	pingFrequency = 10 * time.Second
	pingTimeout   = 2 * time.Second
	writeTimeout  = 5 * time.Second
)

var ErrRemote = errors.New("signaling server error")

type UserAgentParams struct {
	URL      string
	Identity string
	Header   http.Header
	Dialer   *websocket.Dialer
	Logger   logger.Logger
}

type answer struct {
	env *Envelope
	err error
}

// UserAgent is a websocket connection to the signaling server through which invitations are
// sent and received and dialogs carry their messages.
type UserAgent struct {
	params UserAgentParams
	logger logger.Logger
	conn   *websocket.Conn
	// inbound frames are handled in order, one at a time
	worker *workerpool.WorkerPool

	wsLock sync.Mutex

	lock      sync.Mutex
	pending   map[string]chan answer
	dialogs   map[string]*Dialog
	requests  map[string]*IncomingRequest
	onRequest func(req types.IncomingRequest)

	closed core.Fuse
}

var _ types.UserAgent = (*UserAgent)(nil)

func NewUserAgent(ctx context.Context, params UserAgentParams) (*UserAgent, error) {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	dialer := params.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, _, err := dialer.DialContext(ctx, params.URL, params.Header)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", params.URL)
	}

	ua := &UserAgent{
		params:   params,
		logger:   params.Logger.WithValues("identity", params.Identity),
		conn:     conn,
		worker:   workerpool.New(1),
		pending:  make(map[string]chan answer),
		dialogs:  make(map[string]*Dialog),
		requests: make(map[string]*IncomingRequest),
	}
	if err := ua.send(ctx, &Envelope{Type: TypeRegister, From: params.Identity}); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "register")
	}

	go ua.readWorker()
	go ua.pingWorker()
	ua.logger.Infow("connected to signaling server", "url", params.URL)
	return ua, nil
}

func (ua *UserAgent) Identity() string {
	return ua.params.Identity
}

func (ua *UserAgent) OnIncomingRequest(f func(req types.IncomingRequest)) {
	ua.lock.Lock()
	defer ua.lock.Unlock()

	ua.onRequest = f
}

// Invite calls identity and returns the dialog once it accepted.
func (ua *UserAgent) Invite(ctx context.Context, identity string) (types.Dialog, error) {
	return ua.request(ctx, &Envelope{Type: TypeInvite, Target: identity})
}

// Connect joins the room named room.
func (ua *UserAgent) Connect(ctx context.Context, room string) (types.Dialog, error) {
	return ua.request(ctx, &Envelope{Type: TypeConnect, Target: room})
}

func (ua *UserAgent) request(ctx context.Context, env *Envelope) (types.Dialog, error) {
	env.DialogID = utils.NewGuid(utils.DialogPrefix)
	ch, err := ua.addPending(env.DialogID)
	if err != nil {
		return nil, err
	}

	if err := ua.send(ctx, env); err != nil {
		ua.removePending(env.DialogID)
		return nil, err
	}

	select {
	case a := <-ch:
		if a.err != nil {
			return nil, a.err
		}
		return ua.getDialog(env.DialogID)

	case <-ctx.Done():
		if ua.removePending(env.DialogID) {
			_ = ua.send(context.Background(), &Envelope{Type: TypeCancel, DialogID: env.DialogID})
		}
		return nil, ctx.Err()

	case <-ua.closed.Watch():
		return nil, types.ErrTransportClose
	}
}

func (ua *UserAgent) addPending(dialogID string) (chan answer, error) {
	ua.lock.Lock()
	defer ua.lock.Unlock()

	if ua.closed.IsBroken() {
		return nil, types.ErrTransportClose
	}
	ch := make(chan answer, 1)
	ua.pending[dialogID] = ch
	return ch, nil
}

func (ua *UserAgent) removePending(dialogID string) bool {
	ua.lock.Lock()
	defer ua.lock.Unlock()

	_, ok := ua.pending[dialogID]
	delete(ua.pending, dialogID)
	return ok
}

func (ua *UserAgent) getDialog(dialogID string) (types.Dialog, error) {
	ua.lock.Lock()
	defer ua.lock.Unlock()

	d, ok := ua.dialogs[dialogID]
	if !ok {
		return nil, types.ErrDialogEnded
	}
	return d, nil
}

func (ua *UserAgent) send(ctx context.Context, env *Envelope) error {
	if ua.closed.IsBroken() {
		return types.ErrTransportClose
	}
	payload, err := env.Marshal()
	if err != nil {
		return err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(writeTimeout)
	}

	ua.wsLock.Lock()
	defer ua.wsLock.Unlock()

	_ = ua.conn.SetWriteDeadline(deadline)
	if err := ua.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return errors.Wrapf(err, "write %s", env.Type)
	}
	return nil
}

func (ua *UserAgent) readWorker() {
	defer ua.close(types.ErrTransportClose)

	for {
		messageType, payload, err := ua.conn.ReadMessage()
		if err != nil {
			if !ua.closed.IsBroken() {
				ua.logger.Infow("signaling connection closed", "error", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			ua.logger.Debugw("unsupported message", "messageType", messageType)
			continue
		}

		env, err := UnmarshalEnvelope(payload)
		if err != nil {
			ua.logger.Warnw("could not decode envelope", err)
			continue
		}
		ua.worker.Submit(func() {
			ua.handle(env)
		})
	}
}

func (ua *UserAgent) pingWorker() {
	ticker := time.NewTicker(pingFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ua.wsLock.Lock()
			err := ua.conn.WriteControl(websocket.PingMessage, []byte(""), time.Now().Add(pingTimeout))
			ua.wsLock.Unlock()
			if err != nil {
				return
			}
		case <-ua.closed.Watch():
			return
		}
	}
}

func (ua *UserAgent) handle(env *Envelope) {
	switch env.Type {
	case TypeAccepted:
		ua.handleAccepted(env)

	case TypeReject, TypeError:
		err := types.ErrRejected
		if env.Type == TypeError {
			err = errors.Wrap(ErrRemote, env.Error)
		}
		if !ua.answer(env.DialogID, answer{err: err}) {
			ua.logger.Debugw("unexpected answer", "type", env.Type, "dialog", env.DialogID)
		}

	case TypeInvite:
		ua.handleInvite(env)

	case TypeCancel:
		ua.lock.Lock()
		req, ok := ua.requests[env.DialogID]
		delete(ua.requests, env.DialogID)
		ua.lock.Unlock()
		if ok {
			req.cancel()
		}
		ua.answer(env.DialogID, answer{err: types.ErrCanceled})

	case TypeMessage:
		ua.lock.Lock()
		d, ok := ua.dialogs[env.DialogID]
		ua.lock.Unlock()
		if !ok {
			ua.logger.Debugw("message for unknown dialog", "dialog", env.DialogID)
			return
		}
		d.deliver(env.ContentType, []byte(env.Body))

	case TypeBye:
		ua.lock.Lock()
		d, ok := ua.dialogs[env.DialogID]
		ua.lock.Unlock()
		if ok {
			d.finish(types.ErrDialogEnded, false)
		}

	default:
		ua.logger.Debugw("unsupported envelope", "type", env.Type)
	}
}

func (ua *UserAgent) handleAccepted(env *Envelope) {
	ua.lock.Lock()
	conversationSID := env.ConversationSID
	if req, ok := ua.requests[env.DialogID]; ok {
		delete(ua.requests, env.DialogID)
		if conversationSID == "" {
			conversationSID = req.ConversationSID()
		}
	}
	d := newDialog(ua, env.DialogID, conversationSID, env.ParticipantSID)
	_, waiting := ua.pending[env.DialogID]
	if waiting {
		ua.dialogs[env.DialogID] = d
	}
	ua.lock.Unlock()

	if !waiting || !ua.answer(env.DialogID, answer{env: env}) {
		// the request was abandoned in the meantime
		ua.removeDialog(env.DialogID)
		_ = ua.send(context.Background(), &Envelope{Type: TypeBye, DialogID: env.DialogID})
		return
	}
	ua.logger.Debugw("dialog established", "dialog", env.DialogID, "conversation", conversationSID)
}

func (ua *UserAgent) handleInvite(env *Envelope) {
	req := newIncomingRequest(ua, env)

	ua.lock.Lock()
	ua.requests[env.DialogID] = req
	onRequest := ua.onRequest
	ua.lock.Unlock()

	if onRequest == nil {
		ua.logger.Infow("rejecting invite, no handler", "from", env.From)
		_ = req.Reject()
		return
	}
	// handlers may block on the answer, which this worker delivers
	go onRequest(req)
}

func (ua *UserAgent) answer(dialogID string, a answer) bool {
	ua.lock.Lock()
	ch, ok := ua.pending[dialogID]
	delete(ua.pending, dialogID)
	ua.lock.Unlock()

	if !ok {
		return false
	}
	ch <- a
	return true
}

func (ua *UserAgent) removeDialog(dialogID string) {
	ua.lock.Lock()
	defer ua.lock.Unlock()

	delete(ua.dialogs, dialogID)
}

func (ua *UserAgent) removeRequest(dialogID string) {
	ua.lock.Lock()
	defer ua.lock.Unlock()

	delete(ua.requests, dialogID)
}

func (ua *UserAgent) Close() error {
	err := ua.conn.Close()
	ua.close(types.ErrTransportClose)
	return err
}

func (ua *UserAgent) close(reason error) {
	ua.lock.Lock()
	if ua.closed.IsBroken() {
		ua.lock.Unlock()
		return
	}
	ua.closed.Break()
	dialogs := make([]*Dialog, 0, len(ua.dialogs))
	for _, d := range ua.dialogs {
		dialogs = append(dialogs, d)
	}
	ua.dialogs = make(map[string]*Dialog)
	ua.pending = make(map[string]chan answer)
	ua.requests = make(map[string]*IncomingRequest)
	ua.lock.Unlock()

	for _, d := range dialogs {
		d.finish(reason, false)
	}
	ua.worker.Stop()
	ua.logger.Debugw("user agent closed")
}
