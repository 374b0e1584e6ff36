package signal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/signal"
)

const testTimeout = time.Second

// testServer is a scripted signaling server holding a single client connection.
type testServer struct {
	t        *testing.T
	server   *httptest.Server
	received chan *signal.Envelope

	lock   sync.Mutex
	client *websocket.Conn
}

func newTestServer(t *testing.T) *testServer {
	s := &testServer{
		t:        t,
		received: make(chan *signal.Envelope, 16),
	}
	upgrader := websocket.Upgrader{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.lock.Lock()
		s.client = conn
		s.lock.Unlock()

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			env, err := signal.UnmarshalEnvelope(payload)
			if err != nil {
				continue
			}
			s.received <- env
		}
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *testServer) url() string {
	return "ws" + strings.TrimPrefix(s.server.URL, "http")
}

func (s *testServer) expect(typ signal.MessageType) *signal.Envelope {
	select {
	case env := <-s.received:
		require.Equal(s.t, typ, env.Type)
		return env
	case <-time.After(testTimeout):
		s.t.Fatalf("no %s received", typ)
		return nil
	}
}

func (s *testServer) send(env *signal.Envelope) {
	payload, err := env.Marshal()
	require.NoError(s.t, err)

	s.lock.Lock()
	defer s.lock.Unlock()
	require.NoError(s.t, s.client.WriteMessage(websocket.TextMessage, payload))
}

func (s *testServer) closeClient() {
	s.lock.Lock()
	defer s.lock.Unlock()
	_ = s.client.Close()
}

func connect(t *testing.T, s *testServer) *signal.UserAgent {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	ua, err := signal.NewUserAgent(ctx, signal.UserAgentParams{
		URL:      s.url(),
		Identity: "alice",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ua.Close() })

	register := s.expect(signal.TypeRegister)
	require.Equal(t, "alice", register.From)
	return ua
}

type result struct {
	dialog types.Dialog
	err    error
}

func TestInvite(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		s := newTestServer(t)
		ua := connect(t, s)

		results := make(chan result, 1)
		go func() {
			d, err := ua.Invite(context.Background(), "bob")
			results <- result{d, err}
		}()

		invite := s.expect(signal.TypeInvite)
		require.Equal(t, "bob", invite.Target)
		require.NotEmpty(t, invite.DialogID)
		s.send(&signal.Envelope{
			Type:            signal.TypeAccepted,
			DialogID:        invite.DialogID,
			ConversationSID: "RM_1",
			ParticipantSID:  "PA_alice",
		})
		s.send(&signal.Envelope{
			Type:        signal.TypeMessage,
			DialogID:    invite.DialogID,
			ContentType: "application/conversation-info+json",
			Body:        `{"protocol_version":"v1"}`,
		})

		r := <-results
		require.NoError(t, r.err)
		d := r.dialog
		require.Equal(t, invite.DialogID, d.ID())
		require.Equal(t, "RM_1", d.ConversationSID())
		require.Equal(t, "PA_alice", d.ParticipantSID())

		// delivered even though the handler is registered after the message may have arrived
		messages := make(chan string, 1)
		d.OnMessage(func(contentType string, body []byte) {
			messages <- string(body)
		})
		select {
		case body := <-messages:
			require.Equal(t, `{"protocol_version":"v1"}`, body)
		case <-time.After(testTimeout):
			t.Fatal("message not delivered")
		}

		require.NoError(t, d.Send(context.Background(), "text/plain", []byte("hi")))
		msg := s.expect(signal.TypeMessage)
		require.Equal(t, invite.DialogID, msg.DialogID)
		require.Equal(t, "hi", msg.Body)

		require.NoError(t, d.Refer(context.Background(), "carol"))
		refer := s.expect(signal.TypeRefer)
		require.Equal(t, "carol", refer.Target)

		ended := make(chan error, 1)
		d.OnEnded(func(err error) { ended <- err })
		require.NoError(t, d.End())
		s.expect(signal.TypeBye)
		require.NoError(t, <-ended)
		require.ErrorIs(t, d.Send(context.Background(), "text/plain", nil), types.ErrDialogEnded)
	})

	t.Run("rejected", func(t *testing.T) {
		s := newTestServer(t)
		ua := connect(t, s)

		results := make(chan result, 1)
		go func() {
			d, err := ua.Connect(context.Background(), "lobby")
			results <- result{d, err}
		}()

		connectEnv := s.expect(signal.TypeConnect)
		require.Equal(t, "lobby", connectEnv.Target)
		s.send(&signal.Envelope{Type: signal.TypeReject, DialogID: connectEnv.DialogID})

		r := <-results
		require.ErrorIs(t, r.err, types.ErrRejected)
	})

	t.Run("canceled by context", func(t *testing.T) {
		s := newTestServer(t)
		ua := connect(t, s)

		ctx, cancel := context.WithCancel(context.Background())
		results := make(chan result, 1)
		go func() {
			d, err := ua.Invite(ctx, "bob")
			results <- result{d, err}
		}()

		invite := s.expect(signal.TypeInvite)
		cancel()
		r := <-results
		require.ErrorIs(t, r.err, context.Canceled)
		require.Equal(t, invite.DialogID, s.expect(signal.TypeCancel).DialogID)
	})
}

func TestIncomingRequest(t *testing.T) {
	t.Run("accept", func(t *testing.T) {
		s := newTestServer(t)
		ua := connect(t, s)

		requests := make(chan types.IncomingRequest, 1)
		ua.OnIncomingRequest(func(req types.IncomingRequest) {
			requests <- req
		})
		s.send(&signal.Envelope{
			Type:            signal.TypeInvite,
			DialogID:        "DG_1",
			From:            "bob",
			ConversationSID: "RM_1",
		})

		req := <-requests
		require.Equal(t, "bob", req.From())
		require.Equal(t, "RM_1", req.ConversationSID())

		results := make(chan result, 1)
		go func() {
			d, err := req.Accept(context.Background())
			results <- result{d, err}
		}()
		require.Equal(t, "DG_1", s.expect(signal.TypeAccept).DialogID)
		s.send(&signal.Envelope{Type: signal.TypeAccepted, DialogID: "DG_1", ParticipantSID: "PA_alice"})

		r := <-results
		require.NoError(t, r.err)
		require.Equal(t, "RM_1", r.dialog.ConversationSID())
		require.Equal(t, "PA_alice", r.dialog.ParticipantSID())

		ended := make(chan error, 1)
		r.dialog.OnEnded(func(err error) { ended <- err })
		s.send(&signal.Envelope{Type: signal.TypeBye, DialogID: "DG_1"})
		require.ErrorIs(t, <-ended, types.ErrDialogEnded)
	})

	t.Run("canceled by caller", func(t *testing.T) {
		s := newTestServer(t)
		ua := connect(t, s)

		requests := make(chan types.IncomingRequest, 1)
		ua.OnIncomingRequest(func(req types.IncomingRequest) {
			requests <- req
		})
		s.send(&signal.Envelope{Type: signal.TypeInvite, DialogID: "DG_1", From: "bob"})
		req := <-requests

		canceled := make(chan struct{})
		req.OnCanceled(func() { close(canceled) })
		s.send(&signal.Envelope{Type: signal.TypeCancel, DialogID: "DG_1"})

		select {
		case <-canceled:
		case <-time.After(testTimeout):
			t.Fatal("not canceled")
		}
		_, err := req.Accept(context.Background())
		require.ErrorIs(t, err, types.ErrCanceled)
	})

	t.Run("reject", func(t *testing.T) {
		s := newTestServer(t)
		ua := connect(t, s)

		ua.OnIncomingRequest(func(req types.IncomingRequest) {
			_ = req.Reject()
		})
		s.send(&signal.Envelope{Type: signal.TypeInvite, DialogID: "DG_1", From: "bob"})
		require.Equal(t, "DG_1", s.expect(signal.TypeReject).DialogID)
	})
}

func TestConnectionLoss(t *testing.T) {
	s := newTestServer(t)
	ua := connect(t, s)

	results := make(chan result, 1)
	go func() {
		d, err := ua.Invite(context.Background(), "bob")
		results <- result{d, err}
	}()
	invite := s.expect(signal.TypeInvite)
	s.send(&signal.Envelope{Type: signal.TypeAccepted, DialogID: invite.DialogID, ConversationSID: "RM_1"})
	r := <-results
	require.NoError(t, r.err)

	ended := make(chan error, 1)
	r.dialog.OnEnded(func(err error) { ended <- err })
	s.closeClient()

	select {
	case err := <-ended:
		require.ErrorIs(t, err, types.ErrTransportClose)
	case <-time.After(testTimeout):
		t.Fatal("dialog not ended")
	}
	_, err := ua.Invite(context.Background(), "carol")
	require.ErrorIs(t, err, types.ErrTransportClose)
}
