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

package signaling

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	"github.com/livekit/conversation-signaling/pkg/rtc/pcmanager"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	"github.com/livekit/conversation-signaling/pkg/telemetry/prometheus"
	"github.com/livekit/conversation-signaling/pkg/utils"
)

const defaultSendTimeout = 10 * time.Second

type RoomV2Params struct {
	RoomParams

	PeerConnectionFactory types.PeerConnectionFactory
	IDGenerator           utils.IDGenerator
	Configuration         pcmanager.Configuration
	InitialOffers         int
	IceGatheringTimeout   time.Duration
	DescriptionDebounce   time.Duration
	SendTimeout           time.Duration
}

// RoomV2 is a room reached over a single dialog. Notifications and peer connection
// instructions share the dialog's messages, and the room's media flows over the peer
// connections of a PeerConnectionManager.
type RoomV2 struct {
	*RoomSignaling

	params RoomV2Params
	dialog types.Dialog
	pcm    *pcmanager.PeerConnectionManager

	ctx    context.Context
	cancel context.CancelFunc
}

func NewRoomV2(params RoomV2Params, dialog types.Dialog) (*RoomV2, error) {
	if params.SendTimeout <= 0 {
		params.SendTimeout = defaultSendTimeout
	}

	room := NewRoomSignaling(dialog.ConversationSID(), params.RoomParams)
	ctx, cancel := context.WithCancel(context.Background())
	r := &RoomV2{
		RoomSignaling: room,
		params:        params,
		dialog:        dialog,
		ctx:           ctx,
		cancel:        cancel,
	}
	r.pcm = pcmanager.NewPeerConnectionManager(pcmanager.Params{
		Factory:             params.PeerConnectionFactory,
		IDGenerator:         params.IDGenerator,
		InitialOffers:       params.InitialOffers,
		IceGatheringTimeout: params.IceGatheringTimeout,
		DescriptionDebounce: params.DescriptionDebounce,
		Logger:              r.logger,
	})

	local := r.LocalParticipant()
	if err := local.Connect(dialog.ParticipantSID(), params.Identity); err != nil {
		cancel()
		r.pcm.Close()
		r.Disconnect(err)
		return nil, errors.Wrap(err, "connect local participant")
	}

	r.onTeardown(func(error) {
		r.cancel()
		r.pcm.Close()
	})

	r.pcm.On(pcmanager.EventTrackAdded, func(args ...interface{}) {
		media := args[0].(types.RemoteTrack)
		r.enqueue(func() {
			r.AddMediaTrack(media)
		})
	})
	r.pcm.On(pcmanager.EventTrackRemoved, func(args ...interface{}) {
		media := args[0].(types.RemoteTrack)
		r.enqueue(func() {
			r.RemoveMediaTrack(media.ID)
		})
	})
	r.pcm.Dequeue()
	r.pcm.OnDescriptionReady(func() {
		r.enqueue(r.flushDescriptions)
	})

	local.On(EventTrackStateChanged, func(args ...interface{}) {
		t := args[0].(*TrackSignaling)
		r.enqueue(func() {
			r.sendTrackState(t)
		})
	})
	local.On(EventPublicationsChanged, func(args ...interface{}) {
		r.enqueue(r.renegotiate)
	})
	local.Dequeue(EventTrackStateChanged, EventPublicationsChanged)

	if err := r.addDialog(dialog, r.handleMessage); err != nil {
		return nil, err
	}

	conf := params.Configuration
	conf.Offerer = true
	r.enqueue(func() {
		if err := r.pcm.Renegotiate(r.ctx, []types.MediaStream{local.Stream()}); err != nil {
			r.logger.Warnw("could not set local streams", err)
		}
		if err := r.pcm.SetConfiguration(r.ctx, conf); err != nil {
			r.logger.Warnw("could not configure peer connections", err)
		}
	})
	return r, nil
}

func (r *RoomV2) PeerConnectionManager() *pcmanager.PeerConnectionManager {
	return r.pcm
}

// SetConfiguration updates the configuration of every peer connection.
func (r *RoomV2) SetConfiguration(conf pcmanager.Configuration) {
	r.enqueue(func() {
		if err := r.pcm.SetConfiguration(r.ctx, conf); err != nil {
			r.logger.Warnw("could not update configuration", err)
		}
	})
}

func (r *RoomV2) handleMessage(contentType string, body []byte) {
	if contentType != conversationinfo.ContentType {
		r.logger.Debugw("ignoring message", "contentType", contentType)
		return
	}

	msg, err := conversationinfo.ParseMessage(body)
	if err != nil {
		r.logger.Warnw("could not parse message", err)
		return
	}
	if msg.Notification != nil {
		r.ApplyNotification(msg.Notification)
	}
	if len(msg.PeerConnections) != 0 {
		pcs := conversationinfo.NewPeerConnections(msg.PeerConnections...)
		if err := r.pcm.Update(r.ctx, pcs); err != nil {
			r.logger.Warnw("could not apply peer connection instructions", err)
		}
	}
}

func (r *RoomV2) flushDescriptions() {
	pcs := r.pcm.GetConversationInfo()
	if pcs == nil {
		return
	}
	if err := r.send(conversationinfo.NewPeerConnectionsMessage(pcs)); err != nil {
		r.logger.Warnw("could not send descriptions", err)
	}
}

func (r *RoomV2) sendTrackState(t *TrackSignaling) {
	sid := r.LocalParticipant().SID()

	var n *conversationinfo.PartialNotification
	if t.IsEnabled() {
		n = conversationinfo.TrackEnabled(sid, t.Descriptor())
	} else {
		n = conversationinfo.TrackDisabled(sid, t.Descriptor())
	}
	if err := r.send(n); err != nil {
		r.logger.Warnw("could not send track state", err, "trackID", t.ID())
	}
}

func (r *RoomV2) renegotiate() {
	if err := r.pcm.Renegotiate(r.ctx, []types.MediaStream{r.LocalParticipant().Stream()}); err != nil {
		r.logger.Warnw("could not renegotiate", err)
	}
}

func (r *RoomV2) send(v interface{}) error {
	if !r.IsConnected() {
		return ErrRoomDisconnected
	}

	body, err := conversationinfo.Marshal(v)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.params.SendTimeout)
	defer cancel()
	if err := r.dialog.Send(ctx, conversationinfo.ContentType, body); err != nil {
		return errors.Wrap(err, "send")
	}
	prometheus.RecordMessage(prometheus.DirectionOutgoing, conversationinfo.ContentType)
	return nil
}
