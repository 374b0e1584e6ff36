package signaling

import (
	"github.com/pkg/errors"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
)

// ConversationV1 is a conversation carried over one dialog per remote party. Every dialog
// delivers notifications; the conversation disconnects when the last one ends.
type ConversationV1 struct {
	*RoomSignaling
}

func NewConversationV1(params RoomParams, dialog types.Dialog) (*ConversationV1, error) {
	c := &ConversationV1{
		RoomSignaling: NewRoomSignaling(dialog.ConversationSID(), params),
	}
	if err := c.LocalParticipant().Connect(dialog.ParticipantSID(), params.Identity); err != nil {
		c.Disconnect(err)
		return nil, errors.Wrap(err, "connect local participant")
	}
	if err := c.AddDialog(dialog); err != nil {
		return nil, err
	}
	return c, nil
}

// AddDialog joins another dialog to the conversation, as when a later invitee accepts.
func (c *ConversationV1) AddDialog(dialog types.Dialog) error {
	return c.addDialog(dialog, c.handleMessage)
}

func (c *ConversationV1) handleMessage(contentType string, body []byte) {
	if contentType != conversationinfo.ContentType {
		c.logger.Debugw("ignoring message", "contentType", contentType)
		return
	}

	n, err := conversationinfo.ParseNotification(body)
	if err != nil {
		c.logger.Warnw("could not parse notification", err)
		return
	}
	c.ApplyNotification(n)
}
