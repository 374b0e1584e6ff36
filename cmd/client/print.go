package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	"github.com/livekit/conversation-signaling/pkg/rtc/signaling"
)

func printRoom(room *signaling.RoomSignaling) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Participant", "Identity", "State", "Track", "Kind", "Track State", "Media"})

	for _, p := range room.Participants() {
		tracks := p.Tracks()
		if len(tracks) == 0 {
			table.Append([]string{p.SID(), p.Identity(), string(p.State()), "", "", "", ""})
			continue
		}
		for _, t := range tracks {
			media := ""
			if m, ok := t.MediaTrack(); ok {
				media = m.PeerConnectionID
			}
			table.Append([]string{
				p.SID(),
				p.Identity(),
				string(p.State()),
				t.ID(),
				string(t.Kind()),
				string(t.State()),
				media,
			})
		}
	}

	fmt.Printf("room %s\n", room.SID())
	table.Render()
}

func printMessage(msg *conversationinfo.Message) {
	switch n := msg.Notification.(type) {
	case *conversationinfo.FullNotification:
		state := n.ConversationState
		fmt.Printf("full notification, room %s, instance version %d\n", state.SID, state.InstanceVersion)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Participant", "Address", "Tracks"})
		for _, p := range state.Participants {
			table.Append([]string{p.ParticipantSID, p.Address, formatTracks(p.Tracks)})
		}
		table.Render()

	case *conversationinfo.PartialNotification:
		fmt.Printf("partial notification, %d events\n", len(n.EventList))

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Event", "Time", "Participant", "Tracks"})
		for _, e := range n.EventList {
			table.Append([]string{string(e.Event), strconv.FormatInt(e.Time, 10), e.ParticipantSID, formatTracks(e.Tracks)})
		}
		table.Render()
	}

	if len(msg.PeerConnections) > 0 {
		fmt.Printf("%d peer connection instructions\n", len(msg.PeerConnections))

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Peer Connection", "Type", "Revision", "SDP"})
		for _, pc := range msg.PeerConnections {
			table.Append([]string{
				pc.ID,
				string(pc.Description.Type),
				strconv.FormatInt(pc.Description.Revision, 10),
				strconv.Itoa(len(pc.Description.SDP)) + " bytes",
			})
		}
		table.Render()
	}
}

func formatTracks(tracks []conversationinfo.Track) string {
	parts := make([]string, 0, len(tracks))
	for _, t := range tracks {
		parts = append(parts, fmt.Sprintf("%s (%s)", t.ID, t.Kind))
	}
	return strings.Join(parts, ", ")
}
