package prometheus

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignalingStats(t *testing.T) {
	rooms := CurrentRooms()
	participants := CurrentParticipants()

	// recording before Init must not panic
	RecordNotification(NotificationFull, StatusApplied)
	RoomStarted()
	AddParticipant()
	require.Equal(t, rooms+1, CurrentRooms())
	require.Equal(t, participants+1, CurrentParticipants())

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				RecordMessage(DirectionOutgoing, "text/plain")
				RecordNotification(NotificationFull, StatusIgnored)
				RecordInvite(DirectionIncoming, "rejected")
			}
		}()
	}

	var inits sync.WaitGroup
	for i := 0; i < 2; i++ {
		inits.Add(1)
		go func() {
			defer inits.Done()
			Init("test")
		}()
	}
	inits.Wait()
	close(stop)
	wg.Wait()
	require.NotNil(t, MessageCounter)

	RecordNotification(NotificationPartial, StatusIgnored)
	RecordInvite(DirectionOutgoing, "accepted")
	RecordPeerConnectionOp("offer", errors.New("failed"))
	RecordMessage(DirectionIncoming, "application/conversation-info+json")
	AddPeerConnection()
	SubPeerConnection()

	SubParticipant()
	RoomEnded()
	require.Equal(t, rooms, CurrentRooms())
	require.Equal(t, participants, CurrentParticipants())
}
