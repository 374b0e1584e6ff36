package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pion/webrtc/v3"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/config"
	"github.com/livekit/conversation-signaling/pkg/conversationinfo"
	serverlogger "github.com/livekit/conversation-signaling/pkg/logger"
	"github.com/livekit/conversation-signaling/pkg/rtc/invite"
	"github.com/livekit/conversation-signaling/pkg/rtc/pcmanager"
	"github.com/livekit/conversation-signaling/pkg/rtc/signaling"
	"github.com/livekit/conversation-signaling/pkg/rtc/transport"
	"github.com/livekit/conversation-signaling/pkg/rtc/types"
	sig "github.com/livekit/conversation-signaling/pkg/signal"
	"github.com/livekit/conversation-signaling/pkg/telemetry/prometheus"
	"github.com/livekit/conversation-signaling/pkg/utils"
)

func parsePayload(c *cli.Context) error {
	var (
		data []byte
		err  error
	)
	if file := c.Args().First(); file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	msg, err := conversationinfo.ParseMessage(data)
	if err != nil {
		return err
	}
	printMessage(msg)
	return nil
}

func inviteIdentities(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("at least one identity is required")
	}
	conf, ua, err := start(c)
	if err != nil {
		return err
	}
	defer ua.Close()

	inv, err := invite.NewOutgoingInviteV1(invite.OutgoingInviteV1Params{
		UserAgent:   ua,
		Identities:  c.Args().Slice(),
		Room:        roomParams(conf),
		CallTimeout: conf.Signaling.CallTimeout,
	})
	if err != nil {
		return err
	}

	ctx := signalContext()
	conv, err := inv.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			_ = inv.Cancel()
		}
		return err
	}
	return runRoom(ctx, conv.RoomSignaling)
}

func connectRoom(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("room name is required")
	}
	conf, ua, err := start(c)
	if err != nil {
		return err
	}
	defer ua.Close()

	inv := invite.NewOutgoingInviteV2(invite.OutgoingInviteV2Params{
		UserAgent:   ua,
		RoomName:    c.Args().First(),
		Room:        roomV2Params(conf),
		CallTimeout: conf.Signaling.CallTimeout,
	})

	ctx := signalContext()
	room, err := inv.Wait(ctx)
	if err != nil {
		return err
	}

	if c.Bool("publish-audio") {
		if err := publishAudio(room.LocalParticipant()); err != nil {
			room.Disconnect(err)
			return err
		}
	}
	return runRoom(ctx, room.RoomSignaling)
}

func listen(c *cli.Context) error {
	conf, ua, err := start(c)
	if err != nil {
		return err
	}
	defer ua.Close()

	ctx := signalContext()
	reject := c.Bool("reject")
	withMedia := c.Bool("media")
	ua.OnIncomingRequest(func(req types.IncomingRequest) {
		if withMedia {
			inv := invite.NewIncomingInviteV2(invite.IncomingInviteV2Params{
				Request:     req,
				Room:        roomV2Params(conf),
				CallTimeout: conf.Signaling.CallTimeout,
			})
			if reject {
				rejectInvite(inv.Reject, inv.From())
				return
			}
			room, err := inv.Accept(ctx)
			if err != nil {
				logger.Warnw("could not accept invite", err, "from", inv.From())
				return
			}
			watchRoom(room.RoomSignaling)
			return
		}

		inv := invite.NewIncomingInvite(invite.IncomingInviteParams{
			Request:     req,
			Room:        roomParams(conf),
			CallTimeout: conf.Signaling.CallTimeout,
		})
		if reject {
			rejectInvite(inv.Reject, inv.From())
			return
		}
		conv, err := inv.Accept(ctx)
		if err != nil {
			logger.Warnw("could not accept invite", err, "from", inv.From())
			return
		}
		watchRoom(conv.RoomSignaling)
	})

	logger.Infow("waiting for invites", "identity", ua.Identity())
	<-ctx.Done()
	return nil
}

func rejectInvite(reject func() error, from string) {
	if err := reject(); err != nil {
		logger.Warnw("could not reject invite", err, "from", from)
	}
}

func start(c *cli.Context) (*config.Config, *sig.UserAgent, error) {
	conf, err := getConfig(c)
	if err != nil {
		return nil, nil, err
	}
	if err := conf.ValidateSignaling(); err != nil {
		return nil, nil, err
	}

	prometheus.Init(conf.Signaling.Identity)
	if conf.PrometheusPort > 0 {
		go func() {
			addr := fmt.Sprintf(":%d", conf.PrometheusPort)
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				logger.Errorw("prometheus server failed", err)
			}
		}()
	}

	token, err := conf.Token()
	if err != nil {
		return nil, nil, err
	}
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.Signaling.CallTimeout)
	defer cancel()
	ua, err := sig.NewUserAgent(ctx, sig.UserAgentParams{
		URL:      conf.Signaling.URL,
		Identity: conf.Signaling.Identity,
		Header:   header,
	})
	if err != nil {
		return nil, nil, err
	}
	return conf, ua, nil
}

func roomParams(conf *config.Config) signaling.RoomParams {
	return signaling.RoomParams{
		Identity:              conf.Signaling.Identity,
		DisconnectedCacheSize: conf.Signaling.DisconnectedCacheSize,
	}
}

func roomV2Params(conf *config.Config) signaling.RoomV2Params {
	return signaling.RoomV2Params{
		RoomParams:            roomParams(conf),
		PeerConnectionFactory: transport.NewFactory(serverlogger.ParsePionLevel(conf.Logging.PionLevel)),
		Configuration: pcmanager.Configuration{
			Configuration: conf.RTC.WebRTCConfiguration(),
		},
		InitialOffers:       conf.RTC.InitialOffers,
		IceGatheringTimeout: conf.RTC.ICEGatheringTimeout,
		DescriptionDebounce: conf.RTC.DescriptionDebounce,
		SendTimeout:         conf.Signaling.SendTimeout,
	}
}

func publishAudio(local *signaling.LocalParticipantSignaling) error {
	id := utils.NewGuid(utils.TrackPrefix)
	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus},
		id,
		local.Stream().ID(),
	)
	if err != nil {
		return err
	}
	_, err = local.PublishTrack(transport.NewLocalTrack(id, conversationinfo.TrackKindAudio, track))
	return err
}

// watchRoom logs membership changes and prints the room after each.
func watchRoom(room *signaling.RoomSignaling) {
	room.On(signaling.EventParticipantConnected, func(args ...interface{}) {
		p := args[0].(*signaling.ParticipantSignaling)
		logger.Infow("participant connected", "sid", p.SID(), "identity", p.Identity())
		printRoom(room)
	})
	room.On(signaling.EventParticipantDisconnected, func(args ...interface{}) {
		p := args[0].(*signaling.ParticipantSignaling)
		logger.Infow("participant disconnected", "sid", p.SID(), "identity", p.Identity())
		printRoom(room)
	})
	room.On(signaling.EventParticipantFailed, func(args ...interface{}) {
		logger.Infow("participant failed to connect", "sid", args[0])
	})
	room.Dequeue(
		signaling.EventParticipantConnected,
		signaling.EventParticipantDisconnected,
		signaling.EventParticipantFailed,
	)
}

func runRoom(ctx context.Context, room *signaling.RoomSignaling) error {
	watchRoom(room)
	printRoom(room)

	err := room.WhenDisconnected(ctx)
	if ctx.Err() != nil {
		room.Disconnect(nil)
		return nil
	}
	return err
}

func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		s := <-sigChan
		logger.Infow("exit requested, shutting down", "signal", s)
		cancel()
	}()
	return ctx
}
