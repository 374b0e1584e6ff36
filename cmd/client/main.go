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

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/conversation-signaling/pkg/config"
)

var baseFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "config",
		Usage: "path to config file",
	},
	&cli.StringFlag{
		Name:    "config-body",
		Usage:   "config in YAML, typically passed in as an environment var in a container",
		EnvVars: []string{"SIGNALING_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "url",
		Usage:   "websocket URL of the signaling server",
		EnvVars: []string{"SIGNALING_URL"},
	},
	&cli.StringFlag{
		Name:    "identity",
		Usage:   "identity to register with",
		EnvVars: []string{"SIGNALING_IDENTITY"},
	},
	&cli.StringSliceFlag{
		Name:  "ice-server",
		Usage: "ICE server URL, use flag multiple times to specify multiple servers",
	},
	&cli.BoolFlag{
		Name:  "dev",
		Usage: "sets log-level to debug and console formatter",
	},
	&cli.BoolFlag{
		Name:   "disable-strict-config",
		Usage:  "disables strict config parsing",
		Hidden: true,
	},
}

func main() {
	generatedFlags, err := config.GenerateCLIFlags(baseFlags, true)
	if err != nil {
		fmt.Println(err)
	}

	app := &cli.App{
		Name:  "signaling-client",
		Usage: "conversation signaling client",
		Flags: append(baseFlags, generatedFlags...),
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "validates a conversation-info payload and prints what it describes",
				ArgsUsage: "[file]",
				Action:    parsePayload,
			},
			{
				Name:      "invite",
				Usage:     "invites identities into a new conversation",
				ArgsUsage: "identity [identity...]",
				Action:    inviteIdentities,
			},
			{
				Name:      "connect",
				Usage:     "connects to a room",
				ArgsUsage: "room",
				Action:    connectRoom,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "publish-audio",
						Usage: "publishes a silent audio track once connected",
					},
				},
			},
			{
				Name:   "listen",
				Usage:  "waits for invites and accepts them",
				Action: listen,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "reject",
						Usage: "rejects invites instead of accepting them",
					},
					&cli.BoolFlag{
						Name:  "media",
						Usage: "accepts invites into rooms with peer connections",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
	}
}

func getConfig(c *cli.Context) (*config.Config, error) {
	strictMode := !c.Bool("disable-strict-config")

	conf, err := config.LoadConfig(c, baseFlags, strictMode)
	if err != nil {
		return nil, err
	}
	config.InitLoggerFromConfig(&conf.Logging)

	if conf.Development {
		logger.Infow("starting in development mode")
	}
	return conf, nil
}
