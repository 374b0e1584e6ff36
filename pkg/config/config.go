// Copyright 2023 LiveKit, Inc.
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

package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pion/webrtc/v3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/livekit/protocol/logger"
)

const (
	generatedCLIFlagUsage = "generated"
	envPrefix             = "SIGNALING"
	loggerName            = "conversation-signaling"
)

var (
	ErrURLNotSet                = errors.New("signaling.url must be provided")
	ErrIdentityNotSet           = errors.New("signaling.identity must be provided")
	ErrInvalidICETransport      = errors.New("rtc.ice_transport_policy must be all or relay")
	ErrInvalidInitialOffers     = errors.New("rtc.initial_offers must not be negative")
	ErrInvalidDisconnectedCache = errors.New("signaling.disconnected_cache_size must not be negative")
)

type Config struct {
	PrometheusPort uint32          `yaml:"prometheus_port,omitempty"`
	RTC            RTCConfig       `yaml:"rtc,omitempty"`
	Signaling      SignalingConfig `yaml:"signaling,omitempty"`
	Logging        LoggingConfig   `yaml:"logging,omitempty"`

	Development bool `yaml:"development,omitempty"`
}

type RTCConfig struct {
	ICEServers         []ICEServer `yaml:"ice_servers,omitempty"`
	ICETransportPolicy string      `yaml:"ice_transport_policy,omitempty"`
	// how long to wait for candidates before sending a description anyway
	ICEGatheringTimeout time.Duration `yaml:"ice_gathering_timeout,omitempty"`
	// number of peer connections offered when joining a room
	InitialOffers int `yaml:"initial_offers,omitempty"`
	// coalescing window for outgoing descriptions
	DescriptionDebounce time.Duration `yaml:"description_debounce,omitempty"`
}

type ICEServer struct {
	URLs       []string `yaml:"urls,omitempty"`
	Username   string   `yaml:"username,omitempty"`
	Credential string   `yaml:"credential,omitempty"`
}

type SignalingConfig struct {
	URL      string `yaml:"url,omitempty"`
	Identity string `yaml:"identity,omitempty"`
	// file holding a bearer token sent when connecting
	TokenFile             string        `yaml:"token_file,omitempty"`
	CallTimeout           time.Duration `yaml:"call_timeout,omitempty"`
	SendTimeout           time.Duration `yaml:"send_timeout,omitempty"`
	DisconnectedCacheSize int           `yaml:"disconnected_cache_size,omitempty"`
}

type LoggingConfig struct {
	logger.Config `yaml:",inline"`
	PionLevel     string `yaml:"pion_level,omitempty"`
}

var DefaultConfig = Config{
	RTC: RTCConfig{
		ICEServers: []ICEServer{
			{URLs: []string{"stun:stun.l.google.com:19302"}},
		},
		ICETransportPolicy:  "all",
		ICEGatheringTimeout: 3 * time.Second,
		InitialOffers:       1,
		DescriptionDebounce: 20 * time.Millisecond,
	},
	Signaling: SignalingConfig{
		CallTimeout:           50 * time.Second,
		SendTimeout:           5 * time.Second,
		DisconnectedCacheSize: 256,
	},
	Logging: LoggingConfig{
		PionLevel: "error",
	},
}

func NewConfig(confString string, strictMode bool, c *cli.Context, baseFlags []cli.Flag) (*Config, error) {
	// start with defaults
	marshalled, err := yaml.Marshal(&DefaultConfig)
	if err != nil {
		return nil, err
	}

	var conf Config
	err = yaml.Unmarshal(marshalled, &conf)
	if err != nil {
		return nil, err
	}

	if confString != "" {
		decoder := yaml.NewDecoder(strings.NewReader(confString))
		decoder.KnownFields(strictMode)
		if err := decoder.Decode(&conf); err != nil {
			return nil, fmt.Errorf("could not parse config: %v", err)
		}
	}

	if c != nil {
		if err := conf.updateFromCLI(c, baseFlags); err != nil {
			return nil, err
		}
	}

	if err := conf.RTC.Validate(); err != nil {
		return nil, fmt.Errorf("could not validate RTC config: %w", err)
	}
	if conf.Signaling.DisconnectedCacheSize < 0 {
		return nil, ErrInvalidDisconnectedCache
	}

	// expand env vars in filenames
	file, err := homedir.Expand(os.ExpandEnv(conf.Signaling.TokenFile))
	if err != nil {
		return nil, err
	}
	conf.Signaling.TokenFile = file

	if conf.Logging.Level == "" && conf.Development {
		conf.Logging.Level = "debug"
	}
	if conf.Logging.PionLevel != "" {
		if conf.Logging.ComponentLevels == nil {
			conf.Logging.ComponentLevels = map[string]string{}
		}
		conf.Logging.ComponentLevels["transport.pion"] = conf.Logging.PionLevel
		conf.Logging.ComponentLevels["pion"] = conf.Logging.PionLevel
	}

	return &conf, nil
}

// LoadConfig reads the file named by the config flag, or the config-body flag when set.
func LoadConfig(c *cli.Context, baseFlags []cli.Flag, strictMode bool) (*Config, error) {
	confString, err := getConfigString(c.String("config"), c.String("config-body"))
	if err != nil {
		return nil, err
	}
	return NewConfig(confString, strictMode, c, baseFlags)
}

func getConfigString(configFile string, inConfigBody string) (string, error) {
	if inConfigBody != "" || configFile == "" {
		return inConfigBody, nil
	}

	path, err := homedir.Expand(configFile)
	if err != nil {
		return "", err
	}
	outConfigBody, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(outConfigBody), nil
}

func (r *RTCConfig) Validate() error {
	switch r.ICETransportPolicy {
	case "", "all", "relay":
	default:
		return ErrInvalidICETransport
	}
	if r.InitialOffers < 0 {
		return ErrInvalidInitialOffers
	}
	return nil
}

// WebRTCConfiguration converts the rtc section to the configuration applied to peer connections.
func (r *RTCConfig) WebRTCConfiguration() webrtc.Configuration {
	conf := webrtc.Configuration{
		ICETransportPolicy: webrtc.NewICETransportPolicy(r.ICETransportPolicy),
	}
	for _, s := range r.ICEServers {
		server := webrtc.ICEServer{
			URLs: s.URLs,
		}
		if s.Username != "" {
			server.Username = s.Username
			server.Credential = s.Credential
			server.CredentialType = webrtc.ICECredentialTypePassword
		}
		conf.ICEServers = append(conf.ICEServers, server)
	}
	return conf
}

// ValidateSignaling checks the settings needed to reach the signaling server.
func (conf *Config) ValidateSignaling() error {
	if conf.Signaling.URL == "" {
		return ErrURLNotSet
	}
	if conf.Signaling.Identity == "" {
		return ErrIdentityNotSet
	}
	return nil
}

// Token reads the bearer token from the configured token file.
func (conf *Config) Token() (string, error) {
	if conf.Signaling.TokenFile == "" {
		return "", nil
	}
	b, err := os.ReadFile(conf.Signaling.TokenFile)
	if err != nil {
		return "", errors.Wrap(err, "could not read token file")
	}
	return strings.TrimSpace(string(b)), nil
}

type configNode struct {
	TypeNode  reflect.Value
	TagPrefix string
}

func (conf *Config) ToCLIFlagNames(existingFlags []cli.Flag) map[string]reflect.Value {
	existingFlagNames := map[string]bool{}
	for _, flag := range existingFlags {
		for _, flagName := range flag.Names() {
			existingFlagNames[flagName] = true
		}
	}

	flagNames := map[string]reflect.Value{}
	var currNode configNode
	nodes := []configNode{{reflect.ValueOf(conf).Elem(), ""}}
	for len(nodes) > 0 {
		currNode, nodes = nodes[0], nodes[1:]
		for i := 0; i < currNode.TypeNode.NumField(); i++ {
			// inspect yaml tag from struct field to get path
			field := currNode.TypeNode.Type().Field(i)
			yamlTagArray := strings.SplitN(field.Tag.Get("yaml"), ",", 2)
			yamlTag := yamlTagArray[0]
			isInline := false
			if len(yamlTagArray) > 1 && yamlTagArray[1] == "inline" {
				isInline = true
			}
			if (yamlTag == "" && (!isInline || currNode.TagPrefix == "")) || yamlTag == "-" {
				continue
			}
			yamlPath := yamlTag
			if currNode.TagPrefix != "" {
				if isInline {
					yamlPath = currNode.TagPrefix
				} else {
					yamlPath = fmt.Sprintf("%s.%s", currNode.TagPrefix, yamlTag)
				}
			}
			if existingFlagNames[yamlPath] {
				continue
			}

			// map flag name to value
			value := currNode.TypeNode.Field(i)
			if value.Kind() == reflect.Struct {
				nodes = append(nodes, configNode{value, yamlPath})
			} else {
				flagNames[yamlPath] = value
			}
		}
	}

	return flagNames
}

func GenerateCLIFlags(existingFlags []cli.Flag, hidden bool) ([]cli.Flag, error) {
	blankConfig := &Config{}
	flags := make([]cli.Flag, 0)
	for name, value := range blankConfig.ToCLIFlagNames(existingFlags) {
		kind := value.Kind()
		if kind == reflect.Ptr {
			kind = value.Type().Elem().Kind()
		}

		var flag cli.Flag
		envVar := fmt.Sprintf("%s_%s", envPrefix, strings.ToUpper(strings.Replace(name, ".", "_", -1)))

		switch {
		case value.Type() == reflect.TypeOf(time.Duration(0)):
			flag = &cli.DurationFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case kind == reflect.Bool:
			flag = &cli.BoolFlag{
				Name:   name,
				Usage:  generatedCLIFlagUsage,
				Hidden: hidden,
			}
		case kind == reflect.String:
			flag = &cli.StringFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case kind == reflect.Int, kind == reflect.Int32, kind == reflect.Int64:
			flag = &cli.Int64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case kind == reflect.Uint8, kind == reflect.Uint16, kind == reflect.Uint32, kind == reflect.Uint64:
			flag = &cli.Uint64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case kind == reflect.Slice, kind == reflect.Map:
			// set through the config file only
			continue
		default:
			return flags, fmt.Errorf("cli flag generation unsupported for config type: %s is a %s", name, kind.String())
		}

		flags = append(flags, flag)
	}

	return flags, nil
}

func (conf *Config) updateFromCLI(c *cli.Context, baseFlags []cli.Flag) error {
	generatedFlagNames := conf.ToCLIFlagNames(baseFlags)
	for _, flag := range c.App.Flags {
		flagName := flag.Names()[0]

		// the `c.App.Name != "test"` check is needed because `c.IsSet(...)` is always false in unit tests
		if !c.IsSet(flagName) && c.App.Name != "test" {
			continue
		}

		configValue, ok := generatedFlagNames[flagName]
		if !ok {
			continue
		}

		kind := configValue.Kind()
		if kind == reflect.Ptr {
			// instantiate value to be set
			configValue.Set(reflect.New(configValue.Type().Elem()))

			kind = configValue.Type().Elem().Kind()
			configValue = configValue.Elem()
		}

		switch {
		case configValue.Type() == reflect.TypeOf(time.Duration(0)):
			configValue.SetInt(int64(c.Duration(flagName)))
		case kind == reflect.Bool:
			configValue.SetBool(c.Bool(flagName))
		case kind == reflect.String:
			configValue.SetString(c.String(flagName))
		case kind == reflect.Int, kind == reflect.Int32, kind == reflect.Int64:
			configValue.SetInt(c.Int64(flagName))
		case kind == reflect.Uint8, kind == reflect.Uint16, kind == reflect.Uint32, kind == reflect.Uint64:
			configValue.SetUint(c.Uint64(flagName))
		default:
			return fmt.Errorf("unsupported generated cli flag type for config: %s is a %s", flagName, kind.String())
		}
	}

	if c.IsSet("dev") {
		conf.Development = c.Bool("dev")
	}
	if c.IsSet("url") {
		conf.Signaling.URL = c.String("url")
	}
	if c.IsSet("identity") {
		conf.Signaling.Identity = c.String("identity")
	}
	if c.IsSet("ice-server") {
		conf.RTC.ICEServers = nil
		for _, url := range c.StringSlice("ice-server") {
			conf.RTC.ICEServers = append(conf.RTC.ICEServers, ICEServer{URLs: []string{url}})
		}
	}
	return nil
}

func InitLoggerFromConfig(config *LoggingConfig) {
	logger.InitFromConfig(&config.Config, loggerName)
}
