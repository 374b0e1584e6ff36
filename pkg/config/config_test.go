package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pion/webrtc/v3"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/livekit/conversation-signaling/pkg/config/configtest"
)

type testStruct struct {
	configFileName string
	configBody     string

	expectedError      error
	expectedConfigBody string
}

func TestGetConfigString(t *testing.T) {
	dir := t.TempDir()
	tests := []testStruct{
		{"", "", nil, ""},
		{"", "configBody", nil, "configBody"},
		{filepath.Join(dir, "file"), "configBody", nil, "configBody"},
		{filepath.Join(dir, "file"), "", nil, "fileContent"},
	}
	for _, test := range tests {
		func() {
			writeConfigFile(test, t)
			defer os.Remove(test.configFileName)

			configBody, err := getConfigString(test.configFileName, test.configBody)
			require.Equal(t, test.expectedError, err)
			require.Equal(t, test.expectedConfigBody, configBody)
		}()
	}
}

func TestShouldReturnErrorIfConfigFileDoesNotExist(t *testing.T) {
	configBody, err := getConfigString("notExistingFile", "")
	require.Error(t, err)
	require.Empty(t, configBody)
}

func writeConfigFile(test testStruct, t *testing.T) {
	if test.configFileName != "" {
		d1 := []byte(test.expectedConfigBody)
		err := os.WriteFile(test.configFileName, d1, 0o644)
		require.NoError(t, err)
	}
}

func TestConfig_DefaultsKept(t *testing.T) {
	const content = `signaling:
  url: wss://signal.example.com
  identity: alice
rtc:
  initial_offers: 2`
	conf, err := NewConfig(content, true, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "wss://signal.example.com", conf.Signaling.URL)
	require.Equal(t, 2, conf.RTC.InitialOffers)
	require.Equal(t, 50*time.Second, conf.Signaling.CallTimeout)
	require.Equal(t, 256, conf.Signaling.DisconnectedCacheSize)
	require.Equal(t, 3*time.Second, conf.RTC.ICEGatheringTimeout)
	require.NoError(t, conf.ValidateSignaling())
}

func TestConfig_UnknownKeys(t *testing.T) {
	const content = `unknown: 10
signaling:
  identity: alice`
	_, err := NewConfig(content, true, nil, nil)
	require.Error(t, err)

	_, err = NewConfig(content, false, nil, nil)
	require.NoError(t, err)
}

func TestConfig_Validation(t *testing.T) {
	_, err := NewConfig("rtc:\n  ice_transport_policy: tcp", true, nil, nil)
	require.ErrorIs(t, err, ErrInvalidICETransport)

	_, err = NewConfig("rtc:\n  initial_offers: -1", true, nil, nil)
	require.ErrorIs(t, err, ErrInvalidInitialOffers)

	_, err = NewConfig("signaling:\n  disconnected_cache_size: -1", true, nil, nil)
	require.ErrorIs(t, err, ErrInvalidDisconnectedCache)

	conf, err := NewConfig("", true, nil, nil)
	require.NoError(t, err)
	require.ErrorIs(t, conf.ValidateSignaling(), ErrURLNotSet)
	conf.Signaling.URL = "ws://localhost:7880"
	require.ErrorIs(t, conf.ValidateSignaling(), ErrIdentityNotSet)
}

func TestConfig_Logging(t *testing.T) {
	conf, err := NewConfig("development: true\nlogging:\n  pion_level: warn", true, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "debug", conf.Logging.Level)
	require.Equal(t, "warn", conf.Logging.ComponentLevels["pion"])
	require.Equal(t, "warn", conf.Logging.ComponentLevels["transport.pion"])
}

func TestWebRTCConfiguration(t *testing.T) {
	const content = `rtc:
  ice_transport_policy: relay
  ice_servers:
    - urls: ["turn:turn.example.com:3478"]
      username: user
      credential: pass`
	conf, err := NewConfig(content, true, nil, nil)
	require.NoError(t, err)

	wc := conf.RTC.WebRTCConfiguration()
	require.Equal(t, webrtc.ICETransportPolicyRelay, wc.ICETransportPolicy)
	require.Len(t, wc.ICEServers, 1)
	require.Equal(t, []string{"turn:turn.example.com:3478"}, wc.ICEServers[0].URLs)
	require.Equal(t, "user", wc.ICEServers[0].Username)
	require.Equal(t, "pass", wc.ICEServers[0].Credential)
	require.Equal(t, webrtc.ICECredentialTypePassword, wc.ICEServers[0].CredentialType)
}

func TestToken(t *testing.T) {
	file := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(file, []byte("secret-token\n"), 0o600))

	conf, err := NewConfig("signaling:\n  token_file: "+file, true, nil, nil)
	require.NoError(t, err)
	token, err := conf.Token()
	require.NoError(t, err)
	require.Equal(t, "secret-token", token)

	conf.Signaling.TokenFile = filepath.Join(t.TempDir(), "missing")
	_, err = conf.Token()
	require.Error(t, err)
}

func TestGeneratedFlags(t *testing.T) {
	generatedFlags, err := GenerateCLIFlags(nil, false)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range generatedFlags {
		names[f.Names()[0]] = true
	}
	require.True(t, names["signaling.call_timeout"])
	require.True(t, names["rtc.initial_offers"])
	require.True(t, names["prometheus_port"])
	require.False(t, names["rtc.ice_servers"])

	app := cli.NewApp()
	app.Flags = append(app.Flags, generatedFlags...)

	set := flag.NewFlagSet("test", 0)
	set.Duration("signaling.call_timeout", 0, "") // duration
	set.String("signaling.identity", "", "")      // string
	set.Int64("rtc.initial_offers", 0, "")        // int
	set.Uint64("prometheus_port", 0, "")          // uint32
	set.Bool("dev", false, "")
	require.NoError(t, set.Set("signaling.call_timeout", "10s"))
	require.NoError(t, set.Set("signaling.identity", "bob"))
	require.NoError(t, set.Set("rtc.initial_offers", "3"))
	require.NoError(t, set.Set("prometheus_port", "9999"))
	require.NoError(t, set.Set("dev", "true"))

	c := cli.NewContext(app, set, nil)
	conf, err := NewConfig("", true, c, nil)
	require.NoError(t, err)

	require.Equal(t, 10*time.Second, conf.Signaling.CallTimeout)
	require.Equal(t, "bob", conf.Signaling.Identity)
	require.Equal(t, 3, conf.RTC.InitialOffers)
	require.Equal(t, uint32(9999), conf.PrometheusPort)
	require.True(t, conf.Development)
	// untouched values keep their defaults
	require.Equal(t, 256, conf.Signaling.DisconnectedCacheSize)
}

func TestYAMLTags(t *testing.T) {
	require.NoError(t, configtest.CheckYAMLTags(RTCConfig{}))
	require.NoError(t, configtest.CheckYAMLTags(SignalingConfig{}))
}
