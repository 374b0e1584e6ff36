package serverlogger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/livekit/protocol/logger"
)

func TestParsePionLevel(t *testing.T) {
	require.Equal(t, zapcore.ErrorLevel, ParsePionLevel(""))
	require.Equal(t, zapcore.DebugLevel, ParsePionLevel("debug"))
	require.Equal(t, zapcore.WarnLevel, ParsePionLevel("WARN"))
	require.Equal(t, zapcore.ErrorLevel, ParsePionLevel("chatty"))
}

func TestLoggerFactory(t *testing.T) {
	require.Nil(t, NewLoggerFactory(nil, zapcore.InfoLevel))

	lf := NewLoggerFactory(logger.GetLogger(), zapcore.WarnLevel)
	require.NotNil(t, lf)

	l := lf.NewLogger("ice")
	require.NotNil(t, l)
	l.Debugf("dropped %d", 1)
	l.Warn("kept")
}
