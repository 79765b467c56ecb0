package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelRoundTrip(t *testing.T) {
	for level := TraceLevel; level <= FatalLevel; level++ {
		parsed, err := LevelFromString(LogLevelToString(level))
		require.Nil(t, err)
		require.Equal(t, level, parsed)
	}
	parsed, err := LevelFromString("warn")
	require.Nil(t, err)
	require.Equal(t, WarnLevel, parsed)
	_, err = LevelFromString("verbose")
	require.NotNil(t, err)
}

func TestNew(t *testing.T) {
	logger, err := New(WarnLevel)
	require.Nil(t, err)
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = NewJSON(TraceLevel)
	require.Nil(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
