package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInit_DefaultsToInfo(t *testing.T) {
	require.NoError(t, Init(""))
	require.NotNil(t, Logger)

	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	require.NoError(t, Init("shouting"))
	require.NotNil(t, Logger)

	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInit_DebugLevel(t *testing.T) {
	require.NoError(t, Init("DEBUG"))
	require.NotNil(t, Logger)

	assert.True(t, Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestHelpersSafeWithoutInit(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()
	Logger = nil

	// Must not panic before Init
	Info("ignored")
	Warn("ignored")
	Error("ignored")
	Debug("ignored")
	Sync()
}
