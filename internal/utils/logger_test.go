package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger_LevelParsing(t *testing.T) {
	tests := []struct {
		level    string
		enabled  zapcore.Level
		disabled zapcore.Level
	}{
		{"debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"info", zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel, zapcore.WarnLevel},
		{"unknown", zapcore.InfoLevel, zapcore.DebugLevel},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			require.NoError(t, InitLogger(tc.level, "dev"))
			assert.True(t, Logger.Core().Enabled(tc.enabled))
			assert.False(t, Logger.Core().Enabled(tc.disabled))
		})
	}
}

func TestInitLogger_StageFromArgument(t *testing.T) {
	// The stage comes from the caller, not the environment.
	t.Setenv("STAGE", "prod")

	require.NoError(t, InitLogger("info", "dev"))
	assert.NotNil(t, Logger)

	require.NoError(t, InitLogger("info", "prod"))
	assert.NotNil(t, Logger)
}

func TestGetLogger_InitializesWhenUnset(t *testing.T) {
	Logger = nil
	assert.NotNil(t, GetLogger())
}
