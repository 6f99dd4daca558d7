package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	l, err := New("", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = New("warn", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New("info", false)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", false)
	assert.Error(t, err)
}

func TestConfigWritesConsoleToStderr(t *testing.T) {
	cfg, err := Config("", false)
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Encoding)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
	assert.Equal(t, []string{"stderr"}, cfg.ErrorOutputPaths)
	assert.Equal(t, zapcore.WarnLevel, cfg.Level.Level())
}
