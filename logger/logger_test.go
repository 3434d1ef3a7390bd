package logger

import (
	"testing"

	"labbudget/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	defer zap.ReplaceGlobals(zap.NewNop())

	l, err := Init(&config.Config{Server: config.ServerConfig{Mode: "release"}, Log: config.LogConfig{Level: "warn"}})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	assert.Same(t, l, zap.L())

	_, err = Init(&config.Config{Log: config.LogConfig{Level: "loud"}})
	assert.Error(t, err)
}

func TestBootstrap(t *testing.T) {
	defer zap.ReplaceGlobals(zap.NewNop())

	l := Bootstrap()
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
