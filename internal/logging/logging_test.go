package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_ReplacesGlobals(t *testing.T) {
	logger, err := New(true)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Same(t, logger, zap.L())
}

func TestOrGlobal(t *testing.T) {
	own := zap.NewNop()
	assert.Same(t, own, OrGlobal(own))
	assert.NotNil(t, OrGlobal(nil))
}

func TestCritical_TagsSeverity(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Critical(zap.New(core), "identity lookup failed", zap.String("cause", "timeout"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "critical", fields["severity"])
	assert.Equal(t, "timeout", fields["cause"])
}
