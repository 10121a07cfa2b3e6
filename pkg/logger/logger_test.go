package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewHonoursLevel(t *testing.T) {
	log, err := New("warn")
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty")
	assert.Error(t, err)
}

func TestNamedWithNilBase(t *testing.T) {
	assert.NotNil(t, Named(nil, "component"))
}
