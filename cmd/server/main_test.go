package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewLogger_Level(t *testing.T) {
	assert.True(t, newLogger("debug").Core().Enabled(zap.DebugLevel))
	assert.False(t, newLogger("warn").Core().Enabled(zap.InfoLevel))
	assert.True(t, newLogger("bogus").Core().Enabled(zap.InfoLevel))
	assert.False(t, newLogger("bogus").Core().Enabled(zap.DebugLevel))
}
