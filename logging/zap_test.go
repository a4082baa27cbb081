package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	logger, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NotPanics(t, func() { logger.Log("ready") })
	require.NoError(t, logger.Sync())
}

func TestNewConsoleFormat(t *testing.T) {
	logger, err := New(Config{Level: "debug", Format: "console"})
	require.NoError(t, err)
	require.NotPanics(t, func() { logger.Log("debug line") })
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "not-a-level", Format: "json"})
	require.Error(t, err)
}
