package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSet_InvalidValueLeavesConfigUsable(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "config", "set", "--key", "workers", "--value", "0")
	assert.ErrorContains(t, err, "workers must be at least 1")

	out, err := runCLI(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "workers")

	_, err = runCLI(t, "config", "set", "--key", "workers", "--value", "6")
	require.NoError(t, err)

	// commands that need the full app still start
	_, err = runCLI(t, "stats")
	require.NoError(t, err)
}
