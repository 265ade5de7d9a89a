package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"port", "seed", "log-level"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestRootCommandRejectsInvalidOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PORT", "")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--log-level", "loud"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")

	cmd = newRootCommand()
	cmd.SetArgs([]string{"--port", "0"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}
