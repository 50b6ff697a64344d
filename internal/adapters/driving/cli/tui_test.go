package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui"
)

func TestTUICmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescription(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "interactive console")
	assert.Contains(t, tuiCmd.Long, "Controls:")
	assert.Contains(t, tuiCmd.Long, "Ctrl+F")
}

func TestTUICmd_HelpOutput(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "tui", "--help")

	require.NoError(t, err)
	assert.Contains(t, stdout, "interactive console")
	assert.Contains(t, stdout, "Controls:")
}

func TestRootCmd_DefaultsToTUI(t *testing.T) {
	assert.NotNil(t, rootCmd.RunE)
}

func TestNewTUIApp(t *testing.T) {
	t.Run("builds from wired services", func(t *testing.T) {
		setupCLITest(t)

		app, err := newTUIApp()

		require.NoError(t, err)
		assert.NotNil(t, app)
	})

	t.Run("fails without console", func(t *testing.T) {
		setupCLITest(t)
		consoleService = nil

		_, err := newTUIApp()

		require.Error(t, err)
		assert.ErrorIs(t, err, tui.ErrMissingConsole)
	})
}
