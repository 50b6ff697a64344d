package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/storesync-cli/internal/logger"
)

// logFileName receives log output while the TUI owns the terminal.
const logFileName = "storesync.log"

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive console for fetching and syncing a store.

The console shows the credential form, the date range and the recent
activity table. Log output goes to storesync.log in the config directory.

Controls:
  Tab, Shift+Tab - Move between fields
  Ctrl+F         - Fetch data
  Ctrl+S         - Sync data
  Ctrl+R         - Refresh activity
  Ctrl+T         - Switch between form and activity table
  Ctrl+O         - Submission history
  Esc            - Dismiss messages / Back
  F1             - Toggle help
  Ctrl+C         - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the app from the wired services.
func newTUIApp() (*tui.App, error) {
	app, err := tui.NewApp(&tui.Ports{
		Console:  consoleService,
		Settings: settingsService,
		Journal:  journalService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app, nil
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in TUI: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := newTUIApp()
	if err != nil {
		return err
	}
	app.WithContext(cmd.Context())

	switch {
	case settingsService == nil:
	case settingsService.Path() == memory.Path:
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)
	default:
		logPath := filepath.Join(filepath.Dir(settingsService.Path()), logFileName)
		if f, logErr := tea.LogToFile(logPath, "storesync"); logErr == nil {
			logger.SetOutput(f)
			defer func() {
				logger.SetOutput(os.Stderr)
				_ = f.Close()
			}()
		}
	}

	p := app.Program()

	if configStore != nil {
		watcher, watchErr := file.NewWatcher(configStore, func() {
			p.Send(messages.SettingsReloaded{})
		})
		if watchErr != nil {
			logger.Warn("config watcher disabled: %v", watchErr)
		} else {
			defer watcher.Close() //nolint:errcheck
			go watcher.Run(cmd.Context())
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
