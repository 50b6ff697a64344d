// Package cli provides the cobra command tree for storesync.
package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driven/backend/httpapi"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/storesync-cli/internal/core/services"
	"github.com/custodia-labs/storesync-cli/internal/logger"
)

// version is set at build time through SetVersion.
var version = "dev"

// annotationNoServices marks commands that run without wiring services.
const annotationNoServices = "storesync/no-services"

// dataDirName holds the journal database under the config directory.
const dataDirName = "data"

// Global flags.
var (
	configDir  string
	noConfig   bool
	backendURL string
	verbose    bool
)

// Services used by the commands. Tests replace them directly; when left nil
// they are built from configuration before the command runs.
var (
	consoleService  driving.Console
	settingsService driving.SettingsService
	journalService  driving.JournalService
	configStore     *file.ConfigStore
)

// closers release resources opened while wiring services.
var closers []func() error

var rootCmd = &cobra.Command{
	Use:   "storesync",
	Short: "Shopify store fetch and sync console",
	Long: `storesync collects Shopify store credentials and a date range, then asks
the storesync backend to fetch or sync orders for that store.

Run without a subcommand to open the interactive console.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
	RunE:              runTUI,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.storesync)")
	flags.BoolVar(&noConfig, "no-config", false, "use built-in defaults in memory; no files are read or written")
	flags.StringVar(&backendURL, "backend-url", "", "backend base URL, overrides backend.url")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.MarkFlagsMutuallyExclusive("config-dir", "no-config")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the command tree and releases any wired resources.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationNoServices] != "" || consoleService != nil {
		return nil
	}
	if noConfig {
		return wireInMemory()
	}
	return wireServices()
}

// wireServices builds the service graph from the config directory.
func wireServices() error {
	dir := configDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return fmt.Errorf("resolving config directory: %w", err)
		}
		dir = d
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	err = wireConsole(store, func() (driven.SubmissionStore, error) {
		db, err := sqlite.NewStore(filepath.Join(dir, dataDirName))
		if err != nil {
			return nil, err
		}
		closers = append(closers, db.Close)
		return db.SubmissionStore(), nil
	})
	if err != nil {
		return err
	}
	configStore = store
	return nil
}

// wireInMemory builds the service graph on default settings held in
// memory, with an in-memory journal.
func wireInMemory() error {
	return wireConsole(memory.NewConfigStore(), func() (driven.SubmissionStore, error) {
		return memory.NewSubmissionStore(), nil
	})
}

// wireConsole builds settings, backend client and console over config.
// openJournal is called only when the journal is enabled.
func wireConsole(config driven.ConfigStore, openJournal func() (driven.SubmissionStore, error)) error {
	settings := services.NewSettingsService(config)

	current, err := settings.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if err := current.Validate(); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", config.Path(), err)
	}

	baseURL := current.Backend.URL
	if backendURL != "" {
		baseURL = backendURL
	}
	client := httpapi.NewClient(httpapi.Config{
		BaseURL:           baseURL,
		RequestsPerSecond: current.Backend.RequestsPerSecond,
		Timeout:           current.Backend.Timeout,
	})
	logger.Debug("backend: %s", client.BaseURL())

	opts := []services.ConsoleOption{
		services.WithFormatter(services.NewActivityFormatter(current.Display)),
		services.WithAPIVersion(current.DefaultAPIVersion),
	}

	if current.JournalEnabled {
		submissions, err := openJournal()
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		journal := services.NewJournalService(submissions)
		opts = append(opts, services.WithJournal(journal))
		journalService = journal
	}

	settingsService = settings
	consoleService = services.NewConsole(client, settings, opts...)
	return nil
}

// closeServices releases resources opened by wireServices.
func closeServices() {
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Warn("close: %v", err)
		}
	}
	closers = nil
}

// errNotConfigured is returned when a command runs without its service.
var errNotConfigured = errors.New("service not configured")

func requireConsole() error {
	if consoleService == nil {
		return fmt.Errorf("console: %w", errNotConfigured)
	}
	return nil
}

func requireSettings() error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}
	return nil
}
