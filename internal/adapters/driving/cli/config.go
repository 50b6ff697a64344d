package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configShowJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit configuration",
	Long: `View and change the storesync configuration file.

Changes made with "config set" are validated before they are written. A
running console picks up edits to the file without restarting.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a single configuration key. List values are comma separated.

Keys:
  backend.url                   backend base URL
  backend.requests_per_second   client request rate, 0 for unlimited
  backend.timeout_seconds       request timeout, 0 for none
  stores.allowed                store domains accepted by the form
  api.versions                  API versions offered by the form
  api.default_version           version selected on a fresh form
  display.date_layout           Go time layout for activity dates
  display.timezone              IANA zone for activity dates, empty for local
  display.notification_seconds  how long success notices stay visible
  journal.enabled               record submissions locally`,
	Example: `  storesync config set stores.allowed "shop-a.myshopify.com, shop-b.myshopify.com"
  storesync config set backend.url https://sync.example.com`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireSettings(); err != nil {
			return err
		}
		cmd.Println(settingsService.Path())
		return nil
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output configuration as JSON")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configOutput is the --json shape of the configuration.
type configOutput struct {
	BackendURL          string   `json:"backend_url"`
	RequestsPerSecond   float64  `json:"requests_per_second"`
	TimeoutSeconds      int      `json:"timeout_seconds"`
	AllowedStores       []string `json:"allowed_stores"`
	APIVersions         []string `json:"api_versions"`
	DefaultAPIVersion   string   `json:"default_api_version"`
	DateLayout          string   `json:"date_layout"`
	Timezone            string   `json:"timezone"`
	NotificationSeconds int      `json:"notification_seconds"`
	JournalEnabled      bool     `json:"journal_enabled"`
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if configShowJSON {
		return printJSON(cmd.OutOrStdout(), configOutput{
			BackendURL:          s.Backend.URL,
			RequestsPerSecond:   s.Backend.RequestsPerSecond,
			TimeoutSeconds:      int(s.Backend.Timeout.Seconds()),
			AllowedStores:       s.AllowedStores,
			APIVersions:         s.APIVersions,
			DefaultAPIVersion:   s.DefaultAPIVersion,
			DateLayout:          s.Display.DateLayout,
			Timezone:            s.Display.Timezone,
			NotificationSeconds: int(s.Display.NotificationLifetime.Seconds()),
			JournalEnabled:      s.JournalEnabled,
		})
	}

	cmd.Printf("Config file: %s\n\n", settingsService.Path())

	cmd.Println("[Backend]")
	cmd.Printf("  URL: %s\n", s.Backend.URL)
	if s.Backend.RequestsPerSecond > 0 {
		cmd.Printf("  Rate: %g requests/s\n", s.Backend.RequestsPerSecond)
	} else {
		cmd.Printf("  Rate: unlimited\n")
	}
	if s.Backend.Timeout > 0 {
		cmd.Printf("  Timeout: %s\n", s.Backend.Timeout)
	} else {
		cmd.Printf("  Timeout: none\n")
	}
	cmd.Println()

	cmd.Println("[Stores]")
	for _, store := range s.AllowedStores {
		cmd.Printf("  %s\n", store)
	}
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Versions: %s\n", strings.Join(s.APIVersions, ", "))
	cmd.Printf("  Default: %s\n", s.DefaultAPIVersion)
	cmd.Println()

	cmd.Println("[Display]")
	cmd.Printf("  Date layout: %s\n", s.Display.DateLayout)
	tz := s.Display.Timezone
	if tz == "" {
		tz = "local"
	}
	cmd.Printf("  Timezone: %s\n", tz)
	cmd.Printf("  Notifications: %s\n", s.Display.NotificationLifetime)
	cmd.Println()

	cmd.Println("[Journal]")
	if s.JournalEnabled {
		cmd.Printf("  Enabled: yes\n")
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s updated\n", key)
	return nil
}
