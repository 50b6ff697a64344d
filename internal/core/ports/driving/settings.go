package driving

import "github.com/custodia-labs/storesync-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, filling defaults for missing keys.
	Get() (*domain.ConsoleSettings, error)

	// Set stores a single key after validating the resulting settings.
	Set(key, value string) error

	// Keys lists the configurable keys.
	Keys() []string

	// AllowedStores returns the current store allow-list.
	AllowedStores() domain.StoreList

	// Path returns the configuration file path.
	Path() string
}
