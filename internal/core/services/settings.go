package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interfaces.
var (
	_ driving.SettingsService = (*SettingsService)(nil)
	_ domain.StoreAllowList   = (*SettingsService)(nil)
)

// Config keys for settings storage.
const (
	keyBackendURL          = "backend.url"
	keyBackendRate         = "backend.requests_per_second"
	keyBackendTimeout      = "backend.timeout_seconds"
	keyAllowedStores       = "stores.allowed"
	keyAPIVersions         = "api.versions"
	keyDefaultAPIVersion   = "api.default_version"
	keyDateLayout          = "display.date_layout"
	keyTimezone            = "display.timezone"
	keyNotificationSeconds = "display.notification_seconds"
	keyJournalEnabled      = "journal.enabled"
)

// keyKind describes how a key's string form is parsed.
type keyKind int

const (
	kindString keyKind = iota
	kindFloat
	kindInt
	kindBool
	kindList
)

var settingKeys = map[string]keyKind{
	keyBackendURL:          kindString,
	keyBackendRate:         kindFloat,
	keyBackendTimeout:      kindInt,
	keyAllowedStores:       kindList,
	keyAPIVersions:         kindList,
	keyDefaultAPIVersion:   kindString,
	keyDateLayout:          kindString,
	keyTimezone:            kindString,
	keyNotificationSeconds: kindInt,
	keyJournalEnabled:      kindBool,
}

// SettingsService manages application settings.
// Values are read from the config store on every call, so a reloaded
// file takes effect immediately.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings.
func (s *SettingsService) Get() (*domain.ConsoleSettings, error) {
	defaults := domain.DefaultConsoleSettings()

	settings := &domain.ConsoleSettings{
		Backend: domain.BackendSettings{
			URL:               s.getString(keyBackendURL, defaults.Backend.URL),
			RequestsPerSecond: s.getFloat(keyBackendRate, defaults.Backend.RequestsPerSecond),
			Timeout:           time.Duration(s.configStore.GetInt(keyBackendTimeout)) * time.Second,
		},
		AllowedStores:     s.getList(keyAllowedStores, defaults.AllowedStores),
		APIVersions:       s.getList(keyAPIVersions, defaults.APIVersions),
		DefaultAPIVersion: s.getString(keyDefaultAPIVersion, defaults.DefaultAPIVersion),
		Display: domain.DisplaySettings{
			DateLayout: s.getString(keyDateLayout, defaults.Display.DateLayout),
			Timezone:   s.configStore.GetString(keyTimezone),
			NotificationLifetime: s.getSeconds(keyNotificationSeconds,
				defaults.Display.NotificationLifetime),
		},
		JournalEnabled: s.getBool(keyJournalEnabled, defaults.JournalEnabled),
	}

	return settings, nil
}

// Set parses value according to key, validates the resulting settings
// and persists the key.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	candidate, err := s.Get()
	if err != nil {
		return err
	}
	applySetting(candidate, key, parsed)
	if err := candidate.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the configurable keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AllowedStores returns the current store allow-list.
func (s *SettingsService) AllowedStores() domain.StoreList {
	return domain.StoreList(s.getList(keyAllowedStores, domain.DefaultAllowedStores()))
}

// Allows implements domain.StoreAllowList against the live configuration.
func (s *SettingsService) Allows(storeURL string) bool {
	return s.AllowedStores().Allows(storeURL)
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Second
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getList(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func parseSetting(kind keyKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	case kindInt:
		return strconv.Atoi(value)
	case kindBool:
		return strconv.ParseBool(value)
	case kindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	default:
		return value, nil
	}
}

//nolint:gocyclo // one case per key
func applySetting(s *domain.ConsoleSettings, key string, value any) {
	switch key {
	case keyBackendURL:
		s.Backend.URL = value.(string)
	case keyBackendRate:
		s.Backend.RequestsPerSecond = value.(float64)
	case keyBackendTimeout:
		s.Backend.Timeout = time.Duration(value.(int)) * time.Second
	case keyAllowedStores:
		s.AllowedStores = value.([]string)
	case keyAPIVersions:
		s.APIVersions = value.([]string)
	case keyDefaultAPIVersion:
		s.DefaultAPIVersion = value.(string)
	case keyDateLayout:
		s.Display.DateLayout = value.(string)
	case keyTimezone:
		s.Display.Timezone = value.(string)
	case keyNotificationSeconds:
		s.Display.NotificationLifetime = time.Duration(value.(int)) * time.Second
	case keyJournalEnabled:
		s.JournalEnabled = value.(bool)
	}
}
