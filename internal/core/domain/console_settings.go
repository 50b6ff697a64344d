package domain

import (
	"net/url"
	"strings"
	"time"
)

// Default setting values.
const (
	DefaultBackendURL          = "http://127.0.0.1:8000"
	DefaultRequestsPerSecond   = 2.0
	DefaultDateLayout          = "Jan 2, 2006"
	DefaultNotificationSeconds = 5
)

// DefaultAllowedStores returns the store domains accepted when none are configured.
func DefaultAllowedStores() []string {
	return []string{"rdx-sports-store.myshopify.com"}
}

// BackendSettings configures the backend HTTP client.
type BackendSettings struct {
	// URL is the backend base URL.
	URL string

	// RequestsPerSecond paces outgoing requests. Zero disables pacing.
	RequestsPerSecond float64

	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration
}

// DisplaySettings controls how dates are rendered.
type DisplaySettings struct {
	// DateLayout is a Go time layout.
	DateLayout string

	// Timezone is an IANA zone name. Empty means the local zone.
	Timezone string

	// NotificationLifetime is how long a success notification stays up.
	// Zero keeps it until dismissed.
	NotificationLifetime time.Duration
}

// Location resolves Timezone, falling back to the local zone.
func (d DisplaySettings) Location() *time.Location {
	if d.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ConsoleSettings holds all persisted configuration.
type ConsoleSettings struct {
	Backend           BackendSettings
	AllowedStores     []string
	APIVersions       []string
	DefaultAPIVersion string
	Display           DisplaySettings
	JournalEnabled    bool
}

// DefaultConsoleSettings returns the settings used on first run.
func DefaultConsoleSettings() ConsoleSettings {
	return ConsoleSettings{
		Backend: BackendSettings{
			URL:               DefaultBackendURL,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		AllowedStores:     DefaultAllowedStores(),
		APIVersions:       DefaultAPIVersions(),
		DefaultAPIVersion: DefaultAPIVersion,
		Display: DisplaySettings{
			DateLayout:           DefaultDateLayout,
			NotificationLifetime: DefaultNotificationSeconds * time.Second,
		},
		JournalEnabled: true,
	}
}

// Validate checks settings for obviously broken values.
func (s ConsoleSettings) Validate() error {
	u, err := url.Parse(s.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &SettingsError{Key: "backend.url", Reason: "must be an absolute URL"}
	}
	if s.Backend.RequestsPerSecond < 0 {
		return &SettingsError{Key: "backend.requests_per_second", Reason: "must not be negative"}
	}
	if s.Backend.Timeout < 0 {
		return &SettingsError{Key: "backend.timeout_seconds", Reason: "must not be negative"}
	}
	if len(s.APIVersions) == 0 {
		return &SettingsError{Key: "api.versions", Reason: "must not be empty"}
	}
	if !containsFold(s.APIVersions, s.DefaultAPIVersion) {
		return &SettingsError{Key: "api.default_version", Reason: "must be one of api.versions"}
	}
	return nil
}

// SettingsError reports an invalid configuration value.
type SettingsError struct {
	Key    string
	Reason string
}

func (e *SettingsError) Error() string {
	return e.Key + " " + e.Reason
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *SettingsError) Unwrap() error {
	return ErrInvalidInput
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
