package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConsoleSettings_Valid(t *testing.T) {
	s := DefaultConsoleSettings()

	assert.NoError(t, s.Validate())
	assert.Equal(t, DefaultBackendURL, s.Backend.URL)
	assert.Equal(t, []string{"rdx-sports-store.myshopify.com"}, s.AllowedStores)
	assert.Equal(t, DefaultAPIVersion, s.DefaultAPIVersion)
	assert.Zero(t, s.Backend.Timeout)
	assert.True(t, s.JournalEnabled)
}

func TestConsoleSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConsoleSettings)
		key    string
	}{
		{"relative url", func(s *ConsoleSettings) { s.Backend.URL = "localhost" }, "backend.url"},
		{"negative rate", func(s *ConsoleSettings) { s.Backend.RequestsPerSecond = -1 }, "backend.requests_per_second"},
		{"negative timeout", func(s *ConsoleSettings) { s.Backend.Timeout = -time.Second }, "backend.timeout_seconds"},
		{"no versions", func(s *ConsoleSettings) { s.APIVersions = nil }, "api.versions"},
		{"default not offered", func(s *ConsoleSettings) { s.DefaultAPIVersion = "2019-01" }, "api.default_version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultConsoleSettings()
			tt.mutate(&s)

			err := s.Validate()

			assert.ErrorIs(t, err, ErrInvalidInput)
			var settingsErr *SettingsError
			if assert.ErrorAs(t, err, &settingsErr) {
				assert.Equal(t, tt.key, settingsErr.Key)
			}
		})
	}
}

func TestDisplaySettings_Location(t *testing.T) {
	assert.Equal(t, time.Local, DisplaySettings{}.Location())
	assert.Equal(t, time.Local, DisplaySettings{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, "UTC", DisplaySettings{Timezone: "UTC"}.Location().String())
}
