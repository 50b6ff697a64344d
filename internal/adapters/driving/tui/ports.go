// Package tui provides the interactive terminal control panel for storesync.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Console owns the form, the submissions and the activity table.
	Console driving.Console

	// Settings supplies API versions and display options.
	Settings driving.SettingsService

	// Journal lists past submissions. Optional; the history screen is
	// empty without it.
	Journal driving.JournalService
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Console == nil {
		return ErrMissingConsole
	}
	if p.Settings == nil {
		return ErrMissingSettings
	}
	return nil
}
