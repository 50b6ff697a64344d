package mcp

import (
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Console owns the form and submits to the backend.
	Console driving.Console

	// Settings exposes the allow-list and configuration resources.
	Settings driving.SettingsService

	// Journal lists recorded submissions. Optional.
	Journal driving.JournalService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Console == nil {
		return ErrMissingConsole
	}
	if p.Settings == nil {
		return ErrMissingSettings
	}
	return nil
}
