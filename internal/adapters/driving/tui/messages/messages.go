// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewConsole is the form and activity page.
	ViewConsole ViewType = iota
	// ViewHistory lists journalled submissions.
	ViewHistory
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewConsole:
		return "console"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// SubmitRequested asks the form to start a submission.
type SubmitRequested struct {
	Kind domain.OperationKind
}

// SubmissionCompleted carries the outcome of a submission back to the model.
type SubmissionCompleted struct {
	Result domain.SubmissionResult
}

// RefreshRequested asks the activity table to reload.
type RefreshRequested struct{}

// ActivityLoaded signals that a refresh finished. The rows themselves are
// read from the console state.
type ActivityLoaded struct {
	Err error
}

// NotificationExpired is sent when a notification's lifetime elapses.
type NotificationExpired struct {
	ID int
}

// HistoryLoaded carries journal records.
type HistoryLoaded struct {
	Records []domain.SubmissionRecord
	Err     error
}

// SettingsReloaded is sent when the configuration file changed on disk.
type SettingsReloaded struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
