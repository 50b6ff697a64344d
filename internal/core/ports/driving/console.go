package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

// Console is the credential and sync form controller.
type Console interface {
	// State returns a snapshot of the current state.
	State() domain.ConsoleState

	// UpdateField sets a text or flag field.
	UpdateField(field domain.Field, value string) error

	// UpdateDate sets or clears one bound of the date range. A refused
	// change leaves the form unchanged and appends its message to the errors.
	UpdateDate(field domain.Field, date *time.Time) error

	// Validate checks the form for kind without changing state.
	Validate(kind domain.OperationKind) domain.ValidationErrors

	// Begin validates the form and moves the state machine to in-flight.
	// Failed validation is recorded in state and returned as
	// domain.ValidationErrors; a busy machine returns domain.ErrOperationInFlight.
	Begin(kind domain.OperationKind) (domain.SubmissionRequest, error)

	// Complete sends a request obtained from Begin and returns the machine
	// to idle whatever the outcome.
	Complete(ctx context.Context, req domain.SubmissionRequest) domain.SubmissionResult

	// Submit runs Begin then Complete.
	Submit(ctx context.Context, kind domain.OperationKind) (domain.SubmissionResult, error)

	// BeginRefresh marks the activity refresh as running.
	BeginRefresh() error

	// CompleteRefresh loads activity from the backend. Failures are logged
	// and the previous table is kept.
	CompleteRefresh(ctx context.Context) error

	// LoadActivity runs BeginRefresh then CompleteRefresh.
	LoadActivity(ctx context.Context) error

	// DismissErrors clears the error set.
	DismissErrors()

	// DismissNotification hides notification id, or the current one when id is zero.
	DismissNotification(id int)
}
