package domain

import (
	"errors"
	"time"
)

// ConsoleState is everything the control panel shows. It only changes
// through Reduce.
type ConsoleState struct {
	Form         FormState
	Errors       ValidationErrors
	Status       OperationStatus
	Refreshing   bool
	Activity     []ActivityRecord
	Notification Notification
}

// NewConsoleState returns the state of a freshly mounted form.
func NewConsoleState() ConsoleState {
	return ConsoleState{Form: NewFormState()}
}

// Clone returns a deep copy safe to hand to readers.
func (s ConsoleState) Clone() ConsoleState {
	out := s
	out.Form = s.Form.Clone()
	if s.Errors != nil {
		out.Errors = append(ValidationErrors(nil), s.Errors...)
	}
	if s.Activity != nil {
		out.Activity = append([]ActivityRecord(nil), s.Activity...)
	}
	return out
}

// SubmitEnabled reports whether the submit controls accept input.
func (s ConsoleState) SubmitEnabled() bool {
	return s.Status.IsIdle()
}

// RefreshEnabled reports whether the refresh control accepts input.
func (s ConsoleState) RefreshEnabled() bool {
	return !s.Refreshing
}

// Action is a state transition request handled by Reduce.
type Action interface {
	action()
}

// FieldChanged sets a text or flag field.
type FieldChanged struct {
	Field Field
	Value string
}

// DateChanged sets or clears one bound of the date range.
type DateChanged struct {
	Field Field
	Date  *time.Time
}

// ValidationFailed replaces the error set with a failed validation pass.
type ValidationFailed struct {
	Errors ValidationErrors
}

// SubmissionStarted moves the state machine out of idle.
type SubmissionStarted struct {
	Kind OperationKind
}

// SubmissionFinished reports the result of a submission.
type SubmissionFinished struct {
	Result SubmissionResult
}

// RefreshStarted marks the activity refresh as running.
type RefreshStarted struct{}

// ActivityLoaded replaces the activity table.
type ActivityLoaded struct {
	Records []ActivityRecord
}

// ActivityFailed ends a refresh and keeps the previous table.
type ActivityFailed struct {
	Err error
}

// ErrorsDismissed clears the error set.
type ErrorsDismissed struct{}

// NotificationDismissed hides the notification with the given ID.
// An ID of zero hides whatever is showing.
type NotificationDismissed struct {
	ID int
}

func (FieldChanged) action()          {}
func (DateChanged) action()           {}
func (ValidationFailed) action()      {}
func (SubmissionStarted) action()     {}
func (SubmissionFinished) action()    {}
func (RefreshStarted) action()        {}
func (ActivityLoaded) action()        {}
func (ActivityFailed) action()        {}
func (ErrorsDismissed) action()       {}
func (NotificationDismissed) action() {}

// Reduce applies one action and returns the next state. The returned error
// explains a refused action; the state is still the one to keep, since a
// refused date change appends its message to the error set.
func Reduce(s ConsoleState, a Action) (ConsoleState, error) {
	next := s.Clone()

	switch a := a.(type) {
	case FieldChanged:
		form, err := next.Form.WithField(a.Field, a.Value)
		if err != nil {
			return s, err
		}
		next.Form = form

	case DateChanged:
		form, err := next.Form.WithDate(a.Field, a.Date)
		if err != nil {
			var rangeErr *DateRangeError
			if errors.As(err, &rangeErr) {
				next.Errors = append(next.Errors, rangeErr.Message)
				return next, err
			}
			return s, err
		}
		next.Form = form

	case ValidationFailed:
		next.Errors = append(ValidationErrors(nil), a.Errors...)

	case SubmissionStarted:
		status, err := next.Status.Begin(a.Kind)
		if err != nil {
			return s, err
		}
		next.Status = status

	case SubmissionFinished:
		next.Status = next.Status.Finish()
		if a.Result.Succeeded() {
			next.Errors = nil
			next.Notification = Notification{
				ID:      s.Notification.ID + 1,
				Visible: true,
				Message: a.Result.Message,
			}
		} else {
			next.Errors = ValidationErrors{a.Result.Message}
		}

	case RefreshStarted:
		if s.Refreshing {
			return s, ErrRefreshInFlight
		}
		next.Refreshing = true

	case ActivityLoaded:
		next.Refreshing = false
		next.Activity = append([]ActivityRecord(nil), a.Records...)

	case ActivityFailed:
		next.Refreshing = false

	case ErrorsDismissed:
		next.Errors = nil

	case NotificationDismissed:
		if a.ID == 0 || a.ID == s.Notification.ID {
			next.Notification.Visible = false
		}

	default:
		return s, ErrInvalidInput
	}

	return next, nil
}
