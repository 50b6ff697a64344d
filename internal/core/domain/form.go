package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIVersion is the Shopify Admin API version selected on a fresh form.
const DefaultAPIVersion = "2025-01"

// MinCredentialLength is the minimum length of the API key and the password.
const MinCredentialLength = 32

// DefaultAPIVersions returns the API versions offered when none are configured.
func DefaultAPIVersions() []string {
	return []string{"2025-01", "2024-10", "2024-07", "2024-04"}
}

// Field identifies a form field by its wire name.
type Field string

// Form fields.
const (
	FieldAPIKey        Field = "api_key"
	FieldPassword      Field = "password"
	FieldStoreURL      Field = "store_url"
	FieldAPIVersion    Field = "api_version"
	FieldCreatedAtMin  Field = "created_at_min"
	FieldCreatedAtMax  Field = "created_at_max"
	FieldFullFetchSync Field = "full_fetch_sync"
)

// IsValid returns true if the field is recognised.
func (f Field) IsValid() bool {
	switch f {
	case FieldAPIKey, FieldPassword, FieldStoreURL, FieldAPIVersion,
		FieldCreatedAtMin, FieldCreatedAtMax, FieldFullFetchSync:
		return true
	default:
		return false
	}
}

// IsDate returns true for the two date-range fields.
func (f Field) IsDate() bool {
	return f == FieldCreatedAtMin || f == FieldCreatedAtMax
}

// String returns the wire name.
func (f Field) String() string {
	return string(f)
}

// Label returns the human-readable label.
func (f Field) Label() string {
	switch f {
	case FieldAPIKey:
		return "API Key"
	case FieldPassword:
		return "Password"
	case FieldStoreURL:
		return "Store URL"
	case FieldAPIVersion:
		return "API Version"
	case FieldCreatedAtMin:
		return "Created At Min (Start Date)"
	case FieldCreatedAtMax:
		return "Created At Max (End Date)"
	case FieldFullFetchSync:
		return "Full Fetch & Sync"
	default:
		return string(f)
	}
}

// FormState holds the credentials and range that a submission is built from.
//
// Invariants maintained by every transition:
//   - FullFetchSync implies both dates are nil.
//   - CreatedAtMin is not after CreatedAtMax when both are set.
type FormState struct {
	APIKey        string
	Password      string
	StoreURL      string
	APIVersion    string
	CreatedAtMin  *time.Time
	CreatedAtMax  *time.Time
	FullFetchSync bool
}

// NewFormState returns a form with default values.
func NewFormState() FormState {
	return FormState{APIVersion: DefaultAPIVersion}
}

// Clone returns a deep copy so callers cannot alias the date pointers.
func (f FormState) Clone() FormState {
	out := f
	out.CreatedAtMin = cloneTime(f.CreatedAtMin)
	out.CreatedAtMax = cloneTime(f.CreatedAtMax)
	return out
}

// HasDateRange returns true when both dates are present.
func (f FormState) HasDateRange() bool {
	return f.CreatedAtMin != nil && f.CreatedAtMax != nil
}

// WithField returns a copy with a text or flag field set from its string value.
// Setting FullFetchSync to true clears both dates in the same step.
func (f FormState) WithField(field Field, value string) (FormState, error) {
	out := f.Clone()
	switch field {
	case FieldAPIKey:
		out.APIKey = value
	case FieldPassword:
		out.Password = value
	case FieldStoreURL:
		out.StoreURL = strings.TrimSpace(value)
	case FieldAPIVersion:
		out.APIVersion = strings.TrimSpace(value)
	case FieldFullFetchSync:
		on, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return f, fmt.Errorf("%w: %s must be true or false", ErrInvalidInput, field)
		}
		out.FullFetchSync = on
		if on {
			out.CreatedAtMin = nil
			out.CreatedAtMax = nil
		}
	case FieldCreatedAtMin, FieldCreatedAtMax:
		return f, fmt.Errorf("%w: %s is a date field", ErrInvalidInput, field)
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return out, nil
}

// WithDate returns a copy with one bound of the range set, or an error
// describing why the change was refused. A nil date clears the bound.
func (f FormState) WithDate(field Field, date *time.Time) (FormState, error) {
	if !field.IsDate() {
		return f, fmt.Errorf("%w: %q is not a date field", ErrUnknownField, field)
	}
	if date != nil && f.FullFetchSync {
		return f, &DateRangeError{Field: field, Message: MsgDatesWithFullSync}
	}

	out := f.Clone()
	switch field {
	case FieldCreatedAtMin:
		if date != nil && f.CreatedAtMax != nil && date.After(*f.CreatedAtMax) {
			return f, &DateRangeError{Field: field, Message: MsgStartAfterEnd}
		}
		out.CreatedAtMin = cloneTime(date)
	case FieldCreatedAtMax:
		if date != nil && f.CreatedAtMin != nil && date.Before(*f.CreatedAtMin) {
			return f, &DateRangeError{Field: field, Message: MsgEndBeforeStart}
		}
		out.CreatedAtMax = cloneTime(date)
	}
	return out, nil
}

// DateRangeError reports a refused date update. Message is user-facing.
type DateRangeError struct {
	Field   Field
	Message string
}

func (e *DateRangeError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match ErrDateRange.
func (e *DateRangeError) Unwrap() error {
	return ErrDateRange
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
