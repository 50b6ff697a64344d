package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// User-facing validation messages.
const (
	MsgCredentialsRequired = "API key, password and store URL are required."
	MsgAPIKeyTooShort      = "API key must be at least 32 characters."
	MsgPasswordTooShort    = "Password must be at least 32 characters."
	MsgUnknownStore        = "Store URL is not a recognised store."
	MsgDatesRequired       = "Start and end dates are required unless full fetch & sync is enabled."
	MsgStartAfterEnd       = "Start date cannot be after the end date."
	MsgEndBeforeStart      = "End date cannot be before the start date."
	MsgDatesWithFullSync   = "Dates cannot be set while full fetch & sync is enabled."
)

// ValidationErrors is the ordered set of messages shown to the user.
// An empty set means the form is valid.
type ValidationErrors []string

// Error joins the messages so the set can travel as an error.
// An empty set renders as "".
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(v, " "))
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (v ValidationErrors) Unwrap() error {
	return ErrInvalidInput
}

// Empty returns true if there are no messages.
func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

// Contains returns true if msg is one of the messages.
func (v ValidationErrors) Contains(msg string) bool {
	for _, m := range v {
		if m == msg {
			return true
		}
	}
	return false
}

// StoreAllowList answers whether a store domain may be submitted.
type StoreAllowList interface {
	Allows(storeURL string) bool
}

// StoreList is a StoreAllowList backed by a fixed slice.
// Matching ignores case and surrounding whitespace.
type StoreList []string

// Allows implements StoreAllowList.
func (l StoreList) Allows(storeURL string) bool {
	want := NormaliseStoreURL(storeURL)
	if want == "" {
		return false
	}
	for _, s := range l {
		if NormaliseStoreURL(s) == want {
			return true
		}
	}
	return false
}

// NormaliseStoreURL lowercases and trims a store domain.
func NormaliseStoreURL(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks the form for the given submission kind. Every rule is
// evaluated so the user sees every problem at once.
func Validate(form FormState, stores StoreAllowList, forFetch bool) ValidationErrors {
	var errs ValidationErrors

	if form.APIKey == "" || form.Password == "" || form.StoreURL == "" {
		errs = append(errs, MsgCredentialsRequired)
	}
	if utf8.RuneCountInString(form.APIKey) < MinCredentialLength {
		errs = append(errs, MsgAPIKeyTooShort)
	}
	if utf8.RuneCountInString(form.Password) < MinCredentialLength {
		errs = append(errs, MsgPasswordTooShort)
	}
	if stores == nil || !stores.Allows(form.StoreURL) {
		errs = append(errs, MsgUnknownStore)
	}
	if forFetch && !form.FullFetchSync && !form.HasDateRange() {
		errs = append(errs, MsgDatesRequired)
	}

	return errs
}
