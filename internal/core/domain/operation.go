package domain

// OperationKind identifies which submission is being made.
type OperationKind string

// Submission kinds.
const (
	// OperationFetch asks the backend to pull orders for the range.
	OperationFetch OperationKind = "fetch"

	// OperationSync asks the backend to reconcile fetched orders.
	OperationSync OperationKind = "sync"
)

// IsValid returns true if the kind is recognised.
func (k OperationKind) IsValid() bool {
	return k == OperationFetch || k == OperationSync
}

// String returns the string representation.
func (k OperationKind) String() string {
	return string(k)
}

// RequiresDateRange reports whether validation demands dates for this kind.
func (k OperationKind) RequiresDateRange() bool {
	return k == OperationFetch
}

// SuccessMessage is shown when the backend accepts the submission without
// a message of its own.
func (k OperationKind) SuccessMessage() string {
	if k == OperationSync {
		return "Data synced successfully."
	}
	return "Data fetched successfully."
}

// RejectedMessage is shown when a non-2xx response carries no message.
func (k OperationKind) RejectedMessage() string {
	if k == OperationSync {
		return "Failed to sync data. Check your credentials."
	}
	return "Failed to fetch data. Check your credentials."
}

// TransportMessage is shown when no response was received.
func (k OperationKind) TransportMessage() string {
	if k == OperationSync {
		return "An error occurred while syncing data."
	}
	return "An error occurred while fetching data."
}

// ActionLabel is the submit button caption while idle.
func (k OperationKind) ActionLabel() string {
	if k == OperationSync {
		return "Sync Data"
	}
	return "Fetch Data"
}

// ProgressLabel is the disabled-button caption while the kind is in flight.
func (k OperationKind) ProgressLabel() string {
	if k == OperationSync {
		return "Syncing..."
	}
	return "Fetching..."
}

// OperationStatus is the submission state machine. At most one
// submission can be in flight.
type OperationStatus int

const (
	// StatusIdle means no submission is running.
	StatusIdle OperationStatus = iota
	// StatusFetchInFlight means a fetch request is awaiting its response.
	StatusFetchInFlight
	// StatusSyncInFlight means a sync request is awaiting its response.
	StatusSyncInFlight
)

// String returns the string representation.
func (s OperationStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusFetchInFlight:
		return "fetch_in_flight"
	case StatusSyncInFlight:
		return "sync_in_flight"
	default:
		return "unknown"
	}
}

// IsIdle returns true when both submit controls are enabled.
func (s OperationStatus) IsIdle() bool {
	return s == StatusIdle
}

// InFlight returns the kind currently running, if any.
func (s OperationStatus) InFlight() (OperationKind, bool) {
	switch s {
	case StatusFetchInFlight:
		return OperationFetch, true
	case StatusSyncInFlight:
		return OperationSync, true
	default:
		return "", false
	}
}

// Begin returns the in-flight status for kind. It fails unless the
// machine is idle.
func (s OperationStatus) Begin(kind OperationKind) (OperationStatus, error) {
	if !s.IsIdle() {
		return s, ErrOperationInFlight
	}
	switch kind {
	case OperationFetch:
		return StatusFetchInFlight, nil
	case OperationSync:
		return StatusSyncInFlight, nil
	default:
		return s, ErrInvalidInput
	}
}

// Finish returns the machine to idle.
func (s OperationStatus) Finish() OperationStatus {
	return StatusIdle
}
