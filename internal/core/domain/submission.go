package domain

import "time"

// SubmissionOutcome classifies how a submission ended.
type SubmissionOutcome string

// Submission outcomes.
const (
	// OutcomeSucceeded means the backend answered 2xx.
	OutcomeSucceeded SubmissionOutcome = "succeeded"

	// OutcomeRejected means the backend answered non-2xx.
	OutcomeRejected SubmissionOutcome = "rejected"

	// OutcomeFailed means no usable response arrived.
	OutcomeFailed SubmissionOutcome = "failed"
)

// String returns the string representation.
func (o SubmissionOutcome) String() string {
	return string(o)
}

// SubmissionRequest is the payload sent to the backend.
// It is built from FormState at submission time.
type SubmissionRequest struct {
	Kind          OperationKind
	APIKey        string
	Password      string
	StoreURL      string
	APIVersion    string
	CreatedAtMin  *time.Time
	CreatedAtMax  *time.Time
	FullFetchSync bool
}

// NewSubmissionRequest captures the form for kind.
func NewSubmissionRequest(kind OperationKind, form FormState) SubmissionRequest {
	f := form.Clone()
	return SubmissionRequest{
		Kind:          kind,
		APIKey:        f.APIKey,
		Password:      f.Password,
		StoreURL:      f.StoreURL,
		APIVersion:    f.APIVersion,
		CreatedAtMin:  f.CreatedAtMin,
		CreatedAtMax:  f.CreatedAtMax,
		FullFetchSync: f.FullFetchSync,
	}
}

// SubmissionResponse is what a 2xx backend answer carried.
type SubmissionResponse struct {
	StatusCode int
	Message    string
}

// SubmissionResult is the user-facing result of one submission.
type SubmissionResult struct {
	Kind    OperationKind
	Outcome SubmissionOutcome

	// Message is the notification text on success, or the sole error otherwise.
	Message string

	// StatusCode is zero when no response was received.
	StatusCode int

	// Err is the underlying error for non-success outcomes.
	Err error
}

// Succeeded returns true if the backend accepted the submission.
func (r SubmissionResult) Succeeded() bool {
	return r.Outcome == OutcomeSucceeded
}

// SubmissionRecord is a journal entry for a submission that reached the network.
// Credentials are deliberately absent.
type SubmissionRecord struct {
	ID            string
	Kind          OperationKind
	StoreURL      string
	APIVersion    string
	CreatedAtMin  *time.Time
	CreatedAtMax  *time.Time
	FullFetchSync bool
	Outcome       SubmissionOutcome
	StatusCode    int
	Message       string
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Duration returns how long the request took.
func (r SubmissionRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
