package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/storesync-cli/internal/logger"
)

// Ensure Console implements the interface.
var _ driving.Console = (*Console)(nil)

// Console owns the control panel state. Every change goes through
// domain.Reduce under a single lock, so callers on any goroutine see
// consistent transitions.
type Console struct {
	backend   driven.Backend
	stores    domain.StoreAllowList
	journal   driving.JournalService
	formatter *ActivityFormatter
	now       func() time.Time

	mu    sync.RWMutex
	state domain.ConsoleState
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithJournal records every submission that reaches the backend.
func WithJournal(journal driving.JournalService) ConsoleOption {
	return func(c *Console) {
		c.journal = journal
	}
}

// WithFormatter sets how activity dates are rendered.
func WithFormatter(f *ActivityFormatter) ConsoleOption {
	return func(c *Console) {
		if f != nil {
			c.formatter = f
		}
	}
}

// WithAPIVersion overrides the API version selected on the fresh form.
func WithAPIVersion(version string) ConsoleOption {
	return func(c *Console) {
		if version != "" {
			c.state.Form.APIVersion = version
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ConsoleOption {
	return func(c *Console) {
		if now != nil {
			c.now = now
		}
	}
}

// NewConsole creates a console controller. The backend may be nil, in
// which case every submission fails with domain.ErrBackendUnavailable.
func NewConsole(backend driven.Backend, stores domain.StoreAllowList, opts ...ConsoleOption) *Console {
	c := &Console{
		backend:   backend,
		stores:    stores,
		formatter: NewActivityFormatter(domain.DefaultConsoleSettings().Display),
		now:       time.Now,
		state:     domain.NewConsoleState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Console) State() domain.ConsoleState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// dispatch applies an action. The new state is kept even when the
// reducer reports an error, since refusals may still add messages.
func (c *Console) dispatch(a domain.Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := domain.Reduce(c.state, a)
	c.state = next
	return err
}

// UpdateField sets a text or flag field.
func (c *Console) UpdateField(field domain.Field, value string) error {
	return c.dispatch(domain.FieldChanged{Field: field, Value: value})
}

// UpdateDate sets or clears one bound of the date range.
func (c *Console) UpdateDate(field domain.Field, date *time.Time) error {
	return c.dispatch(domain.DateChanged{Field: field, Date: date})
}

// Validate checks the current form for kind.
func (c *Console) Validate(kind domain.OperationKind) domain.ValidationErrors {
	c.mu.RLock()
	form := c.state.Form.Clone()
	c.mu.RUnlock()
	return domain.Validate(form, c.stores, kind.RequiresDateRange())
}

// Begin validates the form and marks kind as in flight. Validation and the
// state transition happen under one lock so a second caller cannot slip in.
func (c *Console) Begin(kind domain.OperationKind) (domain.SubmissionRequest, error) {
	if !kind.IsValid() {
		return domain.SubmissionRequest{}, domain.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Status.IsIdle() {
		return domain.SubmissionRequest{}, domain.ErrOperationInFlight
	}

	if errs := domain.Validate(c.state.Form, c.stores, kind.RequiresDateRange()); !errs.Empty() {
		c.state, _ = domain.Reduce(c.state, domain.ValidationFailed{Errors: errs})
		logger.Debug("%s rejected locally: %d validation errors", kind, len(errs))
		return domain.SubmissionRequest{}, errs
	}

	next, err := domain.Reduce(c.state, domain.SubmissionStarted{Kind: kind})
	if err != nil {
		return domain.SubmissionRequest{}, err
	}
	c.state = next

	return domain.NewSubmissionRequest(kind, c.state.Form), nil
}

// Complete sends req and folds the outcome back into state.
func (c *Console) Complete(ctx context.Context, req domain.SubmissionRequest) domain.SubmissionResult {
	startedAt := c.now()
	logger.Debug("submitting %s for %s", req.Kind, req.StoreURL)

	var (
		resp *domain.SubmissionResponse
		err  error
	)
	if c.backend == nil {
		err = &domain.TransportError{Op: string(req.Kind), Err: domain.ErrBackendUnavailable}
	} else {
		resp, err = c.backend.Submit(ctx, req)
	}

	result := classifySubmission(req.Kind, resp, err)
	_ = c.dispatch(domain.SubmissionFinished{Result: result})

	if result.Succeeded() {
		logger.Info("%s succeeded for %s", req.Kind, req.StoreURL)
	} else {
		logger.Warn("%s %s for %s: %v", req.Kind, result.Outcome, req.StoreURL, result.Err)
	}

	// Recorded even after the caller cancels.
	if c.journal != nil {
		if jerr := c.journal.Record(context.WithoutCancel(ctx), req, result, startedAt); jerr != nil {
			logger.Warn("journal write failed: %v", jerr)
		}
	}

	return result
}

// Submit runs Begin then Complete. Local validation failures and a busy
// machine are returned as errors; backend outcomes come back in the result.
func (c *Console) Submit(ctx context.Context, kind domain.OperationKind) (domain.SubmissionResult, error) {
	req, err := c.Begin(kind)
	if err != nil {
		return domain.SubmissionResult{Kind: kind}, err
	}
	return c.Complete(ctx, req), nil
}

// BeginRefresh marks the activity refresh as running.
func (c *Console) BeginRefresh() error {
	return c.dispatch(domain.RefreshStarted{})
}

// CompleteRefresh loads activity. On failure the previous table is kept and
// the error is only logged here; callers decide whether to show it.
func (c *Console) CompleteRefresh(ctx context.Context) error {
	if c.backend == nil {
		_ = c.dispatch(domain.ActivityFailed{Err: domain.ErrBackendUnavailable})
		logger.Warn("activity refresh skipped: %v", domain.ErrBackendUnavailable)
		return domain.ErrBackendUnavailable
	}

	snapshot, err := c.backend.Activity(ctx)
	if err != nil {
		_ = c.dispatch(domain.ActivityFailed{Err: err})
		logger.Warn("activity refresh failed: %v", err)
		return err
	}

	records := c.formatter.Records(snapshot)
	logger.Debug("activity refreshed: %d stores", len(records))
	return c.dispatch(domain.ActivityLoaded{Records: records})
}

// LoadActivity runs BeginRefresh then CompleteRefresh.
func (c *Console) LoadActivity(ctx context.Context) error {
	if err := c.BeginRefresh(); err != nil {
		return err
	}
	return c.CompleteRefresh(ctx)
}

// DismissErrors clears the error set.
func (c *Console) DismissErrors() {
	_ = c.dispatch(domain.ErrorsDismissed{})
}

// DismissNotification hides a notification.
func (c *Console) DismissNotification(id int) {
	_ = c.dispatch(domain.NotificationDismissed{ID: id})
}

// classifySubmission maps a backend answer onto the user-facing result.
func classifySubmission(
	kind domain.OperationKind,
	resp *domain.SubmissionResponse,
	err error,
) domain.SubmissionResult {
	result := domain.SubmissionResult{Kind: kind, Err: err}

	if err == nil {
		result.Outcome = domain.OutcomeSucceeded
		result.Message = kind.SuccessMessage()
		if resp != nil {
			result.StatusCode = resp.StatusCode
			if resp.Message != "" {
				result.Message = resp.Message
			}
		}
		return result
	}

	var rejection *domain.RejectionError
	if errors.As(err, &rejection) {
		result.Outcome = domain.OutcomeRejected
		result.StatusCode = rejection.StatusCode
		result.Message = rejection.Message
		if result.Message == "" {
			result.Message = kind.RejectedMessage()
		}
		return result
	}

	result.Outcome = domain.OutcomeFailed
	result.Message = kind.TransportMessage()
	return result
}
