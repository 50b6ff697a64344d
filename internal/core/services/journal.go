package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driving"
)

// Ensure JournalService implements the interface.
var _ driving.JournalService = (*JournalService)(nil)

// DefaultJournalLimit is how many records Recent returns for a zero limit.
const DefaultJournalLimit = 20

// JournalService records submission attempts. Credentials never reach the store.
type JournalService struct {
	store driven.SubmissionStore
	now   func() time.Time
}

// NewJournalService creates a journal over store.
func NewJournalService(store driven.SubmissionStore) *JournalService {
	return &JournalService{store: store, now: time.Now}
}

// Record stores a finished submission.
func (j *JournalService) Record(
	ctx context.Context,
	req domain.SubmissionRequest,
	result domain.SubmissionResult,
	startedAt time.Time,
) error {
	record := domain.SubmissionRecord{
		ID:            uuid.New().String(),
		Kind:          req.Kind,
		StoreURL:      req.StoreURL,
		APIVersion:    req.APIVersion,
		CreatedAtMin:  req.CreatedAtMin,
		CreatedAtMax:  req.CreatedAtMax,
		FullFetchSync: req.FullFetchSync,
		Outcome:       result.Outcome,
		StatusCode:    result.StatusCode,
		Message:       result.Message,
		StartedAt:     startedAt,
		FinishedAt:    j.now(),
	}

	if err := j.store.Save(ctx, record); err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (j *JournalService) Recent(ctx context.Context, limit int) ([]domain.SubmissionRecord, error) {
	if limit <= 0 {
		limit = DefaultJournalLimit
	}
	records, err := j.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return records, nil
}
