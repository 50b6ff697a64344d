package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

// JournalService exposes the submission history.
type JournalService interface {
	// Record stores a finished submission.
	Record(ctx context.Context, req domain.SubmissionRequest, result domain.SubmissionResult, startedAt time.Time) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.SubmissionRecord, error)
}
