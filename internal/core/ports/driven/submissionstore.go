package driven

import (
	"context"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

// SubmissionStore persists the submission journal.
type SubmissionStore interface {
	// Save stores a submission record.
	Save(ctx context.Context, record domain.SubmissionRecord) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.SubmissionRecord, error)

	// List returns up to limit records, newest first. A limit of zero
	// or less returns every record.
	List(ctx context.Context, limit int) ([]domain.SubmissionRecord, error)
}
