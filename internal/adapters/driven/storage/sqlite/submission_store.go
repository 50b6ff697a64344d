package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driven"
)

// submissionStore implements driven.SubmissionStore.
type submissionStore struct {
	store *Store
}

var _ driven.SubmissionStore = (*submissionStore)(nil)

const submissionColumns = `id, kind, store_url, api_version, created_at_min, created_at_max,
	full_fetch_sync, outcome, status_code, message, started_at, finished_at`

// Save stores or replaces a record.
func (s *submissionStore) Save(ctx context.Context, r domain.SubmissionRecord) error {
	if r.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO submissions (`+submissionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			store_url = excluded.store_url,
			api_version = excluded.api_version,
			created_at_min = excluded.created_at_min,
			created_at_max = excluded.created_at_max,
			full_fetch_sync = excluded.full_fetch_sync,
			outcome = excluded.outcome,
			status_code = excluded.status_code,
			message = excluded.message,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`,
		r.ID,
		string(r.Kind),
		r.StoreURL,
		r.APIVersion,
		toNullMillis(r.CreatedAtMin),
		toNullMillis(r.CreatedAtMax),
		r.FullFetchSync,
		string(r.Outcome),
		r.StatusCode,
		r.Message,
		r.StartedAt.UnixMilli(),
		r.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("saving submission: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *submissionStore) Get(ctx context.Context, id string) (*domain.SubmissionRecord, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)

	record, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting submission: %w", err)
	}
	return record, nil
}

// List returns records newest first.
func (s *submissionStore) List(ctx context.Context, limit int) ([]domain.SubmissionRecord, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	records := []domain.SubmissionRecord{}
	for rows.Next() {
		record, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}
	return records, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*domain.SubmissionRecord, error) {
	var (
		r                   domain.SubmissionRecord
		kind, outcome       string
		minMillis, maxMilli sql.NullInt64
		started, finished   int64
	)
	err := row.Scan(
		&r.ID, &kind, &r.StoreURL, &r.APIVersion,
		&minMillis, &maxMilli, &r.FullFetchSync,
		&outcome, &r.StatusCode, &r.Message,
		&started, &finished,
	)
	if err != nil {
		return nil, err
	}

	r.Kind = domain.OperationKind(kind)
	r.Outcome = domain.SubmissionOutcome(outcome)
	r.CreatedAtMin = fromNullMillis(minMillis)
	r.CreatedAtMax = fromNullMillis(maxMilli)
	r.StartedAt = time.UnixMilli(started).UTC()
	r.FinishedAt = time.UnixMilli(finished).UTC()
	return &r, nil
}

func toNullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func fromNullMillis(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.UnixMilli(v.Int64).UTC()
	return &t
}
