package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

func testRecord(id string, started time.Time) domain.SubmissionRecord {
	return domain.SubmissionRecord{
		ID:         id,
		Kind:       domain.OperationFetch,
		StoreURL:   "rdx-sports-store.myshopify.com",
		APIVersion: domain.DefaultAPIVersion,
		Outcome:    domain.OutcomeSucceeded,
		StatusCode: 200,
		Message:    "Data fetched successfully.",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}
}

func TestSubmissionStore_SaveAndGet(t *testing.T) {
	store := NewSubmissionStore()
	ctx := context.Background()
	rec := testRecord("sub-1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Get(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, rec, *got)
}

func TestSubmissionStore_Get_NotFound(t *testing.T) {
	store := NewSubmissionStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmissionStore_Save_EmptyID(t *testing.T) {
	store := NewSubmissionStore()

	err := store.Save(context.Background(), domain.SubmissionRecord{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmissionStore_List_NewestFirst(t *testing.T) {
	store := NewSubmissionStore()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, testRecord("old", base)))
	require.NoError(t, store.Save(ctx, testRecord("new", base.Add(time.Hour))))
	require.NoError(t, store.Save(ctx, testRecord("same-a", base.Add(30*time.Minute))))
	require.NoError(t, store.Save(ctx, testRecord("same-b", base.Add(30*time.Minute))))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, r := range all {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"new", "same-b", "same-a", "old"}, ids)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, "new", limited[0].ID)
}

func TestSubmissionStore_Save_Replaces(t *testing.T) {
	store := NewSubmissionStore()
	ctx := context.Background()
	rec := testRecord("sub-1", time.Now())

	require.NoError(t, store.Save(ctx, rec))
	rec.Outcome = domain.OutcomeRejected
	require.NoError(t, store.Save(ctx, rec))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.OutcomeRejected, all[0].Outcome)
}
