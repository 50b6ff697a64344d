package services

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

// mockBackend implements driven.Backend using testify/mock.
type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Submit(ctx context.Context, req domain.SubmissionRequest) (*domain.SubmissionResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*domain.SubmissionResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBackend) Activity(ctx context.Context) (*domain.ActivitySnapshot, error) {
	args := m.Called(ctx)
	if snap := args.Get(0); snap != nil {
		return snap.(*domain.ActivitySnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

// blockingBackend holds Submit until release is closed.
type blockingBackend struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingBackend() *blockingBackend {
	return &blockingBackend{started: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingBackend) Submit(ctx context.Context, _ domain.SubmissionRequest) (*domain.SubmissionResponse, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
		return &domain.SubmissionResponse{StatusCode: 200}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *blockingBackend) Activity(context.Context) (*domain.ActivitySnapshot, error) {
	return &domain.ActivitySnapshot{}, nil
}

// recordingJournal captures Record calls.
type recordingJournal struct {
	mu      sync.Mutex
	records []domain.SubmissionResult
	ctxErrs []error
	err     error
}

func (j *recordingJournal) Record(ctx context.Context, _ domain.SubmissionRequest, result domain.SubmissionResult, _ time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, result)
	j.ctxErrs = append(j.ctxErrs, ctx.Err())
	return j.err
}

func (j *recordingJournal) Recent(context.Context, int) ([]domain.SubmissionRecord, error) {
	return nil, nil
}
