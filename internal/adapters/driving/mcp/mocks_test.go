package mcp

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/core/services"
)

const testStore = "rdx-sports-store.myshopify.com"

// stubBackend answers every submission with resp or err.
type stubBackend struct {
	mu        sync.Mutex
	submitted []domain.SubmissionRequest
	resp      *domain.SubmissionResponse
	err       error
	activity  *domain.ActivitySnapshot
	actErr    error
}

func (b *stubBackend) Submit(_ context.Context, req domain.SubmissionRequest) (*domain.SubmissionResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitted = append(b.submitted, req)
	if b.err != nil {
		return nil, b.err
	}
	if b.resp == nil {
		return &domain.SubmissionResponse{StatusCode: 200}, nil
	}
	return b.resp, nil
}

func (b *stubBackend) Activity(context.Context) (*domain.ActivitySnapshot, error) {
	return b.activity, b.actErr
}

func (b *stubBackend) requests() []domain.SubmissionRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.SubmissionRequest(nil), b.submitted...)
}

// failingJournal fails every read.
type failingJournal struct {
	err error
}

func (j *failingJournal) Record(context.Context, domain.SubmissionRequest, domain.SubmissionResult, time.Time) error {
	return j.err
}

func (j *failingJournal) Recent(context.Context, int) ([]domain.SubmissionRecord, error) {
	return nil, j.err
}

type testEnv struct {
	backend  *stubBackend
	config   *memory.ConfigStore
	settings *services.SettingsService
	journal  *services.JournalService
	console  *services.Console
	ports    *Ports
}

func newTestEnv() *testEnv {
	backend := &stubBackend{}
	config := memory.NewConfigStore()
	settings := services.NewSettingsService(config)
	journal := services.NewJournalService(memory.NewSubmissionStore())
	console := services.NewConsole(backend, settings, services.WithJournal(journal))
	return &testEnv{
		backend:  backend,
		config:   config,
		settings: settings,
		journal:  journal,
		console:  console,
		ports:    &Ports{Console: console, Settings: settings, Journal: journal},
	}
}
