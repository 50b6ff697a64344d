package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driven"
)

// Ensure SubmissionStore implements the interface.
var _ driven.SubmissionStore = (*SubmissionStore)(nil)

// SubmissionStore is an in-memory implementation of driven.SubmissionStore.
type SubmissionStore struct {
	mu      sync.RWMutex
	records map[string]domain.SubmissionRecord
	order   map[string]int
	seq     int
}

// NewSubmissionStore creates a new in-memory submission store.
func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{
		records: make(map[string]domain.SubmissionRecord),
		order:   make(map[string]int),
	}
}

// Save stores or replaces a record.
func (s *SubmissionStore) Save(_ context.Context, record domain.SubmissionRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.order[record.ID]; !exists {
		s.seq++
		s.order[record.ID] = s.seq
	}
	s.records[record.ID] = record
	return nil
}

// Get retrieves a record by ID.
func (s *SubmissionStore) Get(_ context.Context, id string) (*domain.SubmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns records newest first. Ties on StartedAt fall back to
// insertion order.
func (s *SubmissionStore) List(_ context.Context, limit int) ([]domain.SubmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.SubmissionRecord, 0, len(s.records))
	for _, r := range s.records {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.StartedAt.Equal(b.StartedAt) {
			return a.StartedAt.After(b.StartedAt)
		}
		return s.order[a.ID] > s.order[b.ID]
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
