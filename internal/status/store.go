// Package status tracks per-batch ingestion progress. Stores are owned by
// the orchestrator instance that writes to them; there is no module-level
// singleton.
package status

import (
	"context"
	"sync"

	"github.com/elabz/job-ingestion/internal/models"
)

// Store maps batch identifiers to mutable progress records. Unknown
// identifiers yield (zero, false, nil), never an error.
type Store interface {
	Put(ctx context.Context, batchID string, status models.BatchStatus) error
	Get(ctx context.Context, batchID string) (models.BatchStatus, bool, error)
}

// MemoryStore is a mutex-guarded in-memory Store. Its contents have process
// lifetime only; that is a stated limitation, not a bug.
type MemoryStore struct {
	mu      sync.RWMutex
	batches map[string]models.BatchStatus
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{batches: make(map[string]models.BatchStatus)}
}

func (s *MemoryStore) Put(_ context.Context, batchID string, status models.BatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batchID] = status
	return nil
}

func (s *MemoryStore) Get(_ context.Context, batchID string) (models.BatchStatus, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.batches[batchID]
	return st, ok, nil
}
