package devserver

import (
	"context"
	"sync"

	"go-jobboard/internal/models"
)

// Store keeps the postings served by the stand-in directory.
type Store interface {
	List(ctx context.Context) ([]models.JobRecord, error)
	Add(ctx context.Context, job models.JobRecord) error
	Close() error
}

// MemoryStore is a Store that lives as long as the process.
type MemoryStore struct {
	mu   sync.Mutex
	jobs []models.JobRecord
}

func NewMemoryStore(seed ...models.JobRecord) *MemoryStore {
	return &MemoryStore{jobs: append([]models.JobRecord(nil), seed...)}
}

func (m *MemoryStore) List(ctx context.Context) ([]models.JobRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.JobRecord{}, m.jobs...), nil
}

func (m *MemoryStore) Add(ctx context.Context, job models.JobRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
