package chartrepo

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/yanqian/kundali/internal/domain/chart"
)

// MemoryRepository keeps charts in process memory. Useful for tests and local dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]chart.Record
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]chart.Record)}
}

// Save implements chart.Repository.
func (r *MemoryRepository) Save(_ context.Context, record chart.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = cloneRecord(record)
	return nil
}

// Get implements chart.Repository.
func (r *MemoryRepository) Get(_ context.Context, owner string, id uuid.UUID) (chart.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok || record.Owner != owner {
		return chart.Record{}, false, nil
	}
	return cloneRecord(record), true, nil
}

// List implements chart.Repository, newest first.
func (r *MemoryRepository) List(_ context.Context, owner string, limit int) ([]chart.Record, error) {
	r.mu.RLock()
	out := make([]chart.Record, 0)
	for _, record := range r.records {
		if record.Owner == owner {
			out = append(out, cloneRecord(record))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneRecord(record chart.Record) chart.Record {
	record.Chart.Planets = slices.Clone(record.Chart.Planets)
	return record
}

var _ chart.Repository = (*MemoryRepository)(nil)
