package chartarchive

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/yanqian/kundali/internal/domain/chart"
)

// MemoryArchive keeps snapshots in memory. Useful for tests and local dev.
type MemoryArchive struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

type blob struct {
	payload     []byte
	contentType string
}

// NewMemoryArchive constructs an empty archive.
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{blobs: make(map[string]blob)}
}

// Put stores a copy of payload under key.
func (a *MemoryArchive) Put(_ context.Context, key string, payload []byte, contentType string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.blobs[key] = blob{payload: slices.Clone(payload), contentType: contentType}
	return nil
}

// Get returns the snapshot stored under key.
func (a *MemoryArchive) Get(_ context.Context, key string) ([]byte, string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	b, ok := a.blobs[key]
	if !ok {
		return nil, "", fmt.Errorf("snapshot %s not found", key)
	}
	return slices.Clone(b.payload), b.contentType, nil
}

// Keys lists stored snapshot keys in sorted order.
func (a *MemoryArchive) Keys() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	keys := make([]string, 0, len(a.blobs))
	for key := range a.blobs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Discard drops every snapshot. It is used when archiving is disabled.
type Discard struct{}

// Put implements chart.Archive.
func (Discard) Put(context.Context, string, []byte, string) error { return nil }

var (
	_ chart.Archive = (*MemoryArchive)(nil)
	_ chart.Archive = Discard{}
)
