package archive

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryEntryRepository is the in-memory EntryRepository used by default and
// in tests. Reads return clones so callers never mutate stored state.
type MemoryEntryRepository struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]*Entry
	pathIndex map[string]uuid.UUID
}

// NewMemoryEntryRepository creates an empty in-memory archive.
func NewMemoryEntryRepository() *MemoryEntryRepository {
	return &MemoryEntryRepository{
		entries:   make(map[uuid.UUID]*Entry),
		pathIndex: make(map[string]uuid.UUID),
	}
}

var _ EntryRepository = (*MemoryEntryRepository)(nil)

// Create inserts the supplied entry.
func (m *MemoryEntryRepository) Create(_ context.Context, record *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := record.Clone()
	m.entries[copied.ID] = copied
	m.pathIndex[copied.Path] = copied.ID
	return copied.Clone(), nil
}

// Update replaces a stored entry, reindexing the path when it changed.
func (m *MemoryEntryRepository) Update(_ context.Context, record *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.entries[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "entry", Key: record.ID.String()}
	}
	if existing.Path != record.Path {
		delete(m.pathIndex, existing.Path)
	}

	copied := record.Clone()
	m.entries[copied.ID] = copied
	m.pathIndex[copied.Path] = copied.ID
	return copied.Clone(), nil
}

// GetByID retrieves an entry by identifier.
func (m *MemoryEntryRepository) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.entries[id]
	if !ok {
		return nil, &NotFoundError{Resource: "entry", Key: id.String()}
	}
	return record.Clone(), nil
}

// GetByPath retrieves an entry by its repository-relative file path.
func (m *MemoryEntryRepository) GetByPath(_ context.Context, path string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.pathIndex[path]
	if !ok {
		return nil, &NotFoundError{Resource: "entry", Key: path}
	}
	return m.entries[id].Clone(), nil
}

// List returns every stored entry.
func (m *MemoryEntryRepository) List(_ context.Context) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Entry, 0, len(m.entries))
	for _, record := range m.entries {
		out = append(out, record.Clone())
	}
	return out, nil
}
