package cache

import "sync"

// DefaultMaxEntries bounds the in-memory store. A full 150x150 sample
// grid produces entries of a few hundred bytes each, so the bound is
// about churn, not memory pressure.
const DefaultMaxEntries = 128

// MemoryStore is an in-process Store with FIFO eviction.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	order      []string
	maxEntries int
}

// NewMemoryStore creates a MemoryStore evicting oldest-first beyond
// maxEntries. maxEntries < 1 selects DefaultMaxEntries.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries < 1 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{
		entries:    make(map[string]Entry),
		maxEntries: maxEntries,
	}
}

// Get returns the entry for key, if present.
func (s *MemoryStore) Get(key string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	return entry, ok, nil
}

// Put stores an entry, evicting the oldest insertion when full.
func (s *MemoryStore) Put(key string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists {
		for len(s.order) >= s.maxEntries {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.entries, oldest)
		}
		s.order = append(s.order, key)
	}
	s.entries[key] = entry
	return nil
}

// Len returns the number of cached entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
