package index

import (
	"strings"
	"sync"
	"time"
)

// HistoryIndex keeps the recent-search list in memory so reads and
// prefix suggestions never hit the store. The orchestrator refreshes it
// after every history mutation.
type HistoryIndex struct {
	mu         sync.RWMutex
	queries    []string // most-recently-used first
	lastReload time.Time
}

// NewHistoryIndex creates an empty history index.
func NewHistoryIndex() *HistoryIndex {
	return &HistoryIndex{}
}

// Replace swaps the cached list for a fresh store snapshot.
func (idx *HistoryIndex) Replace(queries []string) {
	copied := make([]string, len(queries))
	copy(copied, queries)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.queries = copied
	idx.lastReload = time.Now()
}

// All returns the cached queries, most-recently-used first.
func (idx *HistoryIndex) All() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	queries := make([]string, len(idx.queries))
	copy(queries, idx.queries)
	return queries
}

// MatchPrefix returns cached queries starting with partial,
// case-insensitively, preserving recency order. An empty partial
// matches everything.
func (idx *HistoryIndex) MatchPrefix(partial string) []string {
	prefix := strings.ToLower(partial)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	matches := make([]string, 0, len(idx.queries))
	for _, q := range idx.queries {
		if strings.HasPrefix(strings.ToLower(q), prefix) {
			matches = append(matches, q)
		}
	}
	return matches
}

// Count returns the number of cached queries.
func (idx *HistoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.queries)
}

// LastReload returns the timestamp of the last cache refresh.
func (idx *HistoryIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
