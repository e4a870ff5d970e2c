package core

import (
	"sort"
	"sync"
)

// IdentityTable holds the set of display names currently in use.
// Uniqueness is not enforced: two clients racing to register the same
// name both succeed, and the first disconnect removes it for both.
type IdentityTable struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// NewIdentityTable builds an empty identity table.
func NewIdentityTable() *IdentityTable {
	return &IdentityTable{names: make(map[string]struct{})}
}

// Register inserts a display name.
func (t *IdentityTable) Register(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.names[name] = struct{}{}
}

// Unregister removes a display name. No-op if absent.
func (t *IdentityTable) Unregister(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.names, name)
}

// All returns a sorted snapshot of the active names.
func (t *IdentityTable) All() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.names))
	for name := range t.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
