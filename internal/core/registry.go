package core

import "sync"

// DefaultRooms returns the rooms seeded into a fresh catalog.
func DefaultRooms() []string {
	return []string{"Lobby", "Learning Room", "Random"}
}

// RoomRegistry owns the ordered room catalog and the membership mapping
// from room name to connections. The catalog is append-only and keeps
// creation order because clients render it as an ordered list.
// Duplicate names are permitted; both entries address the same member
// set, since membership is keyed by name.
//
// All mutations happen on the hub goroutine; the lock exists so HTTP
// snapshot reads can run concurrently with them.
type RoomRegistry struct {
	mu      sync.RWMutex
	catalog []string
	members map[string]map[*Client]struct{}
}

// NewRoomRegistry builds a registry pre-seeded with the given catalog.
func NewRoomRegistry(seed []string) *RoomRegistry {
	r := &RoomRegistry{
		catalog: make([]string, 0, len(seed)),
		members: make(map[string]map[*Client]struct{}),
	}
	r.catalog = append(r.catalog, seed...)
	return r
}

// Create appends name to the catalog. Duplicates are kept.
func (r *RoomRegistry) Create(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog = append(r.catalog, name)
}

// Join adds the client to the room's member set. The caller sequences
// leave-then-join; Join never removes an existing membership.
func (r *RoomRegistry) Join(c *Client, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[name]
	if !ok {
		set = make(map[*Client]struct{})
		r.members[name] = set
	}
	set[c] = struct{}{}
}

// Leave removes the client from the room's member set. No-op if absent.
func (r *RoomRegistry) Leave(c *Client, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.members[name]; ok {
		delete(set, c)
	}
}

// Members returns a snapshot of the room's member set for fan-out.
// Empty for unknown rooms.
func (r *RoomRegistry) Members(name string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.members[name]
	out := make([]*Client, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// Catalog returns the room names in creation order.
func (r *RoomRegistry) Catalog() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.catalog))
	copy(out, r.catalog)
	return out
}

// DefaultRoom returns the first catalog entry, where new clients land.
func (r *RoomRegistry) DefaultRoom() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.catalog) == 0 {
		return ""
	}
	return r.catalog[0]
}
