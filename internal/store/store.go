package store

import (
	"context"
	"time"
)

// Room is a persisted catalog entry. Names are not unique: the catalog
// keeps duplicate creations, so ordering is carried by the row id.
type Room struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Store persists the room catalog so it survives restarts. Messages
// are never persisted.
type Store interface {
	// SeedRooms inserts the given names only when the catalog is empty.
	SeedRooms(ctx context.Context, names []string) error

	// AppendRoom adds a catalog entry.
	AppendRoom(ctx context.Context, name string) error

	// ListRooms returns all entries in creation order.
	ListRooms(ctx context.Context) ([]Room, error)

	Close() error
}
