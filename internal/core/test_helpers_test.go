package core

import (
	"context"
	"testing"
	"time"
)

func newTestHub(t *testing.T) (*Hub, *RoomRegistry, context.CancelFunc) {
	t.Helper()

	reg := NewRoomRegistry(DefaultRooms())
	hub := NewHub(reg, NewIdentityTable(), nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go hub.Run(ctx)

	return hub, reg, cancel
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// roomsHolding counts how many of the given rooms have c as a member.
func roomsHolding(reg *RoomRegistry, c *Client, rooms []string) int {
	n := 0
	for _, room := range rooms {
		for _, m := range reg.Members(room) {
			if m == c {
				n++
			}
		}
	}
	return n
}
