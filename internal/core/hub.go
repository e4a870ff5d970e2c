package core

import (
	"context"

	"github.com/rs/zerolog"
)

// CatalogStore persists created rooms so the catalog survives restarts.
// Implemented by the sqlite store; may be nil when persistence is off.
type CatalogStore interface {
	AppendRoom(ctx context.Context, name string) error
}

// submission pairs a command with the client that issued it.
type submission struct {
	client *Client
	cmd    *Command
}

// Hub is the broadcast router. A single goroutine owns all client
// state transitions, registry mutations and fan-out resolution, so a
// room's membership never changes while a message is being routed to
// it and every client observes room events in submission order.
type Hub struct {
	reg   *RoomRegistry
	ids   *IdentityTable
	store CatalogStore
	log   *zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan submission
	done       chan struct{}
}

// NewHub constructs a hub over the given registries. store may be nil.
func NewHub(reg *RoomRegistry, ids *IdentityTable, store CatalogStore, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		reg:        reg,
		ids:        ids,
		store:      store,
		log:        logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan submission),
		done:       make(chan struct{}),
	}
}

// RegisterClient hands a freshly connected client to the hub.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient tears a client down. Safe to call more than once
// and concurrently with in-flight commands for the same client.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Rooms returns the current catalog. Safe for concurrent use.
func (h *Hub) Rooms() []string {
	return h.reg.Catalog()
}

// Users returns the active display names. Safe for concurrent use.
func (h *Hub) Users() []string {
	return h.ids.All()
}

// Run processes registrations and commands until the context is
// cancelled. Run should be called in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	clients := make(map[*Client]struct{})

	for {
		select {
		case c := <-h.register:
			clients[c] = struct{}{}
			go h.pump(ctx, c)
			h.log.Debug().Str("client_id", c.ID).Int("connections", len(clients)).Msg("client registered")

		case c := <-h.unregister:
			if _, ok := clients[c]; !ok {
				continue
			}
			delete(clients, c)
			h.disconnect(clients, c)
			close(c.Commands)
			h.log.Debug().Str("client_id", c.ID).Int("connections", len(clients)).Msg("client unregistered")

		case sub := <-h.commands:
			h.dispatch(ctx, clients, sub.client, sub.cmd)

		case <-ctx.Done():
			for c := range clients {
				c.state = StateTerminated
				close(c.Events)
			}
			h.log.Debug().Msg("hub stopped")
			return
		}
	}
}

// pump forwards the client's commands into the hub-wide stream,
// preserving per-client submission order.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for cmd := range c.Commands {
		select {
		case h.commands <- submission{client: c, cmd: cmd}:
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) dispatch(ctx context.Context, clients map[*Client]struct{}, c *Client, cmd *Command) {
	if c.state == StateTerminated {
		h.log.Debug().Str("client_id", c.ID).Msg("command for terminated client dropped")
		return
	}

	switch cmd.Kind {
	case CommandJoin:
		h.join(c, cmd.Name)
	case CommandCreateRoom:
		h.createRoom(ctx, clients, c, cmd.Room)
	case CommandSwitchRoom:
		h.switchRoom(c, cmd.Room)
	case CommandSendChat:
		h.sendChat(c, cmd.Text)
	case CommandDisconnect:
		h.disconnect(clients, c)
	default:
		h.log.Warn().Str("client_id", c.ID).Int("kind", int(cmd.Kind)).Msg("unknown command")
	}
}

func (h *Hub) join(c *Client, name string) {
	if c.state != StateConnected {
		h.pushError(c, coreError(ErrCodeAlreadyJoined, "You've already joined the chat!"))
		return
	}

	if name == "" {
		name = AnonymousName
	}
	room := h.reg.DefaultRoom()

	c.Name = name
	c.Room = room
	c.state = StateActive
	h.ids.Register(name)
	h.reg.Join(c, room)

	h.push(c, &Event{Kind: EventJoinAck, User: name, Room: room})
	h.broadcastRoom(room, c, &Event{Kind: EventChat, User: SystemSender, Text: name + " has joined the channel."})
	h.push(c, &Event{Kind: EventRoomList, Rooms: h.reg.Catalog(), Room: room})
}

func (h *Hub) createRoom(ctx context.Context, clients map[*Client]struct{}, c *Client, room string) {
	if !h.requireActive(c) {
		return
	}

	h.reg.Create(room)
	if h.store != nil {
		if err := h.store.AppendRoom(ctx, room); err != nil {
			h.log.Warn().Err(err).Str("room", room).Msg("failed to persist room")
		}
	}

	old := c.Room
	h.reg.Leave(c, old)
	h.reg.Join(c, room)
	c.Room = room

	h.broadcastRoom(old, c, &Event{Kind: EventChat, User: SystemSender, Text: c.Name + " has left this room"})
	h.push(c, &Event{Kind: EventJoinAck, User: c.Name, Room: room})
	h.broadcastAll(clients, nil, &Event{Kind: EventRoomList, Rooms: h.reg.Catalog(), Room: room})
}

func (h *Hub) switchRoom(c *Client, room string) {
	if !h.requireActive(c) {
		return
	}
	if room == c.Room {
		h.pushError(c, coreError(ErrCodeSameRoom, "You're already in that channel!"))
		return
	}

	old := c.Room
	h.reg.Leave(c, old)
	h.reg.Join(c, room)
	c.Room = room

	h.push(c, &Event{Kind: EventJoinAck, User: c.Name, Room: room})
	h.broadcastRoom(old, c, &Event{Kind: EventChat, User: SystemSender, Text: c.Name + " has left this room"})
	h.broadcastRoom(room, c, &Event{Kind: EventChat, User: SystemSender, Text: c.Name + " has joined this room"})
	h.push(c, &Event{Kind: EventRoomList, Rooms: h.reg.Catalog(), Room: room})
}

func (h *Hub) sendChat(c *Client, text string) {
	if !h.requireActive(c) {
		return
	}
	h.broadcastRoom(c.Room, nil, &Event{Kind: EventChat, User: c.Name, Text: text})
}

// disconnect removes every registry trace of the client. Idempotent:
// a second call finds the client terminated and does nothing.
func (h *Hub) disconnect(clients map[*Client]struct{}, c *Client) {
	if c.state == StateTerminated {
		return
	}
	wasActive := c.state == StateActive
	c.state = StateTerminated

	if !wasActive {
		return
	}

	h.ids.Unregister(c.Name)
	h.reg.Leave(c, c.Room)

	h.broadcastAll(clients, nil, &Event{Kind: EventUserList, Users: h.ids.All()})
	h.broadcastAll(clients, c, &Event{Kind: EventChat, User: SystemSender, Text: c.Name + " has disconnected"})
}

func (h *Hub) requireActive(c *Client) bool {
	if c.state != StateActive {
		h.pushError(c, coreError(ErrCodeNotJoined, "Join the chat before using channels."))
		return false
	}
	return true
}

// broadcastRoom sends the event to every member of the room, skipping
// except when non-nil.
func (h *Hub) broadcastRoom(room string, except *Client, ev *Event) {
	for _, m := range h.reg.Members(room) {
		if m == except {
			continue
		}
		h.push(m, ev)
	}
}

// broadcastAll sends the event to every registered connection,
// skipping except when non-nil.
func (h *Hub) broadcastAll(clients map[*Client]struct{}, except *Client, ev *Event) {
	for m := range clients {
		if m == except || m.state == StateTerminated {
			continue
		}
		h.push(m, ev)
	}
}

func (h *Hub) push(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer; one stuck connection must not stall the rest.
		h.log.Debug().Str("client_id", c.ID).Msg("event dropped: slow consumer")
	}
}

func (h *Hub) pushError(c *Client, err *CoreError) {
	h.push(c, &Event{Kind: EventError, User: SystemSender, Error: err})
}
