package core

// ClientState tracks where a connection is in its lifecycle.
type ClientState int

const (
	// StateConnected means the transport is established but the client
	// has not introduced itself yet.
	StateConnected ClientState = iota
	// StateActive means the client has a display name and a room.
	StateActive
	// StateTerminated means the client disconnected and every registry
	// trace has been removed. Terminal.
	StateTerminated
)

// Client is a single live connection as seen by the core layer.
// Name and Room are assigned when the client joins and are only ever
// mutated on the hub goroutine.
type Client struct {
	ID       string
	Name     string
	Room     string
	Commands chan *Command
	Events   chan *Event

	state ClientState
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 16),
	}
}

// State reports the lifecycle state. Only meaningful on the hub
// goroutine or after the hub has stopped.
func (c *Client) State() ClientState {
	return c.state
}
