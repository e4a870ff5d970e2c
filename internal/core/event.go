package core

// SystemSender is the label attached to presence notices and errors.
const SystemSender = "SERVER"

// AnonymousName is substituted when a client joins without a username.
const AnonymousName = "Anonymous"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventJoinAck confirms the client's assigned name and room.
	EventJoinAck EventKind = iota
	// EventChat carries a chat line: a user message or a system presence notice.
	EventChat
	// EventRoomList delivers the room catalog and the client's active room.
	EventRoomList
	// EventUserList delivers the set of active display names.
	EventUserList
	// EventError notifies the client about a rejected action.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind  EventKind
	User  string   // sender label: a display name or SystemSender
	Room  string   // assigned room for EventJoinAck, active room for EventRoomList
	Text  string   // chat line for EventChat
	Rooms []string // catalog snapshot for EventRoomList
	Users []string // identity snapshot for EventUserList
	Error *CoreError
}
