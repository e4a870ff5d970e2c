package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin introduces the client and places it in the default room.
	CommandJoin CommandKind = iota
	// CommandCreateRoom adds a room to the catalog and moves the client into it.
	CommandCreateRoom
	// CommandSwitchRoom moves the client into another room.
	CommandSwitchRoom
	// CommandSendChat delivers a chat message to the client's current room.
	CommandSendChat
	// CommandDisconnect tears the client down.
	CommandDisconnect
)

// Command represents an action requested by a client.
type Command struct {
	Kind CommandKind
	Name string // display name, for CommandJoin
	Room string // room name, for CommandCreateRoom and CommandSwitchRoom
	Text string // message body, for CommandSendChat
}
