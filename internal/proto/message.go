package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin       = "join"
	InboundTypeCreateRoom = "createroom"
	InboundTypeSwitchRoom = "switchroom"
	InboundTypeSendChat   = "sendchat"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// Client-visible event names.
const (
	EventJoinChat     = "client:joinchat"
	EventChannelError = "client:channelerror"
	EventUpdateChat   = "updatechat"
	EventUpdateRooms  = "updaterooms"
	EventUpdateUsers  = "updateusers"
)

// JoinData introduces the client. Username may be empty.
type JoinData struct {
	Username string `json:"username"`
}

// CreateRoomData requests a new catalog entry.
type CreateRoomData struct {
	RoomName string `json:"roomname"`
}

// SwitchRoomData requests a move into another room.
type SwitchRoomData struct {
	NewRoom string `json:"newroom"`
}

// SendChatData is a chat message for the client's current room.
type SendChatData struct {
	Text string `json:"text"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// JoinChatData acknowledges the client's name and room assignment.
type JoinChatData struct {
	User string `json:"user"`
	Room string `json:"room"`
}

// ChatData is a chat line: a user message or a system presence notice.
type ChatData struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// RoomListData carries the catalog and the client's active room.
type RoomListData struct {
	Rooms  []string `json:"rooms"`
	Active string   `json:"active"`
}

// UserListData carries the set of active display names.
type UserListData struct {
	Users []string `json:"users"`
}

// ChannelErrorData is a user-visible rejection.
type ChannelErrorData struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
