package http

import (
	"encoding/json"

	"github.com/vovakirdan/multiroom-server/internal/core"
	"github.com/vovakirdan/multiroom-server/internal/proto"
)

// decodeData tolerates a missing or null data field: the join payload
// legitimately carries a null username.
func decodeData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := decodeData(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		// An empty username is allowed; the hub substitutes a default.
		return &core.Command{
			Kind: core.CommandJoin,
			Name: join.Username,
		}, nil, nil
	case proto.InboundTypeCreateRoom:
		var create proto.CreateRoomData
		if err := decodeData(inbound.Data, &create); err != nil {
			return nil, nil, err
		}
		if create.RoomName == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomname is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandCreateRoom,
			Room: create.RoomName,
		}, nil, nil
	case proto.InboundTypeSwitchRoom:
		var sw proto.SwitchRoomData
		if err := decodeData(inbound.Data, &sw); err != nil {
			return nil, nil, err
		}
		if sw.NewRoom == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "newroom is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandSwitchRoom,
			Room: sw.NewRoom,
		}, nil, nil
	case proto.InboundTypeSendChat:
		var msg proto.SendChatData
		if err := decodeData(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind: core.CommandSendChat,
			Text: msg.Text,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventJoinAck:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventJoinChat,
			Data: proto.JoinChatData{
				User: event.User,
				Room: event.Room,
			},
		}
	case core.EventChat:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUpdateChat,
			Data: proto.ChatData{
				User: event.User,
				Text: event.Text,
			},
		}
	case core.EventRoomList:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUpdateRooms,
			Data: proto.RoomListData{
				Rooms:  event.Rooms,
				Active: event.Room,
			},
		}
	case core.EventUserList:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUpdateUsers,
			Data: proto.UserListData{
				Users: event.Users,
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventChannelError,
			Data: proto.ChannelErrorData{
				User:    core.SystemSender,
				Message: event.Error.Message,
			},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
