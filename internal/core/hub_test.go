package core

import (
	"testing"
	"time"
)

func TestHubJoinAssignsAnonymousAndDefaultRoom(t *testing.T) {
	hub, reg, cancel := newTestHub(t)
	defer cancel()

	alice := NewClient("a")
	hub.RegisterClient(alice)

	alice.Commands <- &Command{Kind: CommandJoin, Name: ""}

	ack := mustEvent(t, alice.Events, EventJoinAck)
	if ack.User != AnonymousName || ack.Room != "Lobby" {
		t.Fatalf("unexpected join ack: %+v", ack)
	}

	list := mustEvent(t, alice.Events, EventRoomList)
	if list.Room != "Lobby" || len(list.Rooms) != 3 || list.Rooms[0] != "Lobby" {
		t.Fatalf("unexpected room list: %+v", list)
	}

	if got := roomsHolding(reg, alice, reg.Catalog()); got != 1 {
		t.Fatalf("expected membership in exactly one room, got %d", got)
	}
	if users := hub.Users(); len(users) != 1 || users[0] != AnonymousName {
		t.Fatalf("unexpected identity table: %v", users)
	}
}

func TestHubChatEchoesToWholeRoom(t *testing.T) {
	hub, _, cancel := newTestHub(t)
	defer cancel()

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	alice.Commands <- &Command{Kind: CommandJoin, Name: "alice"}
	mustEvent(t, alice.Events, EventRoomList)

	bob.Commands <- &Command{Kind: CommandJoin, Name: "bob"}
	mustEvent(t, bob.Events, EventRoomList)

	// Alice sees Bob's join notice first.
	notice := mustEvent(t, alice.Events, EventChat)
	if notice.User != SystemSender || notice.Text != "bob has joined the channel." {
		t.Fatalf("unexpected join notice: %+v", notice)
	}

	bob.Commands <- &Command{Kind: CommandSendChat, Text: "hi"}

	for _, c := range []*Client{alice, bob} {
		ev := mustEvent(t, c.Events, EventChat)
		if ev.User != "bob" || ev.Text != "hi" {
			t.Fatalf("unexpected chat event for %s: %+v", c.ID, ev)
		}
	}
}

func TestHubChatStaysInsideRoom(t *testing.T) {
	hub, _, cancel := newTestHub(t)
	defer cancel()

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	alice.Commands <- &Command{Kind: CommandJoin, Name: "alice"}
	mustEvent(t, alice.Events, EventRoomList)
	bob.Commands <- &Command{Kind: CommandJoin, Name: "bob"}
	mustEvent(t, bob.Events, EventRoomList)
	mustEvent(t, alice.Events, EventChat) // bob's join notice

	bob.Commands <- &Command{Kind: CommandSwitchRoom, Room: "Random"}
	mustEvent(t, bob.Events, EventRoomList)
	mustEvent(t, alice.Events, EventChat) // bob's leave notice

	bob.Commands <- &Command{Kind: CommandSendChat, Text: "psst"}
	echo := mustEvent(t, bob.Events, EventChat)
	if echo.User != "bob" || echo.Text != "psst" {
		t.Fatalf("unexpected echo: %+v", echo)
	}

	// Alice must not see a message from another room; the next chat
	// event she receives has to be her own.
	alice.Commands <- &Command{Kind: CommandSendChat, Text: "marker"}
	ev := mustEvent(t, alice.Events, EventChat)
	if ev.User != "alice" || ev.Text != "marker" {
		t.Fatalf("message leaked across rooms: %+v", ev)
	}
}

func TestHubSwitchToCurrentRoomRejected(t *testing.T) {
	hub, reg, cancel := newTestHub(t)
	defer cancel()

	alice := NewClient("a")
	hub.RegisterClient(alice)
	alice.Commands <- &Command{Kind: CommandJoin, Name: "alice"}
	mustEvent(t, alice.Events, EventRoomList)

	alice.Commands <- &Command{Kind: CommandSwitchRoom, Room: "Lobby"}

	ev := mustEvent(t, alice.Events, EventError)
	if ev.Error == nil || ev.Error.Code != ErrCodeSameRoom {
		t.Fatalf("expected same_room error, got %+v", ev)
	}
	if ev.Error.Message != "You're already in that channel!" {
		t.Fatalf("unexpected error message: %q", ev.Error.Message)
	}
	if got := roomsHolding(reg, alice, reg.Catalog()); got != 1 {
		t.Fatalf("membership changed on rejected switch: %d", got)
	}
	if cat := reg.Catalog(); len(cat) != 3 {
		t.Fatalf("catalog changed on rejected switch: %v", cat)
	}
}

func TestHubCreateRoomMovesClientAndBroadcastsCatalog(t *testing.T) {
	hub, reg, cancel := newTestHub(t)
	defer cancel()

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	alice.Commands <- &Command{Kind: CommandJoin, Name: "alice"}
	mustEvent(t, alice.Events, EventRoomList)
	bob.Commands <- &Command{Kind: CommandJoin, Name: "bob"}
	mustEvent(t, bob.Events, EventRoomList)
	mustEvent(t, alice.Events, EventChat) // bob's join notice

	alice.Commands <- &Command{Kind: CommandCreateRoom, Room: "Games"}

	ack := mustEvent(t, alice.Events, EventJoinAck)
	if ack.Room != "Games" || ack.User != "alice" {
		t.Fatalf("unexpected create ack: %+v", ack)
	}

	// Bob, left behind in Lobby, sees the leave notice and the new catalog.
	notice := mustEvent(t, bob.Events, EventChat)
	if notice.User != SystemSender || notice.Text != "alice has left this room" {
		t.Fatalf("unexpected leave notice: %+v", notice)
	}
	list := mustEvent(t, bob.Events, EventRoomList)
	if len(list.Rooms) != 4 || list.Rooms[3] != "Games" {
		t.Fatalf("catalog not broadcast to everyone: %+v", list)
	}

	cat := reg.Catalog()
	if cat[len(cat)-1] != "Games" {
		t.Fatalf("catalog not append-only ordered: %v", cat)
	}
	if got := roomsHolding(reg, alice, []string{"Lobby", "Games"}); got != 1 {
		t.Fatalf("client in %d rooms after create", got)
	}
	if len(reg.Members("Games")) != 1 {
		t.Fatalf("creator not a member of the new room")
	}
}

func TestHubDuplicateRoomNamesKept(t *testing.T) {
	hub, reg, cancel := newTestHub(t)
	defer cancel()

	alice := NewClient("a")
	hub.RegisterClient(alice)
	alice.Commands <- &Command{Kind: CommandJoin, Name: "alice"}
	mustEvent(t, alice.Events, EventRoomList)

	alice.Commands <- &Command{Kind: CommandCreateRoom, Room: "Games"}
	mustEvent(t, alice.Events, EventRoomList)
	alice.Commands <- &Command{Kind: CommandCreateRoom, Room: "Games"}
	mustEvent(t, alice.Events, EventRoomList)

	cat := reg.Catalog()
	if len(cat) != 5 || cat[3] != "Games" || cat[4] != "Games" {
		t.Fatalf("expected duplicate catalog entries, got %v", cat)
	}
}

func TestHubSwitchRoomNotifiesBothRooms(t *testing.T) {
	hub, _, cancel := newTestHub(t)
	defer cancel()

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	alice.Commands <- &Command{Kind: CommandJoin, Name: "alice"}
	mustEvent(t, alice.Events, EventRoomList)
	alice.Commands <- &Command{Kind: CommandCreateRoom, Room: "Games"}
	mustEvent(t, alice.Events, EventRoomList)

	bob.Commands <- &Command{Kind: CommandJoin, Name: "bob"}
	if ack := mustEvent(t, bob.Events, EventJoinAck); ack.Room != "Lobby" {
		t.Fatalf("unexpected initial room: %+v", ack)
	}
	mustEvent(t, bob.Events, EventRoomList)

	bob.Commands <- &Command{Kind: CommandSwitchRoom, Room: "Games"}

	ack := mustEvent(t, bob.Events, EventJoinAck)
	if ack.User != "bob" || ack.Room != "Games" {
		t.Fatalf("unexpected switch ack: %+v", ack)
	}
	list := mustEvent(t, bob.Events, EventRoomList)
	if list.Room != "Games" {
		t.Fatalf("unexpected active room: %+v", list)
	}

	// Alice, already in Games, sees the join notice.
	notice := mustEvent(t, alice.Events, EventChat)
	if notice.User != SystemSender || notice.Text != "bob has joined this room" {
		t.Fatalf("unexpected join notice: %+v", notice)
	}
}

func TestHubCommandsBeforeJoinRejected(t *testing.T) {
	hub, _, cancel := newTestHub(t)
	defer cancel()

	alice := NewClient("a")
	hub.RegisterClient(alice)

	alice.Commands <- &Command{Kind: CommandSendChat, Text: "hi"}

	ev := mustEvent(t, alice.Events, EventError)
	if ev.Error == nil || ev.Error.Code != ErrCodeNotJoined {
		t.Fatalf("expected not_joined error, got %+v", ev)
	}
}

func TestHubDoubleJoinRejected(t *testing.T) {
	hub, _, cancel := newTestHub(t)
	defer cancel()

	alice := NewClient("a")
	hub.RegisterClient(alice)

	alice.Commands <- &Command{Kind: CommandJoin, Name: "alice"}
	mustEvent(t, alice.Events, EventRoomList)
	alice.Commands <- &Command{Kind: CommandJoin, Name: "alice2"}

	ev := mustEvent(t, alice.Events, EventError)
	if ev.Error == nil || ev.Error.Code != ErrCodeAlreadyJoined {
		t.Fatalf("expected already_joined error, got %+v", ev)
	}
	if alice.Name != "alice" {
		t.Fatalf("display name mutated by second join: %q", alice.Name)
	}
}

func TestHubDisconnectRemovesExactlyOnce(t *testing.T) {
	hub, reg, cancel := newTestHub(t)
	defer cancel()

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	alice.Commands <- &Command{Kind: CommandJoin, Name: "alice"}
	mustEvent(t, alice.Events, EventRoomList)
	bob.Commands <- &Command{Kind: CommandJoin, Name: "bob"}
	mustEvent(t, bob.Events, EventRoomList)
	mustEvent(t, alice.Events, EventChat) // bob's join notice

	hub.UnregisterClient(alice)
	hub.UnregisterClient(alice)

	users := mustEvent(t, bob.Events, EventUserList)
	if len(users.Users) != 1 || users.Users[0] != "bob" {
		t.Fatalf("identity table not updated: %v", users.Users)
	}
	notice := mustEvent(t, bob.Events, EventChat)
	if notice.User != SystemSender || notice.Text != "alice has disconnected" {
		t.Fatalf("unexpected disconnect notice: %+v", notice)
	}

	if len(reg.Members("Lobby")) != 1 {
		t.Fatalf("membership not cleaned up: %v", reg.Members("Lobby"))
	}

	// The second unregister must not have produced a second notice:
	// the next chat event Bob receives is his own message.
	bob.Commands <- &Command{Kind: CommandSendChat, Text: "still here"}
	ev := mustEvent(t, bob.Events, EventChat)
	if ev.User != "bob" || ev.Text != "still here" {
		t.Fatalf("duplicate disconnect notice observed: %+v", ev)
	}

	if alice.State() != StateTerminated {
		t.Fatalf("client not terminated after unregister")
	}
}

func TestHubDisconnectBeforeJoinIsSilent(t *testing.T) {
	hub, _, cancel := newTestHub(t)
	defer cancel()

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	bob.Commands <- &Command{Kind: CommandJoin, Name: "bob"}
	mustEvent(t, bob.Events, EventRoomList)

	hub.UnregisterClient(alice)

	// Give the hub time to process, then confirm Bob saw nothing.
	time.Sleep(50 * time.Millisecond)
	select {
	case ev := <-bob.Events:
		t.Fatalf("unexpected event after silent disconnect: %+v", ev)
	default:
	}
}
