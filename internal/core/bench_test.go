package core

import (
	"context"
	"strconv"
	"testing"
)

func benchmarkRoomBroadcast(b *testing.B, recipients int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(NewRoomRegistry(DefaultRooms()), NewIdentityTable(), nil, nil)
	go hub.Run(ctx)

	awaitRoomList := func(c *Client) {
		for ev := range c.Events {
			if ev.Kind == EventRoomList {
				return
			}
		}
	}
	drain := func(c *Client) {
		go func() {
			for range c.Events {
			}
		}()
	}

	sender := NewClient("sender")
	hub.RegisterClient(sender)
	sender.Commands <- &Command{Kind: CommandJoin, Name: "sender"}
	awaitRoomList(sender)
	drain(sender)

	// The first recipient is the probe we measure against; the rest are
	// drained to avoid channel backpressure.
	target := NewClient("target")
	hub.RegisterClient(target)
	target.Commands <- &Command{Kind: CommandJoin, Name: "target"}
	awaitRoomList(target)

	for i := 1; i < recipients; i++ {
		c := NewClient("c" + strconv.Itoa(i))
		hub.RegisterClient(c)
		c.Commands <- &Command{Kind: CommandJoin, Name: "client" + strconv.Itoa(i)}
		awaitRoomList(c)
		drain(c)
	}

	// The hub is idle now; clear join notices buffered on the probe.
	for len(target.Events) > 0 {
		<-target.Events
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sender.Commands <- &Command{Kind: CommandSendChat, Text: "payload"}
		for ev := <-target.Events; ev.Kind != EventChat || ev.User != "sender"; ev = <-target.Events {
		}
	}
}

func BenchmarkRoomBroadcast_10(b *testing.B)  { benchmarkRoomBroadcast(b, 10) }
func BenchmarkRoomBroadcast_100(b *testing.B) { benchmarkRoomBroadcast(b, 100) }
func BenchmarkRoomBroadcast_500(b *testing.B) { benchmarkRoomBroadcast(b, 500) }
