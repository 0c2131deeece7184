package store

import (
	"testing"
	"time"
)

func TestNotifier(t *testing.T) {
	t.Run("Delivers To Matching Room Only", func(t *testing.T) {
		n := NewNotifier()

		partyCh, partyCancel := n.Subscribe("party")
		defer partyCancel()
		otherCh, otherCancel := n.Subscribe("other")
		defer otherCancel()

		n.Publish(Change{Op: OpInsert, RoomID: "party", SongID: "s1"})

		select {
		case change := <-partyCh:
			if change.SongID != "s1" {
				t.Errorf("expected song s1, got %s", change.SongID)
			}
		case <-time.After(time.Second):
			t.Fatal("party subscriber should receive the change")
		}

		select {
		case change := <-otherCh:
			t.Errorf("other room received foreign change: %+v", change)
		default:
		}
	})

	t.Run("Fans Out To All Room Subscribers", func(t *testing.T) {
		n := NewNotifier()

		a, cancelA := n.Subscribe("party")
		defer cancelA()
		b, cancelB := n.Subscribe("party")
		defer cancelB()

		n.Publish(Change{Op: OpUpdate, RoomID: "party", SongID: "s1"})

		for name, ch := range map[string]<-chan Change{"a": a, "b": b} {
			select {
			case <-ch:
			case <-time.After(time.Second):
				t.Errorf("subscriber %s did not receive change", name)
			}
		}
	})

	t.Run("Cancel Stops Delivery And Closes Channel", func(t *testing.T) {
		n := NewNotifier()

		ch, cancel := n.Subscribe("party")
		cancel()
		cancel() // idempotent

		if n.SubscriberCount("party") != 0 {
			t.Error("expected no subscribers after cancel")
		}

		n.Publish(Change{Op: OpInsert, RoomID: "party", SongID: "s1"})

		if _, ok := <-ch; ok {
			t.Error("channel should be closed after cancel")
		}
	})

	t.Run("Publish Never Blocks On Full Buffer", func(t *testing.T) {
		n := NewNotifier()

		_, cancel := n.Subscribe("party")
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < subscriberBuffer*3; i++ {
				n.Publish(Change{Op: OpUpdate, RoomID: "party", SongID: "s1"})
			}
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("publish blocked on a slow subscriber")
		}
	})

	t.Run("All Event Types Delivered", func(t *testing.T) {
		n := NewNotifier()

		ch, cancel := n.Subscribe("party")
		defer cancel()

		for _, op := range []Op{OpInsert, OpUpdate, OpDelete} {
			n.Publish(Change{Op: op, RoomID: "party", SongID: "s1"})
		}

		for _, want := range []Op{OpInsert, OpUpdate, OpDelete} {
			change := <-ch
			if change.Op != want {
				t.Errorf("expected op %s, got %s", want, change.Op)
			}
		}
	})
}
