package service

import (
	"testing"
	"time"
)

func TestNotifierDeliversToSubscribers(t *testing.T) {
	n := NewNotifier()

	id1, ch1 := n.Subscribe()
	id2, ch2 := n.Subscribe()
	defer n.Unsubscribe(id1)
	defer n.Unsubscribe(id2)

	n.Publish(Event{Type: EventContentCreated, ContentID: "abc", Title: "New passage"})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			if event.Type != EventContentCreated {
				t.Errorf("subscriber %d: Type = %q, want %q", i, event.Type, EventContentCreated)
			}
			if event.ContentID != "abc" {
				t.Errorf("subscriber %d: ContentID = %q, want abc", i, event.ContentID)
			}
			if event.CreatedAt.IsZero() {
				t.Errorf("subscriber %d: CreatedAt not set", i)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: no event received", i)
		}
	}
}

func TestNotifierUnsubscribeClosesChannel(t *testing.T) {
	n := NewNotifier()

	id, ch := n.Subscribe()
	n.Unsubscribe(id)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel after unsubscribe")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after unsubscribe")
	}

	if n.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount = %d, want 0", n.SubscriberCount())
	}

	// Idempotent: a second unsubscribe must not panic
	n.Unsubscribe(id)
}

func TestNotifierDropsWhenSubscriberIsFull(t *testing.T) {
	n := NewNotifier()

	id, ch := n.Subscribe()
	defer n.Unsubscribe(id)

	// Overflow the buffer; Publish must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			n.Publish(Event{Type: EventContentCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	// Buffered events are still readable
	select {
	case <-ch:
	default:
		t.Error("expected at least one buffered event")
	}
}
