package service

import (
	"sync"
	"time"
)

// Event is a realtime notification published to subscribers
type Event struct {
	Type      string    `json:"type"`
	ContentID string    `json:"content_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Event types published by the notifier
const (
	EventContentCreated = "content.created"
)

// Notifier is an in-process publish/subscribe channel for row-insert events.
// Each subscriber gets a buffered channel; slow subscribers drop events
// rather than block publishers.
type Notifier struct {
	mu     sync.Mutex
	subs   map[int64]chan Event
	nextID int64
}

// NewNotifier creates a new notifier
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int64]chan Event)}
}

// Subscribe registers a new subscriber and returns its ID and event channel.
// The caller must Unsubscribe when done to avoid leaking the subscription.
func (n *Notifier) Subscribe() (int64, <-chan Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	ch := make(chan Event, 8)
	n.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel
func (n *Notifier) Unsubscribe(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if ch, ok := n.subs[id]; ok {
		delete(n.subs, id)
		close(ch)
	}
}

// Publish delivers an event to all current subscribers without blocking
func (n *Notifier) Publish(event Event) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
			// Subscriber is not keeping up; drop the event
		}
	}
}

// Close drops all subscribers and closes their channels. Used on shutdown
// to unblock any streaming handlers still draining their channels.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, ch := range n.subs {
		delete(n.subs, id)
		close(ch)
	}
}

// SubscriberCount returns the number of active subscribers
func (n *Notifier) SubscriberCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
