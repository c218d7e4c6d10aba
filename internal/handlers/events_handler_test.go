package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"literacylab/internal/service"
)

func TestStreamForwardsPublishedEvents(t *testing.T) {
	notifier := service.NewNotifier()
	handler := NewEventsHandler(notifier)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/api/events", nil).WithContext(ctx)
	recorder := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.Stream(recorder, req)
		close(done)
	}()

	// Wait for the subscription to register before publishing
	deadline := time.Now().Add(time.Second)
	for notifier.SubscriberCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	notifier.Publish(service.Event{
		Type:      service.EventContentCreated,
		ContentID: "content-1",
		Title:     "The Water Cycle",
	})

	// Give the handler a moment to flush, then disconnect
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := recorder.Body.String()
	if !strings.Contains(body, "event: content.created") {
		t.Errorf("expected event line in stream, got %q", body)
	}
	if !strings.Contains(body, "content-1") {
		t.Errorf("expected event payload in stream, got %q", body)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected Content-Type text/event-stream, got %q", ct)
	}
}

func TestStreamStopsWhenUnsubscribed(t *testing.T) {
	notifier := service.NewNotifier()
	handler := NewEventsHandler(notifier)

	req := httptest.NewRequest("GET", "/api/events", nil)
	recorder := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.Stream(recorder, req)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for notifier.SubscriberCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Closing the subscription channel ends the stream
	notifier.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream did not stop after notifier closed")
	}
}
