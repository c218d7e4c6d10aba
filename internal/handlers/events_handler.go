package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"literacylab/internal/service"
)

// EventsHandler streams content events to clients over server-sent events
type EventsHandler struct {
	notifier *service.Notifier
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(notifier *service.Notifier) *EventsHandler {
	return &EventsHandler{notifier: notifier}
}

// Stream subscribes the client and forwards events until it disconnects.
// A comment line goes out periodically to keep intermediaries from timing
// out the idle connection.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "Streaming not supported", "", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	id, events := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(id)

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			flusher.Flush()
		}
	}
}
