package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/barboracab/hangthedj/internal/store"
	"github.com/charmbracelet/log"
)

// heartbeatInterval keeps idle SSE connections from being reaped by proxies.
const heartbeatInterval = 15 * time.Second

// EventsHandler streams a room's change notifications as server-sent events.
//
// Each store change becomes one "change" event whose data is the JSON-encoded
// [store.Change]. Clients are expected to reload the full queue on any event
// rather than patch local state from the payload.
type EventsHandler struct {
	notifier *store.Notifier
	logger   *log.Logger
}

// NewEventsHandler creates an EventsHandler over the given notifier.
func NewEventsHandler(n *store.Notifier, logger *log.Logger) *EventsHandler {
	return &EventsHandler{notifier: n, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *EventsHandler) Routes() []string {
	return []string{"/rooms/{room}/events"}
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	roomID := r.PathValue("room")

	changes, cancel := h.notifier.Subscribe(roomID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()

		case change, ok := <-changes:
			if !ok {
				return
			}

			data, err := json.Marshal(change)
			if err != nil {
				logError(h.logger, "failed to encode change event", "error", err)
				continue
			}

			fmt.Fprintf(w, "event: change\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
