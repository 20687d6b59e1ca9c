package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"cinefront/internal/events"
	"cinefront/internal/logger"
)

// SSEHandler streams store events to live viewers: admin dashboards and
// customer screens. Wire format is one `event: <tag>` line, one `data:` line
// carrying the serialized {type,data} record, then a blank line. Heartbeats
// arrive under their own tag so idle connections can detect peer death.
type SSEHandler struct {
	Bus    *events.Bus
	Logger *logger.Logger
}

func NewSSEHandler(bus *events.Bus, log *logger.Logger) *SSEHandler {
	return &SSEHandler{Bus: bus, Logger: log}
}

func (h *SSEHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	setupSSEHeaders(w)
	ctx := r.Context()

	// The bus delivers from the subscriber's own goroutine; this channel
	// hands events over to the request goroutine, which owns the writer.
	// A full channel means the client stopped reading, and the returned
	// error makes the bus close the subscription.
	stream := make(chan events.Event, 16)
	unsubscribe := h.Bus.Subscribe(func(evt events.Event) error {
		select {
		case stream <- evt:
			return nil
		default:
			return fmt.Errorf("viewer stream backed up")
		}
	})
	defer unsubscribe()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()
	h.Logger.LogBus("STREAM", "viewer connected")

	for {
		select {
		case evt := <-stream:
			data, err := json.Marshal(evt)
			if err != nil {
				h.Logger.Error("SSE", fmt.Sprintf("failed to serialize event: %v", err))
				continue
			}
			tag := "store"
			if evt.Type == events.TypeHeartbeat {
				tag = "heartbeat"
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", tag, data)
			flusher.Flush()

		case <-ctx.Done():
			h.Logger.LogBus("STREAM", "viewer disconnected")
			return
		}
	}
}

func setupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream;charset=UTF-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Content-Type-Options", "nosniff")
}
