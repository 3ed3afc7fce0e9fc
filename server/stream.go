package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"qr-dine/services"
)

// handleOrderStream is the live watch subscription: the kitchen and admin
// views hold this SSE connection open and receive "orders" snapshots plus
// "notify" alert events from the watcher.
func (s *Server) handleOrderStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering

	events, cancel := s.Watcher.Subscribe()
	defer cancel()

	// Seed the client with the current state before streaming deltas.
	if orders, err := (services.DBOrderSource{}).ListOrders(r.Context()); err == nil {
		sendEvent(w, flusher, "orders", services.WatchEvent{Kind: "orders", Orders: orders})
	}

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			flusher.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			sendEvent(w, flusher, ev.Kind, ev)
		}
	}
}

func sendEvent(w http.ResponseWriter, flusher http.Flusher, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	flusher.Flush()
}
