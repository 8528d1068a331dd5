package sse

import (
	"net/http"
	"time"

	"github.com/mcoot/raidroster/internal/model"
)

const (
	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 64
)

// Client represents a connected SSE viewer of one event
type Client struct {
	hub         *Hub
	viewer      string // Remote address or transport-supplied viewer id, for logs only
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client
func NewClient(hub *Hub, viewer string) *Client {
	return &Client{
		hub:         hub,
		viewer:      viewer,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// Messages returns the queue of formatted SSE messages for this client.
// It is closed when the hub drops the client.
func (c *Client) Messages() <-chan []byte {
	return c.send
}

// ServeSSE streams hub messages to the client until it disconnects.
// snapshot, when non-nil, is written right after the connected event so the
// viewer starts from the current roster.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, viewer string, snapshot *model.DisplayDocument) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := NewClient(hub, viewer)
	hub.Register(client)
	defer hub.Unregister(client)

	_, _ = w.Write([]byte("event: connected\ndata: {\"status\":\"connected\"}\n\n"))
	if snapshot != nil {
		if msg, err := rosterMessage(*snapshot); err == nil {
			_, _ = w.Write(msg)
		}
	}
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
