package sse

import (
	"context"
	"log/slog"

	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/services/roster"
	"github.com/mcoot/raidroster/internal/web/templates/components"
)

// Broadcaster pushes roster changes to every viewer of an event
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Ensure Broadcaster can receive roster changes
var _ roster.Publisher = (*Broadcaster)(nil)

// Publish sends the document as JSON and as a rendered fragment.
// Events nobody is watching are skipped.
func (b *Broadcaster) Publish(eventID model.EventID, doc model.DisplayDocument) {
	hub := b.hubManager.GetHub(eventID)
	if hub == nil {
		return
	}

	msg, err := rosterMessage(doc)
	if err != nil {
		b.logger.Error("sse failed to encode roster",
			slog.String("event_id", string(eventID)),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(msg)

	html, err := RenderRosterHTML(context.Background(), doc)
	if err != nil {
		b.logger.Error("sse failed to render roster",
			slog.String("event_id", string(eventID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(EventRosterHTML, WrapForOOBSwap(components.RosterFrameID, html))
}

// BroadcastClosed tells viewers the event stopped taking signals
func (b *Broadcaster) BroadcastClosed(eventID model.EventID) {
	hub := b.hubManager.GetHub(eventID)
	if hub == nil {
		return
	}
	hub.BroadcastEvent("event-closed", string(eventID))
}
