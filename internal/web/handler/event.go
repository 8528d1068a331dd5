package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/services/event"
	"github.com/mcoot/raidroster/internal/services/roster"
	"github.com/mcoot/raidroster/internal/web/sse"
	"github.com/mcoot/raidroster/internal/web/templates/layout"
	"github.com/mcoot/raidroster/internal/web/templates/pages"
)

// EventHandler serves the live roster page of an event
type EventHandler struct {
	eventController  event.ControllerInterface
	rosterController roster.ControllerInterface
	hubManager       *sse.HubManager
	logger           *slog.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(
	eventController event.ControllerInterface,
	rosterController roster.ControllerInterface,
	hubManager *sse.HubManager,
	logger *slog.Logger,
) *EventHandler {
	return &EventHandler{
		eventController:  eventController,
		rosterController: rosterController,
		hubManager:       hubManager,
		logger:           logger,
	}
}

// View renders the roster page
func (h *EventHandler) View(w http.ResponseWriter, r *http.Request) {
	id := model.EventID(mux.Vars(r)["id"])

	ev, err := h.eventController.GetEvent(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	doc, err := h.rosterController.RenderCurrentState(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	actions, err := h.rosterController.VisibleActions(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render(w, r, http.StatusOK, pages.Event(pages.EventData{
		PageData: layout.PageData{Title: doc.Title},
		EventID:  id,
		Closed:   !ev.IsOpen(),
		Document: *doc,
		Actions:  actions,
	}))
}

// Stream serves the SSE feed of roster updates, starting with the current roster
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := model.EventID(mux.Vars(r)["id"])

	doc, err := h.rosterController.RenderCurrentState(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		h.logger.Error("render roster for stream", slog.String("event_id", string(id)), slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, r.RemoteAddr, doc)
}

func (h *EventHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrEventNotFound):
		render(w, r, http.StatusNotFound, pages.Error("Not Found", "That event does not exist."))
	case model.IsConfigurationError(err):
		render(w, r, http.StatusUnprocessableEntity, pages.Error("Unknown Template", err.Error()))
	default:
		h.logger.Error("web request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		render(w, r, http.StatusInternalServerError, pages.Error("Error", "Something went wrong. Please try again later."))
	}
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = c.Render(r.Context(), w)
}
