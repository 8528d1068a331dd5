package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/mcoot/raidroster/internal/api/request"
	"github.com/mcoot/raidroster/internal/api/response"
	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/services/event"
	"github.com/mcoot/raidroster/internal/services/roster"
	"github.com/mcoot/raidroster/internal/web/sse"
)

// EventHandler handles event and roster endpoints
type EventHandler struct {
	eventController  event.ControllerInterface
	rosterController roster.ControllerInterface
	hubManager       *sse.HubManager
	broadcaster      *sse.Broadcaster
	logger           *slog.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(
	eventController event.ControllerInterface,
	rosterController roster.ControllerInterface,
	hubManager *sse.HubManager,
	logger *slog.Logger,
) *EventHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &EventHandler{
		eventController:  eventController,
		rosterController: rosterController,
		hubManager:       hubManager,
		broadcaster:      broadcaster,
		logger:           logger,
	}
}

func eventID(r *http.Request) model.EventID {
	return model.EventID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateEventRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Type == "" || req.Name == "" {
		WriteError(w, NewInvalidRequestError("type and name are required"))
		return
	}
	if req.TriggerAt.IsZero() {
		WriteError(w, NewInvalidRequestError("trigger_at is required"))
		return
	}

	ev, err := h.eventController.CreateEvent(r.Context(), model.EventType(req.Type), req.Name, req.TriggerAt)
	if err != nil {
		WriteError(w, err)
		return
	}

	doc, err := h.rosterController.RenderCurrentState(r.Context(), ev.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	actions, err := h.rosterController.VisibleActions(r.Context(), ev.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/events/"+url.PathEscape(string(ev.ID)), response.CreateEventResponse{
		Event:    response.EventFromModel(ev),
		Document: *doc,
		Actions:  response.ActionsFromModel(actions),
	})
}

// Get handles GET /api/v1/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	ev, err := h.eventController.GetEvent(r.Context(), eventID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EventFromModel(ev))
}

// AttachMessage handles POST /api/v1/events/{id}/message
func (h *EventHandler) AttachMessage(w http.ResponseWriter, r *http.Request) {
	var req request.AttachMessageRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.ChannelID == "" || req.MessageID == "" {
		WriteError(w, NewInvalidRequestError("channel_id and message_id are required"))
		return
	}

	ev, err := h.eventController.AttachMessage(r.Context(), eventID(r), req.ChannelID, req.MessageID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EventFromModel(ev))
}

// Close handles POST /api/v1/events/{id}/close
func (h *EventHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := eventID(r)

	users, err := h.eventController.CloseEvent(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	ev, err := h.eventController.GetEvent(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastClosed(id)
	}

	participants := make([]string, len(users))
	for i, u := range users {
		participants[i] = string(u)
	}
	response.JSON(w, http.StatusOK, response.CloseEventResponse{
		Event:        response.EventFromModel(ev),
		Participants: participants,
	})
}

// Roster handles GET /api/v1/events/{id}/roster
func (h *EventHandler) Roster(w http.ResponseWriter, r *http.Request) {
	id := eventID(r)

	classified, err := h.rosterController.Roster(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RosterFromClassified(id, classified))
}

// Document handles GET /api/v1/events/{id}/document
func (h *EventHandler) Document(w http.ResponseWriter, r *http.Request) {
	doc, err := h.rosterController.RenderCurrentState(r.Context(), eventID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, doc)
}

// Actions handles GET /api/v1/events/{id}/actions
func (h *EventHandler) Actions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.rosterController.VisibleActions(r.Context(), eventID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ActionsFromModel(actions))
}

// Signal handles POST /api/v1/events/{id}/signals
func (h *EventHandler) Signal(w http.ResponseWriter, r *http.Request) {
	var req request.SignalRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.UserID == "" {
		WriteError(w, NewInvalidRequestError("user_id is required"))
		return
	}

	action, err := resolveAction(req)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.rosterController.Dispatch(r.Context(), roster.Signal{
		EventID: eventID(r),
		UserID:  model.UserID(req.UserID),
		Action:  action,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SignalResponseFromResult(result))
}

// Stream handles GET /api/v1/events/{id}/stream
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := eventID(r)

	doc, err := h.rosterController.RenderCurrentState(r.Context(), id)
	if err != nil {
		if !errors.Is(err, model.ErrEventNotFound) {
			h.logger.Error("render roster for stream", slog.String("event_id", string(id)), slog.Any("error", err))
		}
		WriteError(w, err)
		return
	}
	if h.hubManager == nil {
		WriteError(w, NewInvalidRequestError("streaming is not enabled"))
		return
	}

	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(id), r.RemoteAddr, doc)
}

func resolveAction(req request.SignalRequest) (model.Action, error) {
	switch {
	case req.Action != "" && req.Emoji != "":
		return "", NewInvalidRequestError("set either action or emoji, not both")
	case req.Action != "":
		return model.Action(req.Action), nil
	case req.Emoji != "":
		action, ok := model.ActionForEmoji(req.Emoji, req.EmojiID)
		if !ok {
			return "", fmt.Errorf("%w: emoji %q", model.ErrUnknownAction, req.Emoji)
		}
		return action, nil
	default:
		return "", NewInvalidRequestError("action or emoji is required")
	}
}
