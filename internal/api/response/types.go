package response

import (
	"time"

	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/services/roster"
)

// Event represents an event in API responses
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	TriggerAt time.Time `json:"trigger_at"`
	ChannelID string    `json:"channel_id,omitempty"`
	MessageID string    `json:"message_id,omitempty"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventFromModel converts a model.Event
func EventFromModel(e *model.Event) Event {
	return Event{
		ID:        string(e.ID),
		Type:      string(e.Type),
		Name:      e.Name,
		TriggerAt: e.TriggerAt,
		ChannelID: e.ChannelID,
		MessageID: e.MessageID,
		State:     string(e.State),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// CreateEventResponse returns the new event with its first rendering
type CreateEventResponse struct {
	Event    Event                 `json:"event"`
	Document model.DisplayDocument `json:"document"`
	Actions  []Action              `json:"actions"`
}

// CloseEventResponse lists who was on the roster when the event closed
type CloseEventResponse struct {
	Event        Event    `json:"event"`
	Participants []string `json:"participants"`
}

// Action is one button the transport should offer
type Action struct {
	Action string `json:"action"`
	Icon   string `json:"icon"`
}

// ActionsFromModel converts the visible action list
func ActionsFromModel(actions []model.Action) []Action {
	out := make([]Action, len(actions))
	for i, a := range actions {
		out[i] = Action{Action: string(a), Icon: a.Icon()}
	}
	return out
}

// Roster is the classified roster, keyed by role
type Roster struct {
	EventID string              `json:"event_id"`
	Leader  string              `json:"leader,omitempty"`
	Roles   map[string][]string `json:"roles"`
}

// RosterFromClassified converts a classified roster
func RosterFromClassified(eventID model.EventID, c roster.Classified) Roster {
	roles := make(map[string][]string)
	for role, users := range c.Roles() {
		if role == model.RoleLeader {
			continue
		}
		ids := make([]string, len(users))
		for i, u := range users {
			ids[i] = string(u)
		}
		roles[string(role)] = ids
	}
	var leader string
	if u, ok := c.Leader(); ok {
		leader = string(u)
	}
	return Roster{EventID: string(eventID), Leader: leader, Roles: roles}
}

// SignalResponse is the outcome of a signal
type SignalResponse struct {
	Changed  bool                   `json:"changed"`
	Document *model.DisplayDocument `json:"document"`
}

// SignalResponseFromResult converts a roster.Result
func SignalResponseFromResult(r *roster.Result) SignalResponse {
	return SignalResponse{Changed: r.Changed, Document: r.Document}
}

// Templates lists the template names of an event type
type Templates struct {
	Type  string   `json:"type"`
	Names []string `json:"names"`
}
