package model

import "time"

// EventID is a human-readable identifier for a scheduled event
type EventID string

// EventState represents whether an event still accepts signals
type EventState string

const (
	EventStateOpen   EventState = "open"   // Registration in progress
	EventStateClosed EventState = "closed" // Roster frozen
)

// Event is a scheduled group event with an open registration roster
type Event struct {
	ID        EventID
	Type      EventType
	Name      string // Template name within Type
	TriggerAt time.Time
	ChannelID string // Where the transport posted the roster message
	MessageID string
	State     EventState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the event still accepts signals
func (e *Event) IsOpen() bool {
	return e.State == EventStateOpen
}
