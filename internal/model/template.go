package model

// EventType is the category of a scheduled event
type EventType string

const (
	EventTypeTrial EventType = "trial"
)

// EventTemplate holds the role slots and display data for one event name.
// Templates are built once by the catalogue and never mutated afterwards.
type EventTemplate struct {
	Type         EventType
	Name         string
	Title        string
	Description  string
	URL          string
	Image        string
	Guides       string
	Requirements string
	Slots        []RoleSlot // Always in AllRoles order
}

// Slot returns the slot definition for a role
func (t *EventTemplate) Slot(role RoleID) (RoleSlot, bool) {
	for _, s := range t.Slots {
		if s.ID == role {
			return s, true
		}
	}
	return RoleSlot{}, false
}

// Capacity returns the capacity of a role, 0 for unknown roles
func (t *EventTemplate) Capacity(role RoleID) int {
	s, ok := t.Slot(role)
	if !ok {
		return 0
	}
	return s.Capacity
}

// EnabledSlots returns the slots with a non-zero capacity
func (t *EventTemplate) EnabledSlots() []RoleSlot {
	var slots []RoleSlot
	for _, s := range t.Slots {
		if s.Enabled() {
			slots = append(slots, s)
		}
	}
	return slots
}
