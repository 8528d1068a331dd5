package model

import "fmt"

// RoleID identifies a role slot or one of the pseudo roles
type RoleID string

// Role slots available to every event template, in display order
const (
	RoleDPS0    RoleID = "dps0"
	RoleDPS1    RoleID = "dps1"
	RoleHealer0 RoleID = "healer0"
	RoleHealer1 RoleID = "healer1"
	RoleTank0   RoleID = "tank0"
	RoleTank1   RoleID = "tank1"
)

// Pseudo roles
const (
	RoleLeader RoleID = "leader" // Singleton marker, layered on a participant row
	RoleFill   RoleID = "fill"   // Overflow list
)

// AllRoles lists the capacity-bounded role slots in display order
var AllRoles = []RoleID{
	RoleDPS0, RoleDPS1,
	RoleHealer0, RoleHealer1,
	RoleTank0, RoleTank1,
}

// IsSlot reports whether the role is one of the capacity-bounded slots
func (r RoleID) IsSlot() bool {
	for _, role := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}

// RoleSlot is a capacity-bounded role for one event template
type RoleSlot struct {
	ID       RoleID
	Name     string
	Capacity int // 0 disables the slot
}

// Enabled reports whether the slot can be shown and selected
func (s RoleSlot) Enabled() bool {
	return s.Capacity > 0
}

// Action is a signal token delivered by the transport
type Action string

// Non-role actions
const (
	ActionLeader Action = Action(RoleLeader)
	ActionFill   Action = Action(RoleFill)
	ActionClear  Action = "clear"
)

// RoleAction returns the action that requests the given role slot
func RoleAction(role RoleID) Action {
	return Action(role)
}

// Role returns the role slot requested by the action, if it is a role action
func (a Action) Role() (RoleID, bool) {
	role := RoleID(a)
	if role.IsSlot() {
		return role, true
	}
	return "", false
}

// icons maps every action to the emoji used for its button
var icons = map[Action]string{
	RoleAction(RoleDPS0):    "\U0001f5e1\ufe0f", // dagger
	RoleAction(RoleDPS1):    "\u2694\ufe0f",     // crossed swords
	RoleAction(RoleHealer0): "\U0001f3e5",       // hospital
	RoleAction(RoleHealer1): "\u2695\ufe0f",     // medical symbol
	RoleAction(RoleTank0):   "\U0001f6e1\ufe0f", // shield
	RoleAction(RoleTank1):   "\U0001f9a7",       // orangutan
	ActionLeader:            "\U0001f451",       // crown
	ActionFill:              "\U0001f4ad",       // thought balloon
	ActionClear:             "\u274c",           // cross mark
}

// actionsByIcon is the reverse of icons, built once
var actionsByIcon = func() map[string]Action {
	reverse := make(map[string]Action, len(icons))
	for action, icon := range icons {
		reverse[icon] = action
	}
	return reverse
}()

// Icon returns the emoji for an action, or "" for unknown actions
func (a Action) Icon() string {
	return icons[a]
}

// Valid reports whether the action is part of the button table
func (a Action) Valid() bool {
	_, ok := icons[a]
	return ok
}

// ActionForEmoji resolves a reaction emoji to its action.
// Unicode emoji match on name; custom emoji fall back to their <:name:id> tag.
func ActionForEmoji(name, id string) (Action, bool) {
	if action, ok := actionsByIcon[name]; ok {
		return action, true
	}
	if id == "" {
		return "", false
	}
	action, ok := actionsByIcon[fmt.Sprintf("<:%s:%s>", name, id)]
	return action, ok
}
