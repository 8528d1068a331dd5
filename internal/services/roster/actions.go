package roster

import "github.com/mcoot/raidroster/internal/model"

// VisibleActions lists the actions a transport should offer for a template:
// leader first, then every enabled slot in display order, then fill and clear.
func VisibleActions(tmpl *model.EventTemplate) []model.Action {
	actions := []model.Action{model.ActionLeader}
	for _, slot := range tmpl.EnabledSlots() {
		actions = append(actions, model.RoleAction(slot.ID))
	}
	return append(actions, model.ActionFill, model.ActionClear)
}

// Offered reports whether an action is visible for the template
func Offered(tmpl *model.EventTemplate, action model.Action) bool {
	if role, ok := action.Role(); ok {
		return tmpl.Capacity(role) > 0
	}
	return action.Valid()
}
