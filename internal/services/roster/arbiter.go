package roster

import "github.com/mcoot/raidroster/internal/model"

// Resolve decides which role a join request actually lands on.
//
// A slot with room grants the requested role. When the slot is full, a user
// not yet on the roster overflows to fill, while a user who already holds a
// row is rejected (ok is false) and keeps their current role.
func Resolve(tmpl *model.EventTemplate, requested model.RoleID, roster Classified, alreadyParticipant bool) (effective model.RoleID, ok bool) {
	if roster.Count(requested) < tmpl.Capacity(requested) {
		return requested, true
	}
	if !alreadyParticipant {
		return model.RoleFill, true
	}
	return "", false
}
