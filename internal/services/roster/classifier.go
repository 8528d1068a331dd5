package roster

import "github.com/mcoot/raidroster/internal/model"

// Classified is an event's roster grouped by role.
// Occupant lists keep arrival order; the leader also appears under their functional role.
type Classified struct {
	roles   map[model.RoleID][]model.UserID
	members map[model.UserID]model.Participant
}

// Classify groups participant rows by role. Duplicate rows for a user are
// tolerated: the first one wins.
func Classify(rows []model.Participant) Classified {
	c := Classified{
		roles:   make(map[model.RoleID][]model.UserID),
		members: make(map[model.UserID]model.Participant, len(rows)),
	}
	for _, row := range rows {
		if _, seen := c.members[row.UserID]; seen {
			continue
		}
		c.members[row.UserID] = row
		c.roles[row.Role] = append(c.roles[row.Role], row.UserID)
		if row.Leader {
			c.roles[model.RoleLeader] = append(c.roles[model.RoleLeader], row.UserID)
		}
	}
	return c
}

// Occupants returns the users holding a role, in arrival order
func (c Classified) Occupants(role model.RoleID) []model.UserID {
	return c.roles[role]
}

// Count returns how many users hold a role
func (c Classified) Count(role model.RoleID) int {
	return len(c.roles[role])
}

// Leader returns the event leader, if any
func (c Classified) Leader() (model.UserID, bool) {
	leaders := c.roles[model.RoleLeader]
	if len(leaders) == 0 {
		return "", false
	}
	return leaders[0], true
}

// Has reports whether the user has a row in the roster
func (c Classified) Has(user model.UserID) bool {
	_, ok := c.members[user]
	return ok
}

// Row returns the user's participant row
func (c Classified) Row(user model.UserID) (model.Participant, bool) {
	p, ok := c.members[user]
	return p, ok
}

// Roles returns a copy of the role mapping
func (c Classified) Roles() map[model.RoleID][]model.UserID {
	out := make(map[model.RoleID][]model.UserID, len(c.roles))
	for role, users := range c.roles {
		out[role] = append([]model.UserID(nil), users...)
	}
	return out
}
