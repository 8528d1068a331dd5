package model

// UserID identifies a chat user
type UserID string

// Participant is a user's single roster row for an event.
// Leader is a flag on that row rather than a row of its own.
type Participant struct {
	EventID EventID
	UserID  UserID
	Role    RoleID // A slot, or RoleFill
	Leader  bool
}

// Mention returns the chat mention markup for a user
func (u UserID) Mention() string {
	return "<@" + string(u) + ">"
}
