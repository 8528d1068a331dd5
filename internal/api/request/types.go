package request

import "time"

// CreateEventRequest is the request body for scheduling an event
type CreateEventRequest struct {
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	TriggerAt time.Time `json:"trigger_at"`
}

// AttachMessageRequest records where the transport posted the roster
type AttachMessageRequest struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// SignalRequest is one user action. Either Action or Emoji must be set;
// EmojiID is only needed for custom emoji.
type SignalRequest struct {
	UserID  string `json:"user_id"`
	Action  string `json:"action,omitempty"`
	Emoji   string `json:"emoji,omitempty"`
	EmojiID string `json:"emoji_id,omitempty"`
}
