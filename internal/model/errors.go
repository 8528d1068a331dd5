package model

import "errors"

// Common errors used across the application
var (
	// Configuration errors, raised when an event is set up
	ErrUnknownEventType = errors.New("unknown event type")
	ErrTemplateNotFound = errors.New("event template not found")

	// Event errors
	ErrEventNotFound = errors.New("event not found")
	ErrEventClosed   = errors.New("event is closed")

	// Signal errors
	ErrUnknownAction = errors.New("unknown action")

	// Transport errors
	ErrUnauthorized = errors.New("unauthorized")
)

// IsConfigurationError reports whether err stems from an unknown event type or template
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownEventType) || errors.Is(err, ErrTemplateNotFound)
}
