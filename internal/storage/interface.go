package storage

import (
	"context"

	"github.com/mcoot/raidroster/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Event operations
	SaveEvent(ctx context.Context, event *model.Event) error
	GetEvent(ctx context.Context, id model.EventID) (*model.Event, error)
	EventExists(ctx context.Context, id model.EventID) (bool, error)

	// Participant operations

	// ListParticipants returns the event's rows in arrival order
	ListParticipants(ctx context.Context, eventID model.EventID) ([]model.Participant, error)
	// SaveParticipant replaces the user's row and moves it to the end of the arrival order
	SaveParticipant(ctx context.Context, p model.Participant) error
	// SetLeader flags an existing row as leader without changing its position
	SetLeader(ctx context.Context, eventID model.EventID, userID model.UserID) error
	// DeleteParticipant removes the user's row, leader flag included
	DeleteParticipant(ctx context.Context, eventID model.EventID, userID model.UserID) error
}
