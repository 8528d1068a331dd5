package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/raidroster/internal/catalogue"
	"github.com/mcoot/raidroster/internal/dependencies/clock"
	"github.com/mcoot/raidroster/internal/dependencies/random"
	"github.com/mcoot/raidroster/internal/lock"
	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/storage"
)

const (
	// EventIDLength is the length of generated event ids
	EventIDLength = 6
	// EventIDAlphabet is the characters used in event ids (avoid confusing chars)
	EventIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller manages the event lifecycle around a roster
type Controller struct {
	storage   storage.Storage
	catalogue catalogue.CatalogueInterface
	locker    lock.Locker
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
}

// NewController creates a new event Controller
func NewController(
	storage storage.Storage,
	catalogue catalogue.CatalogueInterface,
	locker lock.Locker,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		catalogue: catalogue,
		locker:    locker,
		clock:     clock,
		random:    random,
		logger:    logger.With("component", "event"),
	}
}

// CreateEvent validates the template and persists a new open event with an empty roster
func (c *Controller) CreateEvent(ctx context.Context, eventType model.EventType, name string, triggerAt time.Time) (*model.Event, error) {
	if _, err := c.catalogue.Get(eventType, name); err != nil {
		return nil, err
	}

	// Generate unique event id
	var id model.EventID
	for {
		id = model.EventID(c.random.String(EventIDLength, EventIDAlphabet))
		if id == "" {
			return nil, fmt.Errorf("generate event id: no entropy")
		}
		exists, err := c.storage.EventExists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check event id: %w", err)
		}
		if !exists {
			break
		}
	}

	now := c.clock.Now()
	event := &model.Event{
		ID:        id,
		Type:      eventType,
		Name:      name,
		TriggerAt: triggerAt.UTC(),
		State:     model.EventStateOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.storage.SaveEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	c.logger.Info("event created", "event_id", id, "type", eventType, "name", name)
	return event, nil
}

// GetEvent retrieves an event by id
func (c *Controller) GetEvent(ctx context.Context, id model.EventID) (*model.Event, error) {
	return c.storage.GetEvent(ctx, id)
}

// AttachMessage records where the transport posted the roster message
func (c *Controller) AttachMessage(ctx context.Context, id model.EventID, channelID, messageID string) (*model.Event, error) {
	unlock, err := c.locker.Lock(ctx, string(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	event, err := c.storage.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	event.ChannelID = channelID
	event.MessageID = messageID
	event.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return event, nil
}

// CloseEvent freezes the roster and returns everyone registered, in arrival order.
// Closing an already closed event returns the same list.
func (c *Controller) CloseEvent(ctx context.Context, id model.EventID) ([]model.UserID, error) {
	unlock, err := c.locker.Lock(ctx, string(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	event, err := c.storage.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if event.IsOpen() {
		event.State = model.EventStateClosed
		event.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveEvent(ctx, event); err != nil {
			return nil, fmt.Errorf("save event: %w", err)
		}
		c.logger.Info("event closed", "event_id", id)
	}

	rows, err := c.storage.ListParticipants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	users := make([]model.UserID, len(rows))
	for i, row := range rows {
		users[i] = row.UserID
	}
	return users, nil
}

// ControllerInterface defines the interface for event operations
type ControllerInterface interface {
	CreateEvent(ctx context.Context, eventType model.EventType, name string, triggerAt time.Time) (*model.Event, error)
	GetEvent(ctx context.Context, id model.EventID) (*model.Event, error)
	AttachMessage(ctx context.Context, id model.EventID, channelID, messageID string) (*model.Event, error)
	CloseEvent(ctx context.Context, id model.EventID) ([]model.UserID, error)
}

// Ensure Controller implements ControllerInterface
var _ ControllerInterface = (*Controller)(nil)
