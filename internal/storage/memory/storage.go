package memory

import (
	"context"
	"sync"

	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	events       map[model.EventID]*model.Event
	participants map[model.EventID][]model.Participant // Arrival order
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		events:       make(map[model.EventID]*model.Event),
		participants: make(map[model.EventID][]model.Participant),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Event operations

func (s *Storage) SaveEvent(ctx context.Context, event *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *event
	s.events[event.ID] = &stored
	return nil
}

func (s *Storage) GetEvent(ctx context.Context, id model.EventID) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[id]
	if !ok {
		return nil, model.ErrEventNotFound
	}
	result := *event
	return &result, nil
}

func (s *Storage) EventExists(ctx context.Context, id model.EventID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.events[id]
	return ok, nil
}

// Participant operations

func (s *Storage) ListParticipants(ctx context.Context, eventID model.EventID) ([]model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.participants[eventID]
	result := make([]model.Participant, len(rows))
	copy(result, rows)
	return result, nil
}

func (s *Storage) SaveParticipant(ctx context.Context, p model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := removeUser(s.participants[p.EventID], p.UserID)
	s.participants[p.EventID] = append(rows, p)
	return nil
}

func (s *Storage) SetLeader(ctx context.Context, eventID model.EventID, userID model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.participants[eventID]
	for i := range rows {
		if rows[i].UserID == userID {
			rows[i].Leader = true
			return nil
		}
	}
	return nil
}

func (s *Storage) DeleteParticipant(ctx context.Context, eventID model.EventID, userID model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := removeUser(s.participants[eventID], userID)
	if len(rows) == 0 {
		delete(s.participants, eventID)
		return nil
	}
	s.participants[eventID] = rows
	return nil
}

// removeUser returns a new slice without the user's rows
func removeUser(rows []model.Participant, userID model.UserID) []model.Participant {
	kept := make([]model.Participant, 0, len(rows))
	for _, row := range rows {
		if row.UserID != userID {
			kept = append(kept, row)
		}
	}
	return kept
}
