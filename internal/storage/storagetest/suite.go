// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/storage"
)

// Suite runs the storage contract against the backend returned by NewStorage.
// Backend packages embed it and set NewStorage before suite.Run.
type Suite struct {
	suite.Suite
	NewStorage func() storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

func (s *Suite) SetupTest() {
	s.Storage = s.NewStorage()
	s.Ctx = context.Background()
}

func (s *Suite) participant(user string, role model.RoleID) model.Participant {
	return model.Participant{EventID: "EVT001", UserID: model.UserID(user), Role: role}
}

func (s *Suite) users(rows []model.Participant) []model.UserID {
	ids := make([]model.UserID, len(rows))
	for i, row := range rows {
		ids[i] = row.UserID
	}
	return ids
}

// Event tests

func (s *Suite) TestSaveAndGetEvent() {
	event := &model.Event{
		ID:        "EVT001",
		Type:      model.EventTypeTrial,
		Name:      "Sunspire",
		TriggerAt: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
		State:     model.EventStateOpen,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.Storage.SaveEvent(s.Ctx, event)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetEvent(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.Equal(event.ID, retrieved.ID)
	s.Equal(event.Name, retrieved.Name)
	s.Equal(event.State, retrieved.State)
	s.True(event.TriggerAt.Equal(retrieved.TriggerAt))
}

func (s *Suite) TestGetEventNotFound() {
	_, err := s.Storage.GetEvent(s.Ctx, "MISSING")
	s.ErrorIs(err, model.ErrEventNotFound)
}

func (s *Suite) TestSaveEventOverwrites() {
	event := &model.Event{ID: "EVT001", State: model.EventStateOpen}
	_ = s.Storage.SaveEvent(s.Ctx, event)

	event.State = model.EventStateClosed
	event.MessageID = "msg-1"
	s.Require().NoError(s.Storage.SaveEvent(s.Ctx, event))

	retrieved, err := s.Storage.GetEvent(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.Equal(model.EventStateClosed, retrieved.State)
	s.Equal("msg-1", retrieved.MessageID)
}

func (s *Suite) TestEventExists() {
	_ = s.Storage.SaveEvent(s.Ctx, &model.Event{ID: "EVT001"})

	exists, err := s.Storage.EventExists(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.Storage.EventExists(s.Ctx, "MISSING")
	s.Require().NoError(err)
	s.False(exists)
}

// Participant tests

func (s *Suite) TestListParticipantsEmpty() {
	rows, err := s.Storage.ListParticipants(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *Suite) TestListParticipantsArrivalOrder() {
	s.Require().NoError(s.Storage.SaveParticipant(s.Ctx, s.participant("alice", model.RoleTank0)))
	s.Require().NoError(s.Storage.SaveParticipant(s.Ctx, s.participant("bob", model.RoleDPS0)))
	s.Require().NoError(s.Storage.SaveParticipant(s.Ctx, s.participant("carol", model.RoleFill)))

	rows, err := s.Storage.ListParticipants(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.Equal([]model.UserID{"alice", "bob", "carol"}, s.users(rows))
	s.Equal(model.RoleDPS0, rows[1].Role)
	s.Equal(model.EventID("EVT001"), rows[1].EventID)
}

func (s *Suite) TestListParticipantsScopedToEvent() {
	_ = s.Storage.SaveParticipant(s.Ctx, s.participant("alice", model.RoleTank0))
	other := s.participant("bob", model.RoleTank0)
	other.EventID = "EVT002"
	_ = s.Storage.SaveParticipant(s.Ctx, other)

	rows, err := s.Storage.ListParticipants(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.Equal([]model.UserID{"alice"}, s.users(rows))
}

func (s *Suite) TestSaveParticipantReplacesAndMovesToEnd() {
	_ = s.Storage.SaveParticipant(s.Ctx, s.participant("alice", model.RoleTank0))
	_ = s.Storage.SaveParticipant(s.Ctx, s.participant("bob", model.RoleDPS0))

	s.Require().NoError(s.Storage.SaveParticipant(s.Ctx, s.participant("alice", model.RoleHealer0)))

	rows, err := s.Storage.ListParticipants(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal([]model.UserID{"bob", "alice"}, s.users(rows))
	s.Equal(model.RoleHealer0, rows[1].Role)
}

func (s *Suite) TestSaveParticipantStoresLeaderFlag() {
	p := s.participant("alice", model.RoleTank0)
	p.Leader = true
	s.Require().NoError(s.Storage.SaveParticipant(s.Ctx, p))

	rows, err := s.Storage.ListParticipants(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.True(rows[0].Leader)
}

func (s *Suite) TestSetLeaderKeepsPosition() {
	_ = s.Storage.SaveParticipant(s.Ctx, s.participant("alice", model.RoleTank0))
	_ = s.Storage.SaveParticipant(s.Ctx, s.participant("bob", model.RoleDPS0))

	s.Require().NoError(s.Storage.SetLeader(s.Ctx, "EVT001", "alice"))

	rows, err := s.Storage.ListParticipants(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.Equal([]model.UserID{"alice", "bob"}, s.users(rows))
	s.True(rows[0].Leader)
	s.False(rows[1].Leader)
	s.Equal(model.RoleTank0, rows[0].Role)
}

func (s *Suite) TestSetLeaderWithoutRowIsNoop() {
	s.Require().NoError(s.Storage.SetLeader(s.Ctx, "EVT001", "ghost"))

	rows, err := s.Storage.ListParticipants(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *Suite) TestDeleteParticipant() {
	p := s.participant("alice", model.RoleTank0)
	p.Leader = true
	_ = s.Storage.SaveParticipant(s.Ctx, p)
	_ = s.Storage.SaveParticipant(s.Ctx, s.participant("bob", model.RoleDPS0))

	s.Require().NoError(s.Storage.DeleteParticipant(s.Ctx, "EVT001", "alice"))

	rows, err := s.Storage.ListParticipants(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.Equal([]model.UserID{"bob"}, s.users(rows))
}

func (s *Suite) TestDeleteMissingParticipantIsNoop() {
	s.NoError(s.Storage.DeleteParticipant(s.Ctx, "EVT001", "ghost"))
}
