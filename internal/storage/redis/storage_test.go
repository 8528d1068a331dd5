package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/storage"
	"github.com/mcoot/raidroster/internal/storage/storagetest"
	"github.com/mcoot/raidroster/internal/testutil"
)

type StorageSuite struct {
	storagetest.Suite
	mini   *miniredis.Miniredis
	client *redis.Client
}

func TestStorageSuite(t *testing.T) {
	s := new(StorageSuite)
	s.NewStorage = func() storage.Storage {
		s.mini = miniredis.RunT(s.T())
		s.client = redis.NewClient(&redis.Options{
			Addr: s.mini.Addr(),
		})

		cfg := DefaultConfig()
		cfg.EventTTL = time.Hour
		return NewWithClient(s.client, cfg)
	}
	suite.Run(t, s)
}

func (s *StorageSuite) TearDownTest() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestEventTTL() {
	_ = s.Storage.SaveEvent(s.Ctx, &model.Event{ID: "EVT001"})

	s.Equal(time.Hour, s.mini.TTL(eventKey("EVT001")))
}

func (s *StorageSuite) TestParticipantWritesRefreshTTL() {
	s.Require().NoError(s.Storage.SaveEvent(s.Ctx, &model.Event{ID: "EVT001", State: model.EventStateOpen}))
	_ = s.Storage.SaveParticipant(s.Ctx, model.Participant{EventID: "EVT001", UserID: "alice", Role: model.RoleTank0})

	s.mini.FastForward(30 * time.Minute)
	s.Require().NoError(s.Storage.SetLeader(s.Ctx, "EVT001", "alice"))

	s.Equal(time.Hour, s.mini.TTL(participantsKey("EVT001")))
	s.Equal(time.Hour, s.mini.TTL(arrivalKey("EVT001")))
	s.Equal(time.Hour, s.mini.TTL(eventKey("EVT001")))
}

func (s *StorageSuite) TestActiveEventOutlivesTTL() {
	s.Require().NoError(s.Storage.SaveEvent(s.Ctx, &model.Event{ID: "EVT001", State: model.EventStateOpen}))

	users := []model.UserID{"alice", "bob", "carol"}
	for _, user := range users {
		s.mini.FastForward(40 * time.Minute)
		s.Require().NoError(s.Storage.SaveParticipant(s.Ctx, model.Participant{EventID: "EVT001", UserID: user, Role: model.RoleFill}))
	}

	_, err := s.Storage.GetEvent(s.Ctx, "EVT001")
	s.Require().NoError(err)

	s.mini.FastForward(40 * time.Minute)
	s.Require().NoError(s.Storage.DeleteParticipant(s.Ctx, "EVT001", "alice"))
	s.Equal(time.Hour, s.mini.TTL(eventKey("EVT001")))
}

func (s *StorageSuite) TestExpiredEventIsNotFound() {
	_ = s.Storage.SaveEvent(s.Ctx, &model.Event{ID: "EVT001"})

	s.mini.FastForward(2 * time.Hour)

	_, err := s.Storage.GetEvent(s.Ctx, "EVT001")
	s.ErrorIs(err, model.ErrEventNotFound)
}

func (s *StorageSuite) TestListSkipsDanglingIndexEntries() {
	_ = s.Storage.SaveParticipant(s.Ctx, model.Participant{EventID: "EVT001", UserID: "alice", Role: model.RoleTank0})
	_ = s.Storage.SaveParticipant(s.Ctx, model.Participant{EventID: "EVT001", UserID: "bob", Role: model.RoleDPS0})
	s.mini.HDel(participantsKey("EVT001"), "alice")

	rows, err := s.Storage.ListParticipants(s.Ctx, "EVT001")
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(model.UserID("bob"), rows[0].UserID)
}

// Locker tests

func (s *StorageSuite) TestLockerExcludesSecondHolder() {
	locker := NewLocker(s.client, Config{LockTTL: time.Second, LockRetryWait: 5 * time.Millisecond}, testutil.NopLogger())

	unlock, err := locker.Lock(s.Ctx, "EVT001")
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(s.Ctx, 30*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "EVT001")
	s.ErrorIs(err, context.DeadlineExceeded)

	unlock()
	s.False(s.mini.Exists(lockKey("EVT001")))

	unlock, err = locker.Lock(s.Ctx, "EVT001")
	s.Require().NoError(err)
	unlock()
}

func (s *StorageSuite) TestLockerReleaseKeepsForeignToken() {
	logger, logs := testutil.CaptureLogger()
	locker := NewLocker(s.client, Config{LockTTL: time.Second, LockRetryWait: 5 * time.Millisecond}, logger)

	unlock, err := locker.Lock(s.Ctx, "EVT001")
	s.Require().NoError(err)

	// Simulate expiry followed by another holder taking the lock
	s.Require().NoError(s.mini.Set(lockKey("EVT001"), "someone-else"))
	unlock()

	got, err := s.mini.Get(lockKey("EVT001"))
	s.Require().NoError(err)
	s.Equal("someone-else", got)

	_, warned := logs.Find("event lock expired before release")
	s.True(warned)
}

func (s *StorageSuite) TestLockerLogsFailedRelease() {
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	logger, logs := testutil.CaptureLogger()
	locker := NewLocker(client, Config{LockTTL: time.Second, LockRetryWait: 5 * time.Millisecond}, logger)

	unlock, err := locker.Lock(s.Ctx, "EVT001")
	s.Require().NoError(err)

	s.Require().NoError(client.Close())
	unlock()

	rec, ok := logs.Find("release event lock")
	s.Require().True(ok, logs.String())
	s.Equal("ERROR", rec["level"])
	s.Equal(lockKey("EVT001"), rec["key"])
	s.True(s.mini.Exists(lockKey("EVT001")))
}

func (s *StorageSuite) TestLockerHoldExpires() {
	locker := NewLocker(s.client, Config{LockTTL: time.Second, LockRetryWait: 5 * time.Millisecond}, testutil.NopLogger())

	_, err := locker.Lock(s.Ctx, "EVT001")
	s.Require().NoError(err)

	s.mini.FastForward(2 * time.Second)

	unlock, err := locker.Lock(s.Ctx, "EVT001")
	s.Require().NoError(err)
	unlock()
}
