package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Client exposes the underlying connection so the event locker can share it
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Event operations

func (s *Storage) SaveEvent(ctx context.Context, event *model.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, eventKey(event.ID), data, s.cfg.EventTTL).Err()
}

func (s *Storage) GetEvent(ctx context.Context, id model.EventID) (*model.Event, error) {
	data, err := s.client.Get(ctx, eventKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrEventNotFound
		}
		return nil, err
	}

	var event model.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Storage) EventExists(ctx context.Context, id model.EventID) (bool, error) {
	n, err := s.client.Exists(ctx, eventKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Participant operations

func (s *Storage) ListParticipants(ctx context.Context, eventID model.EventID) ([]model.Participant, error) {
	users, err := s.client.ZRange(ctx, arrivalKey(eventID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []model.Participant{}, nil
	}

	values, err := s.client.HMGet(ctx, participantsKey(eventID), users...).Result()
	if err != nil {
		return nil, err
	}

	rows := make([]model.Participant, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a row; skip it
			continue
		}
		var p model.Participant
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, err
		}
		rows = append(rows, p)
	}
	return rows, nil
}

func (s *Storage) SaveParticipant(ctx context.Context, p model.Participant) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	seq, err := s.client.Incr(ctx, sequenceKey(p.EventID)).Result()
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, participantsKey(p.EventID), string(p.UserID), data)
		pipe.ZAdd(ctx, arrivalKey(p.EventID), redis.Z{Score: float64(seq), Member: string(p.UserID)})
		s.touch(ctx, pipe, p.EventID)
		return nil
	})
	return err
}

func (s *Storage) SetLeader(ctx context.Context, eventID model.EventID, userID model.UserID) error {
	raw, err := s.client.HGet(ctx, participantsKey(eventID), string(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	var p model.Participant
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	if p.Leader {
		return nil
	}
	p.Leader = true

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, participantsKey(eventID), string(userID), data)
		s.touch(ctx, pipe, eventID)
		return nil
	})
	return err
}

func (s *Storage) DeleteParticipant(ctx context.Context, eventID model.EventID, userID model.UserID) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, participantsKey(eventID), string(userID))
		pipe.ZRem(ctx, arrivalKey(eventID), string(userID))
		s.touch(ctx, pipe, eventID)
		return nil
	})
	return err
}

// touch refreshes the TTL on the event record and every roster key of an event
func (s *Storage) touch(ctx context.Context, pipe redis.Pipeliner, eventID model.EventID) {
	if s.cfg.EventTTL <= 0 {
		return
	}
	pipe.Expire(ctx, eventKey(eventID), s.cfg.EventTTL)
	pipe.Expire(ctx, participantsKey(eventID), s.cfg.EventTTL)
	pipe.Expire(ctx, arrivalKey(eventID), s.cfg.EventTTL)
	pipe.Expire(ctx, sequenceKey(eventID), s.cfg.EventTTL)
}
