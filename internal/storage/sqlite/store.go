// Package sqlite provides a SQLite-backed roster storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/mcoot/raidroster/internal/model"
	"github.com/mcoot/raidroster/internal/storage"
	"github.com/mcoot/raidroster/internal/storage/sqlite/migrations"
)

// Store persists events and rosters in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Ensure Store implements the interface
var _ storage.Storage = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite roster store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single writer connection keeps the seq allocation and upsert free of SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Event operations

func (s *Store) SaveEvent(ctx context.Context, event *model.Event) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO events (id, type, name, trigger_at, channel_id, message_id, state, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   type = excluded.type,
		   name = excluded.name,
		   trigger_at = excluded.trigger_at,
		   channel_id = excluded.channel_id,
		   message_id = excluded.message_id,
		   state = excluded.state,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at`,
		string(event.ID),
		string(event.Type),
		event.Name,
		toMillis(event.TriggerAt),
		event.ChannelID,
		event.MessageID,
		string(event.State),
		toMillis(event.CreatedAt),
		toMillis(event.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save event %s: %w", event.ID, err)
	}
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id model.EventID) (*model.Event, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, type, name, trigger_at, channel_id, message_id, state, created_at, updated_at
		 FROM events WHERE id = ?`,
		string(id),
	)

	var event model.Event
	var triggerAt, createdAt, updatedAt int64
	err := row.Scan(
		&event.ID,
		&event.Type,
		&event.Name,
		&triggerAt,
		&event.ChannelID,
		&event.MessageID,
		&event.State,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	event.TriggerAt = fromMillis(triggerAt)
	event.CreatedAt = fromMillis(createdAt)
	event.UpdatedAt = fromMillis(updatedAt)
	return &event, nil
}

func (s *Store) EventExists(ctx context.Context, id model.EventID) (bool, error) {
	var found int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, string(id)).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check event %s: %w", id, err)
	}
	return true, nil
}

// Participant operations

func (s *Store) ListParticipants(ctx context.Context, eventID model.EventID) ([]model.Participant, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT user_id, role, leader FROM participants WHERE event_id = ? ORDER BY seq`,
		string(eventID),
	)
	if err != nil {
		return nil, fmt.Errorf("list participants %s: %w", eventID, err)
	}
	defer func() { _ = rows.Close() }()

	result := []model.Participant{}
	for rows.Next() {
		p := model.Participant{EventID: eventID}
		if err := rows.Scan(&p.UserID, &p.Role, &p.Leader); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return result, nil
}

func (s *Store) SaveParticipant(ctx context.Context, p model.Participant) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO participants (event_id, user_id, role, leader, seq)
		 VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM participants WHERE event_id = ?))
		 ON CONFLICT(event_id, user_id) DO UPDATE SET
		   role = excluded.role,
		   leader = excluded.leader,
		   seq = excluded.seq`,
		string(p.EventID),
		string(p.UserID),
		string(p.Role),
		p.Leader,
		string(p.EventID),
	)
	if err != nil {
		return fmt.Errorf("save participant %s/%s: %w", p.EventID, p.UserID, err)
	}
	return nil
}

func (s *Store) SetLeader(ctx context.Context, eventID model.EventID, userID model.UserID) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`UPDATE participants SET leader = 1 WHERE event_id = ? AND user_id = ?`,
		string(eventID), string(userID),
	)
	if err != nil {
		return fmt.Errorf("set leader %s/%s: %w", eventID, userID, err)
	}
	return nil
}

func (s *Store) DeleteParticipant(ctx context.Context, eventID model.EventID, userID model.UserID) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM participants WHERE event_id = ? AND user_id = ?`,
		string(eventID), string(userID),
	)
	if err != nil {
		return fmt.Errorf("delete participant %s/%s: %w", eventID, userID, err)
	}
	return nil
}
