package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the tables used by the PostgreSQL stores.
//
// Events are stored as one JSONB document per aggregate: ticket types and
// attendees are owned by the event and always read and written with it.
const Schema = `
CREATE TABLE IF NOT EXISTS organizer_events (
	id           TEXT PRIMARY KEY,
	organizer_id TEXT        NOT NULL,
	status       TEXT        NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	document     JSONB       NOT NULL
);
CREATE INDEX IF NOT EXISTS organizer_events_owner_idx
	ON organizer_events (organizer_id, updated_at DESC);

CREATE TABLE IF NOT EXISTS organizer_activity (
	id           TEXT PRIMARY KEY,
	organizer_id TEXT        NOT NULL,
	type         TEXT        NOT NULL,
	message      TEXT        NOT NULL,
	event_id     TEXT        NOT NULL DEFAULT '',
	event_title  TEXT        NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL,
	seq          BIGSERIAL
);
ALTER TABLE organizer_activity ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
CREATE INDEX IF NOT EXISTS organizer_activity_owner_seq_idx
	ON organizer_activity (organizer_id, created_at DESC, seq DESC);
`

// Migrate applies Schema. It is safe to run on every start.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// PostgresEventStore persists events in PostgreSQL.
type PostgresEventStore struct {
	db *pgxpool.Pool
}

// NewPostgresEventStore constructs a PostgresEventStore.
func NewPostgresEventStore(db *pgxpool.Pool) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

// Insert writes a new event document.
func (r *PostgresEventStore) Insert(ctx context.Context, event *model.OrganizerEvent) error {
	doc, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO organizer_events (id, organizer_id, status, updated_at, document)
		 VALUES ($1, $2, $3, $4, $5)`,
		event.ID, event.OrganizerID, string(event.Status), event.UpdatedAt, doc,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Get returns a single event or ErrNotFound.
func (r *PostgresEventStore) Get(ctx context.Context, id string) (*model.OrganizerEvent, error) {
	var doc []byte
	err := r.db.QueryRow(ctx,
		`SELECT document FROM organizer_events WHERE id = $1`,
		id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return decodeEvent(doc)
}

// ListByOrganizer returns the organizer's events, most recently updated first.
func (r *PostgresEventStore) ListByOrganizer(ctx context.Context, organizerID string) ([]model.OrganizerEvent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT document
		 FROM organizer_events
		 WHERE organizer_id = $1
		 ORDER BY updated_at DESC, id ASC`,
		organizerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []model.OrganizerEvent{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e, err := decodeEvent(doc)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// Update overwrites the stored document.
func (r *PostgresEventStore) Update(ctx context.Context, event *model.OrganizerEvent) error {
	doc, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE organizer_events
		 SET organizer_id = $2, status = $3, updated_at = $4, document = $5
		 WHERE id = $1`,
		event.ID, event.OrganizerID, string(event.Status), event.UpdatedAt, doc,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the event row.
func (r *PostgresEventStore) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM organizer_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeEvent(doc []byte) (*model.OrganizerEvent, error) {
	var e model.OrganizerEvent
	if err := json.Unmarshal(doc, &e); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &e, nil
}

// PostgresActivityLog persists the activity feed in PostgreSQL.
type PostgresActivityLog struct {
	db *pgxpool.Pool
}

// NewPostgresActivityLog constructs a PostgresActivityLog.
func NewPostgresActivityLog(db *pgxpool.Pool) *PostgresActivityLog {
	return &PostgresActivityLog{db: db}
}

// Append inserts one entry.
func (l *PostgresActivityLog) Append(ctx context.Context, entry model.RecentActivity) error {
	_, err := l.db.Exec(ctx,
		`INSERT INTO organizer_activity (id, organizer_id, type, message, event_id, event_title, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.OrganizerID, string(entry.Type), entry.Message,
		entry.EventID, entry.EventTitle, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns the newest entries for the organizer. Entries sharing a
// timestamp come back in reverse insertion order.
func (l *PostgresActivityLog) Recent(ctx context.Context, organizerID string, limit int) ([]model.RecentActivity, error) {
	rows, err := l.db.Query(ctx,
		`SELECT id, organizer_id, type, message, event_id, event_title, created_at
		 FROM organizer_activity
		 WHERE organizer_id = $1
		 ORDER BY created_at DESC, seq DESC
		 LIMIT $2`,
		organizerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	entries := []model.RecentActivity{}
	for rows.Next() {
		var (
			a   model.RecentActivity
			typ string
		)
		if err := rows.Scan(&a.ID, &a.OrganizerID, &typ, &a.Message, &a.EventID, &a.EventTitle, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Type = model.ActivityType(typ)
		entries = append(entries, a)
	}
	return entries, rows.Err()
}
