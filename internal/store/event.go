package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Event is one dispatched pointer action.
type Event struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Action      string    `json:"action"`
	IndexAngle  float64   `json:"index_angle"`
	MiddleAngle float64   `json:"middle_angle"`
	Spread      float64   `json:"spread"`
	X           int       `json:"x"`
	Y           int       `json:"y"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventRepository provides access to journaled events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Create inserts a new event. An empty ID is filled with a random UUID.
func (r *EventRepository) Create(e *Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO events (id, session_id, action, index_angle, middle_angle, spread, x, y, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.Action, e.IndexAngle, e.MiddleAngle, e.Spread, e.X, e.Y, e.CreatedAt,
	)
	return err
}

// Recent returns up to limit events across all sessions, newest first.
func (r *EventRepository) Recent(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = -1
	}
	return r.query(
		`SELECT id, session_id, action, index_angle, middle_angle, spread, x, y, created_at
		 FROM events ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
}

// ListBySession returns the events of one session in the order they happened.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	return r.query(
		`SELECT id, session_id, action, index_angle, middle_angle, spread, x, y, created_at
		 FROM events WHERE session_id = ? ORDER BY created_at ASC`,
		sessionID,
	)
}

// CountByAction returns the number of events per action name for a session.
func (r *EventRepository) CountByAction(sessionID string) (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT action, COUNT(*) FROM events WHERE session_id = ? GROUP BY action`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var action string
		var n int
		if err := rows.Scan(&action, &n); err != nil {
			return nil, err
		}
		counts[action] = n
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *EventRepository) query(q string, args ...any) ([]*Event, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		err := rows.Scan(&e.ID, &e.SessionID, &e.Action, &e.IndexAngle, &e.MiddleAngle,
			&e.Spread, &e.X, &e.Y, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
