package notification

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	// DefaultLimit bounds event listings when no limit is given.
	DefaultLimit = 50
	// MaxLimit caps event listings regardless of the requested limit.
	MaxLimit = 100
)

// Store persists moderation events. Implementations are append-only: there
// is no update or delete. List returns events newest first.
type Store interface {
	Create(ctx context.Context, event Event) (Event, error)
	List(ctx context.Context, limit int) ([]Event, error)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// --- SQL store ---

// SQLStore persists events in Postgres.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore creates a SQL-backed event store.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

type eventRow struct {
	ID        int64     `db:"id"`
	Kind      Kind      `db:"kind"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Meta      []byte    `db:"meta"`
	CreatedAt time.Time `db:"created_at"`
}

func (r eventRow) toEvent() Event {
	e := Event{
		ID:        r.ID,
		Kind:      r.Kind,
		Title:     r.Title,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
	}
	if len(r.Meta) > 0 {
		_ = json.Unmarshal(r.Meta, &e.Meta)
	}
	return e
}

func (s *SQLStore) Create(ctx context.Context, event Event) (Event, error) {
	var meta []byte
	if len(event.Meta) > 0 {
		var err error
		meta, err = json.Marshal(event.Meta)
		if err != nil {
			return Event{}, err
		}
	}

	var row eventRow
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO moderation_events (kind, title, message, meta, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, kind, title, message, meta, created_at`,
		event.Kind, event.Title, event.Message, meta,
	)
	if err != nil {
		return Event{}, err
	}
	return row.toEvent(), nil
}

func (s *SQLStore) List(ctx context.Context, limit int) ([]Event, error) {
	var rows []eventRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, kind, title, message, meta, created_at
		FROM moderation_events
		ORDER BY created_at DESC, id DESC
		LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEvent())
	}
	return events, nil
}

// --- In-memory store ---

// MemoryStore keeps events in process memory. It substitutes for the SQL
// store in local and demo runs.
type MemoryStore struct {
	mu     sync.Mutex
	events []Event
	nextID int64
}

// NewMemoryStore creates an empty in-memory event store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, event Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	event.ID = s.nextID
	event.CreatedAt = time.Now()
	s.events = append(s.events, event)
	return event, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]Event, len(s.events))
	copy(results, s.events)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].ID > results[j].ID
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	n := normalizeLimit(limit)
	if n > len(results) {
		n = len(results)
	}
	return results[:n], nil
}
