package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventdesk/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, event domain.Event) error {
	f := domain.FieldsOf(event)
	query := `
		INSERT INTO events (kind, title, date, location, meeting_url, physical_capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id string
	err := r.DB.QueryRowContext(ctx, query,
		string(f.Kind), f.Title, f.Date,
		nullString(f.Location), nullString(f.MeetingURL), nullCapacity(f),
	).Scan(&id)
	if err != nil {
		return err
	}
	event.SetID(id)
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (domain.Event, error) {
	query := `
		SELECT id, kind, title, date, location, meeting_url, physical_capacity
		FROM events
		WHERE id = $1
	`
	event, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadGuests(ctx, []domain.Event{event}); err != nil {
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, kind, title, date, location, meeting_url, physical_capacity
		FROM events
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadGuests(ctx, events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) AddGuest(ctx context.Context, eventID string, g domain.Guest, position int) error {
	query := `
		INSERT INTO guests (event_id, name, email, position)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, g.Name, g.Email, position)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code.Name() {
			case "foreign_key_violation":
				return domain.ErrNotFound
			case "unique_violation":
				return fmt.Errorf("guest position %d already taken on event %s: %w",
					position, eventID, domain.ErrInvalidInput)
			}
		}
		return err
	}
	return nil
}

// loadGuests attaches stored guests to the given events in position order.
// Stored guests always passed the capacity guard on insert, so re-adding
// them cannot fail unless the stored data is corrupt.
func (r *eventRepository) loadGuests(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	byID := make(map[string]domain.Event, len(events))
	ids := make([]string, 0, len(events))
	for _, event := range events {
		byID[event.ID()] = event
		ids = append(ids, event.ID())
	}

	query := `
		SELECT event_id, name, email
		FROM guests
		WHERE event_id = ANY($1)
		ORDER BY event_id, position
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var eventID string
		var g domain.Guest
		if err := rows.Scan(&eventID, &g.Name, &g.Email); err != nil {
			return err
		}
		event, ok := byID[eventID]
		if !ok {
			continue
		}
		if err := event.AddGuest(g); err != nil {
			return fmt.Errorf("rebuild event %s: %w", eventID, err)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var (
		id, kind, title, date string
		locationNull, urlNull sql.NullString
		capacityNull          sql.NullInt64
	)
	if err := row.Scan(&id, &kind, &title, &date, &locationNull, &urlNull, &capacityNull); err != nil {
		return nil, err
	}
	event, err := domain.NewEvent(domain.Kind(kind), title, date,
		locationNull.String, urlNull.String, int(capacityNull.Int64))
	if err != nil {
		return nil, fmt.Errorf("rebuild event %s: %w", id, err)
	}
	event.SetID(id)
	return event, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullCapacity stores NULL for kinds without a physical guest limit.
func nullCapacity(f domain.EventFields) sql.NullInt64 {
	if f.Kind == domain.KindVirtual {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(f.PhysicalCapacity), Valid: true}
}
