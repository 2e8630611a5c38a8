package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"eventdesk/internal/domain"
)

// eventRow is the stored form of an event. Rows stay flat so reads rebuild
// fresh aggregates instead of handing out live state.
type eventRow struct {
	id     string
	seq    int
	fields domain.EventFields
	guests []domain.Guest
}

// EventRepository is an in-memory domain.EventRepository. Data lives for
// the lifetime of the process. Safe for concurrent use.
type EventRepository struct {
	mu      sync.RWMutex
	events  map[string]*eventRow
	nextSeq int
}

// NewEventRepository returns an empty in-memory event repository.
func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]*eventRow)}
}

// Create stores the event under a fresh UUID and assigns it to the event.
func (r *EventRepository) Create(ctx context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.events[id] = &eventRow{
		id:     id,
		seq:    r.nextSeq,
		fields: domain.FieldsOf(event),
		guests: event.Guests(),
	}
	r.nextSeq++
	event.SetID(id)
	return nil
}

// GetByID rebuilds the stored aggregate. The returned event shares no state
// with the repository.
func (r *EventRepository) GetByID(ctx context.Context, id string) (domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rebuild(row)
}

// List returns one page of events in creation order plus the total count.
func (r *EventRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Event, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]*eventRow, 0, len(r.events))
	for _, row := range r.events {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	total := len(rows)
	start, end := params.Bounds(total)
	out := make([]domain.Event, 0, end-start)
	for _, row := range rows[start:end] {
		event, err := rebuild(row)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, event)
	}
	return out, total, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

// AddGuest appends the guest to the stored list. position must equal the
// stored guest count; a mismatch means the caller worked from a stale
// aggregate.
func (r *EventRepository) AddGuest(ctx context.Context, eventID string, g domain.Guest, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	if position != len(row.guests) {
		return fmt.Errorf("guest position %d does not match stored count %d: %w",
			position, len(row.guests), domain.ErrInvalidInput)
	}
	row.guests = append(row.guests, g)
	return nil
}

// rebuild constructs a fresh aggregate from a stored row. Stored rows only
// ever hold guests accepted by the capacity guard, so a guard failure here
// means the stored data is corrupt.
func rebuild(row *eventRow) (domain.Event, error) {
	f := row.fields
	event, err := domain.NewEvent(f.Kind, f.Title, f.Date, f.Location, f.MeetingURL, f.PhysicalCapacity)
	if err != nil {
		return nil, fmt.Errorf("rebuild event %s: %w", row.id, err)
	}
	event.SetID(row.id)
	for _, g := range row.guests {
		if err := event.AddGuest(g); err != nil {
			return nil, fmt.Errorf("rebuild event %s: %w", row.id, err)
		}
	}
	return event, nil
}
