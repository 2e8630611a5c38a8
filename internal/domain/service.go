package domain

import "context"

// CreateEventInput carries the fields needed to create an event of any
// kind. Location, MeetingURL and PhysicalCapacity are read only where the
// kind calls for them.
type CreateEventInput struct {
	Kind             Kind
	Title            string
	Date             string
	Location         string
	MeetingURL       string
	PhysicalCapacity int
}

// BroadcastResult reports the outcome of a guest broadcast.
type BroadcastResult struct {
	// Rendered is the broadcast block produced by Event.Notification.
	Rendered string `json:"rendered"`
	// Recipients is the guest count the broadcast addressed.
	Recipients int `json:"recipients"`
	// Sent counts deliveries accepted by the notifier.
	Sent int `json:"sent"`
	// Failed lists addresses the notifier rejected.
	Failed []string `json:"failed,omitempty"`
}

// EventRepository defines the interface for event storage. Events are
// stored with their guest lists; GetByID and List return fully rebuilt
// aggregates.
type EventRepository interface {
	// Create stores the event and assigns its ID.
	Create(ctx context.Context, event Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	// List returns one page of events in creation order plus the total
	// event count.
	List(ctx context.Context, params PaginationParams) ([]Event, int, error)
	Delete(ctx context.Context, id string) error
	// AddGuest appends an accepted guest at the given zero-based position
	// in the event's list.
	AddGuest(ctx context.Context, eventID string, g Guest, position int) error
}

// EventService defines the business logic for events, guest registration
// and broadcasts. Implementations serialize mutations per event so that
// capacity is never oversubscribed under concurrent use.
type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]Event, int, error)
	DeleteEvent(ctx context.Context, id string) error
	// AddGuest registers g for the event. It fails with an error wrapping
	// ErrEventFull when the event is at capacity; nothing is persisted in
	// that case.
	AddGuest(ctx context.Context, eventID string, g Guest) (Event, error)
	// Broadcast renders the event's notification for message and delivers
	// it to every guest, collecting per-recipient failures.
	Broadcast(ctx context.Context, eventID, message string) (*BroadcastResult, error)
}
