package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdesk/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	notifications  domain.NotificationService
	locks          *eventLocks
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	notifications domain.NotificationService,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		notifications:  notifications,
		locks:          newEventLocks(),
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("event title is required: %w", domain.ErrInvalidInput)
	}
	if in.PhysicalCapacity < 0 {
		return nil, fmt.Errorf("physical capacity must not be negative: %w", domain.ErrInvalidInput)
	}

	event, err := domain.NewEvent(in.Kind, in.Title, in.Date, in.Location, in.MeetingURL, in.PhysicalCapacity)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	lock := s.locks.get(id)
	lock.Lock()
	defer lock.Unlock()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.locks.forget(id)
	return nil
}

// AddGuest registers g for the event. The event's lock serializes
// concurrent registrations so the capacity check and the write behave as
// one step.
func (s *eventService) AddGuest(ctx context.Context, eventID string, g domain.Guest) (domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	lock := s.locks.get(eventID)
	lock.Lock()
	defer lock.Unlock()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	position := event.GuestCount()
	if err := event.AddGuest(g); err != nil {
		// ErrEventFull passes through untouched; nothing was persisted.
		return nil, err
	}
	if err := s.eventRepo.AddGuest(ctx, eventID, g, position); err != nil {
		return nil, fmt.Errorf("persist guest: %w", err)
	}
	return event, nil
}

// Broadcast renders the event's notification block and delivers one
// message per guest, collecting per-recipient failures. Delivery is fire
// and forget: failures are reported, never retried or stored.
func (s *eventService) Broadcast(ctx context.Context, eventID, message string) (*domain.BroadcastResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	result := &domain.BroadcastResult{
		Rendered:   event.Notification(message),
		Recipients: event.GuestCount(),
	}
	for _, guest := range event.Guests() {
		data := &domain.GuestNotificationData{
			Email:      guest.Email,
			GuestName:  guest.Name,
			EventTitle: event.Title(),
			EventDate:  event.Date(),
			Message:    message,
		}
		if err := s.notifications.SendGuestNotification(ctx, data); err != nil {
			result.Failed = append(result.Failed, guest.Email)
			continue
		}
		result.Sent++
	}
	return result, nil
}
