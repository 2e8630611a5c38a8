package domain

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies how an event is held.
type Kind string

// The closed set of event kinds.
const (
	KindInPerson Kind = "in_person"
	KindVirtual  Kind = "virtual"
	KindHybrid   Kind = "hybrid"
)

// ParseKind converts s into a Kind, failing with ErrInvalidInput for
// anything outside the known set.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindInPerson, KindVirtual, KindHybrid:
		return k, nil
	default:
		return "", fmt.Errorf("unknown event kind %q: %w", s, ErrInvalidInput)
	}
}

const (
	// DefaultCapacity is the guest limit the base event contract assumes
	// for a variant that does not define its own. Every shipped variant
	// overrides it.
	DefaultCapacity = 100

	// UnlimitedCapacity marks an event without a guest limit.
	UnlimitedCapacity = math.MaxInt
)

// Event is the contract shared by all event variants. Variants differ in
// where they are held and how their capacity is determined; guest
// bookkeeping and text rendering are common. Implementations are not safe
// for concurrent use; callers that share an event across goroutines must
// serialize access themselves.
type Event interface {
	fmt.Stringer

	// ID returns the storage identifier, empty until assigned on create.
	ID() string
	SetID(id string)

	Kind() Kind
	Title() string
	// Date returns the event date exactly as given at construction. Dates
	// are free text and never validated.
	Date() string

	// Capacity reports the maximum number of guests the event admits.
	// UnlimitedCapacity means no limit.
	Capacity() int

	// AddGuest appends g to the guest list. It fails with an error wrapping
	// ErrEventFull when the event is at capacity, leaving the list
	// unchanged.
	AddGuest(g Guest) error

	GuestCount() int
	// Guests returns the guest list in insertion order. The returned slice
	// is a copy.
	Guests() []Guest

	// Details renders the multi-line event description.
	Details() string
	// GuestList renders the numbered guest roster with a capacity trailer.
	GuestList() string
	// Notification renders the broadcast text for message. Nothing is
	// delivered; the caller decides what to do with the rendered block.
	Notification(message string) string
}

// eventCore holds the state and behavior shared by all variants.
type eventCore struct {
	id     string
	title  string
	date   string
	guests []Guest
}

func (e *eventCore) ID() string      { return e.id }
func (e *eventCore) SetID(id string) { e.id = id }
func (e *eventCore) Title() string   { return e.title }
func (e *eventCore) Date() string    { return e.date }
func (e *eventCore) GuestCount() int { return len(e.guests) }

func (e *eventCore) Guests() []Guest {
	out := make([]Guest, len(e.guests))
	copy(out, e.guests)
	return out
}

// addGuest appends g if the list has room. The capacity is passed in
// because the variant, not the core, owns it.
func (e *eventCore) addGuest(g Guest, capacity int) error {
	if len(e.guests) >= capacity {
		return fmt.Errorf("cannot add guest to event %q: %w", e.title, ErrEventFull)
	}
	e.guests = append(e.guests, g)
	return nil
}

// summary renders the one-line form shared by all variants:
// `Event: <title> on <date> (<N> guests)`.
func (e *eventCore) summary() string {
	return fmt.Sprintf("Event: %s on %s (%d guests)", e.title, e.date, len(e.guests))
}

// guestList renders the roster. The trailer shows "Unlimited" in place of
// the numeric sentinel when capacity is unbounded.
func (e *eventCore) guestList(capacity int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Guest List for: %s ===\n", e.title)
	if len(e.guests) == 0 {
		b.WriteString("No guests registered yet.\n")
	} else {
		for i, g := range e.guests {
			fmt.Fprintf(&b, "%d. %s\n", i+1, g)
		}
	}
	if capacity == UnlimitedCapacity {
		fmt.Fprintf(&b, "Total Guests: %d / Unlimited", len(e.guests))
	} else {
		fmt.Fprintf(&b, "Total Guests: %d / %d", len(e.guests), capacity)
	}
	return b.String()
}

// Notification renders the broadcast block for message, one address line
// per guest in insertion order.
func (e *eventCore) Notification(message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Sending Notification for: %s ---\n", e.title)
	fmt.Fprintf(&b, "Message: %s\n", message)
	fmt.Fprintf(&b, "Sending to %d guest(s):", len(e.guests))
	for _, g := range e.guests {
		fmt.Fprintf(&b, "\n  -> %s", g.Email)
	}
	return b.String()
}

// InPersonEvent is held at a physical venue with a fixed capacity.
type InPersonEvent struct {
	eventCore
	location         string
	physicalCapacity int
}

// NewInPersonEvent returns an in-person event. physicalCapacity bounds the
// guest list; it is not validated here.
func NewInPersonEvent(title, date, location string, physicalCapacity int) *InPersonEvent {
	return &InPersonEvent{
		eventCore:        eventCore{title: title, date: date},
		location:         location,
		physicalCapacity: physicalCapacity,
	}
}

func (e *InPersonEvent) Kind() Kind       { return KindInPerson }
func (e *InPersonEvent) Capacity() int    { return e.physicalCapacity }
func (e *InPersonEvent) Location() string { return e.location }

func (e *InPersonEvent) AddGuest(g Guest) error {
	return e.addGuest(g, e.Capacity())
}

func (e *InPersonEvent) Details() string {
	return fmt.Sprintf("Type: In-Person Event\nTitle: %s\nDate: %s\nLocation: %s\nCapacity: %d / %d",
		e.title, e.date, e.location, len(e.guests), e.physicalCapacity)
}

func (e *InPersonEvent) GuestList() string {
	return e.guestList(e.Capacity())
}

func (e *InPersonEvent) String() string {
	return e.summary() + " at " + e.location
}

// VirtualEvent is held online and admits any number of guests.
type VirtualEvent struct {
	eventCore
	meetingURL string
}

// NewVirtualEvent returns a virtual event reachable at meetingURL.
func NewVirtualEvent(title, date, meetingURL string) *VirtualEvent {
	return &VirtualEvent{
		eventCore:  eventCore{title: title, date: date},
		meetingURL: meetingURL,
	}
}

func (e *VirtualEvent) Kind() Kind         { return KindVirtual }
func (e *VirtualEvent) Capacity() int      { return UnlimitedCapacity }
func (e *VirtualEvent) MeetingURL() string { return e.meetingURL }

func (e *VirtualEvent) AddGuest(g Guest) error {
	return e.addGuest(g, e.Capacity())
}

func (e *VirtualEvent) Details() string {
	return fmt.Sprintf("Type: Virtual Event\nTitle: %s\nDate: %s\nMeeting URL: %s\nRegistered: %d guests (No capacity limit)",
		e.title, e.date, e.meetingURL, len(e.guests))
}

func (e *VirtualEvent) GuestList() string {
	return e.guestList(e.Capacity())
}

func (e *VirtualEvent) String() string {
	return e.summary() + " (Virtual)"
}

// HybridEvent is held at a physical venue and online at once. Capacity
// tracks in-person seats only; virtual attendance is neither counted nor
// limited.
type HybridEvent struct {
	eventCore
	location         string
	meetingURL       string
	physicalCapacity int
}

// NewHybridEvent returns a hybrid event. physicalCapacity bounds the guest
// list; it is not validated here.
func NewHybridEvent(title, date, location, meetingURL string, physicalCapacity int) *HybridEvent {
	return &HybridEvent{
		eventCore:        eventCore{title: title, date: date},
		location:         location,
		meetingURL:       meetingURL,
		physicalCapacity: physicalCapacity,
	}
}

func (e *HybridEvent) Kind() Kind         { return KindHybrid }
func (e *HybridEvent) Capacity() int      { return e.physicalCapacity }
func (e *HybridEvent) Location() string   { return e.location }
func (e *HybridEvent) MeetingURL() string { return e.meetingURL }

func (e *HybridEvent) AddGuest(g Guest) error {
	return e.addGuest(g, e.Capacity())
}

func (e *HybridEvent) Details() string {
	return fmt.Sprintf("Type: Hybrid Event (In-Person & Virtual)\nTitle: %s\nDate: %s\nPhysical Location: %s\nVirtual URL: %s\nIn-Person Capacity: %d / %d\nNote: Virtual attendance is unlimited",
		e.title, e.date, e.location, e.meetingURL, len(e.guests), e.physicalCapacity)
}

func (e *HybridEvent) GuestList() string {
	return e.guestList(e.Capacity())
}

func (e *HybridEvent) String() string {
	return fmt.Sprintf("%s (Hybrid: %s & Online)", e.summary(), e.location)
}

// EventFields is the flat field set repositories and transport exchange
// with the variant types. Fields that do not apply to a kind are zero.
type EventFields struct {
	Kind             Kind
	Title            string
	Date             string
	Location         string
	MeetingURL       string
	PhysicalCapacity int
}

// FieldsOf flattens an event's variant state.
func FieldsOf(e Event) EventFields {
	f := EventFields{Kind: e.Kind(), Title: e.Title(), Date: e.Date()}
	switch v := e.(type) {
	case *InPersonEvent:
		f.Location = v.Location()
		f.PhysicalCapacity = v.Capacity()
	case *VirtualEvent:
		f.MeetingURL = v.MeetingURL()
	case *HybridEvent:
		f.Location = v.Location()
		f.MeetingURL = v.MeetingURL()
		f.PhysicalCapacity = v.Capacity()
	}
	return f
}

// NewEvent builds a variant from flat fields. It is the construction path
// for repositories rebuilding stored events and for transport handling the
// kind as data. Fields that do not apply to the kind are ignored. Unknown
// kinds fail with ErrInvalidInput.
func NewEvent(kind Kind, title, date, location, meetingURL string, physicalCapacity int) (Event, error) {
	switch kind {
	case KindInPerson:
		return NewInPersonEvent(title, date, location, physicalCapacity), nil
	case KindVirtual:
		return NewVirtualEvent(title, date, meetingURL), nil
	case KindHybrid:
		return NewHybridEvent(title, date, location, meetingURL, physicalCapacity), nil
	default:
		return nil, fmt.Errorf("unknown event kind %q: %w", kind, ErrInvalidInput)
	}
}
