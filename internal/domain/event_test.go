package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "in_person", want: KindInPerson},
		{in: "virtual", want: KindVirtual},
		{in: "hybrid", want: KindHybrid},
		{in: "", wantErr: true},
		{in: "onsite", wantErr: true},
		{in: "Virtual", wantErr: true},
	}
	for _, tt := range tests {
		t.Run("kind "+tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvent_newEventStartsEmpty(t *testing.T) {
	events := []Event{
		NewInPersonEvent("Tech Conference 2025", "March 15, 2025", "Convention Center, Toronto", 2),
		NewVirtualEvent("AI Workshop", "April 20, 2025", "https://zoom.us/meeting123"),
		NewHybridEvent("DevDays", "May 5, 2025", "City Hall", "https://meet.example.com/devdays", 150),
	}
	for _, e := range events {
		assert.Zero(t, e.GuestCount(), "kind %s", e.Kind())
		assert.Empty(t, e.Guests(), "kind %s", e.Kind())
		assert.Empty(t, e.ID(), "kind %s", e.Kind())
	}
}

func TestEvent_capacityPerKind(t *testing.T) {
	inPerson := NewInPersonEvent("Tech Conference 2025", "March 15, 2025", "Convention Center, Toronto", 2)
	virtual := NewVirtualEvent("AI Workshop", "April 20, 2025", "https://zoom.us/meeting123")
	hybrid := NewHybridEvent("DevDays", "May 5, 2025", "City Hall", "https://meet.example.com/devdays", 150)

	assert.Equal(t, 2, inPerson.Capacity())
	assert.Equal(t, UnlimitedCapacity, virtual.Capacity())
	assert.Equal(t, 150, hybrid.Capacity())
}

func TestEvent_AddGuest_keepsInsertionOrder(t *testing.T) {
	e := NewInPersonEvent("Tech Conference 2025", "March 15, 2025", "Convention Center, Toronto", 10)
	names := []string{"Alice", "Bob", "Carol", "Dave"}
	for i, name := range names {
		err := e.AddGuest(NewGuest(name, strings.ToLower(name)+"@example.com"))
		require.NoError(t, err)
		assert.Equal(t, i+1, e.GuestCount())
	}

	guests := e.Guests()
	require.Len(t, guests, len(names))
	for i, name := range names {
		assert.Equal(t, name, guests[i].Name)
	}
}

func TestEvent_AddGuest_fullEvent(t *testing.T) {
	e := NewInPersonEvent("Tech Conference 2025", "March 15, 2025", "Convention Center, Toronto", 2)
	require.NoError(t, e.AddGuest(NewGuest("Alice Johnson", "alice@example.com")))
	require.NoError(t, e.AddGuest(NewGuest("Bob Smith", "bob@example.com")))

	err := e.AddGuest(NewGuest("Carol Lee", "carol@example.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEventFull)
	assert.Contains(t, err.Error(), "Tech Conference 2025")

	// The rejected guest must not have mutated the list.
	assert.Equal(t, 2, e.GuestCount())
	guests := e.Guests()
	require.Len(t, guests, 2)
	assert.Equal(t, "Alice Johnson", guests[0].Name)
	assert.Equal(t, "Bob Smith", guests[1].Name)
}

func TestEvent_AddGuest_zeroCapacity(t *testing.T) {
	e := NewInPersonEvent("Pop-up", "June 1, 2025", "TBD", 0)
	err := e.AddGuest(NewGuest("Alice", "alice@example.com"))
	assert.ErrorIs(t, err, ErrEventFull)
	assert.Zero(t, e.GuestCount())
}

func TestEvent_AddGuest_virtualNeverFull(t *testing.T) {
	e := NewVirtualEvent("AI Workshop", "April 20, 2025", "https://zoom.us/meeting123")
	for i := 0; i < 15; i++ {
		err := e.AddGuest(NewGuest(fmt.Sprintf("Guest %d", i+1), fmt.Sprintf("guest%d@example.com", i+1)))
		require.NoError(t, err)
	}
	assert.Equal(t, 15, e.GuestCount())
}

func TestEvent_Guests_returnsCopy(t *testing.T) {
	e := NewHybridEvent("DevDays", "May 5, 2025", "City Hall", "https://meet.example.com/devdays", 150)
	require.NoError(t, e.AddGuest(NewGuest("Alice", "alice@example.com")))

	guests := e.Guests()
	guests[0] = NewGuest("Mallory", "mallory@example.com")

	assert.Equal(t, "Alice", e.Guests()[0].Name)
}

func TestInPersonEvent_Details(t *testing.T) {
	e := NewInPersonEvent("Tech Conference 2025", "March 15, 2025", "Convention Center, Toronto", 2)
	require.NoError(t, e.AddGuest(NewGuest("Alice Johnson", "alice@example.com")))

	want := "Type: In-Person Event\n" +
		"Title: Tech Conference 2025\n" +
		"Date: March 15, 2025\n" +
		"Location: Convention Center, Toronto\n" +
		"Capacity: 1 / 2"
	assert.Equal(t, want, e.Details())
}

func TestVirtualEvent_Details(t *testing.T) {
	e := NewVirtualEvent("AI Workshop", "April 20, 2025", "https://zoom.us/meeting123")
	for i := 0; i < 15; i++ {
		require.NoError(t, e.AddGuest(NewGuest(fmt.Sprintf("Guest %d", i+1), fmt.Sprintf("guest%d@example.com", i+1))))
	}

	want := "Type: Virtual Event\n" +
		"Title: AI Workshop\n" +
		"Date: April 20, 2025\n" +
		"Meeting URL: https://zoom.us/meeting123\n" +
		"Registered: 15 guests (No capacity limit)"
	assert.Equal(t, want, e.Details())
}

func TestHybridEvent_Details(t *testing.T) {
	e := NewHybridEvent("DevDays", "May 5, 2025", "City Hall", "https://meet.example.com/devdays", 150)
	require.NoError(t, e.AddGuest(NewGuest("Alice", "alice@example.com")))

	want := "Type: Hybrid Event (In-Person & Virtual)\n" +
		"Title: DevDays\n" +
		"Date: May 5, 2025\n" +
		"Physical Location: City Hall\n" +
		"Virtual URL: https://meet.example.com/devdays\n" +
		"In-Person Capacity: 1 / 150\n" +
		"Note: Virtual attendance is unlimited"
	assert.Equal(t, want, e.Details())
}

func TestEvent_GuestList_empty(t *testing.T) {
	e := NewInPersonEvent("Tech Conference 2025", "March 15, 2025", "Convention Center, Toronto", 2)

	want := "=== Guest List for: Tech Conference 2025 ===\n" +
		"No guests registered yet.\n" +
		"Total Guests: 0 / 2"
	assert.Equal(t, want, e.GuestList())
}

func TestEvent_GuestList_numbersFromOne(t *testing.T) {
	e := NewInPersonEvent("Tech Conference 2025", "March 15, 2025", "Convention Center, Toronto", 2)
	require.NoError(t, e.AddGuest(NewGuest("Alice Johnson", "alice@example.com")))
	require.NoError(t, e.AddGuest(NewGuest("Bob Smith", "bob@example.com")))

	want := "=== Guest List for: Tech Conference 2025 ===\n" +
		"1. Guest: Alice Johnson (alice@example.com)\n" +
		"2. Guest: Bob Smith (bob@example.com)\n" +
		"Total Guests: 2 / 2"
	assert.Equal(t, want, e.GuestList())
}

func TestEvent_GuestList_unlimitedTrailer(t *testing.T) {
	e := NewVirtualEvent("AI Workshop", "April 20, 2025", "https://zoom.us/meeting123")
	require.NoError(t, e.AddGuest(NewGuest("Alice", "alice@example.com")))

	list := e.GuestList()
	assert.True(t, strings.HasSuffix(list, "Total Guests: 1 / Unlimited"), "got %q", list)
}

func TestEvent_Notification(t *testing.T) {
	e := NewVirtualEvent("AI Workshop", "April 20, 2025", "https://zoom.us/meeting123")
	require.NoError(t, e.AddGuest(NewGuest("Alice", "alice@example.com")))
	require.NoError(t, e.AddGuest(NewGuest("Bob", "bob@example.com")))
	require.NoError(t, e.AddGuest(NewGuest("Carol", "carol@example.com")))

	want := "--- Sending Notification for: AI Workshop ---\n" +
		"Message: Starting in 10 minutes!\n" +
		"Sending to 3 guest(s):\n" +
		"  -> alice@example.com\n" +
		"  -> bob@example.com\n" +
		"  -> carol@example.com"
	assert.Equal(t, want, e.Notification("Starting in 10 minutes!"))
}

func TestEvent_Notification_noGuests(t *testing.T) {
	e := NewInPersonEvent("Tech Conference 2025", "March 15, 2025", "Convention Center, Toronto", 2)

	want := "--- Sending Notification for: Tech Conference 2025 ---\n" +
		"Message: Venue changed.\n" +
		"Sending to 0 guest(s):"
	assert.Equal(t, want, e.Notification("Venue changed."))
}

func TestEvent_String(t *testing.T) {
	inPerson := NewInPersonEvent("Tech Conference 2025", "March 15, 2025", "Convention Center, Toronto", 2)
	require.NoError(t, inPerson.AddGuest(NewGuest("Alice", "alice@example.com")))

	virtual := NewVirtualEvent("AI Workshop", "April 20, 2025", "https://zoom.us/meeting123")
	hybrid := NewHybridEvent("DevDays", "May 5, 2025", "City Hall", "https://meet.example.com/devdays", 150)

	assert.Equal(t, "Event: Tech Conference 2025 on March 15, 2025 (1 guests) at Convention Center, Toronto", inPerson.String())
	assert.Equal(t, "Event: AI Workshop on April 20, 2025 (0 guests) (Virtual)", virtual.String())
	assert.Equal(t, "Event: DevDays on May 5, 2025 (0 guests) (Hybrid: City Hall & Online)", hybrid.String())
}

func TestNewEvent_factory(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		wantType any
	}{
		{name: "in_person", kind: KindInPerson, wantType: &InPersonEvent{}},
		{name: "virtual", kind: KindVirtual, wantType: &VirtualEvent{}},
		{name: "hybrid", kind: KindHybrid, wantType: &HybridEvent{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEvent(tt.kind, "Launch", "July 1, 2025", "HQ", "https://meet.example.com/launch", 30)
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, e)
			assert.Equal(t, tt.kind, e.Kind())
			assert.Equal(t, "Launch", e.Title())
			assert.Equal(t, "July 1, 2025", e.Date())
		})
	}
}

func TestNewEvent_unknownKind(t *testing.T) {
	_, err := NewEvent(Kind("carrier_pigeon"), "Launch", "July 1, 2025", "", "", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFieldsOf_roundTrip(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  EventFields
	}{
		{
			name:  "in_person",
			event: NewInPersonEvent("Tech Conference 2025", "March 15, 2025", "Convention Center, Toronto", 2),
			want: EventFields{
				Kind:             KindInPerson,
				Title:            "Tech Conference 2025",
				Date:             "March 15, 2025",
				Location:         "Convention Center, Toronto",
				PhysicalCapacity: 2,
			},
		},
		{
			name:  "virtual",
			event: NewVirtualEvent("AI Workshop", "April 20, 2025", "https://zoom.us/meeting123"),
			want: EventFields{
				Kind:       KindVirtual,
				Title:      "AI Workshop",
				Date:       "April 20, 2025",
				MeetingURL: "https://zoom.us/meeting123",
			},
		},
		{
			name:  "hybrid",
			event: NewHybridEvent("DevDays", "May 5, 2025", "City Hall", "https://meet.example.com/devdays", 150),
			want: EventFields{
				Kind:             KindHybrid,
				Title:            "DevDays",
				Date:             "May 5, 2025",
				Location:         "City Hall",
				MeetingURL:       "https://meet.example.com/devdays",
				PhysicalCapacity: 150,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FieldsOf(tt.event)
			assert.Equal(t, tt.want, f)

			rebuilt, err := NewEvent(f.Kind, f.Title, f.Date, f.Location, f.MeetingURL, f.PhysicalCapacity)
			require.NoError(t, err)
			assert.Equal(t, tt.event.Capacity(), rebuilt.Capacity())
			assert.Equal(t, tt.event.String(), rebuilt.String())
		})
	}
}

func TestPaginationParams_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		params    PaginationParams
		total     int
		wantStart int
		wantEnd   int
	}{
		{name: "first page", params: PaginationParams{Page: 1, PageSize: 2}, total: 5, wantStart: 0, wantEnd: 2},
		{name: "middle page", params: PaginationParams{Page: 2, PageSize: 2}, total: 5, wantStart: 2, wantEnd: 4},
		{name: "last partial page", params: PaginationParams{Page: 3, PageSize: 2}, total: 5, wantStart: 4, wantEnd: 5},
		{name: "past the end", params: PaginationParams{Page: 9, PageSize: 2}, total: 5, wantStart: 5, wantEnd: 5},
		{name: "zero value spans all", params: PaginationParams{}, total: 5, wantStart: 0, wantEnd: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.params.Bounds(tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
