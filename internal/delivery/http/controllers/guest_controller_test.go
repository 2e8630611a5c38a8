package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestController_AddGuest(t *testing.T) {
	tests := []struct {
		name           string
		eventID        string
		body           string
		event          domain.Event // nil means service will not find the event
		fakeErr        error
		noAuthContext  bool
		wantStatus     int
		wantCode       string
		wantBodySubstr string
	}{
		{
			name:       "success",
			eventID:    "ev-1",
			body:       `{"name":"Alice Johnson","email":"alice@example.com"}`,
			event:      mustEvent(t, domain.KindVirtual, "AI Workshop", "April 20, 2025", "", "https://zoom.us/meeting123", 0),
			wantStatus: http.StatusCreated,
		},
		{
			name:           "event at capacity",
			eventID:        "ev-1",
			body:           `{"name":"Charlie Brown","email":"charlie@example.com"}`,
			event:          mustEvent(t, domain.KindInPerson, "Tech Conference 2025", "March 15, 2025", "Convention Center", "", 1, domain.NewGuest("Alice Johnson", "alice@example.com")),
			wantStatus:     http.StatusConflict,
			wantCode:       helpers.ErrCodeEventFull,
			wantBodySubstr: `cannot add guest to event "Tech Conference 2025"`,
		},
		{
			name:           "event not found",
			eventID:        "ev-404",
			body:           `{"name":"Alice Johnson","email":"alice@example.com"}`,
			wantStatus:     http.StatusNotFound,
			wantCode:       helpers.ErrCodeNotFound,
			wantBodySubstr: "event not found",
		},
		{
			name:           "missing eventID",
			body:           `{"name":"Alice Johnson","email":"alice@example.com"}`,
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeBadRequest,
			wantBodySubstr: "missing eventID",
		},
		{
			name:           "missing name",
			eventID:        "ev-1",
			body:           `{"email":"alice@example.com"}`,
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeBadRequest,
			wantBodySubstr: "name is required",
		},
		{
			name:           "invalid email",
			eventID:        "ev-1",
			body:           `{"name":"Alice Johnson","email":"not-an-email"}`,
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeBadRequest,
			wantBodySubstr: "email must be a valid email address",
		},
		{
			name:          "no subject in context",
			eventID:       "ev-1",
			body:          `{"name":"Alice Johnson","email":"alice@example.com"}`,
			noAuthContext: true,
			wantStatus:    http.StatusUnauthorized,
			wantCode:      helpers.ErrCodeUnauthorized,
		},
		{
			name:       "service error",
			eventID:    "ev-1",
			body:       `{"name":"Alice Johnson","email":"alice@example.com"}`,
			fakeErr:    errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{addGuestErr: tt.fakeErr, eventByID: map[string]domain.Event{}}
			if tt.event != nil {
				fake.eventByID["ev-1"] = tt.event
			}
			ctrl := NewGuestController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/events/"+tt.eventID+"/guests", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.eventID != "" {
				req.SetPathValue("eventID", tt.eventID)
			}
			if !tt.noAuthContext {
				req = req.WithContext(middleware.SetSubject(req.Context(), "admin"))
			}
			rr := httptest.NewRecorder()

			ctrl.AddGuest(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				data := decodeData[EventResponse](t, envelope)
				assert.Equal(t, 1, data.GuestCount, "guest count reflects the new guest")
				assert.Equal(t, "ev-1", fake.lastAddGuestID)
				assert.Equal(t, "Alice Johnson", fake.lastAddGuest.Name)
				assert.Equal(t, "alice@example.com", fake.lastAddGuest.Email)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code, "error code")
			if tt.wantBodySubstr != "" {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}

func TestGuestController_AddGuest_capacityLeavesListUnchanged(t *testing.T) {
	event := mustEvent(t, domain.KindInPerson, "Team Standup", "March 10, 2025", "Office Room 3", "", 1,
		domain.NewGuest("Alice Johnson", "alice@example.com"))
	fake := &fakeEventService{eventByID: map[string]domain.Event{"ev-1": event}}
	ctrl := NewGuestController(testLogger, fake)
	req := httptest.NewRequest(http.MethodPost, "/events/ev-1/guests", bytes.NewBufferString(`{"name":"Bob Smith","email":"bob@example.com"}`))
	req.SetPathValue("eventID", "ev-1")
	req = req.WithContext(middleware.SetSubject(req.Context(), "admin"))
	rr := httptest.NewRecorder()

	ctrl.AddGuest(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, 1, event.GuestCount(), "rejected guest must not be registered")
}

func TestGuestController_ListGuests(t *testing.T) {
	event := mustEvent(t, domain.KindInPerson, "Tech Conference 2025", "March 15, 2025", "Convention Center", "", 5,
		domain.NewGuest("Alice Johnson", "alice@example.com"),
		domain.NewGuest("Bob Smith", "bob@example.com"),
		domain.NewGuest("Charlie Brown", "charlie@example.com"))
	event.SetID("ev-1")

	fake := &fakeEventService{eventByID: map[string]domain.Event{"ev-1": event}}
	ctrl := NewGuestController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "/events/ev-1/guests?page=1&page_size=2", nil)
	req.SetPathValue("eventID", "ev-1")
	rr := httptest.NewRecorder()

	ctrl.ListGuests(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	data := decodeData[ListGuestsResponse](t, envelope)
	require.Len(t, data.Items, 2, "first page holds two guests")
	assert.Equal(t, "Alice Johnson", data.Items[0].Name)
	assert.Equal(t, "bob@example.com", data.Items[1].Email)
	assert.Equal(t, 3, data.Pagination.Total)
	assert.Equal(t, 2, data.Pagination.TotalPages)
	assert.Contains(t, data.Rendered, "=== Guest List for: Tech Conference 2025 ===")
	assert.Contains(t, data.Rendered, "1. Guest: Alice Johnson (alice@example.com)")
	assert.Contains(t, data.Rendered, "Total Guests: 3 / 5")
}

func TestGuestController_ListGuests_empty(t *testing.T) {
	event := mustEvent(t, domain.KindVirtual, "AI Workshop", "April 20, 2025", "", "https://zoom.us/meeting123", 0)
	event.SetID("ev-1")

	fake := &fakeEventService{eventByID: map[string]domain.Event{"ev-1": event}}
	ctrl := NewGuestController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "/events/ev-1/guests", nil)
	req.SetPathValue("eventID", "ev-1")
	rr := httptest.NewRecorder()

	ctrl.ListGuests(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `"items":[]`, "empty guest list must serialize as [], not null")

	var envelope helpers.APIResponse
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	data := decodeData[ListGuestsResponse](t, envelope)
	assert.Contains(t, data.Rendered, "No guests registered yet.")
	assert.Contains(t, data.Rendered, "Total Guests: 0 / Unlimited")
}

func TestGuestController_ListGuests_notFound(t *testing.T) {
	fake := &fakeEventService{}
	ctrl := NewGuestController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "/events/ev-404/guests", nil)
	req.SetPathValue("eventID", "ev-404")
	rr := httptest.NewRecorder()

	ctrl.ListGuests(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
}
