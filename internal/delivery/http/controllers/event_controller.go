package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
	"eventdesk/internal/metrics"
)

// EventResponse is the JSON representation of an event summary.
// Capacity is null and Unlimited true for events without a guest cap.
type EventResponse struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Location   string `json:"location,omitempty"`
	MeetingURL string `json:"meeting_url,omitempty"`
	Capacity   *int   `json:"capacity"`
	Unlimited  bool   `json:"unlimited"`
	GuestCount int    `json:"guest_count"`
	Summary    string `json:"summary"`
}

func newEventResponse(e domain.Event) EventResponse {
	fields := domain.FieldsOf(e)
	resp := EventResponse{
		ID:         e.ID(),
		Kind:       string(e.Kind()),
		Title:      e.Title(),
		Date:       e.Date(),
		Location:   fields.Location,
		MeetingURL: fields.MeetingURL,
		GuestCount: e.GuestCount(),
		Summary:    e.String(),
	}
	if capacity := e.Capacity(); capacity == domain.UnlimitedCapacity {
		resp.Unlimited = true
	} else {
		resp.Capacity = &capacity
	}
	return resp
}

// EventDetailResponse is the JSON representation of a single event,
// including the rendered details text block.
type EventDetailResponse struct {
	EventResponse
	Details string `json:"details"`
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Kind             string `json:"kind"`
	Title            string `json:"title"`
	Date             string `json:"date"`
	Location         string `json:"location"`
	MeetingURL       string `json:"meeting_url"`
	PhysicalCapacity int    `json:"physical_capacity"`
}

// Validate implements Validator. Variant fields are required per kind:
// location for in_person and hybrid, meeting_url for virtual and hybrid.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	kind := domain.Kind(c.Kind)
	switch kind {
	case domain.KindInPerson, domain.KindVirtual, domain.KindHybrid:
	case "":
		errs = append(errs, "kind is required")
	default:
		errs = append(errs, "kind must be one of in_person, virtual, hybrid")
	}
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Date) == "" {
		errs = append(errs, "date is required")
	}
	if c.PhysicalCapacity < 0 {
		errs = append(errs, "physical_capacity must be non-negative")
	}
	if kind == domain.KindInPerson || kind == domain.KindHybrid {
		if strings.TrimSpace(c.Location) == "" {
			errs = append(errs, "location is required for "+c.Kind+" events")
		}
	}
	if kind == domain.KindVirtual || kind == domain.KindHybrid {
		if strings.TrimSpace(c.MeetingURL) == "" {
			errs = append(errs, "meeting_url is required for "+c.Kind+" events")
		}
	}
	return errs
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  EventResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsResponse is the data payload for GET /events (200).
type ListEventsResponse struct {
	Items      []EventResponse        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  EventDetailResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// DeleteEventResponse is the data payload for DELETE /events/{eventID} (200).
type DeleteEventResponse struct {
	Status string `json:"status"`
}

// DeleteEventSuccessResponse is the success response envelope for DELETE /events/{eventID} (200).
type DeleteEventSuccessResponse struct {
	Data  DeleteEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// BroadcastRequest is the request body for POST /events/{eventID}/notifications.
type BroadcastRequest struct {
	Message string `json:"message"`
}

// Validate implements Validator.
func (b BroadcastRequest) Validate() []string {
	if strings.TrimSpace(b.Message) == "" {
		return []string{"message is required"}
	}
	return nil
}

// BroadcastSuccessResponse is the success response envelope for POST /events/{eventID}/notifications (200).
type BroadcastSuccessResponse struct {
	Data  domain.BroadcastResult `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create an in-person, virtual, or hybrid event. physical_capacity bounds the guest list for in-person and hybrid events; virtual events are uncapped.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	_, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), domain.CreateEventInput{
		Kind:             domain.Kind(req.Kind),
		Title:            req.Title,
		Date:             req.Date,
		Location:         req.Location,
		MeetingURL:       req.MeetingURL,
		PhysicalCapacity: req.PhysicalCapacity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	metrics.EventsCreated.WithLabelValues(string(event.Kind())).Inc()
	helpers.WriteJSONSuccess(w, http.StatusCreated, newEventResponse(event))
}

// ListEvents godoc
// @Summary List events
// @Description Returns a paginated list of event summaries in creation order. Use page and page_size query params.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	items := make([]EventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, newEventResponse(e))
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: items, Pagination: meta})
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event summary plus the rendered multi-line details text for its kind.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event with details text"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventDetailResponse{
		EventResponse: newEventResponse(event),
		Details:       event.Details(),
	})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Delete an event and its guest list. Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	_, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Status: "deleted"})
}

// Broadcast godoc
// @Summary Send a notification to all guests
// @Description Renders the notification text block for the event and attempts delivery to every registered guest. Failures do not abort the broadcast; the response reports sent count and failed addresses.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body BroadcastRequest true "Notification message"
// @Success 200 {object} controllers.BroadcastSuccessResponse "data contains rendered text, recipients, sent, and failed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/notifications [post]
func (c *EventController) Broadcast(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req BroadcastRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	_, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	result, err := c.Service.Broadcast(r.Context(), eventID, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	metrics.NotificationsSent.Add(float64(result.Sent))
	metrics.NotificationsFailed.Add(float64(len(result.Failed)))
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
