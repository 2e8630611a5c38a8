package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
	"eventdesk/internal/metrics"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// AddGuestRequest is the request body for POST /events/{eventID}/guests.
type AddGuestRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate implements Validator.
func (a AddGuestRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, "name is required")
	}
	if a.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(strings.TrimSpace(a.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// AddGuestSuccessResponse is the success response envelope for POST /events/{eventID}/guests (201).
type AddGuestSuccessResponse struct {
	Data  EventResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListGuestsResponse is the data payload for GET /events/{eventID}/guests (200).
// Items is the requested page; Rendered is the guest list text block for the
// whole event.
type ListGuestsResponse struct {
	Items      []domain.Guest         `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
	Rendered   string                 `json:"rendered"`
}

// ListGuestsSuccessResponse is the success response envelope for GET /events/{eventID}/guests (200).
type ListGuestsSuccessResponse struct {
	Data  ListGuestsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type GuestController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewGuestController(logger *slog.Logger, svc domain.EventService) *GuestController {
	return &GuestController{
		Logger:  logger,
		Service: svc,
	}
}

// AddGuest godoc
// @Summary Register a guest for an event
// @Description Adds a guest to the event's list. Registration is refused with 409 event_full when the event has reached its capacity; the guest list is unchanged in that case.
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param guest body AddGuestRequest true "Guest data"
// @Success 201 {object} controllers.AddGuestSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: event_full"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/guests [post]
func (c *GuestController) AddGuest(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req AddGuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	_, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.AddGuest(r.Context(), eventID, domain.NewGuest(req.Name, req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrEventFull) {
			metrics.CapacityRejections.Inc()
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeEventFull, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	metrics.GuestsAdded.Inc()
	helpers.WriteJSONSuccess(w, http.StatusCreated, newEventResponse(event))
}

// ListGuests godoc
// @Summary List guests for an event
// @Description Returns a paginated list of the event's guests in registration order, plus the rendered guest list text block for the full event. Use page and page_size query params.
// @Tags guests
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListGuestsSuccessResponse "data contains items, pagination, and rendered text"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/guests [get]
func (c *GuestController) ListGuests(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	params := helpers.ParsePagination(r)
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
	guests := event.Guests()
	start, end := params.Bounds(len(guests))
	items := guests[start:end]
	if items == nil {
		items = []domain.Guest{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, len(guests))
	helpers.WriteJSONSuccess(w, http.StatusOK, ListGuestsResponse{
		Items:      items,
		Pagination: meta,
		Rendered:   event.GuestList(),
	})
}
