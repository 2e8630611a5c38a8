package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"eventdesk/internal/delivery/http/controllers"
	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// HealthResponse is the payload of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// NewRouter initializes the HTTP router with all application routes.
// Mutating routes require a bearer token; reads are public. ping, when
// non-nil, is called by the health endpoint to probe storage.
func NewRouter(
	eventController *controllers.EventController,
	guestController *controllers.GuestController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
	ping func(context.Context) error,
) *http.ServeMux {
	mux := http.NewServeMux()
	protected := middleware.RequireAuth(verifier, logger)

	// Events
	mux.HandleFunc("POST /events", protected(eventController.CreateEvent))
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("DELETE /events/{eventID}", protected(eventController.DeleteEvent))

	// Guests
	mux.HandleFunc("POST /events/{eventID}/guests", protected(guestController.AddGuest))
	mux.HandleFunc("GET /events/{eventID}/guests", guestController.ListGuests)

	// Notifications
	mux.HandleFunc("POST /events/{eventID}/notifications", protected(eventController.Broadcast))

	// Auth
	mux.HandleFunc("POST /auth/token", authController.IssueToken)

	// Operational
	mux.HandleFunc("GET /healthz", healthHandler(ping))
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// healthHandler godoc
// @Summary Health check
// @Description Reports service health. Returns 503 when the storage probe fails.
// @Tags operational
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Failure 503 {object} helpers.APIResponse "error.code: internal_error"
// @Router /healthz [get]
func healthHandler(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeInternalError, "storage unreachable")
				return
			}
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
