package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	h "eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"
)

// TokenRequest is the request body for POST /auth/token
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// Validate implements Validator.
func (t TokenRequest) Validate() []string {
	var errs []string
	if t.APIKey == "" {
		errs = append(errs, "api_key is required")
	}
	return errs
}

// TokenResponse is the response body for POST /auth/token
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenSuccessResponse is the success response envelope for POST /auth/token (200).
type TokenSuccessResponse struct {
	Data  TokenResponse `json:"data"`
	Error *h.APIError   `json:"error"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// IssueToken godoc
// @Summary Exchange the API key for a bearer token
// @Description Authenticate with the service API key. Returns a JWT to use as Authorization: Bearer on protected routes, with its expiry time.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body TokenRequest true "API key"
// @Success 200 {object} controllers.TokenSuccessResponse "data contains token, token_type, and expires_at"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/token [post]
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, expiresAt, err := c.Service.IssueToken(r.Context(), req.APIKey)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid api key")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, TokenResponse{Token: token, TokenType: "Bearer", ExpiresAt: expiresAt})
}
