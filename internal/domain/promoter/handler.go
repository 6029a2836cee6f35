package promoter

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ua-volunteer/volunteer-api/internal/middleware"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/errorhandler"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/response"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/validator"
)

// Handler handles promoter auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates promoter handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		errorhandler.LogValidationError(r.Context(), w, errors)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Conflict(w, "Email already registered")
		default:
			log.Error().
				Err(err).
				Str("email", req.Email).
				Msg("failed to register promoter")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		errorhandler.LogValidationError(r.Context(), w, errors)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid email or password")
			return
		}
		errorhandler.Internal(r.Context(), w, "login", err)
		return
	}

	response.OK(w, result)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetByID(r.Context(), middleware.GetPromoterID(r.Context()))
	if err != nil {
		if errors.Is(err, ErrPromoterNotFound) {
			response.NotFound(w, "Promoter not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "get promoter", err)
		return
	}

	response.OK(w, PromoterResponseFromEntity(p))
}
