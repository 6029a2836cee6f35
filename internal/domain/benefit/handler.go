package benefit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ua-volunteer/volunteer-api/internal/pkg/errorhandler"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/response"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/validator"
)

// Handler handles benefit HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates benefit handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /benefits
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBenefitRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		errorhandler.LogValidationError(r.Context(), w, errors)
		return
	}

	b, err := h.service.Create(r.Context(), &req)
	if err != nil {
		errorhandler.Internal(r.Context(), w, "create benefit", err)
		return
	}

	response.Created(w, BenefitResponseFromEntity(b))
}

// GetByID handles GET /benefits/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid benefit ID")
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBenefitNotFound) {
			response.NotFound(w, "Benefit not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "get benefit", err)
		return
	}

	response.OK(w, BenefitResponseFromEntity(b))
}

// SetActive handles PATCH /benefits/{id}/active
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid benefit ID")
		return
	}

	var req SetActiveRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		errorhandler.LogValidationError(r.Context(), w, errors)
		return
	}

	b, err := h.service.SetActive(r.Context(), id, *req.Active)
	if err != nil {
		if errors.Is(err, ErrBenefitNotFound) {
			response.NotFound(w, "Benefit not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "set benefit active", err)
		return
	}

	response.OK(w, BenefitResponseFromEntity(b))
}

// List handles GET /benefits
// Query: active=true|false, category=UA|PARTNER
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := &Filter{}
	query := r.URL.Query()

	if a := query.Get("active"); a != "" {
		active, err := strconv.ParseBool(a)
		if err != nil {
			response.BadRequest(w, "active must be true or false")
			return
		}
		filter.Active = &active
	}
	if c := query.Get("category"); c != "" {
		category := Category(c)
		if category != CategoryUA && category != CategoryPartner {
			response.BadRequest(w, "category must be UA or PARTNER")
			return
		}
		filter.Category = &category
	}

	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list benefits", err)
		return
	}

	out := make([]*BenefitResponse, len(items))
	for i, b := range items {
		out[i] = BenefitResponseFromEntity(b)
	}

	response.List(w, out, len(out))
}
