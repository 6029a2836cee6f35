package opportunity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ua-volunteer/volunteer-api/internal/middleware"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/errorhandler"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/response"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/validator"
)

// Handler handles opportunity HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates opportunity handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /opportunities
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOpportunityRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		errorhandler.LogValidationError(r.Context(), w, errors)
		return
	}

	promoterID := middleware.GetPromoterID(r.Context())
	o, err := h.service.Create(r.Context(), promoterID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidPromoter) {
			response.NotFound(w, "Promoter not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "create opportunity", err)
		return
	}

	response.Created(w, OpportunityResponseFromEntity(o))
}

// GetByID handles GET /opportunities/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid opportunity ID")
		return
	}

	o, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrOpportunityNotFound) {
			response.NotFound(w, "Opportunity not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "get opportunity", err)
		return
	}

	response.OK(w, OpportunityResponseFromEntity(o))
}

// List handles GET /opportunities
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := &Filter{}
	query := r.URL.Query()

	if s := query.Get("status"); s != "" {
		status := Status(s)
		if status != StatusOpen && status != StatusConcluded {
			response.BadRequest(w, "status must be OPEN or CONCLUDED")
			return
		}
		filter.Status = &status
	}
	if p := query.Get("promoter_id"); p != "" {
		if v, err := strconv.ParseInt(p, 10, 64); err == nil && v > 0 {
			filter.PromoterID = &v
		}
	}

	page, limit := response.PageParams(r)
	items, total, err := h.service.List(r.Context(), filter, &Pagination{Page: page, Limit: limit})
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list opportunities", err)
		return
	}

	out := make([]*OpportunityResponse, len(items))
	for i, o := range items {
		out[i] = OpportunityResponseFromEntity(o)
	}

	response.Paginated(w, out, total, page, limit)
}
