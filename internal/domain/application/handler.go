package application

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ua-volunteer/volunteer-api/internal/domain/volunteer"
	"github.com/ua-volunteer/volunteer-api/internal/middleware"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/errorhandler"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/response"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/validator"
)

// Handler handles application HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates application handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// Create handles POST /opportunities/{id}/applications
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	opportunityID, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Invalid opportunity ID")
		return
	}

	var req CreateApplicationRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		errorhandler.LogValidationError(r.Context(), w, errors)
		return
	}

	a, err := h.service.Create(r.Context(), opportunityID, req.Email, req.Name, req.Motivation)
	if err != nil {
		switch {
		case errors.Is(err, ErrOpportunityNotFound):
			response.NotFound(w, "Opportunity not found")
		case errors.Is(err, ErrAlreadyApplied):
			response.Conflict(w, "Volunteer has already applied to this opportunity")
		case errors.Is(err, ErrOpportunityConcluded):
			response.Conflict(w, "Opportunity is already concluded")
		case errors.Is(err, volunteer.ErrNameRequired):
			errorhandler.LogValidationError(r.Context(), w, map[string]string{"name": "Name is required for a new volunteer"})
		default:
			errorhandler.Internal(r.Context(), w, "create application", err)
		}
		return
	}

	response.Created(w, ApplicationResponseFromEntity(a))
}

// ListByOpportunity handles GET /opportunities/{id}/applications
func (h *Handler) ListByOpportunity(w http.ResponseWriter, r *http.Request) {
	opportunityID, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Invalid opportunity ID")
		return
	}

	page, limit := response.PageParams(r)
	promoterID := middleware.GetPromoterID(r.Context())

	items, total, err := h.service.ListByOpportunity(r.Context(), promoterID, opportunityID, &Pagination{Page: page, Limit: limit})
	if err != nil {
		switch {
		case errors.Is(err, ErrOpportunityNotFound):
			response.NotFound(w, "Opportunity not found")
		case errors.Is(err, ErrNotOpportunityOwner):
			response.Forbidden(w, "Only the opportunity owner can view applications")
		default:
			errorhandler.Internal(r.Context(), w, "list applications", err)
		}
		return
	}

	response.Paginated(w, toResponses(items), total, page, limit)
}

// ListByVolunteer handles GET /volunteers/{id}/applications
func (h *Handler) ListByVolunteer(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Invalid volunteer ID")
		return
	}

	page, limit := response.PageParams(r)
	items, total, err := h.service.ListByVolunteer(r.Context(), volunteerID, &Pagination{Page: page, Limit: limit})
	if err != nil {
		errorhandler.Internal(r.Context(), w, "list volunteer applications", err)
		return
	}

	response.Paginated(w, toResponses(items), total, page, limit)
}

// UpdateStatus handles PATCH /applications/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Invalid application ID")
		return
	}

	var req UpdateStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		errorhandler.LogValidationError(r.Context(), w, errors)
		return
	}

	promoterID := middleware.GetPromoterID(r.Context())
	a, err := h.service.UpdateStatus(r.Context(), promoterID, applicationID, Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrApplicationNotFound):
			response.NotFound(w, "Application not found")
		case errors.Is(err, ErrOpportunityNotFound):
			response.NotFound(w, "Opportunity not found")
		case errors.Is(err, ErrNotOpportunityOwner):
			response.Conflict(w, "Only the opportunity owner can review applications")
		case errors.Is(err, ErrOpportunityConcluded):
			response.Conflict(w, "Opportunity is already concluded")
		case errors.Is(err, ErrInvalidStatusTransition):
			response.Conflict(w, "Invalid status transition")
		default:
			errorhandler.Internal(r.Context(), w, "update application status", err)
		}
		return
	}

	response.OK(w, ApplicationResponseFromEntity(a))
}

func toResponses(items []*Application) []*ApplicationResponse {
	out := make([]*ApplicationResponse, len(items))
	for i, a := range items {
		out[i] = ApplicationResponseFromEntity(a)
	}
	return out
}
