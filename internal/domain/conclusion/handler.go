package conclusion

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ua-volunteer/volunteer-api/internal/middleware"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/errorhandler"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/response"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/validator"
)

// Handler handles conclusion and confirmation HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates conclusion handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Conclude handles POST /opportunities/{id}/conclude
func (h *Handler) Conclude(w http.ResponseWriter, r *http.Request) {
	opportunityID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || opportunityID <= 0 {
		response.BadRequest(w, "Invalid opportunity ID")
		return
	}

	var req ConcludeRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		errorhandler.LogValidationError(r.Context(), w, errors)
		return
	}

	promoterID := middleware.GetPromoterID(r.Context())
	summary, err := h.service.Conclude(r.Context(), opportunityID, promoterID, req.ApplicationIDs)
	if err != nil {
		writeError(w, r, "conclude opportunity", err)
		return
	}

	response.OK(w, SummaryResponseFromEntity(summary))
}

// ConfirmSingle handles POST /applications/{id}/confirm
func (h *Handler) ConfirmSingle(w http.ResponseWriter, r *http.Request) {
	applicationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || applicationID <= 0 {
		response.BadRequest(w, "Invalid application ID")
		return
	}

	promoterID := middleware.GetPromoterID(r.Context())
	confirmation, err := h.service.ConfirmSingle(r.Context(), applicationID, promoterID)
	if err != nil {
		writeError(w, r, "confirm participation", err)
		return
	}

	response.OK(w, ConfirmationResponseFromEntity(confirmation))
}

func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrOpportunityNotFound):
		response.NotFound(w, "Opportunity not found")
	case errors.Is(err, ErrApplicationNotFound):
		response.NotFound(w, "Application not found")
	case errors.Is(err, ErrNotOpportunityOwner):
		response.Conflict(w, "Only the promoter who created the opportunity can do this")
	case errors.Is(err, ErrAlreadyConcluded):
		response.Conflict(w, "Opportunity already concluded")
	default:
		errorhandler.Internal(r.Context(), w, op, err)
	}
}
