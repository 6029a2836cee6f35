package redemption

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ua-volunteer/volunteer-api/internal/domain/ledger"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/errorhandler"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/response"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/validator"
)

// Handler handles redemption and partner stats HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates redemption handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func volunteerIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// Redeem handles POST /volunteers/{id}/redemptions
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := volunteerIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid volunteer ID")
		return
	}

	var req RedeemRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		errorhandler.LogValidationError(r.Context(), w, errors)
		return
	}

	result, err := h.service.Redeem(r.Context(), volunteerID, req.BenefitID)
	if err != nil {
		var shortage *ledger.InsufficientBalanceError
		switch {
		case errors.Is(err, ErrVolunteerNotFound), errors.Is(err, ledger.ErrVolunteerNotFound):
			response.NotFound(w, "Volunteer not found")
		case errors.Is(err, ErrBenefitNotFound):
			response.NotFound(w, "Benefit not found")
		case errors.Is(err, ErrBenefitInactive):
			response.Conflict(w, "Benefit is not active")
		case errors.As(err, &shortage):
			response.ErrorWithDetails(w, http.StatusConflict, "CONFLICT", "Insufficient points", map[string]string{
				"available": strconv.Itoa(shortage.Available),
				"required":  strconv.Itoa(shortage.Requested),
			})
		default:
			errorhandler.Internal(r.Context(), w, "redeem benefit", err)
		}
		return
	}

	response.Created(w, RedeemResponse{
		Redemption:      RedemptionResponseFromEntity(result.Redemption),
		RemainingPoints: result.RemainingPoints,
	})
}

// ListByVolunteer handles GET /volunteers/{id}/redemptions
func (h *Handler) ListByVolunteer(w http.ResponseWriter, r *http.Request) {
	volunteerID, ok := volunteerIDParam(r)
	if !ok {
		response.BadRequest(w, "Invalid volunteer ID")
		return
	}

	items, err := h.service.ListByVolunteer(r.Context(), volunteerID)
	if err != nil {
		if errors.Is(err, ErrVolunteerNotFound) {
			response.NotFound(w, "Volunteer not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "list redemptions", err)
		return
	}

	out := make([]*RedemptionResponse, len(items))
	for i, item := range items {
		out[i] = RedemptionResponseFromEntity(item)
	}
	response.List(w, out, len(out))
}

// PartnerStats handles GET /partners/stats?provider=...
func (h *Handler) PartnerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.PartnerStats(r.Context(), r.URL.Query().Get("provider"))
	if err != nil {
		switch {
		case errors.Is(err, ErrProviderRequired):
			errorhandler.LogValidationError(r.Context(), w, map[string]string{"provider": "This field is required"})
		case errors.Is(err, ErrPartnerNotFound):
			response.NotFound(w, "No partner benefits found for provider")
		default:
			errorhandler.Internal(r.Context(), w, "partner stats", err)
		}
		return
	}

	response.OK(w, stats)
}
