package volunteer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ua-volunteer/volunteer-api/internal/pkg/errorhandler"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/response"
)

// Handler handles volunteer HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates volunteer handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetByID handles GET /volunteers/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid volunteer ID")
		return
	}

	v, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVolunteerNotFound) {
			response.NotFound(w, "Volunteer not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "get volunteer", err)
		return
	}

	response.OK(w, VolunteerResponseFromEntity(v))
}
