package benefit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ua-volunteer/volunteer-api/internal/middleware"
)

// Routes returns benefit router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequirePromoter())
		r.Post("/", h.Create)
		r.Patch("/{id}/active", h.SetActive)
	})

	return r
}
