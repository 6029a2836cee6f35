package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ua-volunteer/volunteer-api/internal/domain/application"
	"github.com/ua-volunteer/volunteer-api/internal/domain/benefit"
	"github.com/ua-volunteer/volunteer-api/internal/domain/conclusion"
	"github.com/ua-volunteer/volunteer-api/internal/domain/ledger"
	"github.com/ua-volunteer/volunteer-api/internal/domain/opportunity"
	"github.com/ua-volunteer/volunteer-api/internal/domain/promoter"
	"github.com/ua-volunteer/volunteer-api/internal/domain/redemption"
	"github.com/ua-volunteer/volunteer-api/internal/domain/volunteer"
	"github.com/ua-volunteer/volunteer-api/internal/middleware"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/metrics"
	pkgresponse "github.com/ua-volunteer/volunteer-api/internal/pkg/response"
)

type handlers struct {
	volunteer   *volunteer.Handler
	promoter    *promoter.Handler
	opportunity *opportunity.Handler
	application *application.Handler
	conclusion  *conclusion.Handler
	benefit     *benefit.Handler
	redemption  *redemption.Handler
	ledger      *ledger.Handler
}

func newRouter(h handlers, authMiddleware func(http.Handler) http.Handler, allowedOrigins []string, requestTimeout time.Duration, health http.HandlerFunc) chi.Router {
	promoterOnly := middleware.RequirePromoter()

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.CORSHandler(allowedOrigins))
	r.Use(metrics.InstrumentHandler)

	r.Get("/health", health)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/auth", h.promoter.Routes(authMiddleware))
		r.Mount("/opportunities", h.opportunity.Routes(authMiddleware))
		r.Mount("/benefits", h.benefit.Routes(authMiddleware))

		// Opportunity sub-resources
		r.Route("/opportunities/{id}/applications", func(r chi.Router) {
			r.Post("/", h.application.Create)
			r.With(authMiddleware, promoterOnly).Get("/", h.application.ListByOpportunity)
		})
		r.With(authMiddleware, promoterOnly).Post("/opportunities/{id}/conclude", h.conclusion.Conclude)

		r.Route("/applications", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(promoterOnly)
			r.Patch("/{id}/status", h.application.UpdateStatus)
			r.Post("/{id}/confirm", h.conclusion.ConfirmSingle)
		})

		r.Route("/volunteers/{id}", func(r chi.Router) {
			r.Get("/", h.volunteer.GetByID)
			r.Get("/applications", h.application.ListByVolunteer)
			r.Get("/transactions", h.ledger.ListTransactions)
			r.Get("/redemptions", h.redemption.ListByVolunteer)
			r.Post("/redemptions", h.redemption.Redeem)
		})

		r.With(authMiddleware).Get("/partners/stats", h.redemption.PartnerStats)
	})

	return r
}
