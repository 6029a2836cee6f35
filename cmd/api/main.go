package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ua-volunteer/volunteer-api/internal/config"
	"github.com/ua-volunteer/volunteer-api/internal/domain/application"
	"github.com/ua-volunteer/volunteer-api/internal/domain/benefit"
	"github.com/ua-volunteer/volunteer-api/internal/domain/conclusion"
	"github.com/ua-volunteer/volunteer-api/internal/domain/ledger"
	"github.com/ua-volunteer/volunteer-api/internal/domain/opportunity"
	"github.com/ua-volunteer/volunteer-api/internal/domain/promoter"
	"github.com/ua-volunteer/volunteer-api/internal/domain/redemption"
	"github.com/ua-volunteer/volunteer-api/internal/domain/volunteer"
	"github.com/ua-volunteer/volunteer-api/internal/middleware"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/database"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/jwt"
	"github.com/ua-volunteer/volunteer-api/internal/pkg/logger"
	pkgresponse "github.com/ua-volunteer/volunteer-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Volunteer API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if cfg.MigrateOnStart {
		if err := database.MigrateUp(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	txManager := database.NewTxManager(db)

	// ---------- Repositories ----------
	volunteerRepo := volunteer.NewRepository(db)
	promoterRepo := promoter.NewRepository(db)
	opportunityRepo := opportunity.NewRepository(db)
	applicationRepo := application.NewRepository(db)
	benefitRepo := benefit.NewRepository(db)
	redemptionRepo := redemption.NewRepository(db)
	pointsRepo := ledger.NewRepository(db)

	// ---------- Services ----------
	volunteerService := volunteer.NewService(volunteerRepo)
	promoterService := promoter.NewService(promoterRepo, jwtService)
	opportunityService := opportunity.NewService(opportunityRepo)
	applicationService := application.NewService(applicationRepo, opportunityRepo, volunteerService, txManager)
	conclusionService := conclusion.NewService(opportunityRepo, applicationRepo, pointsRepo, txManager)
	benefitService := benefit.NewService(benefitRepo)
	redemptionService := redemption.NewService(
		redemptionRepo,
		volunteerRepo,
		benefitRepo,
		pointsRepo,
		txManager,
		redemption.NewStatsCache(redis, cfg.StatsCacheTTL),
	)

	// ---------- Handlers ----------
	h := handlers{
		volunteer:   volunteer.NewHandler(volunteerService),
		promoter:    promoter.NewHandler(promoterService),
		opportunity: opportunity.NewHandler(opportunityService),
		application: application.NewHandler(applicationService),
		conclusion:  conclusion.NewHandler(conclusionService),
		benefit:     benefit.NewHandler(benefitService),
		redemption:  redemption.NewHandler(redemptionService),
		ledger:      ledger.NewHandler(pointsRepo),
	}

	health := func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			pkgresponse.Error(w, http.StatusServiceUnavailable, "UNAVAILABLE", "Database unreachable")
			return
		}
		pkgresponse.OK(w, map[string]string{
			"status":      "ok",
			"version":     "1.0.0",
			"stats_cache": database.RedisStatus(r.Context(), redis),
		})
	}

	r := newRouter(h, middleware.Auth(jwtService), cfg.AllowedOrigins, cfg.RequestTimeout, health)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
