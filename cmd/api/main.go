package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/careloop/scheduling-api/internal/config"
	"github.com/careloop/scheduling-api/internal/handler"
	appointmentHandler "github.com/careloop/scheduling-api/internal/handler/appointment"
	availabilityHandler "github.com/careloop/scheduling-api/internal/handler/availability"
	clinicHandler "github.com/careloop/scheduling-api/internal/handler/clinic"
	"github.com/careloop/scheduling-api/internal/middleware"
	"github.com/careloop/scheduling-api/internal/repository/postgres"
	"github.com/careloop/scheduling-api/internal/router"
	appointmentService "github.com/careloop/scheduling-api/internal/service/appointment"
	availabilityService "github.com/careloop/scheduling-api/internal/service/availability"
	clinicService "github.com/careloop/scheduling-api/internal/service/clinic"
	"github.com/careloop/scheduling-api/pkg/auth"
	"github.com/careloop/scheduling-api/pkg/logger"
	"github.com/careloop/scheduling-api/pkg/validator"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	logger.Setup(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := validator.Register(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, availability cache disabled")
			rdb = nil
		}
	}

	// Repositories
	clinicRepo := postgres.NewClinicRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Services
	clinicSvc := clinicService.NewService(clinicRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo)
	availabilitySvc := availabilityService.NewService(clinicSvc, appointmentRepo, rdb, cfg.API.AvailabilityCacheTTL())

	// Middleware
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authMiddleware := middleware.NewAuthMiddleware(tokens)
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(cfg.API.RateLimit),
		Burst: cfg.API.RateBurst,
	})

	// Handlers
	h := handler.NewHandler(db)
	availabilityH := availabilityHandler.NewHandler(availabilitySvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	clinicH := clinicHandler.NewHandler(clinicSvc)

	r := router.NewRouter(
		authMiddleware,
		availabilityH,
		appointmentH,
		clinicH,
		h,
		router.Config{
			RateLimiter:   rateLimiter,
			MetricsPrefix: "scheduling_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
