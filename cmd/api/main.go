package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-slots/internal/config"
	availabilityHandler "github.com/jwalitptl/clinic-slots/internal/handler/availability"
	"github.com/jwalitptl/clinic-slots/internal/handler/health"
	promhandler "github.com/jwalitptl/clinic-slots/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-slots/internal/middleware"
	"github.com/jwalitptl/clinic-slots/internal/repository/cache"
	"github.com/jwalitptl/clinic-slots/internal/repository/postgres"
	"github.com/jwalitptl/clinic-slots/internal/router"
	"github.com/jwalitptl/clinic-slots/internal/service/availability"
	"github.com/jwalitptl/clinic-slots/internal/worker"
	"github.com/jwalitptl/clinic-slots/pkg/auth"
	"github.com/jwalitptl/clinic-slots/pkg/logger"
	"github.com/jwalitptl/clinic-slots/pkg/messaging/redis"
	"github.com/jwalitptl/clinic-slots/pkg/metrics"
	"github.com/jwalitptl/clinic-slots/pkg/validator"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.Init(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Output: os.Stdout})

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid time zone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics registry shared by every component
	metricsHandler := promhandler.New()
	m := metrics.NewMetrics("clinic_slots", "", metricsHandler.Registry())

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize Redis
	redisClient, err := redis.NewClient(ctx, redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	broker := redis.NewRedisBroker(redisClient, appLogger)
	defer broker.Close()

	// Initialize repositories
	scheduleRepo := cache.NewScheduleCache(
		postgres.NewScheduleRepository(db, m), redisClient, cfg.Cache.ScheduleTTL, m, appLogger,
	)
	serviceRepo := cache.NewServiceCache(
		postgres.NewServiceRepository(db, m), cfg.Cache.ServiceTTL, cfg.Cache.CleanupInterval, m,
	)

	// Initialize services
	availabilitySvc := availability.NewService(
		availability.Repositories{
			Schedules:    scheduleRepo,
			Exceptions:   postgres.NewScheduleExceptionRepository(db, m),
			Appointments: postgres.NewAppointmentRepository(db, m),
			Services:     serviceRepo,
		},
		availability.RealClock{Location: loc},
		availability.Config{
			DefaultDurationMin: cfg.Slots.DefaultDurationMin,
			MaxAdvanceDays:     cfg.Slots.MaxAdvanceDays,
			MaxRangeDays:       cfg.Slots.MaxRangeDays,
		},
		m,
		appLogger,
	)

	// Cache invalidation runs until shutdown
	invalidator := worker.NewInvalidationWorker(broker, scheduleRepo, serviceRepo, m, appLogger)
	go func() {
		if err := invalidator.Start(ctx); err != nil {
			log.Error().Err(err).Msg("invalidation worker stopped")
		}
	}()

	// Initialize handlers
	authMiddleware := middleware.NewAuthMiddleware(auth.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer))
	slotsHandler := availabilityHandler.NewHandler(availabilitySvc, validator.New())
	healthHandler := health.NewHandler(map[string]health.Pinger{
		"database": db,
		"redis": health.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}),
	})

	// Setup router
	r := router.NewRouter(
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimitRPS:     cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst:   cfg.RateLimit.Burst,
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			RequestTimeout:   cfg.Server.RequestTimeout,
		},
		authMiddleware,
		slotsHandler,
		healthHandler,
		metricsHandler,
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
