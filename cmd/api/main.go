package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/config"
	departmentHandler "github.com/jwalitptl/hospital-api/internal/handler/department"
	"github.com/jwalitptl/hospital-api/internal/handler/health"
	medicationHandler "github.com/jwalitptl/hospital-api/internal/handler/medication"
	patientHandler "github.com/jwalitptl/hospital-api/internal/handler/patient"
	queryHandler "github.com/jwalitptl/hospital-api/internal/handler/query"
	treatmentHandler "github.com/jwalitptl/hospital-api/internal/handler/treatment"
	"github.com/jwalitptl/hospital-api/internal/repository/postgres"
	"github.com/jwalitptl/hospital-api/internal/router"
	departmentService "github.com/jwalitptl/hospital-api/internal/service/department"
	medicationService "github.com/jwalitptl/hospital-api/internal/service/medication"
	patientService "github.com/jwalitptl/hospital-api/internal/service/patient"
	queryService "github.com/jwalitptl/hospital-api/internal/service/query"
	treatmentService "github.com/jwalitptl/hospital-api/internal/service/treatment"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
	"github.com/jwalitptl/hospital-api/pkg/messaging/redis"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logger")
	}

	ctx := context.Background()

	// Initialize database
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics("hospital", reg)

	publisher := newPublisher(ctx, cfg.Redis, m)
	defer publisher.Close()

	// Initialize repositories
	patientRepo := postgres.NewPatientRepository(db, m)
	medicationRepo := postgres.NewMedicationRepository(db)
	departmentRepo := postgres.NewDepartmentRepository(db)
	treatmentRepo := postgres.NewTreatmentRepository(db, m)
	queryRepo := postgres.NewQueryRepository(db)

	// Initialize services
	querySvc := queryService.NewService(queryRepo, publisher, cfg.Cache.LookupTTL)
	patientSvc := patientService.NewService(patientRepo, publisher)
	medicationSvc := medicationService.NewService(medicationRepo, publisher)
	departmentSvc := departmentService.NewService(departmentRepo, publisher, querySvc)
	treatmentSvc := treatmentService.NewService(treatmentRepo, publisher)

	// Setup router
	r, err := router.NewRouter(cfg, router.Handlers{
		Health:     health.NewHandler(db),
		Patient:    patientHandler.NewHandler(patientSvc),
		Medication: medicationHandler.NewHandler(medicationSvc),
		Department: departmentHandler.NewHandler(departmentSvc),
		Treatment:  treatmentHandler.NewHandler(treatmentSvc),
		Query:      queryHandler.NewHandler(querySvc),
	}, reg, reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("base_path", cfg.Server.BasePath).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// newPublisher connects the change-event publisher. Without a Redis URL, or
// when Redis is unreachable at startup, events are dropped.
func newPublisher(ctx context.Context, cfg config.RedisConfig, m *metrics.Metrics) messaging.Publisher {
	if cfg.URL == "" {
		log.Info().Msg("redis not configured, change events disabled")
		return messaging.NopPublisher{}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	publisher, err := redis.NewRedisPublisher(connectCtx, redis.Config{
		URL:          cfg.URL,
		Channel:      cfg.Channel,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		PoolSize:     cfg.PoolSize,
	}, m)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, change events disabled")
		return messaging.NopPublisher{}
	}
	return publisher
}
