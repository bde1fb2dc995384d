package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hospitalms/hospital-api/internal/config"
	"github.com/hospitalms/hospital-api/internal/handler"
	authHandler "github.com/hospitalms/hospital-api/internal/handler/auth"
	clinicHandler "github.com/hospitalms/hospital-api/internal/handler/clinic"
	consultationHandler "github.com/hospitalms/hospital-api/internal/handler/consultation"
	doctorHandler "github.com/hospitalms/hospital-api/internal/handler/doctor"
	patientHandler "github.com/hospitalms/hospital-api/internal/handler/patient"
	"github.com/hospitalms/hospital-api/internal/middleware"
	"github.com/hospitalms/hospital-api/internal/repository/postgres"
	"github.com/hospitalms/hospital-api/internal/router"
	authService "github.com/hospitalms/hospital-api/internal/service/auth"
	clinicService "github.com/hospitalms/hospital-api/internal/service/clinic"
	consultationService "github.com/hospitalms/hospital-api/internal/service/consultation"
	doctorService "github.com/hospitalms/hospital-api/internal/service/doctor"
	patientService "github.com/hospitalms/hospital-api/internal/service/patient"
	pkgauth "github.com/hospitalms/hospital-api/pkg/auth"
	"github.com/hospitalms/hospital-api/pkg/logger"
	"github.com/hospitalms/hospital-api/pkg/messaging/redis"
	"github.com/hospitalms/hospital-api/pkg/metrics"
	"github.com/hospitalms/hospital-api/pkg/security"
	"github.com/hospitalms/hospital-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	appLogger := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	db, err := postgres.NewDB(cfg.Database.ToDBConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	clinicRepo := postgres.NewClinicRepository(base)
	doctorRepo := postgres.NewDoctorRepository(base)
	patientRepo := postgres.NewPatientRepository(base)
	consultationRepo := postgres.NewConsultationRepository(base)
	outboxRepo := postgres.NewOutboxRepository(base)

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	tokens := pkgauth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenTTL())

	authSvc := authService.NewService(userRepo, hasher, tokens, cfg.JWT.TokenTTL())
	clinicSvc := clinicService.NewService(clinicRepo, doctorRepo, patientRepo)
	doctorSvc := doctorService.NewService(doctorRepo, clinicRepo, patientRepo, consultationRepo)
	patientSvc := patientService.NewService(patientRepo, clinicRepo, doctorRepo)
	consultationSvc := consultationService.NewService(consultationRepo, clinicRepo, doctorRepo, patientRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	h := handler.NewHandler(base.GetDB())
	authH := authHandler.NewHandler(authSvc)
	clinicH := clinicHandler.NewHandler(clinicSvc, outboxRepo)
	doctorH := doctorHandler.NewHandler(doctorSvc, outboxRepo)
	patientH := patientHandler.NewHandler(patientSvc, outboxRepo)
	consultationH := consultationHandler.NewHandler(consultationSvc, outboxRepo)

	r := router.NewRouter(
		authMiddleware,
		authH,
		clinicH,
		doctorH,
		patientH,
		consultationH,
		h,
		router.RouterConfig{
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "hospital_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	broker, err := redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	outboxMetrics := metrics.NewMetrics("hospital_api", "outbox")
	outboxProcessor := worker.NewOutboxProcessor(outboxRepo, broker, cfg.Outbox.ToWorkerConfig(), appLogger, outboxMetrics)
	go outboxProcessor.Start(workerCtx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
