package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/podocentro/clinic-api/config"
	"github.com/podocentro/clinic-api/internal/cache"
	"github.com/podocentro/clinic-api/internal/email"
	appointmentHandler "github.com/podocentro/clinic-api/internal/handler/appointment"
	authHandler "github.com/podocentro/clinic-api/internal/handler/auth"
	clinicalHandler "github.com/podocentro/clinic-api/internal/handler/clinical"
	fichaHandler "github.com/podocentro/clinic-api/internal/handler/ficha"
	fileHandler "github.com/podocentro/clinic-api/internal/handler/file"
	healthHandler "github.com/podocentro/clinic-api/internal/handler/health"
	patientHandler "github.com/podocentro/clinic-api/internal/handler/patient"
	reportHandler "github.com/podocentro/clinic-api/internal/handler/report"
	servicecatalogHandler "github.com/podocentro/clinic-api/internal/handler/servicecatalog"
	userHandler "github.com/podocentro/clinic-api/internal/handler/user"
	"github.com/podocentro/clinic-api/internal/middleware"
	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/repository/postgres"
	"github.com/podocentro/clinic-api/internal/router"
	appointmentService "github.com/podocentro/clinic-api/internal/service/appointment"
	authService "github.com/podocentro/clinic-api/internal/service/auth"
	catalogService "github.com/podocentro/clinic-api/internal/service/catalog"
	clinicalService "github.com/podocentro/clinic-api/internal/service/clinical"
	fichaService "github.com/podocentro/clinic-api/internal/service/ficha"
	fileService "github.com/podocentro/clinic-api/internal/service/file"
	patientService "github.com/podocentro/clinic-api/internal/service/patient"
	reportService "github.com/podocentro/clinic-api/internal/service/report"
	userService "github.com/podocentro/clinic-api/internal/service/user"
	"github.com/podocentro/clinic-api/pkg/auth"
	"github.com/podocentro/clinic-api/pkg/logger"
	"github.com/podocentro/clinic-api/pkg/metrics"
	"github.com/podocentro/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})
	model.RegisterValidations()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("podocentro")

	appointmentRepo := postgres.NewAppointmentRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	noteRepo := postgres.NewClinicalNoteRepository(db)
	fileRepo := postgres.NewPatientFileRepository(db)
	fichaRepo := postgres.NewFichaRepository(db)
	userRepo := postgres.NewUserRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	var listCache appointmentService.ListCache
	if cfg.Redis.URL != "" {
		appointmentCache, err := cache.NewAppointmentCache(cache.Config{
			URL: cfg.Redis.URL,
			TTL: cfg.Redis.CacheTTL,
		}, m)
		if err != nil {
			log.Warn().Err(err).Msg("appointment cache disabled, continuing without Redis")
		} else {
			defer appointmentCache.Close()
			listCache = appointmentCache
		}
	}

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(0)

	appointmentSvc := appointmentService.NewService(appointmentRepo, serviceRepo, patientRepo, listCache, emailSvc, m)
	patientSvc := patientService.NewService(patientRepo)
	catalogSvc := catalogService.NewService(serviceRepo)
	clinicalSvc := clinicalService.NewService(noteRepo, patientRepo)
	fichaSvc := fichaService.NewService(fichaRepo, patientRepo)
	reportSvc := reportService.NewService(reportRepo)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher)
	userSvc := userService.NewService(userRepo, hasher)

	fileSvc, err := fileService.NewService(fileRepo, patientRepo, cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize file storage")
	}

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		healthHandler.NewHandler(db),
		authHandler.NewHandler(authSvc),
		router.Config{
			RateLimitPerSecond: rateLimitRPS(cfg),
			RateLimitBurst:     cfg.RateLimit.Burst,
			CORSConfig:         middleware.DefaultCORSConfig(),
			RequestTimeout:     cfg.Server.RequestTimeout,
			MetricsPrefix:      "podocentro_http",
		},
	)
	r.Protect(
		appointmentHandler.NewHandler(appointmentSvc),
		patientHandler.NewHandler(patientSvc),
		servicecatalogHandler.NewHandler(catalogSvc),
		clinicalHandler.NewHandler(clinicalSvc),
		fichaHandler.NewHandler(fichaSvc),
		fileHandler.NewHandler(fileSvc),
		reportHandler.NewHandler(reportSvc),
		userHandler.NewHandler(userSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
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

func rateLimitRPS(cfg *config.Config) float64 {
	if !cfg.RateLimit.Enabled {
		return 0
	}
	return cfg.RateLimit.RequestsPerSecond
}
