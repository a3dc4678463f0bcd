package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/cache"
	"github.com/stemsi/placement-backend/internal/config"
	"github.com/stemsi/placement-backend/internal/database"
	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/handler"
	"github.com/stemsi/placement-backend/internal/logger"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/repository"
	"github.com/stemsi/placement-backend/internal/router"
	"github.com/stemsi/placement-backend/internal/service"
	"github.com/stemsi/placement-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	srvLog := logger.Component(log, "server")
	srvLog.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Placement Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.AutoMigrate {
		if err := database.MigrateUp(cfg.DatabaseURL); err != nil {
			srvLog.Fatal().Err(err).Msg("Failed to apply migrations")
		}
		srvLog.Info().Msg("Migrations applied")
	}

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		srvLog.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		srvLog.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Metrics ───────────────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// ─── Initialize Repositories ───────────────────────────────────────
	store := docstore.NewPostgres(pool)
	instituteRepo := repository.NewInstituteRepository(store)
	adminRepo := repository.NewAdminRepository(store)
	recruiterRepo := repository.NewRecruiterRepository(store)
	studentRepo := repository.NewStudentRepository(store)
	jobRepo := repository.NewJobRepository(store)
	applicationRepo := repository.NewApplicationRepository(store)
	requestRepo := repository.NewVerificationRequestRepository(store)
	settingRepo := repository.NewSettingRepository(store)

	// ─── Initialize Services ──────────────────────────────────────────
	paging := service.Paging{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}
	sessions := cache.NewSessionStore(rdb)

	instituteService := service.NewInstituteService(instituteRepo, cache.NewInstituteCache(rdb, cfg.InstituteCacheTTL), m, log)
	registrationService := service.NewRegistrationService(service.RegistrationDeps{
		Institutes: instituteService,
		Admins:     adminRepo,
		Recruiters: recruiterRepo,
		Students:   studentRepo,
		Requests:   requestRepo,
	}, cfg.BcryptCost, m, log)
	authService := service.NewAuthService(cfg, sessions, adminRepo, recruiterRepo, studentRepo, m, log)
	accountService := service.NewAccountService(adminRepo, recruiterRepo, studentRepo)
	studentService := service.NewStudentService(studentRepo, requestRepo, paging, m, log)
	recruiterService := service.NewRecruiterService(recruiterRepo, paging, m, log)
	jobService := service.NewJobService(jobRepo, instituteService, paging, m, log)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, paging, m, log)
	settingService := service.NewSettingService(settingRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:          handler.NewAuthHandler(registrationService, authService, accountService),
		Institute:     handler.NewInstituteHandler(instituteService),
		Admin:         handler.NewAdminHandler(studentService, recruiterService),
		Setting:       handler.NewSettingHandler(settingService),
		Recruiter:     handler.NewRecruiterHandler(jobService, applicationService),
		StudentPortal: handler.NewStudentPortalHandler(jobService, applicationService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(router.Deps{
		Auth:     authService,
		Limiter:  redis_rate.NewLimiter(rdb),
		Gatherer: registry,
		Log:      log,
	}, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		srvLog.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srvLog.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	srvLog.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		srvLog.Error().Err(err).Msg("HTTP server shutdown error")
	}

	srvLog.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
