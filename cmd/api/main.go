package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openshop-kr/journey-api/docs"
	"github.com/openshop-kr/journey-api/internal/auth"
	"github.com/openshop-kr/journey-api/internal/config"
	"github.com/openshop-kr/journey-api/internal/database"
	"github.com/openshop-kr/journey-api/internal/http/handler"
	"github.com/openshop-kr/journey-api/internal/http/middleware"
	"github.com/openshop-kr/journey-api/internal/http/router"
	"github.com/openshop-kr/journey-api/internal/jobs"
	"github.com/openshop-kr/journey-api/internal/logger"
	"github.com/openshop-kr/journey-api/internal/realtime"
	"github.com/openshop-kr/journey-api/internal/repository"
	"github.com/openshop-kr/journey-api/internal/service"
	"github.com/openshop-kr/journey-api/internal/storage"
	"go.uber.org/zap"
)

// @title Journey API
// @version 1.0
// @description Startup journey API: PM stage machine, project chat, cost checklist and payment requests

// @contact.name API Support
// @contact.email dev@openshop.kr

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for payment processor callbacks
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "journey-api-staging.openshop.kr"
	case "production":
		docs.SwaggerInfo.Host = "api.openshop.kr"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In development secrets come from the environment, elsewhere from Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	projectRepo := repository.NewProjectRepository(db)
	pmRepo := repository.NewProjectManagerRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	paymentRepo := repository.NewPaymentRequestRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	assignmentRepo := repository.NewPartnerAssignmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Side effects: persisted notifications plus the live project stream
	notificationService := service.NewNotificationService(notificationRepo, logger.Component(log, "notifications"))

	var hub *realtime.Hub
	var publisher service.EventPublisher
	if cfg.Realtime.Enabled {
		hub = realtime.NewHub(realtime.Options{
			WriteTimeout: cfg.Realtime.WriteTimeoutDuration(),
			PingInterval: cfg.Realtime.PingIntervalDuration(),
			SendBuffer:   cfg.Realtime.SendBuffer,
			CheckOrigin:  middleware.OriginChecker(&cfg.CORS, cfg.App.Environment),
		}, logger.Component(log, "realtime"))
		publisher = hub
	} else {
		log.Info("Realtime stream disabled")
	}

	dispatcher := service.NewDispatcher(notificationService, publisher, log)

	// Initialize services
	maxUploadBytes := cfg.Storage.MaxUploadSizeMB * 1024 * 1024
	lifecycleLog := logger.Component(log, "lifecycle")
	projectService := service.NewProjectService(projectRepo, pmRepo, dispatcher, db, lifecycleLog)
	stageService := service.NewStageService(projectRepo, dispatcher, db, lifecycleLog)
	messageService := service.NewMessageService(projectRepo, messageRepo, fileStorage, maxUploadBytes, dispatcher, db, lifecycleLog)
	paymentService := service.NewPaymentService(projectRepo, paymentRepo, dispatcher, db, logger.Component(log, "payments"), cfg.Payments.OverestimateRatio)
	partnerService := service.NewPartnerService(partnerRepo, assignmentRepo, projectRepo, dispatcher, db, lifecycleLog)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	var fileHandler *handler.FileHandler
	if cfg.Storage.Mode == "local" {
		fileHandler = handler.NewFileHandler(fileStorage, log)
	}
	var streamHandler *handler.StreamHandler
	if hub != nil {
		streamHandler = handler.NewStreamHandler(projectService, hub, log)
	}

	rt := router.NewRouter(
		cfg,
		log,
		authMiddleware,
		rateLimiter,
		handler.NewHealthHandler(db, log),
		handler.NewCatalogHandler(log),
		handler.NewProjectHandler(projectService, log),
		handler.NewStageHandler(stageService, log),
		handler.NewChecklistHandler(projectService, log),
		handler.NewMessageHandler(messageService, maxUploadBytes, log),
		fileHandler,
		handler.NewPartnerHandler(partnerService, log),
		handler.NewPaymentHandler(paymentService, log),
		handler.NewNotificationHandler(notificationService, log),
		streamHandler,
	)

	// Background jobs
	jobsLog := logger.Component(log, "jobs")
	scheduler := jobs.NewScheduler(jobsLog)
	if err := jobs.RegisterReminderJob(
		scheduler,
		paymentService,
		&cfg.Reminders,
		jobsLog,
		2*time.Minute,
	); err != nil {
		log.Error("Failed to register payment reminder job", zap.Error(err))
	}
	if len(scheduler.JobNames()) > 0 {
		scheduler.Start()
		log.Info("Scheduler started",
			zap.Strings("jobs", scheduler.JobNames()),
			zap.String("reminder_schedule", cfg.Reminders.Schedule),
		)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := scheduler.Stop(ctx); err != nil {
			log.Warn("Scheduler stop timed out", zap.Error(err))
		} else {
			log.Info("Scheduler stopped")
		}

		// Websocket connections are hijacked and not covered by Shutdown
		if hub != nil {
			hub.Close()
		}

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("Error closing database connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
