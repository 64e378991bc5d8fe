package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openshop-kr/journey-api/internal/auth"
	"github.com/openshop-kr/journey-api/internal/config"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/openshop-kr/journey-api/internal/http/handler"
	"github.com/openshop-kr/journey-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/openshop-kr/journey-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	healthHandler       *handler.HealthHandler
	catalogHandler      *handler.CatalogHandler
	projectHandler      *handler.ProjectHandler
	stageHandler        *handler.StageHandler
	checklistHandler    *handler.ChecklistHandler
	messageHandler      *handler.MessageHandler
	fileHandler         *handler.FileHandler
	partnerHandler      *handler.PartnerHandler
	paymentHandler      *handler.PaymentHandler
	notificationHandler *handler.NotificationHandler
	streamHandler       *handler.StreamHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	healthHandler *handler.HealthHandler,
	catalogHandler *handler.CatalogHandler,
	projectHandler *handler.ProjectHandler,
	stageHandler *handler.StageHandler,
	checklistHandler *handler.ChecklistHandler,
	messageHandler *handler.MessageHandler,
	fileHandler *handler.FileHandler,
	partnerHandler *handler.PartnerHandler,
	paymentHandler *handler.PaymentHandler,
	notificationHandler *handler.NotificationHandler,
	streamHandler *handler.StreamHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		healthHandler:       healthHandler,
		catalogHandler:      catalogHandler,
		projectHandler:      projectHandler,
		stageHandler:        stageHandler,
		checklistHandler:    checklistHandler,
		messageHandler:      messageHandler,
		fileHandler:         fileHandler,
		partnerHandler:      partnerHandler,
		paymentHandler:      paymentHandler,
		notificationHandler: notificationHandler,
		streamHandler:       streamHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(rt.cfg.App.Environment))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))

	// Health checks (liveness and readiness probes)
	r.Get("/health", rt.healthHandler.Live)
	r.Get("/health/db", rt.healthHandler.Database)
	r.Get("/health/ready", rt.healthHandler.Ready)

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// Locally stored chat images; blob storage serves its own URLs
	if rt.fileHandler != nil {
		r.With(rt.rateLimiter.Limit).Get("/files/*", rt.fileHandler.Download)
	}

	operators := rt.authMiddleware.RequireRole(domain.ActorRolePM, domain.ActorRoleAdmin)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Payment processor callbacks (service API key)
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.RequireAPIKey)
			r.Use(rt.rateLimiter.Limit)

			r.Post("/payments/callbacks/confirm", rt.paymentHandler.Confirm)
			r.Post("/payments/callbacks/fail", rt.paymentHandler.Fail)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)

			// Catalog and estimates
			r.Get("/catalog/{category}", rt.catalogHandler.Get)
			r.Post("/estimates", rt.catalogHandler.Estimate)

			// Projects
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.With(rt.authMiddleware.RequireRole(domain.ActorRoleConsumer)).Post("/", rt.projectHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", rt.projectHandler.GetByID)
					r.Get("/estimate", rt.projectHandler.Estimate)
					r.Get("/requirements", rt.stageHandler.Requirements)
					if rt.streamHandler != nil {
						r.Get("/stream", rt.streamHandler.Stream)
					}

					r.With(rt.authMiddleware.RequireRole(domain.ActorRoleAdmin)).Post("/assign-pm", rt.projectHandler.AssignPM)
					r.With(rt.authMiddleware.RequireRole(domain.ActorRoleConsumer, domain.ActorRoleAdmin)).Post("/cancel", rt.projectHandler.Cancel)
					r.With(operators).Put("/notes", rt.projectHandler.UpdateNotes)

					// Stage machine
					r.With(operators).Post("/advance", rt.stageHandler.Advance)
					r.With(operators).Post("/stage", rt.stageHandler.SetStage)

					// Checklist
					r.Put("/checklist/{itemId}", rt.checklistHandler.UpdateItem)
					r.With(operators).Post("/checklist", rt.checklistHandler.AddItem)
					r.With(operators).Delete("/checklist/{itemId}", rt.checklistHandler.DeleteItem)

					// Messages
					r.Get("/messages", rt.messageHandler.List)
					r.Post("/messages", rt.messageHandler.Send)
					r.With(rt.rateLimiter.Uploads).Post("/attachments", rt.messageHandler.Upload)
					r.With(operators).Post("/messages/cost-report", rt.messageHandler.SendCostReport)
					r.With(operators).Post("/messages/happy-call", rt.messageHandler.SendHappyCall)

					// Partners
					r.Get("/partners", rt.partnerHandler.ListAssignments)
					r.With(operators).Post("/partners", rt.partnerHandler.Assign)

					// Payments
					r.Get("/payments", rt.paymentHandler.List)
					r.With(operators).Post("/payments", rt.paymentHandler.Issue)
					r.With(operators).Post("/payments/reissue", rt.paymentHandler.Reissue)
				})
			})

			r.With(operators).Post("/messages/{id}/toggle-read", rt.messageHandler.ToggleRead)
			r.With(operators).Post("/payments/{id}/cancel", rt.paymentHandler.Cancel)

			// Partners
			r.Get("/partners", rt.partnerHandler.List)
			r.With(operators).Put("/partner-assignments/{id}/status", rt.partnerHandler.UpdateStatus)

			// Notifications
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", rt.notificationHandler.List)
				r.Get("/count", rt.notificationHandler.GetUnreadCount)
				r.Put("/read-all", rt.notificationHandler.MarkAllAsRead)
				r.Put("/{id}/read", rt.notificationHandler.MarkAsRead)
			})
		})
	})

	return r
}
