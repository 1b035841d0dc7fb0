// Package main is the entry point for the CivicDesk complaint server.
// It provides a REST API for citizen complaint submission and the
// lifecycle around it: role-gated status transitions, assignment and
// escalation, like/comment engagement with server-reconciled counters,
// and the senior-promotion request workflow.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/civicdesk/complaint-server/internal/config"
	"github.com/civicdesk/complaint-server/internal/database"
	"github.com/civicdesk/complaint-server/internal/handlers"
	"github.com/civicdesk/complaint-server/internal/middleware"
	"github.com/civicdesk/complaint-server/internal/repository/postgres"
	"github.com/civicdesk/complaint-server/internal/services"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("Failed to load config: %v", err)
	}

	sugar.Infow("Starting CivicDesk Complaint Server",
		"port", cfg.Port,
		"env", cfg.Environment,
		"status_skip_allowed", cfg.StatusSkipAllowed,
	)

	// Initialize database connection pool
	db, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Redis backs the engagement toggle leases
	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		sugar.Fatalf("Failed to connect to redis: %v", err)
	}
	defer rdb.Close()

	// Repositories
	complaintRepo := postgres.NewComplaintRepo(db)
	engagementRepo := postgres.NewEngagementRepo(db)
	promotionRepo := postgres.NewPromotionRepo(db)
	userRepo := postgres.NewUserRepo(db)
	auditRepo := postgres.NewAuditRepo(db)

	// Services
	auditSvc := services.NewAuditService(auditRepo, sugar)
	complaintSvc := services.NewComplaintService(complaintRepo, sugar)
	workflowSvc := services.NewWorkflowService(complaintRepo, userRepo, auditSvc,
		workflow.TransitionPolicy{AllowSkip: cfg.StatusSkipAllowed}, sugar)
	toggleGuard := services.NewRedisToggleGuard(rdb, cfg.ToggleLease)
	engagementSvc := services.NewEngagementService(engagementRepo, complaintRepo, toggleGuard, sugar)
	promotionSvc := services.NewPromotionService(promotionRepo, userRepo, complaintRepo, auditSvc, sugar)
	identitySvc := services.NewIdentityService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, sugar)

	// Handlers
	authHandler := handlers.NewAuthHandler(identitySvc, sugar)
	complaintHandler := handlers.NewComplaintHandler(complaintSvc, sugar)
	workflowHandler := handlers.NewWorkflowHandler(workflowSvc, auditSvc, sugar)
	engagementHandler := handlers.NewEngagementHandler(engagementSvc, sugar)
	promotionHandler := handlers.NewPromotionHandler(promotionSvc, sugar)
	healthHandler := handlers.NewHealthHandler(db, sugar)

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.PrivacyHeaders()) // Anonymous complaints: no IP correlation
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Token parsing (non-blocking) before rate limiting so authenticated
	// actors are limited per account, not per path
	r.Use(middleware.WithAuth(cfg.JWTSecret))
	r.Use(middleware.RateLimit(cfg.RateLimitRPM))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", healthHandler.Check)
		r.Get("/health/ready", healthHandler.Ready)

		// Identity
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Complaints and engagement
		r.Route("/complaints", func(r chi.Router) {
			r.Get("/public", complaintHandler.PublicFeed) // Open feed
			r.Get("/{id}", complaintHandler.Get)          // Visibility-resolved
			r.Get("/{id}/comments", engagementHandler.ListComments)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth())
				r.Post("/", complaintHandler.Submit)
				r.Get("/mine", complaintHandler.Mine)
				r.Post("/{id}/comments", engagementHandler.AddComment)
				r.Post("/{id}/like", engagementHandler.ToggleLike)
				r.Get("/{id}/like", engagementHandler.LikeStatus)
			})
		})

		// Staff surfaces
		r.Route("/staff", func(r chi.Router) {
			r.With(middleware.RequireRoles(
				workflow.RoleEmployee, workflow.RoleSeniorEmployee, workflow.RoleAdmin,
			)).Get("/queue", workflowHandler.Queue)
			r.With(middleware.RequireRoles(workflow.RoleEmployee)).
				Post("/promotions", promotionHandler.Submit)
		})

		// Admin surfaces
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRoles(workflow.RoleAdmin))
			r.Get("/stats", complaintHandler.Stats)
			r.Get("/audit", workflowHandler.RecentAudit)
			r.Put("/complaints/{id}/status", workflowHandler.TransitionStatus)
			r.Put("/complaints/{id}/assign", workflowHandler.AssignEmployee)
			r.Post("/complaints/{id}/escalate", workflowHandler.Escalate)
			r.Route("/promotions", func(r chi.Router) {
				r.Get("/", promotionHandler.List)
				r.Post("/{id}/approve", promotionHandler.Approve)
				r.Post("/{id}/reject", promotionHandler.Reject)
			})
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sugar.Infof("Server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	sugar.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		sugar.Fatalf("Forced shutdown: %v", err)
	}

	sugar.Info("Server stopped")
}
