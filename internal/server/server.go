package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gleaming-gallery/internal/config"
	"gleaming-gallery/internal/database"
	custommiddleware "gleaming-gallery/internal/middleware"
	"gleaming-gallery/internal/payment"
	"gleaming-gallery/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies are the resources the server routes to and releases on Close.
// Notifications is optional; without it the notification route is not
// mounted.
type Dependencies struct {
	Database      database.Service
	Redis         *redis.Client
	Store         transport.StoreRunner
	Sessions      *payment.Sessions
	Notifications transport.NotificationFeed
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	deps   Dependencies
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Dependencies) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	server := &Server{
		config: cfg,
		logger: logger,
		deps:   deps,
	}

	router.Get("/health", server.health)

	rateLimit := custommiddleware.RateLimitMiddleware(deps.Redis, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.Requests,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         cfg.Session.KeyPrefix + ":ratelimit",
	}, logger)
	webhookAuth := custommiddleware.WebhookSignatureAuth(deps.Sessions, logger)

	paymentHandler := transport.NewPaymentHandler(deps.Store, deps.Sessions, logger)
	paymentHandler.RegisterRoutes(router, webhookAuth, rateLimit)

	if deps.Notifications != nil {
		transport.NewNotificationHandler(deps.Notifications).RegisterRoutes(router, rateLimit)
	}

	server.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}

// health reports the database and Redis status. Any dependency that is
// down turns the response into a 503.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	report := map[string]interface{}{"status": "ok"}

	if s.deps.Database != nil {
		db := s.deps.Database.Health(r.Context())
		report["database"] = db
		if db["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
	}

	if s.deps.Redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()

		if err := s.deps.Redis.Ping(ctx).Err(); err != nil {
			report["redis"] = map[string]string{"status": "down", "error": err.Error()}
			status = http.StatusServiceUnavailable
		} else {
			report["redis"] = map[string]string{"status": "up"}
		}
	}

	if status != http.StatusOK {
		report["status"] = "degraded"
		s.logger.Warn("Health check degraded", zap.Any("report", report))
	}

	custommiddleware.RespondWithJSON(w, status, report)
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.deps.Redis != nil {
		if err := s.deps.Redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.deps.Database != nil {
		if err := s.deps.Database.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	_ = s.logger.Sync()
	return nil
}
