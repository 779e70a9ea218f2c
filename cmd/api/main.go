package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gleaming-gallery/internal/auth"
	"gleaming-gallery/internal/config"
	"gleaming-gallery/internal/database"
	"gleaming-gallery/internal/logger"
	"gleaming-gallery/internal/notify"
	"gleaming-gallery/internal/payment"
	"gleaming-gallery/internal/repository"
	"gleaming-gallery/internal/server"
	"gleaming-gallery/internal/service"
	"gleaming-gallery/internal/session"

	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, stopStore context.CancelFunc, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// In-flight requests are done; stop the store goroutine.
	stopStore()

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Gleaming Gallery store",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	ctx := context.Background()

	// Initialize database
	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	db := dbService.DB()

	// Check database health
	health := dbService.Health(ctx)
	log.Info("Database health check", zap.Any("health", health))

	// Run migrations
	if err := database.RunMigrations(ctx, db, cfg.Server.MigrationsDir, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	catalog := repository.NewCatalogSource(
		repository.NewCategoryRepository(db),
		repository.NewProductRepository(db),
		repository.NewReviewRepository(db),
	)
	userRepo := repository.NewUserRepository(db)

	// Initialize session persistence
	redisClient, err := session.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	sessionStore := session.NewRedisStore(redisClient, session.Config{
		KeyPrefix: cfg.Session.KeyPrefix,
		SessionID: cfg.Session.ID,
		AdminTTL:  cfg.Session.AdminTTL,
	})

	admins, err := auth.NewAdminVerifier(cfg.Admin.Email, cfg.Admin.Password, 0)
	if err != nil {
		log.Fatal("Failed to configure admin credentials", zap.Error(err))
	}

	notifications := notify.NewRecorder(100)

	// Initialize the store
	store := service.NewCommerceStore(service.Dependencies{
		Catalog:  catalog,
		Users:    userRepo,
		Admins:   admins,
		Session:  sessionStore,
		Notifier: notify.Fanout{notify.NewLogNotifier(log), notifications},
	}, log.Named("commerce"))
	if err := store.Init(ctx); err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}

	storeCtx, stopStore := context.WithCancel(ctx)
	actor := service.NewActor(store)
	go actor.Run(storeCtx)

	sessions, err := payment.NewSessions(payment.Config{
		Secret:   cfg.Payment.WebhookSecret,
		Currency: cfg.Payment.Currency,
		TTL:      cfg.Payment.SessionTTL,
		AppURL:   cfg.Payment.AppURL,
	})
	if err != nil {
		log.Fatal("Failed to configure payment sessions", zap.Error(err))
	}

	// Create server
	srv := server.NewServer(cfg, log, server.Dependencies{
		Database:      dbService,
		Redis:         redisClient,
		Store:         actor,
		Sessions:      sessions,
		Notifications: notifications,
	})

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, stopStore, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
