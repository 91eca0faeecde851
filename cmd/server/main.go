package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"wastecollect/internal/app"
	"wastecollect/internal/config"
	"wastecollect/internal/handler"
	"wastecollect/internal/momo"
	internalRedis "wastecollect/internal/redis"
	"wastecollect/internal/repository/postgres"
	"wastecollect/internal/service"
	"wastecollect/internal/validation"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with optional New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with optional New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	requestRepo := postgres.NewRequestRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	settlementStore := postgres.NewSettlementStore(db)

	// Initialize the payment gateway client.
	gateway := momo.NewClient(cfg.Momo, nil)

	// Initialize services.
	var mailer service.Mailer = service.LogMailer{}
	if cfg.SMTP.Enabled {
		mailer = service.NewSMTPMailer(cfg.SMTP)
	}
	notificationService := service.NewNotificationService(notificationRepo, cacheStore, mailer, cfg.Payment.AdminEmail)
	settlementService := service.NewSettlementService(settlementStore, lockStore, notificationService, cfg.Payment.DedupWindow)
	paymentService := service.NewPaymentService(gateway)
	statusPoller := service.NewStatusPoller(gateway, settlementService, cfg.Payment.PollInterval, cfg.Payment.PollMaxAttempts)
	cartService := service.NewCartService(cartRepo, requestRepo)

	// Initialize handlers.
	validate := validation.New()
	paymentHandler := handler.NewPaymentHandler(paymentService, statusPoller, validate)
	requestHandler := handler.NewRequestHandler(requestRepo, paymentRepo, validate)
	cartHandler := handler.NewCartHandler(cartService, validate)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		PaymentHandler:      paymentHandler,
		RequestHandler:      requestHandler,
		CartHandler:         cartHandler,
		NotificationHandler: notificationHandler,
		RedisClient:         redisClient,
		NewRelicApp:         nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
