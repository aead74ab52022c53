package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/accounts-service/internal/config"
	"github.com/SAP-F-2025/accounts-service/internal/events"
	"github.com/SAP-F-2025/accounts-service/internal/repositories/casdoor"
	"github.com/SAP-F-2025/accounts-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/accounts-service/internal/services"
	"github.com/SAP-F-2025/accounts-service/internal/validator"
	"github.com/SAP-F-2025/accounts-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Failed to initialize Redis, running without cache", "error", err)
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Initialize event publisher
	var publisher events.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err = events.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			log.Fatalf("Failed to initialize event publisher: %v", err)
		}
	} else {
		logger.Warn("No Kafka brokers configured, events are recorded in memory only")
		publisher = events.NewMockEventPublisher(logger)
	}

	// Initialize services
	serviceManager := services.NewDefaultServiceManager(repoManager.GetRepository(), logger, validator.New(), publisher)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Sync accounts from the identity directory when configured
	casdoorConfig := casdoor.CasdoorConfig{
		Endpoint:         cfg.Casdoor.Endpoint,
		ClientID:         cfg.Casdoor.ClientID,
		ClientSecret:     cfg.Casdoor.ClientSecret,
		Certificate:      cfg.Casdoor.Cert,
		OrganizationName: cfg.Casdoor.Organization,
		ApplicationName:  cfg.Casdoor.Application,
	}
	if casdoorConfig.Enabled() {
		importCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		summary, err := serviceManager.User().ImportFromDirectory(importCtx, casdoor.NewDirectory(casdoorConfig))
		cancel()
		if err != nil {
			logger.Error("Directory import failed", "error", err)
		} else {
			logger.Info("Directory import completed",
				"fetched", summary.Fetched, "created", summary.Created, "skipped", summary.Skipped)
		}
	}

	logger.Info("Accounts service started", "environment", cfg.Environment)

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := serviceManager.Shutdown(shutdownCtx); err != nil {
		logger.Error("Service shutdown failed", "error", err)
	}
	if err := repoManager.Shutdown(shutdownCtx); err != nil {
		logger.Error("Repository shutdown failed", "error", err)
	}

	logger.Info("Accounts service stopped")
}
