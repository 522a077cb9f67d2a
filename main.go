package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/campus-iot/attendance-service/internal/config"
	"github.com/campus-iot/attendance-service/internal/events"
	"github.com/campus-iot/attendance-service/internal/handlers"
	"github.com/campus-iot/attendance-service/internal/identity"
	"github.com/campus-iot/attendance-service/internal/repositories"
	"github.com/campus-iot/attendance-service/internal/repositories/memory"
	"github.com/campus-iot/attendance-service/internal/repositories/postgres"
	"github.com/campus-iot/attendance-service/internal/repositories/remote"
	"github.com/campus-iot/attendance-service/internal/services"
	"github.com/campus-iot/attendance-service/internal/utils"
	"github.com/campus-iot/attendance-service/pkg"

	validatorpkg "github.com/campus-iot/attendance-service/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize the selected store backend
	var redisClient *redis.Client
	var remoteRepo *remote.RemoteRepository
	var repoManager repositories.Manager

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if cfg.RedisURL != "" {
			redisClient, err = pkg.NewRedisClient(cfg)
			if err != nil {
				log.Printf("Warning: Failed to initialize Redis: %v", err)
			}
		}
		repoManager = postgres.NewRepositoryManager(postgres.RepositoryConfig{
			DB:          db,
			RedisClient: redisClient,
		})

	case config.BackendRemote:
		remoteManager := remote.NewManager(cfg.RemoteBaseURL, 10*time.Second)
		repoManager = remoteManager
		if err := remoteManager.Initialize(); err != nil {
			log.Fatalf("Failed to initialize remote store: %v", err)
		}
		remoteRepo = remoteManager.GetRepository().(*remote.RemoteRepository)

	default:
		repoManager = memory.NewManager(cfg.SimLatency)
	}

	if cfg.StoreBackend != config.BackendRemote {
		if err := repoManager.Initialize(); err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
	}

	// Initialize event publisher
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize kafka publisher: %v", err)
		}
	} else {
		publisher = events.NewMockEventPublisher(slogLogger)
		slogLogger.Info("No Kafka brokers configured, events stay in-process")
	}

	// Initialize identity provider
	var provider identity.Provider
	switch cfg.AuthProvider {
	case config.AuthProviderCasdoor:
		provider = identity.NewCasdoorProvider(identity.CasdoorConfig{
			Endpoint:         cfg.Casdoor.Endpoint,
			ClientID:         cfg.Casdoor.ClientID,
			ClientSecret:     cfg.Casdoor.ClientSecret,
			Certificate:      cfg.Casdoor.Cert,
			OrganizationName: cfg.Casdoor.Organization,
			ApplicationName:  cfg.Casdoor.Application,
		})
	case config.AuthProviderRemote:
		provider = identity.NewRemoteProvider(remoteRepo)
	default:
		provider, err = identity.NewStaticProvider(cfg.Allowlist)
		if err != nil {
			log.Fatalf("Failed to parse auth allowlist: %v", err)
		}
	}

	issuer := identity.NewTokenIssuer(cfg.JWTIssuer, cfg.JWTKey, cfg.JWTTTL)

	// Initialize validator
	validator := validatorpkg.New()

	// Initialize services
	serviceManager := services.NewServiceManager(
		repoManager.GetRepository(),
		publisher,
		provider,
		issuer,
		slogLogger,
		validator,
		services.ServiceManagerConfig{EntryCutoff: cfg.EntryCutoff},
	)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "backend", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
