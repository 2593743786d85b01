package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	httpapi "eventhub-backend/internal/api/http"
	"eventhub-backend/internal/config"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/ratelimit"
	"eventhub-backend/internal/repository/postgres"
	"eventhub-backend/internal/security"
	"eventhub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EventHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Rate Limiter
	var limiter ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.RequestsPerMinute, time.Minute)
		logger.Info("Using Redis rate limiter", "addr", cfg.Redis.Addr)
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.RequestsPerMinute, time.Minute)
		logger.Info("Using in-memory rate limiter")
	}

	// Initialize Email Service
	emailSvc := service.NewSendGridEmailService(
		cfg.Email.APIKey,
		cfg.Email.From,
		cfg.Email.FromName,
		cfg.Email.BaseURL,
	)

	// Initialize Services
	accessSvc := service.NewAccessService(store.Memberships, store.Staff)
	authSvc := service.NewAuthService(store.Users, tokenManager, limiter)
	orgSvc := service.NewOrganizationService(store.Repos, store, accessSvc, limiter)
	eventSvc := service.NewEventService(store.Repos, store, accessSvc, limiter)
	teamSvc := service.NewTeamService(store.Repos, store, limiter)
	inviteSvc := service.NewInviteService(store.Repos, store, accessSvc, emailSvc, limiter, service.InviteConfig{
		DefaultTTL:             time.Duration(cfg.Invites.DefaultTTLDays) * 24 * time.Hour,
		CountRedundantLinkUses: cfg.CountRedundantLinkUses(),
	})
	requestSvc := service.NewJoinRequestService(store.Repos, store, accessSvc, emailSvc, limiter)
	noteSvc := service.NewNotificationService(store.Notifications)

	// Initialize HTTP handlers and router
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:          httpapi.NewAuthHandler(authSvc),
		Orgs:          httpapi.NewOrgHandler(orgSvc),
		Events:        httpapi.NewEventHandler(eventSvc),
		Teams:         httpapi.NewTeamHandler(teamSvc),
		Invites:       httpapi.NewInviteHandler(inviteSvc),
		JoinRequests:  httpapi.NewJoinRequestHandler(requestSvc),
		Notifications: httpapi.NewNotificationHandler(noteSvc),
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
