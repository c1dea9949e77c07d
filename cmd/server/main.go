package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/auth"
	"github.com/pitchside/scoutd/internal/config"
	handler "github.com/pitchside/scoutd/internal/delivery/http"
	"github.com/pitchside/scoutd/internal/publisher"
	"github.com/pitchside/scoutd/internal/repository/postgres"
	redisrepo "github.com/pitchside/scoutd/internal/repository/redis"
	"github.com/pitchside/scoutd/internal/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting scoutd API server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Connect to PostgreSQL
	ctx := context.Background()
	dbPool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping PostgreSQL", zap.Error(err))
	}
	logger.Info("Connected to PostgreSQL")

	if err := postgres.EnsureSchema(ctx, dbPool); err != nil {
		logger.Fatal("Failed to ensure schema", zap.Error(err))
	}

	// Connect to Redis
	redisOpts, err := goredis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Fatal("Failed to parse Redis URL", zap.Error(err))
	}
	rdb := goredis.NewClient(redisOpts)
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to ping Redis", zap.Error(err))
	}
	logger.Info("Connected to Redis")

	// Initialize RabbitMQ publisher
	pub, err := publisher.NewRabbitMQPublisher(cfg.RabbitMQ.URL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize RabbitMQ publisher", zap.Error(err))
	}
	defer pub.Close()
	logger.Info("Connected to RabbitMQ")

	// Initialize repositories and stores
	playerRepo := postgres.NewPlayerRepository(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	taskStore := redisrepo.NewTaskStatusStore(rdb)

	// Seed the admin credential into empty storage.
	if err := usecase.EnsureAdmin(ctx, userRepo, cfg.Auth.AdminUsername, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, logger); err != nil {
		logger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Initialize use cases
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	playerUC := usecase.NewPlayerUsecase(playerRepo, logger)
	submitUC := usecase.NewSubmitScoutUsecase(playerRepo, taskStore, pub, cfg.Tasks.StatusTTL, logger)
	getTaskUC := usecase.NewGetTaskUsecase(taskStore, logger)
	authUC := usecase.NewAuthUsecase(userRepo, tokens, logger)
	refreshUC := usecase.NewSubmitRefreshUsecase(taskStore, pub, cfg.Tasks.StatusTTL, logger)

	// Initialize router
	router := handler.NewRouter(&handler.RouterDeps{
		PlayerUC:        playerUC,
		SubmitUC:        submitUC,
		GetTaskUC:       getTaskUC,
		AuthUC:          authUC,
		RefreshUC:       refreshUC,
		Tokens:          tokens,
		Logger:          logger,
		RateLimitPerMin: cfg.Server.RateLimit,
		BodyLimitBytes:  cfg.Server.BodyLimit,
		DBPool:          dbPool,
		Redis:           rdb,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("API server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
