package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/config"
	"github.com/pitchside/scoutd/internal/delivery/amqp"
	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/pool"
	"github.com/pitchside/scoutd/internal/reportgen"
	"github.com/pitchside/scoutd/internal/repository/postgres"
	redisrepo "github.com/pitchside/scoutd/internal/repository/redis"
	"github.com/pitchside/scoutd/internal/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting scoutd worker")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Connect to PostgreSQL
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping PostgreSQL", zap.Error(err))
	}
	logger.Info("Connected to PostgreSQL")

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

	// Initialize repositories and stores
	playerRepo := postgres.NewPlayerRepository(dbPool)
	taskStore := redisrepo.NewTaskStatusStore(rdb)
	guardStore := redisrepo.NewGuardStore(rdb)

	// Pick the report generator. Without an API key the worker still
	// produces reports from the local template.
	var gen reportgen.Generator
	if cfg.Generator.OpenAIAPIKey != "" {
		gen, err = reportgen.NewOpenAIGenerator(cfg.Generator.OpenAIAPIKey, cfg.Generator.Model)
		if err != nil {
			logger.Fatal("Failed to initialize OpenAI generator", zap.Error(err))
		}
		logger.Info("Using OpenAI report generator", zap.String("model", cfg.Generator.Model))
	} else {
		gen = reportgen.NewTemplateGenerator()
		logger.Warn("OPENAI_API_KEY not set, using template report generator")
	}

	// Initialize use cases
	scoutUC := usecase.NewGenerateReportUsecase(playerRepo, taskStore, guardStore, gen, cfg.Tasks.StatusTTL, logger)
	refreshUC := usecase.NewRefreshMarketUsecase(playerRepo, taskStore, guardStore, cfg.Tasks.StatusTTL, logger)

	// Task channel between consumer and pool
	tasks := make(chan *domain.TaskMessage, cfg.Worker.PoolSize*2)

	// Initialize RabbitMQ consumer
	consumer, err := amqp.NewConsumer(cfg.RabbitMQ.URL, tasks, logger)
	if err != nil {
		logger.Fatal("Failed to initialize RabbitMQ consumer", zap.Error(err))
	}
	defer consumer.Close()
	logger.Info("Connected to RabbitMQ")

	// Start worker pool
	workerPool := pool.NewWorkerPool(cfg.Worker.PoolSize, tasks, scoutUC, refreshUC, logger)
	workerPool.Start(ctx)

	// Start consumer in a goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error("Consumer stopped", zap.Error(err))
			cancel()
		}
	}()

	// Expose Prometheus metrics
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Worker.MetricsPort),
		Handler: promhttp.Handler(),
	}
	go func() {
		logger.Info("Metrics server listening", zap.Int("port", cfg.Worker.MetricsPort))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")

	// The task channel stays open: the consumer goroutine may still hold an
	// in-flight delivery, and workers exit via the cancelled context.
	cancel()
	consumer.Close()
	workerPool.Stop()

	_ = metricsSrv.Close()

	logger.Info("Worker stopped")
}
