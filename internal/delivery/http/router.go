package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/auth"
	"github.com/pitchside/scoutd/internal/delivery/http/middleware"
	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/usecase"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	PlayerUC  *usecase.PlayerUsecase
	SubmitUC  *usecase.SubmitScoutUsecase
	GetTaskUC *usecase.GetTaskUsecase
	AuthUC    *usecase.AuthUsecase
	RefreshUC *usecase.SubmitRefreshUsecase
	Tokens    *auth.TokenManager
	Logger    *zap.Logger

	RateLimitPerMin int
	BodyLimitBytes  int64

	// Optional, for health checks.
	DBPool *pgxpool.Pool
	Redis  *goredis.Client
}

// NewRouter creates and configures the Gin router with all routes and middleware.
func NewRouter(deps *RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Logger(deps.Logger))

	// Metrics endpoint (no rate limiting)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := NewHealthHandler(deps.DBPool, deps.Redis, deps.Logger)
	router.GET("/health", healthHandler.Health)

	authHandler := NewAuthHandler(deps.AuthUC, deps.Logger)
	playerHandler := NewPlayerHandler(deps.PlayerUC, deps.Logger)
	taskHandler := NewTaskHandler(deps.SubmitUC, deps.GetTaskUC, deps.Logger)
	adminHandler := NewAdminHandler(deps.RefreshUC, deps.Logger)

	requireAuth := middleware.RequireAuth(deps.Tokens)
	writeLimit := middleware.RateLimiter(deps.RateLimitPerMin)
	bodyLimit := middleware.BodySizeLimit(deps.BodyLimitBytes)

	// Auth
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", bodyLimit, writeLimit, authHandler.Register)
		authGroup.POST("/login", bodyLimit, writeLimit, authHandler.Login)
		authGroup.GET("/me", requireAuth, authHandler.Me)
	}

	// Players: reads are public, writes require a valid bearer token.
	players := router.Group("/players")
	{
		players.GET("", playerHandler.List)
		players.GET("/:id", playerHandler.Get)

		// Rate limiting runs before auth so unauthenticated floods are
		// counted against the window too.
		players.POST("", writeLimit, bodyLimit, requireAuth, playerHandler.Create)
		players.PUT("/:id", writeLimit, bodyLimit, requireAuth, playerHandler.Update)
		players.DELETE("/:id", writeLimit, requireAuth, playerHandler.Delete)
		players.POST("/:id/scout", writeLimit, requireAuth, taskHandler.SubmitScout)
	}

	// Task status polling is public.
	router.GET("/tasks/:id", taskHandler.GetStatus)

	// Admin
	admin := router.Group("/admin", writeLimit, requireAuth, middleware.RequireRole(domain.RoleAdmin))
	{
		admin.POST("/refresh-market-values", bodyLimit, adminHandler.RefreshMarketValues)
	}

	return router
}
