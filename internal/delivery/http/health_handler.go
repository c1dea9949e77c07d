package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HealthHandler reports liveness of the API and its dependencies.
type HealthHandler struct {
	pool   *pgxpool.Pool
	redis  *goredis.Client
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. Nil dependencies are
// reported as skipped, which keeps the handler usable in tests.
func NewHealthHandler(pool *pgxpool.Pool, redis *goredis.Client, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{pool: pool, redis: redis, logger: logger}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	services := gin.H{}
	healthy := true

	if h.pool != nil {
		if err := h.pool.Ping(ctx); err != nil {
			h.logger.Warn("Postgres health check failed", zap.Error(err))
			services["postgres"] = "unreachable"
			healthy = false
		} else {
			services["postgres"] = "ok"
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.logger.Warn("Redis health check failed", zap.Error(err))
			services["redis"] = "unreachable"
			healthy = false
		} else {
			services["redis"] = "ok"
		}
	}

	status := http.StatusOK
	body := gin.H{"status": "ok", "services": services}
	if !healthy {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
