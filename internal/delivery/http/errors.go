package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/delivery/http/middleware"
	"github.com/pitchside/scoutd/internal/domain"
)

// respondError maps a domain error to its HTTP representation. Unknown
// errors are logged and surfaced as a generic 500 without internals.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request payload",
				"fields":  verr.Fields,
			},
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		notFound(c, "PLAYER_NOT_FOUND", err)
	case errors.Is(err, domain.ErrTaskNotFound):
		notFound(c, "TASK_NOT_FOUND", err)
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{
			"error": gin.H{"code": "ALREADY_REGISTERED", "message": err.Error()},
		})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"code": "INVALID_CREDENTIALS", "message": err.Error()},
		})
	case errors.Is(err, domain.ErrInactiveUser):
		c.JSON(http.StatusForbidden, gin.H{
			"error": gin.H{"code": "INACTIVE_USER", "message": err.Error()},
		})
	case errors.Is(err, domain.ErrPublishFailed):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": gin.H{"code": "QUEUE_UNAVAILABLE", "message": "Service temporarily unavailable"},
		})
	default:
		logger.Error("Request failed",
			zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.RequestIDFrom(c)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "INTERNAL_SERVER_ERROR", "message": "Internal server error"},
		})
	}
}

func notFound(c *gin.Context, code string, err error) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": gin.H{"code": code, "message": err.Error()},
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{"code": "BAD_REQUEST", "message": message},
	})
}
