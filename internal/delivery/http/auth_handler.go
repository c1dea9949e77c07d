package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/delivery/http/middleware"
	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/usecase"
)

// AuthHandler handles registration, login and current-user lookup.
type AuthHandler struct {
	authUC *usecase.AuthUsecase
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUC *usecase.AuthUsecase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authUC: authUC, logger: logger}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in domain.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, err := h.authUC.Register(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in domain.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, err := h.authUC.Login(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	username := c.GetString(middleware.CtxUsername)
	u, err := h.authUC.GetByUsername(c.Request.Context(), username)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
