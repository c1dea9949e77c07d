package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/usecase"
)

// AdminHandler exposes admin-only maintenance operations.
type AdminHandler struct {
	refreshUC *usecase.SubmitRefreshUsecase
	logger    *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(refreshUC *usecase.SubmitRefreshUsecase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{refreshUC: refreshUC, logger: logger}
}

type refreshRequest struct {
	// PlayerIDs limits the refresh; empty means all players.
	PlayerIDs []int64 `json:"player_ids"`
}

// RefreshMarketValues handles POST /admin/refresh-market-values
func (h *AdminHandler) RefreshMarketValues(c *gin.Context) {
	var req refreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	resp, err := h.refreshUC.Execute(c.Request.Context(), req.PlayerIDs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
