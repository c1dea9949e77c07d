package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/repository"
	"github.com/pitchside/scoutd/internal/usecase"
)

// PlayerHandler handles HTTP requests for player CRUD.
type PlayerHandler struct {
	playerUC *usecase.PlayerUsecase
	logger   *zap.Logger
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(playerUC *usecase.PlayerUsecase, logger *zap.Logger) *PlayerHandler {
	return &PlayerHandler{playerUC: playerUC, logger: logger}
}

// listQuery binds the player listing query string.
type listQuery struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=12"`
	Name     string `form:"name"`
	Country  string `form:"country"`
	Team     string `form:"team"`
	League   string `form:"league"`
	Status   string `form:"status"`
	MinValue *int64 `form:"min_value"`
	MaxValue *int64 `form:"max_value"`
}

// List handles GET /players
func (h *PlayerHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if q.Status != "" && !domain.PlayingStatus(q.Status).IsValid() {
		badRequest(c, "Invalid status filter: must be one of active, retired, free_agent")
		return
	}

	filter := repository.PlayerFilter{
		Name:     q.Name,
		Country:  q.Country,
		Team:     q.Team,
		League:   q.League,
		Status:   domain.PlayingStatus(q.Status),
		MinValue: q.MinValue,
		MaxValue: q.MaxValue,
	}

	page, err := h.playerUC.List(c.Request.Context(), filter, q.Page, q.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Create handles POST /players
func (h *PlayerHandler) Create(c *gin.Context) {
	var in domain.PlayerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	p, err := h.playerUC.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Get handles GET /players/:id
func (h *PlayerHandler) Get(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	p, err := h.playerUC.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update handles PUT /players/:id
func (h *PlayerHandler) Update(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	var in domain.PlayerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	p, err := h.playerUC.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /players/:id
func (h *PlayerHandler) Delete(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	if err := h.playerUC.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// playerID parses the :id path parameter, responding 400 on garbage.
func playerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		badRequest(c, "Invalid player ID")
		return 0, false
	}
	return id, true
}
