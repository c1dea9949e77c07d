package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/usecase"
)

// TaskHandler handles scouting-task submission and status polling.
type TaskHandler struct {
	submitUC  *usecase.SubmitScoutUsecase
	getTaskUC *usecase.GetTaskUsecase
	logger    *zap.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(submitUC *usecase.SubmitScoutUsecase, getTaskUC *usecase.GetTaskUsecase, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{submitUC: submitUC, getTaskUC: getTaskUC, logger: logger}
}

// SubmitScout handles POST /players/:id/scout
func (h *TaskHandler) SubmitScout(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	resp, err := h.submitUC.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// GetStatus handles GET /tasks/:id. Task ids are opaque tokens, so any id
// without a live status record is a plain 404.
func (h *TaskHandler) GetStatus(c *gin.Context) {
	rec, err := h.getTaskUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task_id": rec.TaskID,
		"status":  rec.Status,
		"result":  rec.Result,
		"error":   rec.Error,
	})
}
