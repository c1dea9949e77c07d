package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/repository"
)

// GetTaskUsecase answers status polls. Only the status cache is consulted:
// an expired record reads as not found even if the task ran to completion.
type GetTaskUsecase struct {
	tasks  repository.TaskStatusStore
	logger *zap.Logger
}

// NewGetTaskUsecase creates a new GetTaskUsecase.
func NewGetTaskUsecase(tasks repository.TaskStatusStore, logger *zap.Logger) *GetTaskUsecase {
	return &GetTaskUsecase{tasks: tasks, logger: logger}
}

// Execute retrieves a task status record by its id.
func (uc *GetTaskUsecase) Execute(ctx context.Context, taskID string) (*domain.TaskRecord, error) {
	rec, err := uc.tasks.Get(ctx, taskID)
	if err != nil {
		uc.logger.Debug("Task not found", zap.String("task_id", taskID), zap.Error(err))
		return nil, err
	}
	return rec, nil
}
