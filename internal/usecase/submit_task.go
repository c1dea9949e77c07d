package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/publisher"
	"github.com/pitchside/scoutd/internal/repository"
)

// SubmitScoutUsecase accepts a scouting request, records a pending status
// and hands the work to the queue. It returns immediately: generation
// latency never reaches this path.
type SubmitScoutUsecase struct {
	players   repository.PlayerRepository
	tasks     repository.TaskStatusStore
	publisher publisher.Publisher
	statusTTL time.Duration
	logger    *zap.Logger
}

// NewSubmitScoutUsecase creates a new SubmitScoutUsecase.
func NewSubmitScoutUsecase(
	players repository.PlayerRepository,
	tasks repository.TaskStatusStore,
	pub publisher.Publisher,
	statusTTL time.Duration,
	logger *zap.Logger,
) *SubmitScoutUsecase {
	return &SubmitScoutUsecase{
		players:   players,
		tasks:     tasks,
		publisher: pub,
		statusTTL: statusTTL,
		logger:    logger,
	}
}

// Execute validates player existence, writes an initial pending record and
// publishes the task. A missing player fails synchronously without creating
// a status record.
func (uc *SubmitScoutUsecase) Execute(ctx context.Context, playerID int64) (*domain.SubmitResponse, error) {
	if _, err := uc.players.GetByID(ctx, playerID); err != nil {
		return nil, err
	}

	taskID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate task id: %w", err)
	}

	rec := &domain.TaskRecord{
		TaskID:    taskID.String(),
		Kind:      domain.KindScoutReport,
		PlayerID:  playerID,
		Status:    domain.TaskPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.tasks.Put(ctx, rec, uc.statusTTL); err != nil {
		uc.logger.Error("Failed to write pending status", zap.Error(err), zap.String("task_id", rec.TaskID))
		return nil, err
	}

	payload := &domain.TaskPayload{
		TaskID:     rec.TaskID,
		Kind:       domain.KindScoutReport,
		PlayerID:   playerID,
		EnqueuedAt: rec.CreatedAt,
	}
	if err := uc.publisher.Publish(ctx, payload); err != nil {
		uc.logger.Error("Failed to publish scout task", zap.Error(err), zap.String("task_id", rec.TaskID))
		// The task will never run; mark it failed so polls see a terminal stage.
		rec.Status = domain.TaskFailed
		rec.Error = "task could not be queued"
		_ = uc.tasks.Put(ctx, rec, uc.statusTTL)
		return nil, domain.ErrPublishFailed
	}

	uc.logger.Info("Scout task submitted",
		zap.String("task_id", rec.TaskID),
		zap.Int64("player_id", playerID),
	)

	return &domain.SubmitResponse{TaskID: rec.TaskID, Status: "accepted"}, nil
}

// SubmitRefreshUsecase enqueues a batch market-value refresh.
type SubmitRefreshUsecase struct {
	tasks     repository.TaskStatusStore
	publisher publisher.Publisher
	statusTTL time.Duration
	logger    *zap.Logger
}

// NewSubmitRefreshUsecase creates a new SubmitRefreshUsecase.
func NewSubmitRefreshUsecase(
	tasks repository.TaskStatusStore,
	pub publisher.Publisher,
	statusTTL time.Duration,
	logger *zap.Logger,
) *SubmitRefreshUsecase {
	return &SubmitRefreshUsecase{
		tasks:     tasks,
		publisher: pub,
		statusTTL: statusTTL,
		logger:    logger,
	}
}

// Execute enqueues a market refresh for the given player ids, or for all
// players when ids is empty.
func (uc *SubmitRefreshUsecase) Execute(ctx context.Context, playerIDs []int64) (*domain.SubmitResponse, error) {
	taskID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate task id: %w", err)
	}

	rec := &domain.TaskRecord{
		TaskID:    taskID.String(),
		Kind:      domain.KindMarketRefresh,
		Status:    domain.TaskPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.tasks.Put(ctx, rec, uc.statusTTL); err != nil {
		uc.logger.Error("Failed to write pending status", zap.Error(err), zap.String("task_id", rec.TaskID))
		return nil, err
	}

	payload := &domain.TaskPayload{
		TaskID:     rec.TaskID,
		Kind:       domain.KindMarketRefresh,
		PlayerIDs:  playerIDs,
		EnqueuedAt: rec.CreatedAt,
	}
	if err := uc.publisher.Publish(ctx, payload); err != nil {
		uc.logger.Error("Failed to publish refresh task", zap.Error(err), zap.String("task_id", rec.TaskID))
		rec.Status = domain.TaskFailed
		rec.Error = "task could not be queued"
		_ = uc.tasks.Put(ctx, rec, uc.statusTTL)
		return nil, domain.ErrPublishFailed
	}

	uc.logger.Info("Market refresh submitted",
		zap.String("task_id", rec.TaskID),
		zap.Int("player_count", len(playerIDs)),
	)

	return &domain.SubmitResponse{TaskID: rec.TaskID, Status: "accepted"}, nil
}
