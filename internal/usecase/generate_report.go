package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/metrics"
	"github.com/pitchside/scoutd/internal/reportgen"
	"github.com/pitchside/scoutd/internal/repository"
)

// attemptGuardTTL bounds the at-most-once window for a task id. It outlives
// the status TTL so an expired record cannot resurrect an attempt.
const attemptGuardTTL = 2 * time.Hour

const resultSummaryLen = 120

// GenerateReportUsecase runs one scouting task: load the player, call the
// generator, store the report, and move the status record to a terminal
// stage. Failures are terminal; the caller resubmits. Each task id gets at
// most one attempt, enforced by the guard store across redeliveries.
type GenerateReportUsecase struct {
	players   repository.PlayerRepository
	tasks     repository.TaskStatusStore
	guard     repository.GuardStore
	generator reportgen.Generator
	statusTTL time.Duration
	logger    *zap.Logger
}

// NewGenerateReportUsecase creates a new GenerateReportUsecase.
func NewGenerateReportUsecase(
	players repository.PlayerRepository,
	tasks repository.TaskStatusStore,
	guard repository.GuardStore,
	gen reportgen.Generator,
	statusTTL time.Duration,
	logger *zap.Logger,
) *GenerateReportUsecase {
	return &GenerateReportUsecase{
		players:   players,
		tasks:     tasks,
		guard:     guard,
		generator: gen,
		statusTTL: statusTTL,
		logger:    logger,
	}
}

// Execute processes a single scouting task. Returns (isDuplicate, error).
// A nil error with a terminal failed status is a domain failure (recorded,
// message gets ACKed); a non-nil error is an infrastructure failure (message
// gets NACKed to the DLQ).
func (uc *GenerateReportUsecase) Execute(ctx context.Context, task *domain.TaskPayload) (bool, error) {
	acquired, err := uc.guard.Acquire(ctx, "task:"+task.TaskID, attemptGuardTTL)
	if err != nil {
		uc.logger.Error("Failed to acquire task guard", zap.Error(err), zap.String("task_id", task.TaskID))
		return false, err
	}
	if !acquired {
		uc.logger.Info("Duplicate delivery detected, skipping", zap.String("task_id", task.TaskID))
		return true, nil
	}

	rec := uc.loadRecord(ctx, task)

	rec.Status = domain.TaskRunning
	if err := uc.tasks.Put(ctx, rec, uc.statusTTL); err != nil {
		uc.logger.Error("Failed to update task status", zap.Error(err), zap.String("task_id", task.TaskID))
		return false, err
	}

	player, err := uc.players.GetByID(ctx, task.PlayerID)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			// Player vanished between submission and execution.
			uc.fail(ctx, rec, "player no longer exists")
			return false, nil
		}
		uc.logger.Error("Failed to load player", zap.Error(err), zap.String("task_id", task.TaskID))
		return false, err
	}

	report, err := uc.generator.Generate(ctx, player)
	if err != nil {
		metrics.GeneratorFailures.Inc()
		uc.logger.Warn("Report generation failed",
			zap.Error(err),
			zap.String("task_id", task.TaskID),
			zap.Int64("player_id", player.ID),
		)
		// No retry: the failure is recorded and only observable via polling.
		uc.fail(ctx, rec, fmt.Sprintf("report generation failed: %v", err))
		return false, nil
	}

	if err := uc.players.SetReport(ctx, player.ID, report); err != nil {
		uc.logger.Error("Failed to store report", zap.Error(err), zap.String("task_id", task.TaskID))
		return false, err
	}

	rec.Status = domain.TaskCompleted
	rec.Result = summarize(report)
	if err := uc.tasks.Put(ctx, rec, uc.statusTTL); err != nil {
		uc.logger.Error("Failed to record completion", zap.Error(err), zap.String("task_id", task.TaskID))
		return false, err
	}

	uc.logger.Info("Scout task completed",
		zap.String("task_id", task.TaskID),
		zap.Int64("player_id", player.ID),
		zap.Int("report_len", len(report)),
	)
	return false, nil
}

// loadRecord fetches the pending record written at submission, or rebuilds a
// base record if it already expired.
func (uc *GenerateReportUsecase) loadRecord(ctx context.Context, task *domain.TaskPayload) *domain.TaskRecord {
	rec, err := uc.tasks.Get(ctx, task.TaskID)
	if err == nil {
		return rec
	}
	return &domain.TaskRecord{
		TaskID:    task.TaskID,
		Kind:      task.Kind,
		PlayerID:  task.PlayerID,
		Status:    domain.TaskPending,
		CreatedAt: task.EnqueuedAt,
	}
}

func (uc *GenerateReportUsecase) fail(ctx context.Context, rec *domain.TaskRecord, msg string) {
	rec.Status = domain.TaskFailed
	rec.Error = msg
	if err := uc.tasks.Put(ctx, rec, uc.statusTTL); err != nil {
		uc.logger.Error("Failed to record failure", zap.Error(err), zap.String("task_id", rec.TaskID))
	}
}

func summarize(report string) string {
	if len(report) <= resultSummaryLen {
		return report
	}
	// Back up to a rune boundary so the cut never splits a multi-byte rune.
	cut := resultSummaryLen
	for cut > 0 && !utf8.RuneStart(report[cut]) {
		cut--
	}
	return report[:cut] + "..."
}
