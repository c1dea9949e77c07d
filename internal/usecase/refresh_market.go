package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/repository"
)

const (
	// refreshGuardTTL keeps the daily per-player idempotency key alive.
	refreshGuardTTL = 24 * time.Hour

	// refreshBatchLimit caps an "all players" refresh.
	refreshBatchLimit = 1000
)

// RefreshMarketUsecase runs one market-refresh task: adjust each target
// player's market value by a bounded pseudo-random fluctuation, at most once
// per player per day.
type RefreshMarketUsecase struct {
	players   repository.PlayerRepository
	tasks     repository.TaskStatusStore
	guard     repository.GuardStore
	statusTTL time.Duration
	logger    *zap.Logger
}

// NewRefreshMarketUsecase creates a new RefreshMarketUsecase.
func NewRefreshMarketUsecase(
	players repository.PlayerRepository,
	tasks repository.TaskStatusStore,
	guard repository.GuardStore,
	statusTTL time.Duration,
	logger *zap.Logger,
) *RefreshMarketUsecase {
	return &RefreshMarketUsecase{
		players:   players,
		tasks:     tasks,
		guard:     guard,
		statusTTL: statusTTL,
		logger:    logger,
	}
}

// Execute processes a market-refresh task. Returns (isDuplicate, error) with
// the same ack/nack semantics as scouting tasks.
func (uc *RefreshMarketUsecase) Execute(ctx context.Context, task *domain.TaskPayload) (bool, error) {
	acquired, err := uc.guard.Acquire(ctx, "task:"+task.TaskID, attemptGuardTTL)
	if err != nil {
		return false, err
	}
	if !acquired {
		uc.logger.Info("Duplicate delivery detected, skipping", zap.String("task_id", task.TaskID))
		return true, nil
	}

	rec := uc.loadRecord(ctx, task)
	rec.Status = domain.TaskRunning
	if err := uc.tasks.Put(ctx, rec, uc.statusTTL); err != nil {
		return false, err
	}

	targets, err := uc.resolveTargets(ctx, task.PlayerIDs)
	if err != nil {
		uc.logger.Error("Failed to resolve refresh targets", zap.Error(err), zap.String("task_id", task.TaskID))
		return false, err
	}

	day := time.Now().UTC().Format("2006-01-02")
	updated := 0
	for _, p := range targets {
		if p.MarketValue == nil {
			continue
		}

		key := fmt.Sprintf("market:%d:%s", p.ID, day)
		ok, err := uc.guard.Acquire(ctx, key, refreshGuardTTL)
		if err != nil {
			return false, err
		}
		if !ok {
			uc.logger.Debug("Player already refreshed today", zap.Int64("player_id", p.ID))
			continue
		}

		newValue := fluctuate(p.ID, *p.MarketValue, day)
		if err := uc.players.UpdateMarketValue(ctx, p.ID, newValue); err != nil {
			uc.logger.Warn("Failed to update market value",
				zap.Error(err),
				zap.Int64("player_id", p.ID),
			)
			// Free the daily key so a later refresh can retry this player.
			if relErr := uc.guard.Release(ctx, key); relErr != nil {
				uc.logger.Warn("Failed to release refresh guard",
					zap.Error(relErr),
					zap.String("key", key),
				)
			}
			continue
		}
		updated++
	}

	rec.Status = domain.TaskCompleted
	rec.Result = fmt.Sprintf("updated %d of %d players", updated, len(targets))
	if err := uc.tasks.Put(ctx, rec, uc.statusTTL); err != nil {
		return false, err
	}

	uc.logger.Info("Market refresh completed",
		zap.String("task_id", task.TaskID),
		zap.Int("updated", updated),
		zap.Int("targets", len(targets)),
	)
	return false, nil
}

func (uc *RefreshMarketUsecase) resolveTargets(ctx context.Context, ids []int64) ([]domain.Player, error) {
	if len(ids) == 0 {
		players, _, err := uc.players.List(ctx, repository.PlayerFilter{}, 1, refreshBatchLimit)
		return players, err
	}

	targets := make([]domain.Player, 0, len(ids))
	for _, id := range ids {
		p, err := uc.players.GetByID(ctx, id)
		if err != nil {
			// Unknown ids are skipped, not fatal.
			continue
		}
		targets = append(targets, *p)
	}
	return targets, nil
}

func (uc *RefreshMarketUsecase) loadRecord(ctx context.Context, task *domain.TaskPayload) *domain.TaskRecord {
	rec, err := uc.tasks.Get(ctx, task.TaskID)
	if err == nil {
		return rec
	}
	return &domain.TaskRecord{
		TaskID:    task.TaskID,
		Kind:      task.Kind,
		Status:    domain.TaskPending,
		CreatedAt: task.EnqueuedAt,
	}
}

// fluctuate applies a deterministic ±10% adjustment keyed on player id and
// day, clamped into the valid market-value range.
func fluctuate(playerID, value int64, day string) int64 {
	seed := playerID
	for _, c := range day {
		seed = seed*31 + int64(c)
	}
	r := rand.New(rand.NewSource(seed))
	factor := 1 + (r.Float64()*0.2 - 0.1)

	newValue := int64(float64(value) * factor)
	if newValue < domain.MinMarketValue {
		newValue = domain.MinMarketValue
	}
	if newValue > domain.MaxMarketValue {
		newValue = domain.MaxMarketValue
	}
	return newValue
}
