package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/repository"
)

const (
	// DefaultPageSize matches the UI's default grid size.
	DefaultPageSize = 12
	// MaxPageSize caps a caller-specified page size.
	MaxPageSize = 100
)

// PlayerUsecase handles the business logic for player CRUD.
type PlayerUsecase struct {
	repo   repository.PlayerRepository
	logger *zap.Logger
}

// NewPlayerUsecase creates a new PlayerUsecase.
func NewPlayerUsecase(repo repository.PlayerRepository, logger *zap.Logger) *PlayerUsecase {
	return &PlayerUsecase{repo: repo, logger: logger}
}

// Create validates and normalizes the input, then inserts a new player.
func (uc *PlayerUsecase) Create(ctx context.Context, in *domain.PlayerInput) (*domain.Player, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Normalize()

	p := in.ToPlayer()
	if err := uc.repo.Create(ctx, p); err != nil {
		uc.logger.Error("Failed to create player", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Player created",
		zap.Int64("player_id", p.ID),
		zap.String("full_name", p.FullName),
		zap.String("status", string(p.Status)),
	)
	return p, nil
}

// Get retrieves a player by id.
func (uc *PlayerUsecase) Get(ctx context.Context, id int64) (*domain.Player, error) {
	return uc.repo.GetByID(ctx, id)
}

// List returns one page of players matching the filter. The page is clamped
// into the valid range and the limit is bounded.
func (uc *PlayerUsecase) List(ctx context.Context, f repository.PlayerFilter, page, limit int) (*domain.PaginatedPlayers, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	players, total, err := uc.repo.List(ctx, f, page, limit)
	if err != nil {
		uc.logger.Error("Failed to list players", zap.Error(err))
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	if page > pages && total > 0 {
		page = pages
		players, total, err = uc.repo.List(ctx, f, page, limit)
		if err != nil {
			return nil, err
		}
	}

	return &domain.PaginatedPlayers{
		Data:  players,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}, nil
}

// Update validates the input and replaces all editable fields of the player.
// The scouting report survives: it belongs to the worker's terminal step.
func (uc *PlayerUsecase) Update(ctx context.Context, id int64, in *domain.PlayerInput) (*domain.Player, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Normalize()

	p := in.ToPlayer()
	p.ID = id
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("Player updated",
		zap.Int64("player_id", id),
		zap.String("full_name", p.FullName),
	)
	// Re-read so the response carries the preserved scouting report.
	return uc.repo.GetByID(ctx, id)
}

// Delete removes a player by id.
func (uc *PlayerUsecase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Player deleted", zap.Int64("player_id", id))
	return nil
}
