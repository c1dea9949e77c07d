package repository

import (
	"context"
	"time"

	"github.com/pitchside/scoutd/internal/domain"
)

// PlayerFilter narrows a player listing. Zero values mean "no constraint".
type PlayerFilter struct {
	Name     string
	Country  string
	Team     string
	League   string
	Status   domain.PlayingStatus
	MinValue *int64
	MaxValue *int64
}

// PlayerRepository defines player persistence operations.
// Implementations must be safe for concurrent use.
type PlayerRepository interface {
	// Create inserts a new player and assigns its id.
	Create(ctx context.Context, p *domain.Player) error

	// GetByID retrieves a player or domain.ErrPlayerNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Player, error)

	// List returns one page of players matching the filter plus the total
	// match count. Pagination is offset-based and 1-indexed.
	List(ctx context.Context, f PlayerFilter, page, limit int) ([]domain.Player, int64, error)

	// Update replaces all caller-editable fields of a player. The scouting
	// report is not an editable field and survives updates.
	Update(ctx context.Context, p *domain.Player) error

	// Delete removes a player or returns domain.ErrPlayerNotFound.
	Delete(ctx context.Context, id int64) error

	// SetReport writes the scouting report text for a player.
	SetReport(ctx context.Context, id int64, report string) error

	// UpdateMarketValue overwrites a player's market value.
	UpdateMarketValue(ctx context.Context, id int64, value int64) error
}

// UserRepository defines credential persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TaskStatusStore is the TTL-bounded status cache. It is the only authority
// on task state: expiry makes a task unobservable regardless of stage.
type TaskStatusStore interface {
	Put(ctx context.Context, rec *domain.TaskRecord, ttl time.Duration) error
	Get(ctx context.Context, taskID string) (*domain.TaskRecord, error)
}

// GuardStore provides one-shot keys with expiry: the first Acquire for a key
// wins, later calls observe false until the TTL elapses. Used for per-task
// at-most-once execution and for daily refresh idempotency keys.
type GuardStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees a key early so a later Acquire can claim it again.
	Release(ctx context.Context, key string) error
}
