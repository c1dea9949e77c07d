package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/repository"
)

var _ repository.UserRepository = (*pgUserRepo)(nil)

type pgUserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &pgUserRepo{pool: pool}
}

func (r *pgUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, username, hashed_password, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	now := time.Now().UTC()
	err := r.pool.QueryRow(ctx, query,
		u.Email, u.Username, u.HashedPassword, u.Role, u.IsActive, now,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("postgres: create user: %w", err)
	}
	u.CreatedAt = now
	return nil
}

func (r *pgUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *pgUserRepo) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, username, hashed_password, role, is_active, created_at
		FROM users
		WHERE %s = $1`, column)

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&u.ID, &u.Email, &u.Username, &u.HashedPassword, &u.Role, &u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres: get user by %s: %w", column, err)
	}
	return u, nil
}
