package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/repository"
)

var _ repository.PlayerRepository = (*pgPlayerRepo)(nil)

type pgPlayerRepo struct {
	pool *pgxpool.Pool
}

// NewPlayerRepository creates a PostgreSQL-backed player repository.
func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &pgPlayerRepo{pool: pool}
}

func (r *pgPlayerRepo) Create(ctx context.Context, p *domain.Player) error {
	query := `
		INSERT INTO players (full_name, country, status, current_team, league, age, market_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		p.FullName, p.Country, p.Status, p.CurrentTeam, p.League, p.Age, p.MarketValue,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("postgres: create player: %w", err)
	}
	return nil
}

func (r *pgPlayerRepo) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	query := `
		SELECT id, full_name, country, status, current_team, league, age, market_value, scouting_report
		FROM players
		WHERE id = $1`

	p := &domain.Player{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FullName, &p.Country, &p.Status,
		&p.CurrentTeam, &p.League, &p.Age, &p.MarketValue, &p.ScoutingReport,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("postgres: get player by id: %w", err)
	}
	return p, nil
}

// buildFilter returns the WHERE clause and args for a player filter.
func buildFilter(f repository.PlayerFilter) (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Name != "" {
		add("full_name ILIKE $%d", "%"+f.Name+"%")
	}
	if f.Country != "" {
		add("country = $%d", f.Country)
	}
	if f.Team != "" {
		add("current_team = $%d", f.Team)
	}
	if f.League != "" {
		add("league = $%d", f.League)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.MinValue != nil {
		add("market_value >= $%d", *f.MinValue)
	}
	if f.MaxValue != nil {
		add("market_value <= $%d", *f.MaxValue)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *pgPlayerRepo) List(ctx context.Context, f repository.PlayerFilter, page, limit int) ([]domain.Player, int64, error) {
	where, args := buildFilter(f)

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM players"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: count players: %w", err)
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(
		`SELECT id, full_name, country, status, current_team, league, age, market_value, scouting_report
		 FROM players%s ORDER BY id LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: list players: %w", err)
	}
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(
			&p.ID, &p.FullName, &p.Country, &p.Status,
			&p.CurrentTeam, &p.League, &p.Age, &p.MarketValue, &p.ScoutingReport,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres: scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: list players: %w", err)
	}
	return players, total, nil
}

func (r *pgPlayerRepo) Update(ctx context.Context, p *domain.Player) error {
	// scouting_report is deliberately left out: the report belongs to the
	// worker's terminal step, not the synchronous update path.
	query := `
		UPDATE players
		SET full_name = $1, country = $2, status = $3, current_team = $4,
		    league = $5, age = $6, market_value = $7
		WHERE id = $8`

	tag, err := r.pool.Exec(ctx, query,
		p.FullName, p.Country, p.Status, p.CurrentTeam, p.League, p.Age, p.MarketValue, p.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: update player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

func (r *pgPlayerRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

func (r *pgPlayerRepo) SetReport(ctx context.Context, id int64, report string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE players SET scouting_report = $1 WHERE id = $2`, report, id)
	if err != nil {
		return fmt.Errorf("postgres: set report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

func (r *pgPlayerRepo) UpdateMarketValue(ctx context.Context, id int64, value int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE players SET market_value = $1 WHERE id = $2`, value, id)
	if err != nil {
		return fmt.Errorf("postgres: update market value: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}
