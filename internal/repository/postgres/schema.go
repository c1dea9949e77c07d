package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS players (
	id              BIGSERIAL PRIMARY KEY,
	full_name       VARCHAR(100) NOT NULL,
	country         VARCHAR(50)  NOT NULL,
	status          VARCHAR(20)  NOT NULL,
	current_team    VARCHAR(100),
	league          VARCHAR(100),
	age             INTEGER      NOT NULL,
	market_value    BIGINT,
	scouting_report TEXT
);

CREATE TABLE IF NOT EXISTS users (
	id              BIGSERIAL PRIMARY KEY,
	email           VARCHAR(255) NOT NULL UNIQUE,
	username        VARCHAR(50)  NOT NULL UNIQUE,
	hashed_password VARCHAR(255) NOT NULL,
	role            VARCHAR(20)  NOT NULL DEFAULT 'user',
	is_active       BOOLEAN      NOT NULL DEFAULT TRUE,
	created_at      TIMESTAMPTZ  NOT NULL DEFAULT now()
);
`

// EnsureSchema creates the tables on startup if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}
