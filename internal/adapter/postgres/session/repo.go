// Package session implements the browser-session store backing CSRF tokens.
// Only SHA-256 hashes of session ids and tokens are persisted.
package session

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/schulanmeldung/regform-backend/internal/adapter/postgres"
	"github.com/schulanmeldung/regform-backend/internal/domain"
)

// Repo provides session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const upsertSQL = `
INSERT INTO sessions (id_hash, csrf_token_hash, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (id_hash) DO UPDATE
SET csrf_token_hash = EXCLUDED.csrf_token_hash, expires_at = EXCLUDED.expires_at`

const getSQL = `
SELECT id_hash, csrf_token_hash, expires_at, created_at
FROM sessions
WHERE id_hash = $1`

const deleteExpiredSQL = `DELETE FROM sessions WHERE expires_at <= $1`

// Upsert stores the CSRF token hash for a session, replacing any previous
// token and extending the expiry.
func (r *Repo) Upsert(ctx context.Context, s domain.Session) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, upsertSQL, s.IDHash, s.CSRFTokenHash, s.ExpiresAt); err != nil {
		return postgres.MapError(err, "session", "upsert")
	}

	return nil
}

// GetByIDHash returns the session stored under idHash, expired or not.
// Returns domain.ErrNotFound if no such session exists.
func (r *Repo) GetByIDHash(ctx context.Context, idHash string) (*domain.Session, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.Session
	err := querier.QueryRow(ctx, getSQL, idHash).Scan(&s.IDHash, &s.CSRFTokenHash, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "session", "lookup")
	}

	return &s, nil
}

// DeleteExpired removes sessions that expired at or before now.
// Returns the count of deleted rows.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteExpiredSQL, now)
	if err != nil {
		return 0, postgres.MapError(err, "session", "cleanup")
	}

	return int(tag.RowsAffected()), nil
}
