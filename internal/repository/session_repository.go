package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
)

// SessionRepository manages persistence for admin session rows.
type SessionRepository interface {
	// ReplaceActive deactivates any active sessions for the owner and inserts
	// the new row in a single transaction, preserving the single-active-session
	// invariant under concurrent logins.
	ReplaceActive(ctx context.Context, session *domain.AdminSession) error
	GetActiveByToken(ctx context.Context, token string) (*domain.AdminSession, error)
	Deactivate(ctx context.Context, id string) error
	DeactivateByToken(ctx context.Context, token string) error
	// ExtendExpiry slides the stored expiry forward. The update is conditional
	// on the row still being active so a concurrent logout is never undone.
	ExtendExpiry(ctx context.Context, id string, expiresAt time.Time) error
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a Postgres-backed implementation.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) ReplaceActive(ctx context.Context, session *domain.AdminSession) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const deactivate = `
        UPDATE admin_sessions SET is_active=FALSE, updated_at=NOW()
        WHERE owner_email=$1 AND is_active=TRUE`
	if _, err := tx.Exec(ctx, deactivate, session.OwnerEmail); err != nil {
		return err
	}

	const insert = `
        INSERT INTO admin_sessions (owner_email, token, ip_address, user_agent, device, is_active, expires_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insert,
		session.OwnerEmail,
		session.Token,
		session.IPAddress,
		session.UserAgent,
		session.Device,
		session.IsActive,
		session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *sessionRepository) GetActiveByToken(ctx context.Context, token string) (*domain.AdminSession, error) {
	const query = `
        SELECT id, owner_email, token, ip_address, user_agent, device, is_active, expires_at, created_at, updated_at
        FROM admin_sessions WHERE token=$1 AND is_active=TRUE`

	var session domain.AdminSession
	if err := r.pool.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.OwnerEmail,
		&session.Token,
		&session.IPAddress,
		&session.UserAgent,
		&session.Device,
		&session.IsActive,
		&session.ExpiresAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
        UPDATE admin_sessions SET is_active=FALSE, updated_at=NOW()
        WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *sessionRepository) DeactivateByToken(ctx context.Context, token string) error {
	const query = `
        UPDATE admin_sessions SET is_active=FALSE, updated_at=NOW()
        WHERE token=$1`
	_, err := r.pool.Exec(ctx, query, token)
	return err
}

func (r *sessionRepository) ExtendExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	const query = `
        UPDATE admin_sessions SET expires_at=$1, updated_at=NOW()
        WHERE id=$2 AND is_active=TRUE`
	cmd, err := r.pool.Exec(ctx, query, expiresAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
