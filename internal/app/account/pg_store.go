package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Talibis/jug-classic/internal/app/db"
	"github.com/Talibis/jug-classic/internal/pkg/errs"
)

// PgStore is the PostgreSQL-backed implementation of Store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore builds a PgStore over the given connection pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// FindByEmail implements Store.
func (s *PgStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account

	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, have_character, created_at
		 FROM users WHERE email = $1`, email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.HaveCharacter, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("Account not found.")
		}
		return nil, errs.Internal(err)
	}

	return &a, nil
}

// ExistsByEmail implements Store.
func (s *PgStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool

	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)

	if err != nil {
		return false, errs.Internal(err)
	}

	return exists, nil
}

// Create implements Store. The unique key on email is the authoritative
// duplicate signal.
func (s *PgStore) Create(ctx context.Context, email, passwordHash string) (*Account, error) {
	var a Account

	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, email, password_hash, have_character, created_at`,
		email, passwordHash,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.HaveCharacter, &a.CreatedAt)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errs.Conflict("Email already exists.")
		}
		return nil, errs.Internal(err)
	}

	return &a, nil
}
