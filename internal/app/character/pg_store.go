package character

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

const characterColumns = `id, email, character_name, character_class, level,
	health, mana, experience, location_id, banned, created_at, updated_at`

func scanCharacter(row pgx.Row) (*Character, error) {
	var c Character

	err := row.Scan(&c.ID, &c.Email, &c.Name, &c.Class, &c.Level,
		&c.Health, &c.Mana, &c.Experience, &c.LocationID, &c.Banned,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// FindByEmail implements Store.
func (s *PgStore) FindByEmail(ctx context.Context, email string) (*Character, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE email = $1`, email)

	c, err := scanCharacter(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("Character not found.")
		}
		return nil, errs.Internal(err)
	}

	return c, nil
}

// ExistsByEmail implements Store.
func (s *PgStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool

	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM characters WHERE email = $1)`, email,
	).Scan(&exists)

	if err != nil {
		return false, errs.Internal(err)
	}

	return exists, nil
}

// Create implements Store. The insert and the account flag update run in one
// transaction; the unique key on characters.email is the authoritative
// duplicate signal for concurrent creations that pass the pre-check.
func (s *PgStore) Create(ctx context.Context, params CreateParams) (*Character, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO characters (email, character_name, character_class, location_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+characterColumns,
		params.Email, params.Name, params.Class, params.LocationID)

	c, err := scanCharacter(row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errs.Conflict("User already has a character.")
		}
		return nil, errs.Internal(err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET have_character = TRUE WHERE email = $1`, params.Email,
	); err != nil {
		return nil, errs.Internal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Internal(err)
	}

	return c, nil
}
