package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgUserStore implements UserStore on PostgreSQL.
type PgUserStore struct {
	pool *pgxpool.Pool
}

// NewPgUserStore creates a PostgreSQL-backed user store.
func NewPgUserStore(pool *pgxpool.Pool) *PgUserStore {
	return &PgUserStore{pool: pool}
}

func (s *PgUserStore) Create(ctx context.Context, u *User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("auth: insert failed: %w", err)
	}
	return nil
}

func (s *PgUserStore) GetByID(ctx context.Context, id string) (*User, error) {
	return s.getUser(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE id = $1`, id)
}

func (s *PgUserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.getUser(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = $1`, username)
}

func (s *PgUserStore) getUser(ctx context.Context, query string, arg any) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("auth: query failed: %w", err)
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ UserStore = (*PgUserStore)(nil)
