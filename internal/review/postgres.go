package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/campsite/pkg/db"
)

// PgStore implements Store on PostgreSQL. Create and Delete also write
// the campground_reviews reference row in the same transaction, so a
// Postgres-backed deployment keeps the bidirectional link atomic; the
// lifecycle manager's separate push/pull calls are idempotent on top.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PostgreSQL-backed review store.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) Create(ctx context.Context, r *Review) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO reviews (id, body, rating, author_id, campground_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			r.ID, r.Body, r.Rating, r.AuthorID, r.CampgroundID, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("review: insert failed: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO campground_reviews (campground_id, review_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, r.CampgroundID, r.ID)
		if err != nil {
			return fmt.Errorf("review: reference insert failed: %w", err)
		}
		return nil
	})
}

func (s *PgStore) Get(ctx context.Context, id string) (*Review, error) {
	r := &Review{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, body, rating, author_id, campground_id, created_at
		FROM reviews WHERE id = $1`, id,
	).Scan(&r.ID, &r.Body, &r.Rating, &r.AuthorID, &r.CampgroundID, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("review: query failed: %w", err)
	}
	return r, nil
}

func (s *PgStore) List(ctx context.Context) ([]*Review, error) {
	return s.queryReviews(ctx, `
		SELECT id, body, rating, author_id, campground_id, created_at
		FROM reviews ORDER BY created_at DESC`)
}

func (s *PgStore) ListByCampground(ctx context.Context, campgroundID string) ([]*Review, error) {
	return s.queryReviews(ctx, `
		SELECT id, body, rating, author_id, campground_id, created_at
		FROM reviews WHERE campground_id = $1 ORDER BY created_at DESC`, campgroundID)
}

// Delete is idempotent: rows the database-level cascade already removed
// are not an error.
func (s *PgStore) Delete(ctx context.Context, id string) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM campground_reviews WHERE review_id = $1`, id); err != nil {
			return fmt.Errorf("review: reference delete failed: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
			return fmt.Errorf("review: delete failed: %w", err)
		}
		return nil
	})
}

func (s *PgStore) queryReviews(ctx context.Context, query string, args ...any) ([]*Review, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("review: query failed: %w", err)
	}
	defer rows.Close()

	var list []*Review
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.Body, &r.Rating, &r.AuthorID, &r.CampgroundID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("review: scan failed: %w", err)
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("review: rows failed: %w", err)
	}
	return list, nil
}

var _ Store = (*PgStore)(nil)
