package campground

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/campsite/pkg/db"
)

// PgStore implements Store on PostgreSQL. The image sequence lives in
// campground_images (ordered by position) and the review reference set
// in campground_reviews; both are cleaned up by ON DELETE CASCADE when
// the campground row goes away.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PostgreSQL-backed campground store.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) Create(ctx context.Context, c *Campground) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO campgrounds (id, title, location, longitude, latitude, price, description, author_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			c.ID, c.Title, c.Location, c.Geometry.Longitude, c.Geometry.Latitude,
			c.Price, c.Description, c.AuthorID, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("campground: insert failed: %w", err)
		}
		return insertImages(ctx, tx, c.ID, c.Images)
	})
}

func (s *PgStore) Get(ctx context.Context, id string) (*Campground, error) {
	c := &Campground{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, location, longitude, latitude, price, description, author_id, created_at, updated_at
		FROM campgrounds WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Location, &c.Geometry.Longitude, &c.Geometry.Latitude,
		&c.Price, &c.Description, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("campground: query failed: %w", err)
	}

	if err := s.loadRelations(ctx, map[string]*Campground{c.ID: c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PgStore) List(ctx context.Context) ([]*Campground, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, location, longitude, latitude, price, description, author_id, created_at, updated_at
		FROM campgrounds ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("campground: query failed: %w", err)
	}
	defer rows.Close()

	var list []*Campground
	byID := make(map[string]*Campground)
	for rows.Next() {
		c := &Campground{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Location, &c.Geometry.Longitude, &c.Geometry.Latitude,
			&c.Price, &c.Description, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("campground: scan failed: %w", err)
		}
		list = append(list, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("campground: rows failed: %w", err)
	}

	if err := s.loadRelations(ctx, byID); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *PgStore) Update(ctx context.Context, c *Campground) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE campgrounds
			SET title = $2, location = $3, longitude = $4, latitude = $5, price = $6, description = $7, updated_at = $8
			WHERE id = $1`,
			c.ID, c.Title, c.Location, c.Geometry.Longitude, c.Geometry.Latitude,
			c.Price, c.Description, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("campground: update failed: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		// The image sequence is rewritten wholesale from the entity;
		// order and membership are decided by the lifecycle manager.
		if _, err := tx.Exec(ctx, `DELETE FROM campground_images WHERE campground_id = $1`, c.ID); err != nil {
			return fmt.Errorf("campground: image cleanup failed: %w", err)
		}
		return insertImages(ctx, tx, c.ID, c.Images)
	})
}

func (s *PgStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM campgrounds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("campground: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PgStore) PushReview(ctx context.Context, campgroundID, reviewID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO campground_reviews (campground_id, review_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, campgroundID, reviewID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("campground: push review failed: %w", err)
	}
	return nil
}

func (s *PgStore) PullReview(ctx context.Context, campgroundID, reviewID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM campground_reviews WHERE campground_id = $1 AND review_id = $2`,
		campgroundID, reviewID)
	if err != nil {
		return fmt.Errorf("campground: pull review failed: %w", err)
	}
	return nil
}

// loadRelations fills the image sequences and review reference sets for
// the given campgrounds with two batched queries.
func (s *PgStore) loadRelations(ctx context.Context, byID map[string]*Campground) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	imgRows, err := s.pool.Query(ctx, `
		SELECT campground_id, url, handle
		FROM campground_images
		WHERE campground_id = ANY($1)
		ORDER BY campground_id, position`, ids)
	if err != nil {
		return fmt.Errorf("campground: image query failed: %w", err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var campgroundID string
		var img Image
		if err := imgRows.Scan(&campgroundID, &img.URL, &img.Handle); err != nil {
			return fmt.Errorf("campground: image scan failed: %w", err)
		}
		if c, ok := byID[campgroundID]; ok {
			c.Images = append(c.Images, img)
		}
	}
	if err := imgRows.Err(); err != nil {
		return fmt.Errorf("campground: image rows failed: %w", err)
	}

	refRows, err := s.pool.Query(ctx, `
		SELECT campground_id, review_id
		FROM campground_reviews
		WHERE campground_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("campground: review ref query failed: %w", err)
	}
	defer refRows.Close()

	for refRows.Next() {
		var campgroundID, reviewID string
		if err := refRows.Scan(&campgroundID, &reviewID); err != nil {
			return fmt.Errorf("campground: review ref scan failed: %w", err)
		}
		if c, ok := byID[campgroundID]; ok {
			c.ReviewIDs = append(c.ReviewIDs, reviewID)
		}
	}
	if err := refRows.Err(); err != nil {
		return fmt.Errorf("campground: review ref rows failed: %w", err)
	}

	return nil
}

func insertImages(ctx context.Context, tx pgx.Tx, campgroundID string, images []Image) error {
	for i, img := range images {
		_, err := tx.Exec(ctx, `
			INSERT INTO campground_images (campground_id, url, handle, position)
			VALUES ($1, $2, $3, $4)`,
			campgroundID, img.URL, img.Handle, i)
		if err != nil {
			return fmt.Errorf("campground: image insert failed: %w", err)
		}
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

var _ Store = (*PgStore)(nil)
