package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"
)

type RatingRepository struct {
	pool *pgxpool.Pool
}

func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Save inserts the rating and recomputes the listing's mean inside one
// transaction. The mean is rounded to one decimal place here, not by
// readers: the listings row is the source of truth.
func (r *RatingRepository) Save(ctx context.Context, listingID string, stars int) (float64, error) {
	if stars < 1 || stars > 5 {
		return 0, fmt.Errorf("rating must be between 1 and 5, got %d", stars)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO ratings (id, listing_id, rating, created_at) VALUES ($1, $2, $3, $4)`,
		cuid.New(), listingID, stars, time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert rating: %w", err)
	}

	var mean float64
	err = tx.QueryRow(ctx, `
        UPDATE listings SET
            rating = sub.mean,
            total_ratings = sub.total
        FROM (
            SELECT ROUND(AVG(rating)::numeric, 1) AS mean, COUNT(*) AS total
            FROM ratings WHERE listing_id = $1
        ) AS sub
        WHERE listings.id = $1
        RETURNING sub.mean
    `, listingID).Scan(&mean)
	if err != nil {
		return 0, fmt.Errorf("update listing rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return mean, nil
}
