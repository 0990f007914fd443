package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/om-bhaiya/messle/internal/models"
)

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

func (r *ListingRepository) BulkCreate(ctx context.Context, listings []*models.Listing) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, listing := range listings {
		query := `
            INSERT INTO listings (
                id, name, area, phone, slug_name, location,
                monthly_price, rating, total_ratings, menu_updated_at,
                veg_only, trial_available
            ) VALUES (
                $1, $2, $3, $4, $5,
                ST_SetSRID(ST_MakePoint($6, $7), 4326)::geography,
                $8, $9, $10, $11, $12, $13
            )
        `

		_, err = tx.Exec(ctx, query,
			listing.ID,
			listing.Name,
			listing.Area,
			listing.Phone,
			listing.SlugName,
			listing.Location.Lon,
			listing.Location.Lat,
			listing.MonthlyPrice,
			listing.Rating,
			listing.TotalRatings,
			listing.MenuUpdatedAt,
			listing.VegOnly,
			listing.TrialAvailable,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.BulkCreate(ctx, []*models.Listing{listing})
}

func (r *ListingRepository) GetAll(ctx context.Context) ([]models.Listing, error) {
	query := `
        SELECT
            id, name, area, phone, slug_name,
            ST_X(location::geometry) as longitude, ST_Y(location::geometry) as latitude,
            monthly_price, rating, total_ratings, menu_updated_at,
            veg_only, trial_available
        FROM listings
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	var listings []models.Listing
	for rows.Next() {
		var lon, lat float64
		var menuUpdatedAt *time.Time
		listing := models.Listing{}
		err := rows.Scan(
			&listing.ID,
			&listing.Name,
			&listing.Area,
			&listing.Phone,
			&listing.SlugName,
			&lon,
			&lat,
			&listing.MonthlyPrice,
			&listing.Rating,
			&listing.TotalRatings,
			&menuUpdatedAt,
			&listing.VegOnly,
			&listing.TrialAvailable,
		)
		if err != nil {
			return nil, err
		}
		listing.Location = models.Location{Lon: lon, Lat: lat}
		if menuUpdatedAt != nil {
			listing.MenuUpdatedAt = *menuUpdatedAt
			listing.MenuUpdatedToday = models.MenuFresh(*menuUpdatedAt, now)
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func (r *ListingRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings`).Scan(&count)
	return count, err
}

func (r *ListingRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM listings`)
	return err
}
