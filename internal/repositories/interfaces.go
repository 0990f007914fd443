package repositories

import (
	"context"

	"github.com/om-bhaiya/messle/internal/models"
)

// ListingRepository is the listing source: all listings for the configured
// city. The returned slice may be empty; record integrity is the source's
// responsibility.
type ListingRepository interface {
	BulkCreate(ctx context.Context, listings []*models.Listing) error
	Create(ctx context.Context, listing *models.Listing) error
	GetAll(ctx context.Context) ([]models.Listing, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// RatingRepository stores individual ratings and maintains each listing's
// mean rating and count, the source of truth the ranking engine reads.
type RatingRepository interface {
	// Save records one rating and returns the listing's recomputed mean,
	// rounded to one decimal place.
	Save(ctx context.Context, listingID string, stars int) (float64, error)
}

// FavoritesRepository is the device-scoped favorites store. Absent entries
// read as an empty set.
type FavoritesRepository interface {
	GetAll(ctx context.Context) (map[string]struct{}, error)
	Toggle(ctx context.Context, listingID string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// RatedMarksRepository remembers which listings this device already rated,
// to keep one device from rating the same mess twice.
type RatedMarksRepository interface {
	HasRated(ctx context.Context, listingID string) (bool, error)
	Rating(ctx context.Context, listingID string) (int, error)
	Mark(ctx context.Context, listingID string, stars int) error
}
