package factories

import (
	"math"
	"testing"

	"github.com/om-bhaiya/messle/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factoryConfig() *models.Config {
	return &models.Config{
		CityName:    "Kota",
		CityLat:     25.2138,
		CityLon:     75.8648,
		UrbanRadius: 10.0,
	}
}

func TestCreateListingProducesValidListings(t *testing.T) {
	lf := &ListingFactory{}
	cfg := factoryConfig()

	for i := 0; i < 100; i++ {
		l := lf.CreateListing(cfg)
		require.True(t, l.Valid(), "generated listing must pass validation: %+v", l)
		assert.NotEmpty(t, l.Name)
		assert.NotEmpty(t, l.Area)
		assert.NotEmpty(t, l.SlugName)
	}
}

func TestCreateListingStaysInsideCityBounds(t *testing.T) {
	lf := &ListingFactory{}
	cfg := factoryConfig()
	latRange := cfg.UrbanRadius / 111.0
	lonRange := latRange / math.Cos(cfg.CityLat*math.Pi/180.0)

	for i := 0; i < 100; i++ {
		l := lf.CreateListing(cfg)
		assert.InDelta(t, cfg.CityLat, l.Location.Lat, latRange)
		assert.InDelta(t, cfg.CityLon, l.Location.Lon, lonRange)
	}
}

func TestCreateListingSlugsAreUnique(t *testing.T) {
	lf := &ListingFactory{}
	cfg := factoryConfig()

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		slug := lf.CreateListing(cfg).SlugName
		_, dup := seen[slug]
		require.False(t, dup, "duplicate slug %q", slug)
		seen[slug] = struct{}{}
	}
}

func TestCreateListingNeverFabricatesRatings(t *testing.T) {
	lf := &ListingFactory{}
	cfg := factoryConfig()

	for i := 0; i < 100; i++ {
		l := lf.CreateListing(cfg)
		if l.TotalRatings == 0 {
			assert.Zero(t, l.Rating)
		}
	}
}
