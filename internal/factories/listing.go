package factories

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/om-bhaiya/messle/internal/models"
)

var fake = faker.New()

type ListingFactory struct {
	slugCache sync.Map // to track used slugs
}

func (lf *ListingFactory) CreateListing(config *models.Config) *models.Listing {
	latRange := config.UrbanRadius / 111.0
	lonRange := latRange / math.Cos(config.CityLat*math.Pi/180.0)

	latOffset := (rand.Float64()*2 - 1) * latRange
	lonOffset := (rand.Float64()*2 - 1) * lonRange

	lat := config.CityLat + latOffset
	lon := config.CityLon + lonOffset

	name := generateMessName()
	totalRatings := fake.IntBetween(0, 300)
	rating := 0.0
	if totalRatings > 0 {
		rating = fake.Float64(1, 2, 5)
	}

	var updatedAt time.Time
	if rand.Float64() < 0.4 {
		updatedAt = time.Now().Add(-time.Duration(rand.Intn(10)) * time.Hour)
	}

	return &models.Listing{
		ID:               cuid.New(),
		Name:             name,
		Area:             generateArea(),
		Phone:            fake.Phone().Number(),
		SlugName:         lf.createUniqueSlug(name),
		MonthlyPrice:     float64(fake.IntBetween(22, 60)) * 100,
		Rating:           rating,
		TotalRatings:     totalRatings,
		MenuUpdatedAt:    updatedAt,
		MenuUpdatedToday: models.SameLocalDay(updatedAt, time.Now()),
		VegOnly:          rand.Float64() < 0.7,
		TrialAvailable:   fake.Bool(),
		Location: models.Location{
			Lat: lat,
			Lon: lon,
		},
	}
}

func (lf *ListingFactory) createUniqueSlug(name string) string {
	base := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, base)

	slug := base
	counter := 1

	for {
		if _, exists := lf.slugCache.LoadOrStore(slug, true); !exists {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
		counter++
	}
}

func generateMessName() string {
	prefixes := []string{"Annapurna", "Shree", "Maa", "Gupta", "Sharma", "Agarwal", "Rajasthani", "Apna", "Student", "Ghar Jaisa", "Radhey", "Balaji", "Shivam", "Krishna"}
	suffixes := []string{"Mess", "Tiffin Center", "Bhojanalaya", "Tiffin Service", "Mess & Tiffin", "Food Point"}
	return prefixes[rand.Intn(len(prefixes))] + " " + suffixes[rand.Intn(len(suffixes))]
}

func generateArea() string {
	areas := []string{"Talwandi", "Vigyan Nagar", "Jawahar Nagar", "Rajeev Gandhi Nagar", "Indra Vihar", "Mahaveer Nagar", "Dadabari", "Kunhari", "Landmark City", "Electronic Complex", "Keshavpura", "Gumanpura"}
	return areas[rand.Intn(len(areas))]
}
