package geo

import (
	"fmt"
	"math"

	"github.com/om-bhaiya/messle/internal/models"
)

const earthRadiusKm = 6371.0 // Earth's radius in kilometers

// DistanceKm returns the great-circle distance between two coordinate pairs
// using the haversine formula. Identical points yield exactly 0.
func DistanceKm(a, b models.Location) float64 {
	if a == b {
		return 0
	}

	lat1 := degreesToRadians(a.Lat)
	lon1 := degreesToRadians(a.Lon)
	lat2 := degreesToRadians(b.Lat)
	lon2 := degreesToRadians(b.Lon)

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// FormatDistance renders a distance for display: whole meters under 1 km,
// otherwise kilometers to one decimal place.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
