package models

import "time"

type Listing struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Area             string    `json:"area"`
	Phone            string    `json:"phone"`
	SlugName         string    `json:"slug_name"`
	Location         Location  `json:"location"`
	MonthlyPrice     float64   `json:"monthly_price"`
	Rating           float64   `json:"rating"`
	TotalRatings     int       `json:"total_ratings"`
	MenuUpdatedToday bool      `json:"menu_updated_today"`
	MenuUpdatedAt    time.Time `json:"menu_updated_at,omitempty"`
	VegOnly          bool      `json:"veg_only"`
	TrialAvailable   bool      `json:"trial_available"`
}

// Valid reports whether the listing carries the numeric fields the ranking
// pipeline needs. Records failing this check are skipped, not fatal.
func (l *Listing) Valid() bool {
	if l.ID == "" {
		return false
	}
	if l.MonthlyPrice <= 0 {
		return false
	}
	if l.Rating < 0 || l.Rating > 5 {
		return false
	}
	if l.TotalRatings < 0 {
		return false
	}
	// rating without raters violates the source-of-truth invariant
	if l.TotalRatings == 0 && l.Rating != 0 {
		return false
	}
	return true
}

// AnnotatedListing is a Listing augmented with the per-request values the
// ranking pipeline computes. DistanceKm is nil when no user location was
// available for the request.
type AnnotatedListing struct {
	Listing
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Score      float64  `json:"score"`
	Favorite   bool     `json:"favorite"`
}
