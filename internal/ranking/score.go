package ranking

import (
	"math"

	"github.com/om-bhaiya/messle/internal/models"
)

const (
	// DefaultAvgMonthlyPrice is the market-average monthly price reference.
	// Tunable per city via config; 3500 matches the source market.
	DefaultAvgMonthlyPrice = 3500.0

	confidenceCeiling = 50.0  // ratings needed for full confidence in the mean
	popularityCeiling = 200.0 // ratings at which popularity saturates

	freshMenuScore = 100.0
	staleMenuScore = 40.0 // baseline credit, a missing update is not a hard penalty
)

// Scorer computes the composite desirability score for a listing. Pure and
// deterministic; safe for concurrent use.
type Scorer struct {
	weights  models.ScoreWeights
	avgPrice float64
}

func NewScorer(weights models.ScoreWeights, avgPrice float64) *Scorer {
	if avgPrice <= 0 {
		avgPrice = DefaultAvgMonthlyPrice
	}
	return &Scorer{weights: weights, avgPrice: avgPrice}
}

// Score maps a listing to [0, 100]. Four terms, each clamped to [0, 100],
// combined by the configured weights:
//
//   - rating: mean rating scaled to 0-100, discounted by how much evidence
//     backs it. At least half the raw score counts even with zero reviews,
//     rising linearly to the full score at 50+ reviews.
//   - popularity: review count, saturating at 200.
//   - price: distance from the market-average reference; at or below
//     average scores 100, arbitrarily expensive floors at 0.
//   - freshness: whether today's menu has been posted.
func (s *Scorer) Score(l models.Listing) float64 {
	ratingScore := l.Rating * 20
	confidence := math.Min(float64(l.TotalRatings)/confidenceCeiling, 1)
	adjustedRating := ratingScore * (0.5 + 0.5*confidence)

	popularityScore := math.Min(float64(l.TotalRatings)/popularityCeiling*100, 100)

	priceScore := clamp(100-((l.MonthlyPrice-s.avgPrice)/s.avgPrice)*100, 0, 100)

	freshnessScore := staleMenuScore
	if l.MenuUpdatedToday {
		freshnessScore = freshMenuScore
	}

	return adjustedRating*s.weights.Rating +
		popularityScore*s.weights.Popularity +
		priceScore*s.weights.Price +
		freshnessScore*s.weights.Freshness
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
