package ranking

import "github.com/om-bhaiya/messle/internal/models"

// MatchesDistance applies the distance facet. Listings without a computed
// distance always pass: missing location must never hide results.
func MatchesDistance(l models.AnnotatedListing, b models.DistanceBracket) bool {
	if b == models.DistanceAny {
		return true
	}
	if l.DistanceKm == nil {
		return true
	}
	return *l.DistanceKm <= b.MaxKm()
}

// MatchesPrice applies the price facet. Brackets are half-open (min, max];
// a price sitting exactly on a boundary belongs to the cheaper bracket.
func MatchesPrice(l models.AnnotatedListing, b models.PriceBracket) bool {
	if b == models.PriceAny {
		return true
	}
	min, max := b.Bounds()
	if min > 0 && l.MonthlyPrice <= min {
		return false
	}
	if max > 0 && l.MonthlyPrice > max {
		return false
	}
	return true
}

// MatchesRating applies the rating facet. The four brackets partition
// [0, 5]: ">=4", "[3,4)", "(0,3)" and "exactly 0" (never rated).
func MatchesRating(l models.AnnotatedListing, b models.RatingBracket) bool {
	switch b {
	case models.RatingAny:
		return true
	case models.Rating4Plus:
		return l.Rating >= 4
	case models.Rating3To4:
		return l.Rating >= 3 && l.Rating < 4
	case models.RatingBelow3:
		return l.Rating > 0 && l.Rating < 3
	case models.RatingUnrated:
		return l.Rating == 0
	}
	return false
}

// Matches reports whether the listing passes every active facet. Predicates
// are independent; order does not matter.
func Matches(l models.AnnotatedListing, f models.FilterSelection) bool {
	return MatchesDistance(l, f.Distance) &&
		MatchesPrice(l, f.Price) &&
		MatchesRating(l, f.Rating)
}
