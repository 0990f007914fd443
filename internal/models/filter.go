package models

import "fmt"

// Filter facets are closed enumerations. The zero value of each bracket type
// means "no constraint" and always passes.

type DistanceBracket string

const (
	DistanceAny      DistanceBracket = ""
	DistanceWithin1  DistanceBracket = "1km"
	DistanceWithin2  DistanceBracket = "2km"
	DistanceWithin5  DistanceBracket = "5km"
	DistanceWithin10 DistanceBracket = "10km"
)

// MaxKm returns the bracket's inclusive upper bound, or 0 for DistanceAny.
func (b DistanceBracket) MaxKm() float64 {
	switch b {
	case DistanceWithin1:
		return 1
	case DistanceWithin2:
		return 2
	case DistanceWithin5:
		return 5
	case DistanceWithin10:
		return 10
	}
	return 0
}

type PriceBracket string

const (
	PriceAny        PriceBracket = ""
	PriceUnder3000  PriceBracket = "under_3000"
	Price3000To4000 PriceBracket = "3000_4000"
	Price4000To5000 PriceBracket = "4000_5000"
	PriceAbove5000  PriceBracket = "above_5000"
)

// Bounds returns the half-open interval (min, max] the bracket covers.
// Boundary prices belong to the lower-priced bracket. max == 0 means
// unbounded above.
func (b PriceBracket) Bounds() (min, max float64) {
	switch b {
	case PriceUnder3000:
		return 0, 3000
	case Price3000To4000:
		return 3000, 4000
	case Price4000To5000:
		return 4000, 5000
	case PriceAbove5000:
		return 5000, 0
	}
	return 0, 0
}

type RatingBracket string

const (
	RatingAny     RatingBracket = ""
	Rating4Plus   RatingBracket = "4_plus"
	Rating3To4    RatingBracket = "3_to_4"
	RatingBelow3  RatingBracket = "below_3"
	RatingUnrated RatingBracket = "new"
)

// FilterSelection is one user interaction's facet choices. It is built fresh
// per ranking call and never stored.
type FilterSelection struct {
	Distance DistanceBracket
	Price    PriceBracket
	Rating   RatingBracket
}

// Empty reports whether no facet is active.
func (f FilterSelection) Empty() bool {
	return f.Distance == DistanceAny && f.Price == PriceAny && f.Rating == RatingAny
}

func ParseDistanceBracket(s string) (DistanceBracket, error) {
	switch DistanceBracket(s) {
	case DistanceAny, DistanceWithin1, DistanceWithin2, DistanceWithin5, DistanceWithin10:
		return DistanceBracket(s), nil
	}
	return DistanceAny, fmt.Errorf("unknown distance bracket %q", s)
}

func ParsePriceBracket(s string) (PriceBracket, error) {
	switch PriceBracket(s) {
	case PriceAny, PriceUnder3000, Price3000To4000, Price4000To5000, PriceAbove5000:
		return PriceBracket(s), nil
	}
	return PriceAny, fmt.Errorf("unknown price bracket %q", s)
}

func ParseRatingBracket(s string) (RatingBracket, error) {
	switch RatingBracket(s) {
	case RatingAny, Rating4Plus, Rating3To4, RatingBelow3, RatingUnrated:
		return RatingBracket(s), nil
	}
	return RatingAny, fmt.Errorf("unknown rating bracket %q", s)
}
