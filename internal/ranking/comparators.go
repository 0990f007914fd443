package ranking

import (
	"math"

	"github.com/om-bhaiya/messle/internal/models"
)

// A comparator orders two annotated listings: negative puts a first,
// positive puts b first, zero defers to the next rule in the chain.
type comparator func(a, b models.AnnotatedListing) int

// favoritesFirst sorts manually marked listings ahead of the rest. Only
// part of the chain when no filter facet is active: once the user expresses
// intent through filters, that intent is respected exactly.
func favoritesFirst(a, b models.AnnotatedListing) int {
	switch {
	case a.Favorite == b.Favorite:
		return 0
	case a.Favorite:
		return -1
	default:
		return 1
	}
}

// distanceDominance sorts strictly by ascending distance, but only when the
// gap is wide enough to dominate any quality differential. With a distance
// facet active the gap threshold does not apply: proximity ordering is what
// the user asked for.
func distanceDominance(distanceFilterActive bool, dominanceKm float64) comparator {
	return func(a, b models.AnnotatedListing) int {
		if a.DistanceKm == nil || b.DistanceKm == nil {
			return 0
		}
		da, db := *a.DistanceKm, *b.DistanceKm
		if !distanceFilterActive && math.Abs(da-db) <= dominanceKm {
			return 0
		}
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		default:
			return 0
		}
	}
}

// scoreDescending is the terminal rule; equal scores defer, which the
// stable sort resolves by input order.
func scoreDescending(a, b models.AnnotatedListing) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	default:
		return 0
	}
}

// orderingFor assembles the comparator chain for one ranking call.
func orderingFor(hasLocation bool, filters models.FilterSelection, dominanceKm float64) []comparator {
	var chain []comparator
	if filters.Empty() {
		chain = append(chain, favoritesFirst)
	}
	if hasLocation {
		chain = append(chain, distanceDominance(filters.Distance != models.DistanceAny, dominanceKm))
	}
	return append(chain, scoreDescending)
}

// compare evaluates the chain left to right; the first decisive rule wins.
func compare(chain []comparator, a, b models.AnnotatedListing) int {
	for _, cmp := range chain {
		if r := cmp(a, b); r != 0 {
			return r
		}
	}
	return 0
}
