package ranking

import (
	"sort"

	"github.com/om-bhaiya/messle/internal/geo"
	"github.com/om-bhaiya/messle/internal/models"
)

// DefaultDominanceKm is the distance gap past which proximity overrides
// quality for a same-day meal decision.
const DefaultDominanceKm = 2.0

// Pipeline turns a raw candidate list into the ordered, filtered listing
// view. It performs no I/O and keeps no state between calls; concurrent
// invocations are independent.
type Pipeline struct {
	scorer      *Scorer
	dominanceKm float64
}

func NewPipeline(scorer *Scorer, dominanceKm float64) *Pipeline {
	if dominanceKm <= 0 {
		dominanceKm = DefaultDominanceKm
	}
	return &Pipeline{scorer: scorer, dominanceKm: dominanceKm}
}

// Rank annotates every candidate with its score (and distance when a user
// location is known), drops candidates failing the active filter facets,
// and orders the remainder with the favorites/distance/score cascade.
// Malformed candidates are skipped. An empty candidate list yields an empty
// result, never an error. The sort is stable: equal listings keep their
// input order.
func (p *Pipeline) Rank(
	candidates []models.Listing,
	userLocation *models.Location,
	filters models.FilterSelection,
	favorites map[string]struct{},
) []models.AnnotatedListing {
	result := make([]models.AnnotatedListing, 0, len(candidates))

	for _, l := range candidates {
		if !l.Valid() {
			continue
		}
		a := models.AnnotatedListing{
			Listing: l,
			Score:   p.scorer.Score(l),
		}
		if userLocation != nil {
			d := geo.DistanceKm(*userLocation, l.Location)
			a.DistanceKm = &d
		}
		if _, ok := favorites[l.ID]; ok {
			a.Favorite = true
		}
		if !Matches(a, filters) {
			continue
		}
		result = append(result, a)
	}

	chain := orderingFor(userLocation != nil, filters, p.dominanceKm)
	sort.SliceStable(result, func(i, j int) bool {
		return compare(chain, result[i], result[j]) < 0
	})

	return result
}
