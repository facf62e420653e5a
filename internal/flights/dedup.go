package flights

import (
	"sort"

	"github.com/dharmasatrya/travelsearch/internal/models"
)

const maxPromoted = 3

type RankedFlights struct {
	BestFlights  []models.FlightOption `json:"best_flights"`
	OtherFlights []models.FlightOption `json:"other_flights"`
}

type flightKey struct {
	flightNumbers string
	hasPrice      bool
	price         float64
	totalDuration int
	departure     string
	arrival       string
}

func keyOf(f models.FlightOption) flightKey {
	k := flightKey{
		flightNumbers: f.DerivedFlightNumbers,
		totalDuration: f.TotalDuration,
		departure:     f.DerivedDepartureAirport,
		arrival:       f.DerivedArrivalAirport,
	}
	if f.Price != nil {
		k.hasPrice = true
		k.price = *f.Price
	}
	return k
}

// DeduplicateAndRank collapses options that appear in several buckets. The
// first occurrence wins in best, other, generic order, so callers must pass
// the buckets in that order.
func DeduplicateAndRank(best, other, generic []models.FlightOption) RankedFlights {
	bestKeys := make(map[flightKey]bool, len(best))
	for _, f := range best {
		bestKeys[keyOf(f)] = true
	}

	seen := make(map[flightKey]bool, len(best)+len(other)+len(generic))
	ranked := RankedFlights{
		BestFlights:  make([]models.FlightOption, 0),
		OtherFlights: make([]models.FlightOption, 0),
	}

	for _, bucket := range [][]models.FlightOption{best, other, generic} {
		for _, f := range bucket {
			k := keyOf(f)
			if seen[k] {
				continue
			}
			seen[k] = true

			if bestKeys[k] {
				ranked.BestFlights = append(ranked.BestFlights, f)
			} else {
				ranked.OtherFlights = append(ranked.OtherFlights, f)
			}
		}
	}

	sort.SliceStable(ranked.OtherFlights, func(i, j int) bool {
		return cheaper(ranked.OtherFlights[i], ranked.OtherFlights[j])
	})

	if len(ranked.BestFlights) == 0 && len(ranked.OtherFlights) > 0 {
		n := min(maxPromoted, len(ranked.OtherFlights))
		ranked.BestFlights = append(ranked.BestFlights, ranked.OtherFlights[:n]...)
		ranked.OtherFlights = append(make([]models.FlightOption, 0, len(ranked.OtherFlights)-n), ranked.OtherFlights[n:]...)
	}

	return ranked
}

// cheaper orders by price ascending with unpriced options last.
func cheaper(a, b models.FlightOption) bool {
	switch {
	case a.Price == nil:
		return false
	case b.Price == nil:
		return true
	default:
		return *a.Price < *b.Price
	}
}
