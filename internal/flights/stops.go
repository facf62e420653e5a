package flights

import (
	"fmt"
	"strings"

	"github.com/dharmasatrya/travelsearch/internal/models"
)

// DeriveStopsDescription builds the human-readable stop summary. The rules
// are checked in order; the provider sometimes omits layover objects, so the
// leg count is used as a fallback signal.
func DeriveStopsDescription(legs []models.FlightLeg, layovers []models.Layover, trip models.TripType) string {
	switch {
	case len(legs) == 0:
		return "Unknown stops"
	case len(legs) == 1 && len(layovers) == 0:
		return "Non-stop"
	case trip == models.TripRoundTrip && len(legs) == 2 && len(layovers) == 0:
		return "Non-stop (each way)"
	}

	if len(layovers) == 0 {
		expected := trip.ExpectedSegments()
		if len(legs) > expected {
			n := (len(legs)+expected-1)/expected - 1
			if n == 0 {
				return "Non-stop"
			}
			return fmt.Sprintf("%d %s (details unclear)", n, pluralStops(n))
		}
		return "Non-stop"
	}

	names := make([]string, len(layovers))
	for i, l := range layovers {
		names[i] = l.Label()
	}
	return fmt.Sprintf("%d %s in %s", len(layovers), pluralStops(len(layovers)), strings.Join(names, ", "))
}

func pluralStops(n int) string {
	if n == 1 {
		return "stop"
	}
	return "stops"
}
