package filter

import (
	"strings"

	"github.com/dharmasatrya/travelsearch/internal/flights"
	"github.com/dharmasatrya/travelsearch/internal/models"
)

// Apply narrows both ranked lists. Order within each list is kept.
func Apply(ranked flights.RankedFlights, filters *models.SearchFilters) flights.RankedFlights {
	if filters == nil {
		return ranked
	}
	return flights.RankedFlights{
		BestFlights:  applyFilters(ranked.BestFlights, filters),
		OtherFlights: applyFilters(ranked.OtherFlights, filters),
	}
}

func applyFilters(options []models.FlightOption, filters *models.SearchFilters) []models.FlightOption {
	result := make([]models.FlightOption, 0, len(options))
	for _, f := range options {
		if matchesFilters(f, filters) {
			result = append(result, f)
		}
	}
	return result
}

func matchesFilters(f models.FlightOption, filters *models.SearchFilters) bool {
	if filters.PriceMin != nil || filters.PriceMax != nil {
		if f.Price == nil {
			return false
		}
		if filters.PriceMin != nil && *f.Price < *filters.PriceMin {
			return false
		}
		if filters.PriceMax != nil && *f.Price > *filters.PriceMax {
			return false
		}
	}

	if filters.MaxDuration != nil && f.TotalDuration > *filters.MaxDuration {
		return false
	}

	if filters.NonStopOnly && !strings.HasPrefix(f.DerivedStopsDescription, "Non-stop") {
		return false
	}

	if len(filters.Airlines) > 0 && !flownBy(f, filters.Airlines) {
		return false
	}

	return true
}

// flownBy matches the option's airline or any leg's airline, ignoring case.
func flownBy(f models.FlightOption, airlines []string) bool {
	for _, airline := range airlines {
		if strings.EqualFold(f.Airline, airline) {
			return true
		}
		for _, l := range f.Legs {
			if strings.EqualFold(l.Airline, airline) {
				return true
			}
		}
	}
	return false
}
