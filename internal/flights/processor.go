package flights

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dharmasatrya/travelsearch/internal/models"
	"github.com/dharmasatrya/travelsearch/internal/providers"
	"github.com/dharmasatrya/travelsearch/pkg/currency"
)

// Durations beyond this many minutes (a month) are treated as absent.
const maxMinutes = 60 * 24 * 30

// ProcessFlightResults normalizes a provider bucket. Entries without a
// usable price or without any leg are dropped.
func ProcessFlightResults(raw []providers.RawFlight) []models.FlightOption {
	results := make([]models.FlightOption, 0, len(raw))
	for _, f := range raw {
		option := normalize(f)
		if option.Price == nil {
			continue
		}
		if option.DerivedDepartureAirport == "" && len(option.Legs) == 0 {
			continue
		}
		results = append(results, option)
	}
	return results
}

func normalize(f providers.RawFlight) models.FlightOption {
	rawLegs := f.Legs()
	legs := make([]models.FlightLeg, len(rawLegs))
	for i, l := range rawLegs {
		legs[i] = normalizeLeg(l)
	}

	layovers := make([]models.Layover, len(f.Layovers))
	for i, l := range f.Layovers {
		layovers[i] = models.Layover{
			Duration: coerceMinutes(l.Duration),
			Name:     string(l.Name),
			Code:     string(l.ID),
		}
	}

	totalDuration, ok := parseMinutes(f.TotalDuration)
	if !ok {
		totalDuration = sumDurations(legs, layovers)
	}

	airline := string(f.Airline)
	logo := string(f.AirlineLogo)
	if len(rawLegs) > 0 {
		if airline == "" {
			airline = string(rawLegs[0].Airline)
		}
		if logo == "" {
			logo = string(rawLegs[0].AirlineLogo)
		}
	}

	option := models.FlightOption{
		Legs:              legs,
		Layovers:          layovers,
		TotalDuration:     totalDuration,
		Price:             currency.CoercePtr(f.Price),
		Type:              tripType(string(f.Type)),
		Airline:           airline,
		AirlineLogo:       logo,
		Link:              string(f.Link),
		CarbonEmissions:   carbonEstimate(f.CarbonEmissions),
		ContinuationToken: string(f.DepartureToken),
	}
	return withDerivedFields(option)
}

func normalizeLeg(l providers.RawLeg) models.FlightLeg {
	var aircraft *string
	if l.Airplane != "" {
		a := string(l.Airplane)
		aircraft = &a
	}

	var rules []string
	if len(l.Extensions) > 0 {
		rules = append([]string(nil), l.Extensions...)
	}

	return models.FlightLeg{
		DepartureAirport: models.Airport{
			Name: string(l.DepartureAirport.Name),
			Code: string(l.DepartureAirport.ID),
			Time: string(l.DepartureAirport.Time),
		},
		ArrivalAirport: models.Airport{
			Name: string(l.ArrivalAirport.Name),
			Code: string(l.ArrivalAirport.ID),
			Time: string(l.ArrivalAirport.Time),
		},
		Duration:     coerceMinutes(l.Duration),
		Airline:      string(l.Airline),
		FlightNumber: string(l.FlightNumber),
		Aircraft:     aircraft,
		CabinClass:   string(l.TravelClass),
		FareRules:    rules,
	}
}

// withDerivedFields recomputes every derived_* field from legs and layovers.
func withDerivedFields(option models.FlightOption) models.FlightOption {
	option.DerivedDepartureTime = ""
	option.DerivedDepartureAirport = ""
	option.DerivedArrivalTime = ""
	option.DerivedArrivalAirport = ""

	if n := len(option.Legs); n > 0 {
		first, last := option.Legs[0], option.Legs[n-1]
		option.DerivedDepartureTime = first.DepartureAirport.Time
		option.DerivedDepartureAirport = first.DepartureAirport.Name
		option.DerivedArrivalTime = last.ArrivalAirport.Time
		option.DerivedArrivalAirport = last.ArrivalAirport.Name
	}

	numbers := make([]string, 0, len(option.Legs))
	for _, l := range option.Legs {
		if l.FlightNumber != "" {
			numbers = append(numbers, l.FlightNumber)
		}
	}
	option.DerivedFlightNumbers = strings.Join(numbers, ", ")
	option.DerivedStopsDescription = DeriveStopsDescription(option.Legs, option.Layovers, option.Type)

	return option
}

func tripType(raw string) models.TripType {
	if strings.Contains(strings.ToLower(raw), "round") {
		return models.TripRoundTrip
	}
	return models.TripOneWay
}

func sumDurations(legs []models.FlightLeg, layovers []models.Layover) int {
	total := 0
	for _, l := range legs {
		total += l.Duration
	}
	for _, l := range layovers {
		total += l.Duration
	}
	return total
}

// carbonEstimate accepts either a bare number or the provider's
// {"this_flight": n} object.
func carbonEstimate(v any) *float64 {
	if m, ok := v.(map[string]any); ok {
		return currency.CoercePtr(m["this_flight"])
	}
	return currency.CoercePtr(v)
}

func coerceMinutes(v any) int {
	m, _ := parseMinutes(v)
	return m
}

// parseMinutes reads a whole-minute count from a number or numeric string.
// Unlike prices, free text such as "2 hr 5 min" is not accepted.
func parseMinutes(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || n < 0 || n > maxMinutes {
			return 0, false
		}
		return int(math.Round(n)), true
	case int:
		if n < 0 || n > maxMinutes {
			return 0, false
		}
		return n, true
	case json.Number:
		return parseMinutes(n.String())
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parseMinutes(f)
	default:
		return 0, false
	}
}
