package flights

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/travelsearch/internal/models"
	"github.com/dharmasatrya/travelsearch/internal/providers"
)

func TestProcessFlightResults_DropsUnusableEntries(t *testing.T) {
	raw := []providers.RawFlight{
		{Flights: []providers.RawLeg{rawLeg("JFK", "JFK Airport", "LAX", "LAX Airport", "DL 1", 360.0)}, Price: "n/a"},
		{Flights: []providers.RawLeg{rawLeg("JFK", "JFK Airport", "LAX", "LAX Airport", "DL 2", 360.0)}},
		{Price: 199.0},
		{Flights: []providers.RawLeg{rawLeg("JFK", "JFK Airport", "LAX", "LAX Airport", "DL 3", 360.0)}, Price: 250.0},
	}

	got := ProcessFlightResults(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "DL 3", got[0].DerivedFlightNumbers)
	assert.Equal(t, 250.0, *got[0].Price)
}

func TestProcessFlightResults_EmptyInput(t *testing.T) {
	assert.Empty(t, ProcessFlightResults(nil))
	assert.NotNil(t, ProcessFlightResults(nil))
}

func TestProcessFlightResults_DerivedFields(t *testing.T) {
	first := rawLeg("JFK", "John F. Kennedy International Airport", "ATL", "Hartsfield-Jackson Atlanta", "DL 100", 150.0)
	first.DepartureAirport.Time = "2026-11-10 06:00"
	first.Airplane = "Airbus A321"
	first.Extensions = []string{"Wi-Fi for a fee"}
	second := rawLeg("ATL", "Hartsfield-Jackson Atlanta", "LAX", "Los Angeles International Airport", "", 300.0)
	second.ArrivalAirport.Time = "2026-11-10 13:30"

	raw := []providers.RawFlight{{
		Flights:         []providers.RawLeg{first, second},
		Layovers:        []providers.RawLayover{{Duration: 75.0, Name: "Hartsfield-Jackson Atlanta", ID: "ATL"}},
		TotalDuration:   "525",
		Price:           "$1,234.50",
		Type:            "One way",
		AirlineLogo:     "https://example.com/dl.png",
		Link:            "https://example.com/book",
		CarbonEmissions: map[string]any{"this_flight": 310000.0},
	}}

	got := ProcessFlightResults(raw)
	require.Len(t, got, 1)
	opt := got[0]

	assert.Equal(t, "2026-11-10 06:00", opt.DerivedDepartureTime)
	assert.Equal(t, "John F. Kennedy International Airport", opt.DerivedDepartureAirport)
	assert.Equal(t, "2026-11-10 13:30", opt.DerivedArrivalTime)
	assert.Equal(t, "Los Angeles International Airport", opt.DerivedArrivalAirport)
	assert.Equal(t, "DL 100", opt.DerivedFlightNumbers)
	assert.Equal(t, "1 stop in Hartsfield-Jackson Atlanta", opt.DerivedStopsDescription)
	assert.Equal(t, 525, opt.TotalDuration)
	assert.Equal(t, 1234.50, *opt.Price)
	assert.Equal(t, models.TripOneWay, opt.Type)
	assert.Equal(t, "Delta", opt.Airline)
	assert.Equal(t, "https://example.com/dl.png", opt.AirlineLogo)
	assert.Equal(t, 310000.0, *opt.CarbonEmissions)
	require.NotNil(t, opt.Legs[0].Aircraft)
	assert.Equal(t, "Airbus A321", *opt.Legs[0].Aircraft)
	assert.Equal(t, []string{"Wi-Fi for a fee"}, opt.Legs[0].FareRules)
	assert.Nil(t, opt.Legs[1].Aircraft)
	assert.Equal(t, 75, opt.Layovers[0].Duration)
	assert.False(t, opt.AwaitingReturn())
}

func TestProcessFlightResults_SegmentsFallbackAndComputedDuration(t *testing.T) {
	raw := []providers.RawFlight{{
		Segments: []providers.RawLeg{
			rawLeg("SFO", "SFO Airport", "SEA", "SEA Airport", "AS 1", "120"),
			rawLeg("SEA", "SEA Airport", "ANC", "ANC Airport", "AS 2", 210.0),
		},
		Layovers:       []providers.RawLayover{{Duration: "45", ID: "SEA"}},
		TotalDuration:  "3 hr 45 min",
		Price:          420.0,
		Type:           "Round trip",
		DepartureToken: "tok",
	}}

	got := ProcessFlightResults(raw)
	require.Len(t, got, 1)
	opt := got[0]

	assert.Equal(t, 120+210+45, opt.TotalDuration)
	assert.Equal(t, "AS 1, AS 2", opt.DerivedFlightNumbers)
	assert.Equal(t, "1 stop in SEA", opt.DerivedStopsDescription)
	assert.Equal(t, models.TripRoundTrip, opt.Type)
	assert.True(t, opt.AwaitingReturn())
}

func TestProcessFlightResults_NonStopForEverySingleLeg(t *testing.T) {
	prices := []any{99.0, "$120", 310, "1,000"}
	for _, p := range prices {
		got := ProcessFlightResults([]providers.RawFlight{{
			Flights: []providers.RawLeg{rawLeg("BOS", "Logan", "ORD", "O'Hare", "UA 7", 150.0)},
			Price:   p,
		}})
		require.Len(t, got, 1)
		assert.Equal(t, "Non-stop", got[0].DerivedStopsDescription)
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in     any
		want   int
		wantOK bool
	}{
		{in: 90.0, want: 90, wantOK: true},
		{in: 90, want: 90, wantOK: true},
		{in: " 125 ", want: 125, wantOK: true},
		{in: "1h 20m", wantOK: false},
		{in: -5.0, wantOK: false},
		{in: nil, wantOK: false},
		{in: 43200.0, want: 43200, wantOK: true},
		{in: 43201.0, wantOK: false},
		{in: 1e300, wantOK: false},
		{in: "1e19", wantOK: false},
		{in: math.Inf(1), wantOK: false},
	}
	for _, tt := range tests {
		got, ok := parseMinutes(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %v", tt.in)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}
}

func TestProcessFlightResults_HugeDurationFallsBackToSum(t *testing.T) {
	got := ProcessFlightResults([]providers.RawFlight{{
		Flights:       []providers.RawLeg{rawLeg("BOS", "Logan", "ORD", "O'Hare", "UA 7", 1e300)},
		TotalDuration: 9.9e18,
		Price:         199.0,
	}})
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Legs[0].Duration)
	assert.Zero(t, got[0].TotalDuration)
}

func TestCarbonEstimate(t *testing.T) {
	assert.Nil(t, carbonEstimate(nil))
	assert.Equal(t, 1200.0, *carbonEstimate(1200.0))
	assert.Equal(t, 88.0, *carbonEstimate(map[string]any{"this_flight": "88"}))
	assert.Nil(t, carbonEstimate(map[string]any{"typical_for_this_route": 10.0}))
}
