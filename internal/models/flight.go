package models

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// ExpectedSegments is how many legs a non-stop journey of this trip type has.
func (t TripType) ExpectedSegments() int {
	if t == TripRoundTrip {
		return 2
	}
	return 1
}

type Airport struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Time string `json:"time"`
}

type FlightLeg struct {
	DepartureAirport Airport  `json:"departure_airport"`
	ArrivalAirport   Airport  `json:"arrival_airport"`
	Duration         int      `json:"duration_minutes"`
	Airline          string   `json:"airline"`
	FlightNumber     string   `json:"flight_number"`
	Aircraft         *string  `json:"aircraft,omitempty"`
	CabinClass       string   `json:"cabin_class"`
	FareRules        []string `json:"fare_rules,omitempty"`
}

type Layover struct {
	Duration int    `json:"duration_minutes"`
	Name     string `json:"name"`
	Code     string `json:"code"`
}

// Label is the name shown for the layover airport in stop descriptions.
func (l Layover) Label() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Code
}

type FlightOption struct {
	Legs              []FlightLeg `json:"legs"`
	Layovers          []Layover   `json:"layovers"`
	TotalDuration     int         `json:"total_duration_minutes"`
	Price             *float64    `json:"price,omitempty"`
	Type              TripType    `json:"type"`
	Airline           string      `json:"airline"`
	AirlineLogo       string      `json:"airline_logo,omitempty"`
	Link              string      `json:"link,omitempty"`
	CarbonEmissions   *float64    `json:"carbon_emissions,omitempty"`
	ContinuationToken string      `json:"continuation_token,omitempty"`

	DerivedDepartureTime    string `json:"derived_departure_time"`
	DerivedDepartureAirport string `json:"derived_departure_airport"`
	DerivedArrivalTime      string `json:"derived_arrival_time"`
	DerivedArrivalAirport   string `json:"derived_arrival_airport"`
	DerivedFlightNumbers    string `json:"derived_flight_numbers"`
	DerivedStopsDescription string `json:"derived_stops_description"`
}

// AwaitingReturn reports whether the option is an outbound leg whose return
// journey has not been merged yet.
func (f FlightOption) AwaitingReturn() bool {
	return f.ContinuationToken != ""
}
