package providers

// Raw shapes returned by the search provider. Numeric fields the provider
// sends with varying types are kept as any and coerced downstream; text
// fields use Text so one mistyped value cannot fail a whole response. Bucket
// lists decode entry by entry, so a structurally broken entry is dropped
// alone.

type FlightSearchResponse struct {
	BestFlights  Entries[RawFlight] `json:"best_flights"`
	OtherFlights Entries[RawFlight] `json:"other_flights"`
	Flights      Entries[RawFlight] `json:"flights"`
	Error        Text               `json:"error,omitempty"`
}

type RawFlight struct {
	Flights         []RawLeg     `json:"flights"`
	Segments        []RawLeg     `json:"segments"`
	Layovers        []RawLayover `json:"layovers"`
	TotalDuration   any          `json:"total_duration"`
	Price           any          `json:"price"`
	Type            Text         `json:"type"`
	Airline         Text         `json:"airline"`
	AirlineLogo     Text         `json:"airline_logo"`
	Link            Text         `json:"link"`
	CarbonEmissions any          `json:"carbon_emissions"`
	DepartureToken  Text         `json:"departure_token"`
}

// Legs prefers the flights array and falls back to segments.
func (f RawFlight) Legs() []RawLeg {
	if len(f.Flights) > 0 {
		return f.Flights
	}
	return f.Segments
}

type RawLeg struct {
	DepartureAirport RawAirport `json:"departure_airport"`
	ArrivalAirport   RawAirport `json:"arrival_airport"`
	Duration         any        `json:"duration"`
	Airline          Text       `json:"airline"`
	AirlineLogo      Text       `json:"airline_logo"`
	FlightNumber     Text       `json:"flight_number"`
	Airplane         Text       `json:"airplane"`
	TravelClass      Text       `json:"travel_class"`
	Extensions       TextList   `json:"extensions"`
}

type RawAirport struct {
	Name Text `json:"name"`
	ID   Text `json:"id"`
	Time Text `json:"time"`
}

type RawLayover struct {
	Duration any  `json:"duration"`
	Name     Text `json:"name"`
	ID       Text `json:"id"`
}

type HotelSearchResponse struct {
	Properties Entries[RawHotel] `json:"properties"`
	Error      Text              `json:"error,omitempty"`
}

type RawHotel struct {
	Name           Text                   `json:"name"`
	Type           Text                   `json:"type"`
	Description    Text                   `json:"description"`
	RatePerNight   *RawRate               `json:"rate_per_night"`
	TotalRate      *RawRate               `json:"total_rate"`
	PricePerNight  any                    `json:"price_per_night"`
	Price          any                    `json:"price"`
	ExtractedPrice any                    `json:"extracted_price"`
	TotalPrice     any                    `json:"total_price"`
	OverallRating  any                    `json:"overall_rating"`
	Reviews        any                    `json:"reviews"`
	Amenities      TextList               `json:"amenities"`
	Link           Text                   `json:"link"`
	Images         Entries[RawHotelImage] `json:"images"`
	GPSCoordinates *RawCoordinates        `json:"gps_coordinates"`
	CheckInTime    Text                   `json:"check_in_time"`
	CheckOutTime   Text                   `json:"check_out_time"`
}

type RawRate struct {
	Lowest          any `json:"lowest"`
	ExtractedLowest any `json:"extracted_lowest"`
}

type RawHotelImage struct {
	Thumbnail     Text `json:"thumbnail"`
	OriginalImage Text `json:"original_image"`
}

type RawCoordinates struct {
	Latitude  any `json:"latitude"`
	Longitude any `json:"longitude"`
}
