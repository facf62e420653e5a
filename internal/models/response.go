package models

type SearchMetadata struct {
	SearchID        string `json:"search_id"`
	TotalResults    int    `json:"total_results"`
	ReturnsMerged   int    `json:"returns_merged,omitempty"`
	ReturnsUnmerged int    `json:"returns_unmerged,omitempty"`
	SearchTimeMs    int64  `json:"search_time_ms"`
}

type FlightSearchResponse struct {
	SearchCriteria SearchCriteria  `json:"search_criteria"`
	Dates          ParsedDateRange `json:"dates"`
	Metadata       SearchMetadata  `json:"metadata"`
	BestFlights    []FlightOption  `json:"best_flights"`
	OtherFlights   []FlightOption  `json:"other_flights"`
}

type HotelSearchResponse struct {
	SearchCriteria HotelCriteria     `json:"search_criteria"`
	Dates          ParsedDateRange   `json:"dates"`
	Metadata       SearchMetadata    `json:"metadata"`
	Hotels         []HotelSuggestion `json:"hotels"`
}

type TripSearchResponse struct {
	Flights *FlightSearchResponse `json:"flights"`
	Hotels  *HotelSearchResponse  `json:"hotels"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
