package models

import "time"

type SearchFilters struct {
	PriceMin    *float64 `json:"price_min,omitempty"`
	PriceMax    *float64 `json:"price_max,omitempty"`
	Airlines    []string `json:"airlines,omitempty"`
	MaxDuration *int     `json:"max_duration,omitempty"`
	NonStopOnly bool     `json:"non_stop_only,omitempty"`
}

// FlightSearchRequest accepts either explicit ISO dates or a free-text
// travel phrase in When. Explicit dates win.
type FlightSearchRequest struct {
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	When          string         `json:"when,omitempty"`
	DepartureDate string         `json:"departure_date,omitempty"`
	ReturnDate    *string        `json:"return_date,omitempty"`
	Currency      string         `json:"currency,omitempty"`
	Locale        string         `json:"locale,omitempty"`
	Filters       *SearchFilters `json:"filters,omitempty"`
}

func (r *FlightSearchRequest) Validate() error {
	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	return validateDates(r.DepartureDate, r.ReturnDate)
}

type HotelSearchRequest struct {
	Destination  string  `json:"destination"`
	When         string  `json:"when,omitempty"`
	CheckInDate  string  `json:"check_in_date,omitempty"`
	CheckOutDate *string `json:"check_out_date,omitempty"`
	Guests       int     `json:"guests"`
	Currency     string  `json:"currency,omitempty"`
	Locale       string  `json:"locale,omitempty"`
}

func (r *HotelSearchRequest) Validate() error {
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.Guests <= 0 {
		r.Guests = 1
	}
	return validateDates(r.CheckInDate, r.CheckOutDate)
}

type TripSearchRequest struct {
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	When        string         `json:"when"`
	Guests      int            `json:"guests"`
	Currency    string         `json:"currency,omitempty"`
	Locale      string         `json:"locale,omitempty"`
	Filters     *SearchFilters `json:"filters,omitempty"`
}

func (r *TripSearchRequest) Validate() error {
	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.Guests <= 0 {
		r.Guests = 1
	}
	return nil
}

// SearchCriteria is what is sent to the search provider once dates and
// airport codes are resolved.
type SearchCriteria struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date,omitempty"`
	Currency      string  `json:"currency"`
	Locale        string  `json:"locale"`
}

func (c SearchCriteria) RoundTrip() bool {
	return c.ReturnDate != nil && *c.ReturnDate != ""
}

type HotelCriteria struct {
	Destination  string `json:"destination"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Guests       int    `json:"guests"`
	Currency     string `json:"currency"`
	Locale       string `json:"locale"`
}

func validateDates(start string, end *string) error {
	if start == "" {
		if end != nil && *end != "" {
			return ErrMissingDepartureDate
		}
		return nil
	}
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return ErrInvalidDate
	}
	if end == nil || *end == "" {
		return nil
	}
	to, err := time.Parse(DateLayout, *end)
	if err != nil {
		return ErrInvalidDate
	}
	if to.Before(from) {
		return ErrReturnBeforeDeparture
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin         ValidationError = "origin is required"
	ErrMissingDestination    ValidationError = "destination is required"
	ErrMissingDepartureDate  ValidationError = "departure_date is required when return_date is set"
	ErrInvalidDate           ValidationError = "dates must use the YYYY-MM-DD format"
	ErrReturnBeforeDeparture ValidationError = "return date must not be before departure date"
	ErrUnknownAirport        ValidationError = "airport could not be resolved to an IATA code"
)
