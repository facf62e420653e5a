package models

import (
	"encoding/json"
	"time"
)

const DateLayout = "2006-01-02"

// ParsedDateRange is a resolved travel window. Dates are calendar days at
// midnight in the resolver's location.
type ParsedDateRange struct {
	DepartureDate time.Time
	ReturnDate    *time.Time
	DurationDays  int
	Type          TripType
}

func (p ParsedDateRange) DepartureISO() string {
	return p.DepartureDate.Format(DateLayout)
}

// ReturnISO returns nil for one-way ranges.
func (p ParsedDateRange) ReturnISO() *string {
	if p.ReturnDate == nil {
		return nil
	}
	s := p.ReturnDate.Format(DateLayout)
	return &s
}

func (p ParsedDateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DepartureDate string   `json:"departure_date"`
		ReturnDate    *string  `json:"return_date,omitempty"`
		DurationDays  int      `json:"duration_days"`
		Type          TripType `json:"type"`
	}{
		DepartureDate: p.DepartureISO(),
		ReturnDate:    p.ReturnISO(),
		DurationDays:  p.DurationDays,
		Type:          p.Type,
	})
}
