package models

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type HotelSuggestion struct {
	Name          string       `json:"name"`
	PropertyType  string       `json:"property_type,omitempty"`
	Description   string       `json:"description,omitempty"`
	PricePerNight *float64     `json:"price_per_night,omitempty"`
	TotalPrice    *float64     `json:"total_price,omitempty"`
	PriceDetails  string       `json:"price_details,omitempty"`
	Rating        *float64     `json:"rating,omitempty"`
	Reviews       int          `json:"reviews"`
	Amenities     []string     `json:"amenities,omitempty"`
	Link          string       `json:"link,omitempty"`
	Thumbnail     string       `json:"thumbnail,omitempty"`
	Images        []string     `json:"images,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	CheckInTime   string       `json:"check_in_time,omitempty"`
	CheckOutTime  string       `json:"check_out_time,omitempty"`
}
