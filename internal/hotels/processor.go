package hotels

import (
	"math"

	"github.com/dharmasatrya/travelsearch/internal/models"
	"github.com/dharmasatrya/travelsearch/internal/providers"
	"github.com/dharmasatrya/travelsearch/pkg/currency"
)

// ProcessHotelResults maps each property on its own. A property needs a name
// and at least one of per-night price, total price or price details.
func ProcessHotelResults(raw []providers.RawHotel) []models.HotelSuggestion {
	results := make([]models.HotelSuggestion, 0, len(raw))
	for _, h := range raw {
		hotel := normalize(h)
		if hotel.Name == "" {
			continue
		}
		if hotel.PricePerNight == nil && hotel.TotalPrice == nil && hotel.PriceDetails == "" {
			continue
		}
		results = append(results, hotel)
	}
	return results
}

func normalize(h providers.RawHotel) models.HotelSuggestion {
	var nightly, total []any
	if h.RatePerNight != nil {
		nightly = append(nightly, h.RatePerNight.Lowest, h.RatePerNight.ExtractedLowest)
	}
	nightly = append(nightly, h.PricePerNight, h.Price, h.ExtractedPrice)

	if h.TotalRate != nil {
		total = append(total, h.TotalRate.ExtractedLowest, h.TotalRate.Lowest)
	}
	total = append(total, h.TotalPrice)

	pricePerNight := firstPrice(nightly)

	var details string
	if s, ok := firstPresent(nightly).(string); ok && s != "" {
		details = s
	} else if pricePerNight != nil {
		details = currency.FormatDollars(*pricePerNight)
	}

	hotel := models.HotelSuggestion{
		Name:          string(h.Name),
		PropertyType:  string(h.Type),
		Description:   string(h.Description),
		PricePerNight: pricePerNight,
		TotalPrice:    firstPrice(total),
		PriceDetails:  details,
		Rating:        currency.CoercePtr(h.OverallRating),
		Amenities:     h.Amenities,
		Link:          string(h.Link),
		CheckInTime:   string(h.CheckInTime),
		CheckOutTime:  string(h.CheckOutTime),
	}

	if reviews, ok := currency.Coerce(h.Reviews); ok && reviews <= math.MaxInt32 {
		hotel.Reviews = int(reviews)
	}

	for _, img := range h.Images {
		if hotel.Thumbnail == "" && img.Thumbnail != "" {
			hotel.Thumbnail = string(img.Thumbnail)
		}
		if img.OriginalImage != "" {
			hotel.Images = append(hotel.Images, string(img.OriginalImage))
		}
	}

	if h.GPSCoordinates != nil {
		lat, latOK := coordinate(h.GPSCoordinates.Latitude)
		lng, lngOK := coordinate(h.GPSCoordinates.Longitude)
		if latOK && lngOK {
			hotel.Coordinates = &models.Coordinates{Latitude: lat, Longitude: lng}
		}
	}

	return hotel
}

func firstPrice(candidates []any) *float64 {
	for _, c := range candidates {
		if p := currency.CoercePtr(c); p != nil {
			return p
		}
	}
	return nil
}

func firstPresent(candidates []any) any {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// coordinate only accepts numbers: stripping a minus sign the way prices are
// stripped would move the hotel to the wrong hemisphere.
func coordinate(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
