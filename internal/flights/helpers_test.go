package flights

import (
	"github.com/dharmasatrya/travelsearch/internal/models"
	"github.com/dharmasatrya/travelsearch/internal/providers"
)

func rawLeg(from, fromName, to, toName, number string, minutes any) providers.RawLeg {
	return providers.RawLeg{
		DepartureAirport: providers.RawAirport{Name: providers.Text(fromName), ID: providers.Text(from), Time: "2026-11-10 08:00"},
		ArrivalAirport:   providers.RawAirport{Name: providers.Text(toName), ID: providers.Text(to), Time: "2026-11-10 11:00"},
		Duration:         minutes,
		Airline:          "Delta",
		FlightNumber:     providers.Text(number),
		TravelClass:      "Economy",
	}
}

func leg(from, to, number string, minutes int) models.FlightLeg {
	return models.FlightLeg{
		DepartureAirport: models.Airport{Name: from + " Airport", Code: from},
		ArrivalAirport:   models.Airport{Name: to + " Airport", Code: to},
		Duration:         minutes,
		FlightNumber:     number,
	}
}

func priced(f models.FlightOption, price float64) models.FlightOption {
	f.Price = &price
	return f
}

func option(price float64, legs ...models.FlightLeg) models.FlightOption {
	return withDerivedFields(priced(models.FlightOption{
		Legs:          legs,
		Layovers:      []models.Layover{},
		TotalDuration: sumDurations(legs, nil),
		Type:          models.TripOneWay,
	}, price))
}
