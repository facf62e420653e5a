package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/travelsearch/internal/models"
	"github.com/dharmasatrya/travelsearch/internal/ratelimit"
)

const flightPayload = `{
  "best_flights": [{
    "flights": [{
      "departure_airport": {"name": "John F. Kennedy International Airport", "id": "JFK", "time": "2026-11-10 08:00"},
      "arrival_airport": {"name": "Heathrow Airport", "id": "LHR", "time": "2026-11-10 20:05"},
      "duration": 425,
      "airline": "British Airways",
      "flight_number": "BA 178",
      "airplane": "Boeing 777",
      "travel_class": "Economy",
      "extensions": ["Carry-on bag included"]
    }],
    "total_duration": 425,
    "price": "$612",
    "type": "Round trip",
    "departure_token": "tok-1"
  }],
  "other_flights": []
}`

func newTestServer(t *testing.T, status int, body string, seen *url.Values) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		if seen != nil {
			*seen = r.URL.Query()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func roundTripCriteria() models.SearchCriteria {
	ret := "2026-11-17"
	return models.SearchCriteria{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2026-11-10",
		ReturnDate:    &ret,
		Currency:      "USD",
		Locale:        "en",
	}
}

func TestSerpClient_SearchFlights(t *testing.T) {
	var q url.Values
	srv := newTestServer(t, http.StatusOK, flightPayload, &q)
	client := NewSerpClient(SerpConfig{
		BaseURL: srv.URL,
		APIKey:  "secret",
		Limiter: ratelimit.NewEngineLimiter(ratelimit.DefaultConfig()),
	})

	resp, err := client.SearchFlights(context.Background(), roundTripCriteria())
	require.NoError(t, err)
	require.Len(t, resp.BestFlights, 1)

	entry := resp.BestFlights[0]
	assert.Equal(t, "$612", entry.Price)
	assert.Equal(t, float64(425), entry.TotalDuration)
	assert.EqualValues(t, "tok-1", entry.DepartureToken)
	require.Len(t, entry.Legs(), 1)
	assert.EqualValues(t, "BA 178", entry.Legs()[0].FlightNumber)

	assert.Equal(t, EngineFlights, q.Get("engine"))
	assert.Equal(t, "secret", q.Get("api_key"))
	assert.Equal(t, "JFK", q.Get("departure_id"))
	assert.Equal(t, "LHR", q.Get("arrival_id"))
	assert.Equal(t, "2026-11-17", q.Get("return_date"))
	assert.Equal(t, "1", q.Get("type"))
	assert.Equal(t, "USD", q.Get("currency"))
	assert.Equal(t, "en", q.Get("hl"))
}

func TestSerpClient_ContinueFlightsSendsToken(t *testing.T) {
	var q url.Values
	srv := newTestServer(t, http.StatusOK, `{"best_flights": []}`, &q)
	client := NewSerpClient(SerpConfig{BaseURL: srv.URL})

	_, err := client.ContinueFlights(context.Background(), "tok-1", roundTripCriteria())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", q.Get("departure_token"))
	assert.Equal(t, "USD", q.Get("currency"))
	assert.Empty(t, q.Get("api_key"))
}

func TestSerpClient_OneWayType(t *testing.T) {
	var q url.Values
	srv := newTestServer(t, http.StatusOK, `{}`, &q)
	client := NewSerpClient(SerpConfig{BaseURL: srv.URL})

	criteria := roundTripCriteria()
	criteria.ReturnDate = nil
	_, err := client.SearchFlights(context.Background(), criteria)
	require.NoError(t, err)
	assert.Equal(t, "2", q.Get("type"))
	assert.False(t, q.Has("return_date"))
}

func TestSerpClient_ReportedErrorEnvelope(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"error": "Google Flights hasn't returned any results for this query."}`, nil)
	client := NewSerpClient(SerpConfig{BaseURL: srv.URL})

	_, err := client.SearchFlights(context.Background(), roundTripCriteria())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProviderReported))

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "serpapi", perr.Provider)
}

func TestSerpClient_HTTPErrorStatus(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, `{"error": "Invalid API key."}`, nil)
	client := NewSerpClient(SerpConfig{BaseURL: srv.URL})

	_, err := client.SearchHotels(context.Background(), models.HotelCriteria{Destination: "Lisbon", Guests: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key.")

	srv = newTestServer(t, http.StatusBadGateway, `<html>bad gateway</html>`, nil)
	client = NewSerpClient(SerpConfig{BaseURL: srv.URL})
	_, err = client.SearchHotels(context.Background(), models.HotelCriteria{Destination: "Lisbon", Guests: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestSerpClient_SearchHotels(t *testing.T) {
	var q url.Values
	srv := newTestServer(t, http.StatusOK, `{"properties": [{"name": "Casa Azul", "rate_per_night": {"lowest": "$140", "extracted_lowest": 140}}]}`, &q)
	client := NewSerpClient(SerpConfig{BaseURL: srv.URL + "/"})

	resp, err := client.SearchHotels(context.Background(), models.HotelCriteria{
		Destination:  "Lisbon",
		CheckInDate:  "2026-11-10",
		CheckOutDate: "2026-11-17",
		Guests:       2,
		Currency:     "EUR",
	})
	require.NoError(t, err)
	require.Len(t, resp.Properties, 1)
	assert.EqualValues(t, "Casa Azul", resp.Properties[0].Name)
	assert.Equal(t, "$140", resp.Properties[0].RatePerNight.Lowest)

	assert.Equal(t, EngineHotels, q.Get("engine"))
	assert.Equal(t, "Lisbon", q.Get("q"))
	assert.Equal(t, "2", q.Get("adults"))
	assert.Equal(t, "EUR", q.Get("currency"))
}

func TestSerpClient_MalformedBody(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"best_flights": [`, nil)
	client := NewSerpClient(SerpConfig{BaseURL: srv.URL})

	_, err := client.SearchFlights(context.Background(), roundTripCriteria())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode google_flights response")
}

func TestSerpClient_MistypedEntryDoesNotFailResponse(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{
  "best_flights": [
    {"flights": [{"flight_number": "BA 178", "airline": "British Airways"}], "price": 612},
    {"flights": [{"flight_number": 123, "airline": {"name": "odd"}, "extensions": "none"}], "price": 540, "departure_token": 99},
    {"flights": "not a list", "price": 480}
  ],
  "other_flights": "unavailable"
}`, nil)
	client := NewSerpClient(SerpConfig{BaseURL: srv.URL})

	resp, err := client.SearchFlights(context.Background(), roundTripCriteria())
	require.NoError(t, err)
	require.Len(t, resp.BestFlights, 2)
	assert.Empty(t, resp.OtherFlights)

	assert.EqualValues(t, "BA 178", resp.BestFlights[0].Legs()[0].FlightNumber)

	odd := resp.BestFlights[1]
	assert.EqualValues(t, "123", odd.Legs()[0].FlightNumber)
	assert.Empty(t, odd.Legs()[0].Airline)
	assert.Empty(t, odd.Legs()[0].Extensions)
	assert.EqualValues(t, "99", odd.DepartureToken)
}

func TestSerpClient_MistypedHotelFields(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"properties": [
  {"name": 7, "price": 80, "amenities": ["Pool", 3, {"x": 1}], "images": [{"thumbnail": "t.jpg"}, "broken"]},
  {"name": "Casa Azul", "price": 140}
]}`, nil)
	client := NewSerpClient(SerpConfig{BaseURL: srv.URL})

	resp, err := client.SearchHotels(context.Background(), models.HotelCriteria{Destination: "Lisbon", Guests: 1})
	require.NoError(t, err)
	require.Len(t, resp.Properties, 2)

	first := resp.Properties[0]
	assert.EqualValues(t, "7", first.Name)
	assert.Equal(t, []string{"Pool", "3"}, []string(first.Amenities))
	require.Len(t, first.Images, 1)
	assert.EqualValues(t, "t.jpg", first.Images[0].Thumbnail)
}
