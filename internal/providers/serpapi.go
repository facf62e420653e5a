package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dharmasatrya/travelsearch/internal/models"
	"github.com/dharmasatrya/travelsearch/internal/ratelimit"
)

const (
	EngineFlights = "google_flights"
	EngineHotels  = "google_hotels"

	maxResponseBytes = 8 << 20
)

var ErrProviderReported = errors.New("provider reported an error")

type SerpConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Limiter    *ratelimit.EngineLimiter
}

// SerpClient talks to a SerpApi-compatible search endpoint.
type SerpClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *ratelimit.EngineLimiter
}

func NewSerpClient(cfg SerpConfig) *SerpClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &SerpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
		limiter: cfg.Limiter,
	}
}

func (c *SerpClient) Name() string {
	return "serpapi"
}

func (c *SerpClient) SearchFlights(ctx context.Context, criteria models.SearchCriteria) (*FlightSearchResponse, error) {
	var resp FlightSearchResponse
	if err := c.get(ctx, EngineFlights, flightParams(criteria), &resp); err != nil {
		return nil, err
	}
	return &resp, c.reported(string(resp.Error))
}

func (c *SerpClient) ContinueFlights(ctx context.Context, token string, criteria models.SearchCriteria) (*FlightSearchResponse, error) {
	params := flightParams(criteria)
	params.Set("departure_token", token)

	var resp FlightSearchResponse
	if err := c.get(ctx, EngineFlights, params, &resp); err != nil {
		return nil, err
	}
	return &resp, c.reported(string(resp.Error))
}

func (c *SerpClient) SearchHotels(ctx context.Context, criteria models.HotelCriteria) (*HotelSearchResponse, error) {
	params := url.Values{}
	params.Set("q", criteria.Destination)
	params.Set("check_in_date", criteria.CheckInDate)
	params.Set("check_out_date", criteria.CheckOutDate)
	params.Set("adults", strconv.Itoa(criteria.Guests))
	setLocale(params, criteria.Currency, criteria.Locale)

	var resp HotelSearchResponse
	if err := c.get(ctx, EngineHotels, params, &resp); err != nil {
		return nil, err
	}
	return &resp, c.reported(string(resp.Error))
}

func flightParams(criteria models.SearchCriteria) url.Values {
	params := url.Values{}
	params.Set("departure_id", criteria.Origin)
	params.Set("arrival_id", criteria.Destination)
	params.Set("outbound_date", criteria.DepartureDate)
	if criteria.RoundTrip() {
		params.Set("return_date", *criteria.ReturnDate)
		params.Set("type", "1")
	} else {
		params.Set("type", "2")
	}
	setLocale(params, criteria.Currency, criteria.Locale)
	return params
}

func setLocale(params url.Values, currency, locale string) {
	if currency != "" {
		params.Set("currency", currency)
	}
	if locale != "" {
		params.Set("hl", locale)
	}
}

func (c *SerpClient) reported(msg string) error {
	if msg == "" {
		return nil
	}
	return NewProviderError(c.Name(), fmt.Errorf("%w: %s", ErrProviderReported, msg))
}

func (c *SerpClient) get(ctx context.Context, engine string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, engine); err != nil {
			return NewProviderError(c.Name(), err)
		}
	}

	params.Set("engine", engine)
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return NewProviderError(c.Name(), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return NewProviderError(c.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return NewProviderError(c.Name(), err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			return NewProviderError(c.Name(), fmt.Errorf("%w: status %d: %s", ErrProviderReported, resp.StatusCode, envelope.Error))
		}
		return NewProviderError(c.Name(), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return NewProviderError(c.Name(), fmt.Errorf("decode %s response: %w", engine, err))
	}
	return nil
}
