package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dharmasatrya/travelsearch/internal/airports"
	"github.com/dharmasatrya/travelsearch/internal/dates"
	"github.com/dharmasatrya/travelsearch/internal/filter"
	"github.com/dharmasatrya/travelsearch/internal/flights"
	"github.com/dharmasatrya/travelsearch/internal/history"
	"github.com/dharmasatrya/travelsearch/internal/hotels"
	"github.com/dharmasatrya/travelsearch/internal/models"
	"github.com/dharmasatrya/travelsearch/internal/providers"
)

type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration
	Currency    string
	Locale      string
}

func DefaultConfig() Config {
	return Config{
		Timeout:    10 * time.Second,
		MaxRetries: 2,
		RetryDelays: []time.Duration{
			200 * time.Millisecond,
			400 * time.Millisecond,
		},
		Currency: "USD",
		Locale:   "en",
	}
}

// Service runs a search end to end: dates and airport codes are resolved,
// the provider is queried and the raw payload is normalized.
type Service struct {
	client   providers.Client
	airports airports.Resolver
	dates    *dates.Resolver
	merger   *flights.Merger
	history  history.Store
	config   Config
}

func NewService(client providers.Client, airportResolver airports.Resolver, dateResolver *dates.Resolver, store history.Store, config Config) *Service {
	if store == nil {
		store = history.NewNoOpStore()
	}
	return &Service{
		client:   client,
		airports: airportResolver,
		dates:    dateResolver,
		merger:   flights.NewMerger(client),
		history:  store,
		config:   config,
	}
}

func (s *Service) ResolveDates(phrase string) models.ParsedDateRange {
	return s.dates.Resolve(phrase)
}

func (s *Service) RecentSearches(ctx context.Context, limit int) ([]history.Entry, error) {
	return s.history.Recent(ctx, limit)
}

func (s *Service) SearchFlights(ctx context.Context, req models.FlightSearchRequest) (*models.FlightSearchResponse, error) {
	start := time.Now()

	dateRange, err := s.dateRange(req.When, req.DepartureDate, req.ReturnDate)
	if err != nil {
		return nil, err
	}
	origin, err := s.airportCode(req.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := s.airportCode(req.Destination)
	if err != nil {
		return nil, err
	}

	criteria := models.SearchCriteria{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: dateRange.DepartureISO(),
		ReturnDate:    dateRange.ReturnISO(),
		Currency:      orDefault(req.Currency, s.config.Currency),
		Locale:        orDefault(req.Locale, s.config.Locale),
	}

	resp, err := s.searchWithRetry(ctx, criteria)
	if err != nil {
		return nil, err
	}

	best := flights.ProcessFlightResults(resp.BestFlights)
	other := flights.ProcessFlightResults(resp.OtherFlights)
	generic := flights.ProcessFlightResults(resp.Flights)

	var merged, pending int
	if criteria.RoundTrip() {
		best, other, generic, merged, pending = s.mergeBuckets(ctx, criteria, best, other, generic)
	}

	ranked := filter.Apply(flights.DeduplicateAndRank(best, other, generic), req.Filters)

	searchID := uuid.NewString()
	s.record(ctx, history.Entry{
		ID:            searchID,
		Kind:          history.KindFlights,
		Origin:        criteria.Origin,
		Destination:   criteria.Destination,
		Phrase:        req.When,
		DepartureDate: criteria.DepartureDate,
		ReturnDate:    criteria.ReturnDate,
		ResultCount:   len(ranked.BestFlights) + len(ranked.OtherFlights),
		CreatedAt:     start,
	})

	return &models.FlightSearchResponse{
		SearchCriteria: criteria,
		Dates:          dateRange,
		Metadata: models.SearchMetadata{
			SearchID:        searchID,
			TotalResults:    len(ranked.BestFlights) + len(ranked.OtherFlights),
			ReturnsMerged:   merged,
			ReturnsUnmerged: pending - merged,
			SearchTimeMs:    time.Since(start).Milliseconds(),
		},
		BestFlights:  ranked.BestFlights,
		OtherFlights: ranked.OtherFlights,
	}, nil
}

func (s *Service) SearchHotels(ctx context.Context, req models.HotelSearchRequest) (*models.HotelSearchResponse, error) {
	start := time.Now()

	dateRange, err := s.dateRange(req.When, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	criteria := models.HotelCriteria{
		Destination:  req.Destination,
		CheckInDate:  dateRange.DepartureISO(),
		CheckOutDate: checkOut(dateRange).Format(models.DateLayout),
		Guests:       req.Guests,
		Currency:     orDefault(req.Currency, s.config.Currency),
		Locale:       orDefault(req.Locale, s.config.Locale),
	}

	searchCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	resp, err := s.client.SearchHotels(searchCtx, criteria)
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, providers.NewProviderError(s.client.Name(), fmt.Errorf("%w: %s", providers.ErrProviderReported, resp.Error))
	}

	suggestions := hotels.ProcessHotelResults(resp.Properties)

	searchID := uuid.NewString()
	s.record(ctx, history.Entry{
		ID:            searchID,
		Kind:          history.KindHotels,
		Destination:   criteria.Destination,
		Phrase:        req.When,
		DepartureDate: criteria.CheckInDate,
		ReturnDate:    &criteria.CheckOutDate,
		ResultCount:   len(suggestions),
		CreatedAt:     start,
	})

	return &models.HotelSearchResponse{
		SearchCriteria: criteria,
		Dates:          dateRange,
		Metadata: models.SearchMetadata{
			SearchID:     searchID,
			TotalResults: len(suggestions),
			SearchTimeMs: time.Since(start).Milliseconds(),
		},
		Hotels: suggestions,
	}, nil
}

// SearchTrip resolves the travel phrase once and runs the flight and hotel
// searches for the same window concurrently.
func (s *Service) SearchTrip(ctx context.Context, req models.TripSearchRequest) (*models.TripSearchResponse, error) {
	dateRange := s.dates.Resolve(req.When)

	g, gctx := errgroup.WithContext(ctx)
	result := &models.TripSearchResponse{}

	g.Go(func() error {
		resp, err := s.SearchFlights(gctx, models.FlightSearchRequest{
			Origin:        req.Origin,
			Destination:   req.Destination,
			When:          req.When,
			DepartureDate: dateRange.DepartureISO(),
			ReturnDate:    dateRange.ReturnISO(),
			Currency:      req.Currency,
			Locale:        req.Locale,
			Filters:       req.Filters,
		})
		result.Flights = resp
		return err
	})

	g.Go(func() error {
		out := checkOut(dateRange).Format(models.DateLayout)
		resp, err := s.SearchHotels(gctx, models.HotelSearchRequest{
			Destination:  req.Destination,
			When:         req.When,
			CheckInDate:  dateRange.DepartureISO(),
			CheckOutDate: &out,
			Guests:       req.Guests,
			Currency:     req.Currency,
			Locale:       req.Locale,
		})
		result.Hotels = resp
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// mergeBuckets pairs every outbound option of all three buckets with its
// return journey in one fan-out and splits the results back per bucket.
func (s *Service) mergeBuckets(ctx context.Context, criteria models.SearchCriteria, best, other, generic []models.FlightOption) ([]models.FlightOption, []models.FlightOption, []models.FlightOption, int, int) {
	all := make([]models.FlightOption, 0, len(best)+len(other)+len(generic))
	all = append(all, best...)
	all = append(all, other...)
	all = append(all, generic...)

	pending := 0
	for _, f := range all {
		if f.AwaitingReturn() {
			pending++
		}
	}

	out, merged := s.merger.MergeAll(ctx, all, criteria)

	b, o := len(best), len(best)+len(other)
	return out[:b:b], out[b:o:o], out[o:], merged, pending
}

func (s *Service) searchWithRetry(ctx context.Context, criteria models.SearchCriteria) (*providers.FlightSearchResponse, error) {
	searchCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	var lastErr error

	for attempt := 0; attempt <= s.config.MaxRetries; attempt++ {
		select {
		case <-searchCtx.Done():
			return nil, searchCtx.Err()
		default:
		}

		if attempt > 0 && len(s.config.RetryDelays) > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(s.config.RetryDelays) {
				delayIdx = len(s.config.RetryDelays) - 1
			}

			select {
			case <-time.After(s.config.RetryDelays[delayIdx]):
			case <-searchCtx.Done():
				return nil, searchCtx.Err()
			}
		}

		resp, err := s.client.SearchFlights(searchCtx, criteria)
		if err == nil && resp != nil && resp.Error != "" {
			err = providers.NewProviderError(s.client.Name(), fmt.Errorf("%w: %s", providers.ErrProviderReported, resp.Error))
		}
		if err == nil && resp == nil {
			resp = &providers.FlightSearchResponse{}
		}
		if err == nil {
			return resp, nil
		}

		// The provider answered; asking again will not change its mind.
		if errors.Is(err, providers.ErrProviderReported) {
			return nil, err
		}

		lastErr = err
		log.Printf("Provider %s attempt %d failed: %v", s.client.Name(), attempt+1, err)
	}

	return nil, lastErr
}

func (s *Service) dateRange(phrase, start string, end *string) (models.ParsedDateRange, error) {
	if start == "" {
		return s.dates.Resolve(phrase), nil
	}

	departure, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return models.ParsedDateRange{}, models.ErrInvalidDate
	}
	result := models.ParsedDateRange{
		DepartureDate: departure,
		DurationDays:  1,
		Type:          models.TripOneWay,
	}
	if end == nil || *end == "" {
		return result, nil
	}

	ret, err := time.Parse(models.DateLayout, *end)
	if err != nil {
		return models.ParsedDateRange{}, models.ErrInvalidDate
	}
	if ret.Before(departure) {
		return models.ParsedDateRange{}, models.ErrReturnBeforeDeparture
	}
	result.ReturnDate = &ret
	result.DurationDays = int(ret.Sub(departure).Hours()/24) + 1
	result.Type = models.TripRoundTrip
	return result, nil
}

func (s *Service) airportCode(name string) (string, error) {
	code, ok := s.airports.Resolve(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownAirport, name)
	}
	return code, nil
}

func (s *Service) record(ctx context.Context, entry history.Entry) {
	if err := s.history.Record(ctx, entry); err != nil {
		log.Printf("Failed to record %s search %s: %v", entry.Kind, entry.ID, err)
	}
}

// checkOut is the last day of the range, with at least one night booked.
func checkOut(r models.ParsedDateRange) time.Time {
	if r.ReturnDate != nil && r.ReturnDate.After(r.DepartureDate) {
		return *r.ReturnDate
	}
	nights := r.DurationDays - 1
	if nights < 1 {
		nights = 1
	}
	return r.DepartureDate.AddDate(0, 0, nights)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
