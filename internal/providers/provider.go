package providers

import (
	"context"

	"github.com/dharmasatrya/travelsearch/internal/models"
)

// Client is the search provider. Implementations return the provider's
// payload as-is, including any error envelope it reports.
type Client interface {
	Name() string
	SearchFlights(ctx context.Context, criteria models.SearchCriteria) (*FlightSearchResponse, error)
	ContinueFlights(ctx context.Context, token string, criteria models.SearchCriteria) (*FlightSearchResponse, error)
	SearchHotels(ctx context.Context, criteria models.HotelCriteria) (*HotelSearchResponse, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
